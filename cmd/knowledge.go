package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/ihaveaplan/internal/application"
	"github.com/bnema/ihaveaplan/internal/domain"
	"github.com/spf13/cobra"
)

func newKnowledgeCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "knowledge",
		Short: "Manage the uploaded document, its index and the assistant persona",
	}

	cmd.AddCommand(
		newKnowledgeUploadCmd(app),
		newKnowledgeClearCmd(app),
		newKnowledgePurgeCmd(app),
	)

	return cmd
}

func newKnowledgeUploadCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a document and point the persona at it",
		Long:  "Upload a document, build a file_search index over it and create the assistant persona, or update the existing one. The previously uploaded document and index are removed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lifecycle, err := app.lifecycleService(cmd.Context())
			if err != nil {
				return err
			}

			var handle domain.PersonaHandle
			err = app.wait(cmd.Context(), cmd.ErrOrStderr(), "Uploading and indexing "+args[0]+"...", func(ctx context.Context) error {
				var err error
				handle, err = lifecycle.EnsurePersona(ctx, args[0])
				return err
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "assistant:\t%s\n", handle.AssistantID)
			_, _ = fmt.Fprintf(out, "vector store:\t%s\n", handle.VectorStoreID)
			_, err = fmt.Fprintf(out, "file:\t%s\n", handle.FileID)
			return err
		},
	}
}

func newKnowledgeClearCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the persona, index and document referenced by the settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lifecycle, err := app.lifecycleService(cmd.Context())
			if err != nil {
				return err
			}

			handle, err := lifecycle.ClearPersona(cmd.Context())
			if err != nil {
				return err
			}
			if handle.IsZero() {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "Nothing to clear.")
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Persona, index and document removed.")
			return err
		},
	}
}

func newKnowledgePurgeCmd(app *app) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete every assistant, file and vector store of the API account",
		Long:  "Delete every assistant, file and vector store visible to the API key, including ones not created by iplan. Requires --yes.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirmed {
				return errors.New("purge deletes every assistant, file and vector store of the account: re-run with --yes to confirm")
			}

			lifecycle, err := app.lifecycleService(cmd.Context())
			if err != nil {
				return err
			}

			var report application.PurgeReport
			err = app.wait(cmd.Context(), cmd.ErrOrStderr(), "Purging account resources...", func(ctx context.Context) error {
				var err error
				report, err = lifecycle.PurgeAll(ctx)
				return err
			})
			if err != nil {
				return fmt.Errorf("purge stopped after %d deletions: %w", report.Total(), err)
			}

			if err := clearPersonaHandle(cmd.Context(), app); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d assistant(s), %d vector store(s), %d file(s).\n",
				report.Assistants, report.VectorStores, report.Files)
			return err
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm deletion of all account resources")

	return cmd
}

// clearPersonaHandle forgets ids that a purge has already deleted upstream.
func clearPersonaHandle(ctx context.Context, app *app) error {
	settings, err := app.settingsRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if settings.Persona.IsZero() {
		return nil
	}

	settings.Persona = domain.PersonaHandle{}
	if err := app.settingsRepo.Save(ctx, settings); err != nil {
		return fmt.Errorf("save cleared persona handle: %w", err)
	}
	return nil
}
