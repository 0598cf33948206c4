package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/ihaveaplan/internal/application"
	"github.com/bnema/ihaveaplan/internal/domain"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and change model settings and the API key",
	}

	cmd.AddCommand(
		newConfigShowCmd(app),
		newConfigSetCmd(app),
		newConfigSetKeyCmd(app),
		newConfigClearKeyCmd(app),
	)

	return cmd
}

func newConfigShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := app.settingsService().Settings(cmd.Context())
			if err != nil {
				return err
			}

			writeSettings(cmd.OutOrStdout(), settings)
			return nil
		},
	}
}

func writeSettings(w io.Writer, settings domain.Settings) {
	credential := "not stored (falls back to " + application.APIKeyEnv + ")"
	if settings.CredentialRef != "" {
		credential = settings.CredentialRef
	}

	_, _ = fmt.Fprintf(w, "model:\t%s\n", settings.Model)
	_, _ = fmt.Fprintf(w, "temperature:\t%.2f\n", settings.Temperature)
	_, _ = fmt.Fprintf(w, "index expiry:\t%d day(s)\n", settings.IndexExpiry)
	_, _ = fmt.Fprintf(w, "api key:\t%s\n", credential)
	_, _ = fmt.Fprintf(w, "assistant:\t%s\n", valueOrNone(settings.Persona.AssistantID))
	_, _ = fmt.Fprintf(w, "vector store:\t%s\n", valueOrNone(settings.Persona.VectorStoreID))
	_, _ = fmt.Fprintf(w, "file:\t%s\n", valueOrNone(settings.Persona.FileID))
}

func valueOrNone(value string) string {
	if strings.TrimSpace(value) == "" {
		return "none"
	}
	return value
}

func newConfigSetCmd(app *app) *cobra.Command {
	var model string
	var temperature float64
	var indexExpiry int

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change the model, temperature or knowledge index expiry",
		Long:  "Change the model, temperature or knowledge index expiry. The persona picks up new values on the next 'iplan knowledge upload'.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var update application.SettingsUpdate
			if cmd.Flags().Changed("model") {
				update.Model = &model
			}
			if cmd.Flags().Changed("temperature") {
				update.Temperature = &temperature
			}
			if cmd.Flags().Changed("index-expiry") {
				update.IndexExpiry = &indexExpiry
			}
			if update == (application.SettingsUpdate{}) {
				return errors.New("nothing to change: pass --model, --temperature or --index-expiry")
			}

			settings, err := app.settingsService().Update(cmd.Context(), update)
			if err != nil {
				return err
			}

			writeSettings(cmd.OutOrStdout(), settings)
			return nil
		},
	}

	cmd.Flags().StringVar(&model, "model", "", "Chat model used by the persona")
	cmd.Flags().Float64Var(&temperature, "temperature", domain.DefaultTemperature, "Sampling temperature between 0 and 2")
	cmd.Flags().IntVar(&indexExpiry, "index-expiry", domain.DefaultIndexExpiryDays, "Days of inactivity before the knowledge index expires")

	return cmd
}

func newConfigSetKeyCmd(app *app) *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "set-key",
		Short: "Verify and store an OpenAI API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if key == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read api key from stdin: %w", err)
				}
				key = string(data)
			}

			if err := app.settingsService().SetAPIKey(cmd.Context(), key); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "API key verified and stored.")
			return err
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "API key, or - to read it from stdin")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}

func newConfigClearKeyCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-key",
		Short: "Forget the stored API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.settingsService().ClearAPIKey(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "API key removed.")
			return err
		},
	}
}
