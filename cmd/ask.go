package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAskCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <prompt...>",
		Short: "Ask the persona a free-form question about the document",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var answer string
			err := app.wait(cmd.Context(), cmd.ErrOrStderr(), waitingLabel, func(ctx context.Context) error {
				var err error
				answer, err = app.planService().Ask(ctx, strings.Join(args, " "))
				return err
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(answer))
			return err
		},
	}
}
