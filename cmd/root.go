package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Execute runs the CLI; an interrupt cancels the command context so
// in-flight runs stop polling and release their threads.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var logMode string

	rootCmd := &cobra.Command{
		Use:           "iplan",
		Short:         "I have a plan: turn a document into a study plan",
		Long:          "iplan uploads a document to an OpenAI assistant, asks it for chapters, topic outlines, explanations and quizzes, and keeps the resulting study plan on disk.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentFlags().StringVar(&logMode, "log-level", "", "Log mode: quiet, dev or prod (default from IPLAN_LOG_MODE)")
	rootCmd.PersistentFlags().BoolVarP(&app.quiet, "quiet", "q", false, "Do not show progress spinners")
	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		return app.configureLogger(logMode)
	}
	rootCmd.PersistentPostRun = func(_ *cobra.Command, _ []string) {
		app.log.Sync()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newConfigCmd(app),
		newKnowledgeCmd(app),
		newPlanCmd(app),
		newAskCmd(app),
	)

	return rootCmd
}
