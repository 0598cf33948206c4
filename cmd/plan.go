package cmd

import (
	"context"
	"fmt"
	"os"

	planrender "github.com/bnema/ihaveaplan/internal/adapters/render/plan"
	"github.com/bnema/ihaveaplan/internal/application"
	"github.com/bnema/ihaveaplan/internal/domain"
	"github.com/spf13/cobra"
)

const exportFileMode = 0o600

func newPlanCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate, browse and track the study plan",
	}

	cmd.AddCommand(
		newPlanChaptersCmd(app),
		newPlanTopicsCmd(app),
		newPlanQuizCmd(app),
		newPlanExplainCmd(app),
		newPlanKeyTopicsCmd(app),
		newPlanShowCmd(app),
		newPlanExportCmd(app),
		newPlanImportCmd(app),
		newPlanClearCmd(app),
		newPlanDoneCmd(app),
	)

	return cmd
}

func newPlanChaptersCmd(app *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "chapters",
		Short: "Ask the persona for chapters and start a new plan from them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var plan domain.Plan
			err := app.wait(cmd.Context(), cmd.ErrOrStderr(), waitingLabel, func(ctx context.Context) error {
				var err error
				plan, err = app.planService().GenerateChapters(ctx, name)
				return err
			})
			if err != nil {
				return err
			}

			return writePlan(cmd, app, plan, planrender.RenderOptions{})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name of the plan")

	return cmd
}

func newPlanTopicsCmd(app *app) *cobra.Command {
	var chapterID int
	var all bool
	var parallel int

	cmd := &cobra.Command{
		Use:   "topics",
		Short: "Outline the topics of one chapter or of every chapter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			service := app.planService()
			var plan domain.Plan
			err := app.wait(cmd.Context(), cmd.ErrOrStderr(), waitingLabel, func(ctx context.Context) error {
				if all {
					var err error
					plan, err = service.GenerateAllTopics(ctx, parallel)
					return err
				}
				if _, err := service.GenerateTopics(ctx, chapterID); err != nil {
					return err
				}
				var err error
				plan, err = service.Plan(ctx)
				return err
			})
			if err != nil {
				return err
			}

			opts := planrender.RenderOptions{}
			if !all {
				opts.ChapterID = chapterID
			}
			return writePlan(cmd, app, plan, opts)
		},
	}

	cmd.Flags().IntVar(&chapterID, "chapter", 0, "Chapter ID")
	cmd.Flags().BoolVar(&all, "all", false, "Outline every chapter")
	cmd.Flags().IntVar(&parallel, "parallel", application.DefaultParallelism, "Chapters outlined concurrently with --all")
	cmd.MarkFlagsOneRequired("chapter", "all")
	cmd.MarkFlagsMutuallyExclusive("chapter", "all")

	return cmd
}

func newPlanQuizCmd(app *app) *cobra.Command {
	var chapterID, topicID, count int

	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Generate quiz questions for a topic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var quizzes []domain.Quiz
			err := app.wait(cmd.Context(), cmd.ErrOrStderr(), waitingLabel, func(ctx context.Context) error {
				var err error
				quizzes, err = app.planService().GenerateQuizzes(ctx, chapterID, topicID, count)
				return err
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, quiz := range quizzes {
				_, _ = fmt.Fprintf(out, "Q%d: %s\n", quiz.ID, quiz.Question)
				_, _ = fmt.Fprintf(out, "A: %s\n\n", quiz.Answer)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&chapterID, "chapter", 0, "Chapter ID")
	cmd.Flags().IntVar(&topicID, "topic", 0, "Topic ID")
	cmd.Flags().IntVar(&count, "count", application.DefaultQuizCount, "Number of questions")
	_ = cmd.MarkFlagRequired("chapter")
	_ = cmd.MarkFlagRequired("topic")

	return cmd
}

func newPlanExplainCmd(app *app) *cobra.Command {
	var chapterID, topicID int

	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Generate an explanation of a topic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var content string
			err := app.wait(cmd.Context(), cmd.ErrOrStderr(), waitingLabel, func(ctx context.Context) error {
				var err error
				content, err = app.planService().ExplainTopic(ctx, chapterID, topicID)
				return err
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), content)
			return err
		},
	}

	cmd.Flags().IntVar(&chapterID, "chapter", 0, "Chapter ID")
	cmd.Flags().IntVar(&topicID, "topic", 0, "Topic ID")
	_ = cmd.MarkFlagRequired("chapter")
	_ = cmd.MarkFlagRequired("topic")

	return cmd
}

func newPlanKeyTopicsCmd(app *app) *cobra.Command {
	var chapterID int

	cmd := &cobra.Command{
		Use:   "key-topics",
		Short: "Summarise the key topics of a chapter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var keyTopics string
			err := app.wait(cmd.Context(), cmd.ErrOrStderr(), waitingLabel, func(ctx context.Context) error {
				var err error
				keyTopics, err = app.planService().GenerateKeyTopics(ctx, chapterID)
				return err
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), keyTopics)
			return err
		},
	}

	cmd.Flags().IntVar(&chapterID, "chapter", 0, "Chapter ID")
	_ = cmd.MarkFlagRequired("chapter")

	return cmd
}

func newPlanShowCmd(app *app) *cobra.Command {
	var asJSON bool
	var chapterID int
	var details bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display the study plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			service := app.planService()
			if asJSON {
				data, err := service.Export(cmd.Context())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}

			plan, err := service.Plan(cmd.Context())
			if err != nil {
				return err
			}
			return writePlan(cmd, app, plan, planrender.RenderOptions{ChapterID: chapterID, Details: details})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().IntVar(&chapterID, "chapter", 0, "Only show this chapter")
	cmd.Flags().BoolVar(&details, "details", false, "Include key topics, explanations and quizzes")

	return cmd
}

func newPlanExportCmd(app *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the plan as JSON to stdout or a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := app.planService().Export(cmd.Context())
			if err != nil {
				return err
			}

			if out == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			if err := os.WriteFile(out, append(data, '\n'), exportFileMode); err != nil {
				return fmt.Errorf("write plan export: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Plan written to %s\n", out)
			return err
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Destination file")

	return cmd
}

func newPlanImportCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the plan with one exported as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read plan import: %w", err)
			}

			plan, err := app.planService().Import(cmd.Context(), data)
			if err != nil {
				return err
			}
			return writePlan(cmd, app, plan, planrender.RenderOptions{})
		},
	}
}

func newPlanClearCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Discard the study plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.planService().Clear(cmd.Context()); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Plan cleared.")
			return err
		},
	}
}

func newPlanDoneCmd(app *app) *cobra.Command {
	var chapterID, topicID, quizID int
	var undo bool

	cmd := &cobra.Command{
		Use:   "done",
		Short: "Mark a chapter, topic or quiz as done",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := application.MarkDoneRequest{ChapterID: chapterID, Done: !undo}
			if cmd.Flags().Changed("topic") {
				req.TopicID = &topicID
			}
			if cmd.Flags().Changed("quiz") {
				req.QuizID = &quizID
			}

			service := app.planService()
			if err := service.MarkDone(cmd.Context(), req); err != nil {
				return err
			}

			plan, err := service.Plan(cmd.Context())
			if err != nil {
				return err
			}
			return writePlan(cmd, app, plan, planrender.RenderOptions{ChapterID: chapterID})
		},
	}

	cmd.Flags().IntVar(&chapterID, "chapter", 0, "Chapter ID")
	cmd.Flags().IntVar(&topicID, "topic", 0, "Topic ID")
	cmd.Flags().IntVar(&quizID, "quiz", 0, "Quiz ID (requires --topic)")
	cmd.Flags().BoolVar(&undo, "undo", false, "Mark as not done")
	_ = cmd.MarkFlagRequired("chapter")

	return cmd
}

func writePlan(cmd *cobra.Command, app *app, plan domain.Plan, opts planrender.RenderOptions) error {
	rendered, err := app.planRenderer(plan, opts)
	if err != nil {
		return fmt.Errorf("render plan: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
