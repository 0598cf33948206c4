package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/ihaveaplan/internal/domain"
	"github.com/bnema/ihaveaplan/internal/logger"
	"github.com/bnema/ihaveaplan/internal/parser"
	"github.com/bnema/ihaveaplan/internal/ports"
	"golang.org/x/sync/errgroup"
)

const DefaultParallelism = 3

// Asker sends one prompt to the persona and returns its answer.
type Asker interface {
	RunPrompt(ctx context.Context, req PromptRequest) (string, error)
}

type MarkDoneRequest struct {
	ChapterID int
	TopicID   *int
	QuizID    *int
	Done      bool
}

// PlanService builds the plan from assistant answers. Every generation
// replaces its part of the plan only after the answer parsed successfully;
// on failure the stored plan is left untouched.
type PlanService struct {
	plans    ports.PlanRepository
	settings ports.SettingsRepository
	asker    Asker
	log      *logger.Logger
}

func NewPlanService(plans ports.PlanRepository, settings ports.SettingsRepository, asker Asker, log *logger.Logger) *PlanService {
	if log == nil {
		log = logger.Nop()
	}

	return &PlanService{plans: plans, settings: settings, asker: asker, log: log}
}

func (s *PlanService) Plan(ctx context.Context) (domain.Plan, error) {
	plan, err := s.plans.Load(ctx)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("load plan: %w", err)
	}
	return plan, nil
}

func (s *PlanService) Ask(ctx context.Context, prompt string) (string, error) {
	return s.ask(ctx, prompt)
}

func (s *PlanService) GenerateChapters(ctx context.Context, name string) (domain.Plan, error) {
	text, err := s.ask(ctx, chaptersPrompt(name))
	if err != nil {
		return domain.Plan{}, err
	}

	chapters := parser.ExtractChapters(text)
	if len(chapters) == 0 {
		return domain.Plan{}, fmt.Errorf("extract chapters: %w", domain.ErrUnparseable)
	}

	plan := domain.NewPlan(name)
	plan.Chapters = chapters
	if err := s.save(ctx, plan); err != nil {
		return domain.Plan{}, err
	}

	s.log.Info("plan chapters generated", "chapters", len(chapters))
	return plan, nil
}

func (s *PlanService) GenerateTopics(ctx context.Context, chapterID int) (domain.Chapter, error) {
	plan, err := s.Plan(ctx)
	if err != nil {
		return domain.Chapter{}, err
	}
	chapter, err := plan.Chapter(chapterID)
	if err != nil {
		return domain.Chapter{}, err
	}

	topics, err := s.outline(ctx, chapter.Name)
	if err != nil {
		return domain.Chapter{}, err
	}

	chapter.Topics = topics
	if err := s.save(ctx, plan); err != nil {
		return domain.Chapter{}, err
	}

	s.log.Info("chapter topics generated", "chapter", chapterID, "topics", domain.CountTopics(topics))
	return *chapter, nil
}

// GenerateAllTopics outlines every chapter concurrently and stores the plan
// once all outlines succeeded.
func (s *PlanService) GenerateAllTopics(ctx context.Context, parallelism int) (domain.Plan, error) {
	plan, err := s.Plan(ctx)
	if err != nil {
		return domain.Plan{}, err
	}
	if len(plan.Chapters) == 0 {
		return domain.Plan{}, &domain.ValidationError{Field: "plan", Reason: "no chapters, generate chapters first"}
	}
	if parallelism < 1 {
		parallelism = DefaultParallelism
	}

	outlines := make([][]domain.Topic, len(plan.Chapters))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i, chapter := range plan.Chapters {
		i, chapter := i, chapter
		g.Go(func() error {
			topics, err := s.outline(gctx, chapter.Name)
			if err != nil {
				return fmt.Errorf("chapter %d: %w", chapter.ID, err)
			}
			outlines[i] = topics
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.Plan{}, err
	}

	for i := range plan.Chapters {
		plan.Chapters[i].Topics = outlines[i]
	}
	if err := s.save(ctx, plan); err != nil {
		return domain.Plan{}, err
	}

	return plan, nil
}

func (s *PlanService) GenerateQuizzes(ctx context.Context, chapterID int, topicID int, count int) ([]domain.Quiz, error) {
	if count < 1 {
		count = DefaultQuizCount
	}

	var quizzes []domain.Quiz
	err := s.updateTopic(ctx, chapterID, topicID, func(chapter *domain.Chapter, topic *domain.Topic) error {
		text, err := s.ask(ctx, quizPrompt(chapter.Name, topic.Path, count))
		if err != nil {
			return err
		}
		quizzes = parser.ParseQuizzes(text)
		if len(quizzes) == 0 {
			return fmt.Errorf("parse quizzes: %w", domain.ErrUnparseable)
		}
		topic.Quizzes = quizzes
		return nil
	})
	if err != nil {
		return nil, err
	}

	return quizzes, nil
}

func (s *PlanService) ExplainTopic(ctx context.Context, chapterID int, topicID int) (string, error) {
	var content string
	err := s.updateTopic(ctx, chapterID, topicID, func(chapter *domain.Chapter, topic *domain.Topic) error {
		text, err := s.ask(ctx, explainPrompt(chapter.Name, topic.Path))
		if err != nil {
			return err
		}
		content = strings.TrimSpace(text)
		topic.Content = content
		return nil
	})
	if err != nil {
		return "", err
	}

	return content, nil
}

func (s *PlanService) GenerateKeyTopics(ctx context.Context, chapterID int) (string, error) {
	plan, err := s.Plan(ctx)
	if err != nil {
		return "", err
	}
	chapter, err := plan.Chapter(chapterID)
	if err != nil {
		return "", err
	}

	text, err := s.ask(ctx, keyTopicsPrompt(chapter.Name))
	if err != nil {
		return "", err
	}

	chapter.KeyTopics = strings.TrimSpace(text)
	if err := s.save(ctx, plan); err != nil {
		return "", err
	}
	return chapter.KeyTopics, nil
}

func (s *PlanService) MarkDone(ctx context.Context, req MarkDoneRequest) error {
	plan, err := s.Plan(ctx)
	if err != nil {
		return err
	}
	chapter, err := plan.Chapter(req.ChapterID)
	if err != nil {
		return err
	}

	switch {
	case req.TopicID == nil && req.QuizID != nil:
		return &domain.ValidationError{Field: "quiz", Reason: "a quiz is addressed through its topic"}
	case req.TopicID == nil:
		chapter.Done = req.Done
	default:
		topic, err := chapter.Topic(*req.TopicID)
		if err != nil {
			return err
		}
		if req.QuizID == nil {
			topic.Done = req.Done
			break
		}
		quiz := findQuiz(topic.Quizzes, *req.QuizID)
		if quiz == nil {
			return &domain.ValidationError{Field: "quiz", Reason: fmt.Sprintf("quiz %d not found in topic %d", *req.QuizID, topic.ID)}
		}
		quiz.Done = req.Done
	}

	return s.save(ctx, plan)
}

func (s *PlanService) Export(ctx context.Context) ([]byte, error) {
	plan, err := s.Plan(ctx)
	if err != nil {
		return nil, err
	}
	return plan.ToJSON()
}

func (s *PlanService) Import(ctx context.Context, data []byte) (domain.Plan, error) {
	plan, err := domain.PlanFromJSON(data)
	if err != nil {
		return domain.Plan{}, err
	}
	if err := s.save(ctx, plan); err != nil {
		return domain.Plan{}, err
	}
	return plan, nil
}

func (s *PlanService) Clear(ctx context.Context) error {
	var plan domain.Plan
	plan.Clear()
	return s.save(ctx, plan)
}

func (s *PlanService) outline(ctx context.Context, chapterName string) ([]domain.Topic, error) {
	text, err := s.ask(ctx, topicsPrompt(chapterName))
	if err != nil {
		return nil, err
	}

	topics := parser.ParseOutline(strings.TrimSpace(text))
	if len(topics) == 0 {
		return nil, fmt.Errorf("parse outline: %w", domain.ErrUnparseable)
	}
	return topics, nil
}

func (s *PlanService) updateTopic(ctx context.Context, chapterID int, topicID int, fn func(*domain.Chapter, *domain.Topic) error) error {
	plan, err := s.Plan(ctx)
	if err != nil {
		return err
	}
	chapter, err := plan.Chapter(chapterID)
	if err != nil {
		return err
	}
	index := domain.NewTopicIndex(chapter.Topics)
	topic, ok := index.Lookup(topicID)
	if !ok {
		return fmt.Errorf("topic %d in chapter %d: %w", topicID, chapter.ID, domain.ErrTopicNotFound)
	}
	// Imported plans may carry a missing or stale path.
	topic.Path = index.Path(topicID)

	if err := fn(chapter, topic); err != nil {
		return err
	}
	return s.save(ctx, plan)
}

func (s *PlanService) ask(ctx context.Context, prompt string) (string, error) {
	settings, err := s.settings.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load settings: %w", err)
	}

	return s.asker.RunPrompt(ctx, PromptRequest{
		AssistantID:  settings.Persona.AssistantID,
		Prompt:       prompt,
		Instructions: runInstructions,
	})
}

func (s *PlanService) save(ctx context.Context, plan domain.Plan) error {
	if err := s.plans.Save(ctx, plan); err != nil {
		return fmt.Errorf("save plan: %w", err)
	}
	return nil
}

func findQuiz(quizzes []domain.Quiz, id int) *domain.Quiz {
	for i := range quizzes {
		if quizzes[i].ID == id {
			return &quizzes[i]
		}
	}
	return nil
}
