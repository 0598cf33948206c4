package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/bnema/ihaveaplan/internal/domain"
	"github.com/bnema/ihaveaplan/internal/logger"
	"github.com/bnema/ihaveaplan/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// scriptedAsker answers with the first reply whose key occurs in the prompt.
type scriptedAsker struct {
	mu       sync.Mutex
	replies  map[string]string
	failures map[string]error
	requests []PromptRequest
}

func (a *scriptedAsker) RunPrompt(_ context.Context, req PromptRequest) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requests = append(a.requests, req)

	for key, err := range a.failures {
		if strings.Contains(req.Prompt, key) {
			return "", err
		}
	}
	for key, reply := range a.replies {
		if strings.Contains(req.Prompt, key) {
			return reply, nil
		}
	}
	return "", errors.New("unexpected prompt: " + req.Prompt)
}

type memoryPlans struct {
	mu    sync.Mutex
	plan  domain.Plan
	saves int
}

func (m *memoryPlans) Load(context.Context) (domain.Plan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, err := m.plan.ToJSON()
	if err != nil {
		return domain.Plan{}, err
	}
	return domain.PlanFromJSON(data)
}

func (m *memoryPlans) Save(_ context.Context, plan domain.Plan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plan = plan
	m.saves++
	return nil
}

func twoChapterPlan() domain.Plan {
	return domain.Plan{
		Name: "Go",
		Chapters: []domain.Chapter{
			{ID: 1, Name: "1. Basics", Topics: []domain.Topic{}},
			{ID: 2, Name: "2. Concurrency", Topics: []domain.Topic{}},
		},
	}
}

func newTestPlanService(plans *memoryPlans, asker *scriptedAsker) *PlanService {
	settings := newMemorySettings()
	settings.settings.Persona = domain.PersonaHandle{AssistantID: "asst-1", FileID: "file-1", VectorStoreID: "vs-1"}
	return NewPlanService(plans, settings, asker, logger.Nop())
}

func TestPlanServiceGenerateChaptersReplacesPlan(t *testing.T) {
	t.Parallel()

	plans := &memoryPlans{plan: twoChapterPlan()}
	asker := &scriptedAsker{replies: map[string]string{"chapters": "Sure!\n1. Syntax\n2. Types\n3. Errors\n"}}
	service := newTestPlanService(plans, asker)

	plan, err := service.GenerateChapters(context.Background(), "Go")
	require.NoError(t, err)

	assert.Equal(t, "Go", plan.Name)
	require.Len(t, plan.Chapters, 3)
	assert.Equal(t, "1. Syntax", plan.Chapters[0].Name)
	assert.Equal(t, 3, plan.Chapters[2].ID)
	assert.Equal(t, plan, plans.plan)

	require.Len(t, asker.requests, 1)
	assert.Equal(t, "asst-1", asker.requests[0].AssistantID)
	assert.Equal(t, runInstructions, asker.requests[0].Instructions)
}

func TestPlanServiceGenerateChaptersKeepsPlanWhenUnparseable(t *testing.T) {
	t.Parallel()

	plans := &memoryPlans{plan: twoChapterPlan()}
	asker := &scriptedAsker{replies: map[string]string{"chapters": "I could not find any chapters."}}
	service := newTestPlanService(plans, asker)

	_, err := service.GenerateChapters(context.Background(), "Go")
	require.ErrorIs(t, err, domain.ErrUnparseable)
	assert.Equal(t, twoChapterPlan(), plans.plan)
	assert.Zero(t, plans.saves)
}

func TestPlanServiceGenerateTopics(t *testing.T) {
	t.Parallel()

	plans := &memoryPlans{plan: twoChapterPlan()}
	asker := &scriptedAsker{replies: map[string]string{"2. Concurrency": "1. Goroutines\n  1.1 Scheduling\n2. Channels"}}
	service := newTestPlanService(plans, asker)

	chapter, err := service.GenerateTopics(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, chapter.Topics, 2)
	assert.Equal(t, "Goroutines > Scheduling", chapter.Topics[0].Children[0].Path)
	assert.Equal(t, chapter, plans.plan.Chapters[1])
	assert.Empty(t, plans.plan.Chapters[0].Topics)
}

func TestPlanServiceGenerateTopicsFailureLeavesPlanUnchanged(t *testing.T) {
	t.Parallel()

	plans := &memoryPlans{plan: twoChapterPlan()}
	asker := &scriptedAsker{failures: map[string]error{"Basics": &domain.UpstreamError{Op: "run run-1", Err: domain.ErrRunNotCompleted}}}
	service := newTestPlanService(plans, asker)

	_, err := service.GenerateTopics(context.Background(), 1)
	require.ErrorIs(t, err, domain.ErrRunNotCompleted)
	assert.Zero(t, plans.saves)

	_, err = service.GenerateTopics(context.Background(), 7)
	require.ErrorIs(t, err, domain.ErrChapterNotFound)
}

func TestPlanServiceGenerateAllTopicsSavesOnce(t *testing.T) {
	t.Parallel()

	plans := &memoryPlans{plan: twoChapterPlan()}
	asker := &scriptedAsker{replies: map[string]string{
		"1. Basics":      "1. Syntax\n2. Types",
		"2. Concurrency": "1. Goroutines",
	}}
	service := newTestPlanService(plans, asker)

	plan, err := service.GenerateAllTopics(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 1, plans.saves)
	assert.Len(t, plan.Chapters[0].Topics, 2)
	assert.Len(t, plan.Chapters[1].Topics, 1)
	assert.Len(t, asker.requests, 2)
}

func TestPlanServiceGenerateAllTopicsIsAllOrNothing(t *testing.T) {
	t.Parallel()

	plans := &memoryPlans{plan: twoChapterPlan()}
	asker := &scriptedAsker{
		replies:  map[string]string{"1. Basics": "1. Syntax"},
		failures: map[string]error{"2. Concurrency": domain.ErrEmptyResponse},
	}
	service := newTestPlanService(plans, asker)

	_, err := service.GenerateAllTopics(context.Background(), 1)
	require.ErrorIs(t, err, domain.ErrEmptyResponse)
	assert.ErrorContains(t, err, "chapter 2")
	assert.Zero(t, plans.saves)
}

func TestPlanServiceGenerateQuizzesAndExplain(t *testing.T) {
	t.Parallel()

	plan := twoChapterPlan()
	plan.Chapters[0].Topics = []domain.Topic{{ID: 0, Title: "Syntax", Path: "Syntax"}}
	plans := &memoryPlans{plan: plan}
	asker := &scriptedAsker{replies: map[string]string{
		"quiz questions": "Question: What declares a variable?\nAnswer: var\nQuestion: Short form?",
		"Explain":        "  Syntax is the grammar.\n",
	}}
	service := newTestPlanService(plans, asker)

	quizzes, err := service.GenerateQuizzes(context.Background(), 1, 0, 2)
	require.NoError(t, err)
	require.Len(t, quizzes, 2)
	assert.Equal(t, "", quizzes[1].Answer)
	assert.Contains(t, asker.requests[0].Prompt, "Write 2 quiz questions")

	content, err := service.ExplainTopic(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, "Syntax is the grammar.", content)

	stored := plans.plan.Chapters[0].Topics[0]
	assert.Equal(t, quizzes, stored.Quizzes)
	assert.Equal(t, content, stored.Content)

	_, err = service.GenerateQuizzes(context.Background(), 1, 42, 2)
	require.ErrorIs(t, err, domain.ErrTopicNotFound)
}

func TestPlanServiceDerivesTopicPathFromOutline(t *testing.T) {
	t.Parallel()

	plan := twoChapterPlan()
	plan.Chapters[0].Topics = []domain.Topic{{
		ID:       0,
		Title:    "Syntax",
		Children: []domain.Topic{{ID: 1, Title: "Loops"}},
	}}
	plans := &memoryPlans{plan: plan}
	asker := &scriptedAsker{replies: map[string]string{"Explain": "Loops repeat."}}
	service := newTestPlanService(plans, asker)

	_, err := service.ExplainTopic(context.Background(), 1, 1)
	require.NoError(t, err)

	assert.Contains(t, asker.requests[0].Prompt, `"Syntax > Loops"`)
	assert.Equal(t, "Syntax > Loops", plans.plan.Chapters[0].Topics[0].Children[0].Path)
}

func TestPlanServiceMarkDone(t *testing.T) {
	t.Parallel()

	plan := twoChapterPlan()
	plan.Chapters[0].Topics = []domain.Topic{{
		ID:    0,
		Title: "Syntax",
		Path:  "Syntax",
		Children: []domain.Topic{{
			ID:      1,
			Title:   "Loops",
			Path:    "Syntax > Loops",
			Quizzes: []domain.Quiz{{ID: 1, Question: "Q", Answer: "A"}},
		}},
	}}
	plans := &memoryPlans{plan: plan}
	service := newTestPlanService(plans, &scriptedAsker{})

	topicID, quizID := 1, 1
	require.NoError(t, service.MarkDone(context.Background(), MarkDoneRequest{ChapterID: 1, TopicID: &topicID, QuizID: &quizID, Done: true}))
	require.NoError(t, service.MarkDone(context.Background(), MarkDoneRequest{ChapterID: 1, TopicID: &topicID, Done: true}))
	require.NoError(t, service.MarkDone(context.Background(), MarkDoneRequest{ChapterID: 2, Done: true}))

	loops := plans.plan.Chapters[0].Topics[0].Children[0]
	assert.True(t, loops.Done)
	assert.True(t, loops.Quizzes[0].Done)
	assert.True(t, plans.plan.Chapters[1].Done)
	assert.False(t, plans.plan.Chapters[0].Done)

	missing := 9
	err := service.MarkDone(context.Background(), MarkDoneRequest{ChapterID: 1, TopicID: &topicID, QuizID: &missing, Done: true})
	require.ErrorIs(t, err, domain.ErrValidation)

	err = service.MarkDone(context.Background(), MarkDoneRequest{ChapterID: 1, QuizID: &quizID})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestPlanServiceExportImportClear(t *testing.T) {
	t.Parallel()

	plans := &memoryPlans{plan: twoChapterPlan()}
	service := newTestPlanService(plans, &scriptedAsker{})

	data, err := service.Export(context.Background())
	require.NoError(t, err)

	require.NoError(t, service.Clear(context.Background()))
	assert.True(t, plans.plan.IsEmpty())

	imported, err := service.Import(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, twoChapterPlan(), imported)
	assert.Equal(t, twoChapterPlan(), plans.plan)

	_, err = service.Import(context.Background(), []byte("nope"))
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestPlanServiceSaveFailureIsReported(t *testing.T) {
	t.Parallel()

	repo := mocks.NewMockPlanRepository(t)
	settings := newMemorySettings()
	settings.settings.Persona.AssistantID = "asst-1"
	asker := &scriptedAsker{replies: map[string]string{"chapters": "1. One"}}
	service := NewPlanService(repo, settings, asker, logger.Nop())

	repo.EXPECT().Save(mockAnyContext(), mock.MatchedBy(func(plan domain.Plan) bool {
		return plan.TotalChapters() == 1
	})).Return(errors.New("read-only filesystem")).Once()

	_, err := service.GenerateChapters(context.Background(), "")
	require.Error(t, err)
	assert.ErrorContains(t, err, "save plan")
}
