package toml

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/bnema/ihaveaplan/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSettingsRepo(t *testing.T) (*SettingsRepository, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "settings.toml")
	config := viper.New()
	config.Set(SettingsPathKey, path)

	repo, err := NewSettingsRepository(config)
	require.NoError(t, err)
	return repo, path
}

func newPlanRepo(t *testing.T) (*PlanRepository, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "plan.toml")
	config := viper.New()
	config.Set(PlanPathKey, path)

	repo, err := NewPlanRepository(config)
	require.NoError(t, err)
	return repo, path
}

func intPtr(v int) *int {
	return &v
}

func TestSettingsRepositoryDefaultsWhenMissing(t *testing.T) {
	t.Parallel()

	repo, _ := newSettingsRepo(t)

	settings, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)
}

func TestSettingsRepositoryRoundTripAndPermissions(t *testing.T) {
	t.Parallel()

	repo, path := newSettingsRepo(t)
	want := domain.Settings{
		Model:         "gpt-4o-mini",
		Temperature:   0,
		CredentialRef: "ihaveaplan/openai/api_key",
		IndexExpiry:   3,
		Persona:       domain.PersonaHandle{AssistantID: "asst_1", FileID: "file_1", VectorStoreID: "vs_1"},
	}

	require.NoError(t, repo.Save(context.Background(), want))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(fileMode), info.Mode().Perm())
}

func TestSettingsRepositoryFillsOmittedFields(t *testing.T) {
	t.Parallel()

	repo, path := newSettingsRepo(t)
	require.NoError(t, os.WriteFile(path, []byte("credential_ref = \"ref\"\n"), 0o600))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)

	want := domain.DefaultSettings()
	want.CredentialRef = "ref"
	assert.Equal(t, want, got)
}

func TestSettingsRepositoryRejectsNewerSchema(t *testing.T) {
	t.Parallel()

	repo, path := newSettingsRepo(t)
	require.NoError(t, os.WriteFile(path, []byte("version = 9\n"), 0o600))

	_, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported settings schema version 9")
}

func TestSettingsRepositoryReportsMalformedFile(t *testing.T) {
	t.Parallel()

	repo, path := newSettingsRepo(t)
	require.NoError(t, os.WriteFile(path, []byte("model = [\n"), 0o600))

	_, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode settings file")
}

func TestPlanRepositoryEmptyWhenMissing(t *testing.T) {
	t.Parallel()

	repo, _ := newPlanRepo(t)

	plan, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, plan.IsEmpty())
	assert.NotNil(t, plan.Chapters)
}

func TestPlanRepositoryRoundTripsNestedTopics(t *testing.T) {
	t.Parallel()

	repo, _ := newPlanRepo(t)
	want := domain.Plan{
		Name: "Distributed systems",
		Chapters: []domain.Chapter{
			{
				ID:        1,
				Name:      "1. Consensus",
				KeyTopics: "Quorums and leaders",
				Topics: []domain.Topic{
					{
						ID:    0,
						Title: "Raft",
						Path:  "Raft",
						Done:  true,
						Children: []domain.Topic{
							{
								ID:       1,
								Title:    "Leader election",
								Path:     "Raft > Leader election",
								ParentID: intPtr(0),
								Content:  "Terms increase monotonically.\nVotes are per term.",
								Quizzes: []domain.Quiz{
									{ID: 1, Question: "What triggers an election?", Answer: "A timeout.", Done: true},
									{ID: 2, Question: "Who can vote?", Answer: ""},
								},
								Children: []domain.Topic{
									{ID: 2, Title: "Timeouts", Path: "Raft > Leader election > Timeouts", ParentID: intPtr(1)},
								},
							},
						},
					},
					{ID: 3, Title: "Paxos", Path: "Paxos"},
				},
			},
			{ID: 2, Name: "2. Replication", Done: true, Topics: []domain.Topic{}},
		},
	}

	require.NoError(t, repo.Save(context.Background(), want))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	index := domain.NewTopicIndex(got.Chapters[0].Topics)
	ancestors := index.Ancestors(2)
	require.Len(t, ancestors, 2)
	assert.Equal(t, "Raft", ancestors[0].Title)
}

func TestPlanRepositorySaveReplacesPlan(t *testing.T) {
	t.Parallel()

	repo, path := newPlanRepo(t)
	require.NoError(t, repo.Save(context.Background(), domain.Plan{Name: "old", Chapters: []domain.Chapter{{ID: 1, Name: "1. Old", Topics: []domain.Topic{}}}}))
	require.NoError(t, repo.Save(context.Background(), domain.NewPlan("")))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestPlanRepositoryConcurrentSaves(t *testing.T) {
	t.Parallel()

	repo, path := newPlanRepo(t)
	other, err := NewPlanRepository(func() *viper.Viper {
		config := viper.New()
		config.Set(PlanPathKey, path)
		return config
	}())
	require.NoError(t, err)
	assert.Same(t, repo.mu, other.mu)

	var wg sync.WaitGroup
	for i := 1; i <= 8; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			target := repo
			if id%2 == 0 {
				target = other
			}
			plan := domain.Plan{Name: "p", Chapters: []domain.Chapter{{ID: id, Name: "c", Topics: []domain.Topic{}}}}
			assert.NoError(t, target.Save(context.Background(), plan))
		}(i)
	}
	wg.Wait()

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Chapters, 1)
}

func TestRepositoriesHonourCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	settings, _ := newSettingsRepo(t)
	plans, _ := newPlanRepo(t)

	_, err := settings.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, plans.Save(ctx, domain.NewPlan("x")), context.Canceled)
}

func TestReadConfigUsesHomeDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("IPLAN_PLAN_PATH", "")

	dir := filepath.Join(home, ".iplan")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[plan]\npath = \"~/plans/go.toml\"\n"), 0o600))

	config := viper.New()
	require.NoError(t, ReadConfig(config))

	settings, err := NewSettingsRepository(config)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "settings.toml"), settings.Path())

	plans, err := NewPlanRepository(config)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "plans", "go.toml"), plans.Path())
}

func TestReadConfigPrefersEnvironment(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	override := filepath.Join(home, "elsewhere", "settings.toml")
	t.Setenv("IPLAN_SETTINGS_PATH", override)

	config := viper.New()
	require.NoError(t, ReadConfig(config))

	settings, err := NewSettingsRepository(config)
	require.NoError(t, err)
	assert.Equal(t, override, settings.Path())
}
