package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bnema/ihaveaplan/internal/adapters/credentials/chain"
	"github.com/bnema/ihaveaplan/internal/adapters/document"
	"github.com/bnema/ihaveaplan/internal/adapters/openai"
	planrender "github.com/bnema/ihaveaplan/internal/adapters/render/plan"
	tomlrepo "github.com/bnema/ihaveaplan/internal/adapters/repo/toml"
	"github.com/bnema/ihaveaplan/internal/application"
	"github.com/bnema/ihaveaplan/internal/domain"
	"github.com/bnema/ihaveaplan/internal/logger"
	"github.com/bnema/ihaveaplan/internal/ports"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	baseURLKey      = "openai.base_url"
	pollIntervalKey = "run.poll_interval"
	runTimeoutKey   = "run.timeout"
	logModeKey      = "log.mode"

	defaultRunTimeout = 10 * time.Minute
)

type app struct {
	cfg          *viper.Viper
	log          *logger.Logger
	settingsRepo ports.SettingsRepository
	plans        ports.PlanRepository
	credentials  ports.CredentialStore
	documents    ports.DocumentSource
	newBackend   ports.BackendFactory
	runOptions   application.RunOptions
	planRenderer func(domain.Plan, planrender.RenderOptions) (string, error)
	quiet        bool
}

func wireApp() (*app, error) {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	cfg := viper.New()
	cfg.SetDefault(baseURLKey, openai.DefaultBaseURL)
	cfg.SetDefault(pollIntervalKey, application.DefaultPollInterval)
	cfg.SetDefault(runTimeoutKey, defaultRunTimeout)
	cfg.SetDefault(logModeKey, "quiet")
	if err := tomlrepo.ReadConfig(cfg); err != nil {
		return nil, fmt.Errorf("wire config: %w", err)
	}

	settingsRepo, err := tomlrepo.NewSettingsRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire settings repository: %w", err)
	}

	plans, err := tomlrepo.NewPlanRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire plan repository: %w", err)
	}

	credentials, err := chain.NewPassFirstWithFileFallback(cfg.GetString(tomlrepo.CredentialsDirKey))
	if err != nil {
		return nil, fmt.Errorf("wire credential store chain: %w", err)
	}

	return &app{
		cfg:          cfg,
		log:          logger.Nop(),
		settingsRepo: settingsRepo,
		plans:        plans,
		credentials:  credentials,
		documents:    document.NewSource(),
		newBackend:   openai.Factory(cfg.GetString(baseURLKey), http.DefaultClient),
		runOptions: application.RunOptions{
			PollInterval: cfg.GetDuration(pollIntervalKey),
			Timeout:      cfg.GetDuration(runTimeoutKey),
		},
		planRenderer: planrender.Render,
	}, nil
}

// configureLogger prefers the --log-level flag over the configured mode.
func (a *app) configureLogger(flagMode string) error {
	mode := flagMode
	if mode == "" {
		mode = a.cfg.GetString(logModeKey)
	}

	log, err := logger.New(mode)
	if err != nil {
		return err
	}
	a.log = log
	return nil
}

func (a *app) settingsService() *application.SettingsService {
	return application.NewSettingsService(a.settingsRepo, a.credentials, a.newBackend, a.log)
}

func (a *app) planService() *application.PlanService {
	return application.NewPlanService(a.plans, a.settingsRepo, promptRunner{app: a}, a.log)
}

func (a *app) lifecycleService(ctx context.Context) (*application.LifecycleService, error) {
	backend, err := a.backend(ctx)
	if err != nil {
		return nil, err
	}
	return application.NewLifecycleService(backend, a.settingsRepo, a.documents, a.log), nil
}

func (a *app) backend(ctx context.Context) (ports.AssistantBackend, error) {
	apiKey, err := a.settingsService().ResolveAPIKey(ctx)
	if err != nil {
		return nil, err
	}
	return a.newBackend(apiKey), nil
}

// promptRunner resolves the API key per prompt so offline plan commands
// never need one.
type promptRunner struct {
	app *app
}

var _ application.Asker = promptRunner{}

func (r promptRunner) RunPrompt(ctx context.Context, req application.PromptRequest) (string, error) {
	backend, err := r.app.backend(ctx)
	if err != nil {
		return "", err
	}
	return application.NewOrchestrator(backend, r.app.runOptions, r.app.log).RunPrompt(ctx, req)
}
