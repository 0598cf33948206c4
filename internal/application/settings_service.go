package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"slices"
	"strings"

	"github.com/bnema/ihaveaplan/internal/domain"
	"github.com/bnema/ihaveaplan/internal/logger"
	"github.com/bnema/ihaveaplan/internal/ports"
)

const (
	DefaultCredentialRef = "ihaveaplan/openai/api_key"
	APIKeyEnv            = "OPENAI_API_KEY"
)

type SettingsUpdate struct {
	Model       *string
	Temperature *float64
	IndexExpiry *int
}

// SettingsService manages the persisted settings and the API credential
// they reference.
type SettingsService struct {
	repo       ports.SettingsRepository
	store      ports.CredentialStore
	newBackend ports.BackendFactory
	getenv     func(string) string
	log        *logger.Logger
}

func NewSettingsService(repo ports.SettingsRepository, store ports.CredentialStore, newBackend ports.BackendFactory, log *logger.Logger) *SettingsService {
	if log == nil {
		log = logger.Nop()
	}

	return &SettingsService{
		repo:       repo,
		store:      store,
		newBackend: newBackend,
		getenv:     os.Getenv,
		log:        log,
	}
}

func (s *SettingsService) Settings(ctx context.Context) (domain.Settings, error) {
	settings, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

func (s *SettingsService) Update(ctx context.Context, update SettingsUpdate) (domain.Settings, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return domain.Settings{}, err
	}

	if update.Model != nil {
		settings.Model = strings.TrimSpace(*update.Model)
	}
	if update.Temperature != nil {
		settings.Temperature = *update.Temperature
	}
	if update.IndexExpiry != nil {
		settings.IndexExpiry = *update.IndexExpiry
	}
	if err := settings.Validate(); err != nil {
		return domain.Settings{}, err
	}

	if err := s.repo.Save(ctx, settings); err != nil {
		return domain.Settings{}, fmt.Errorf("save settings: %w", err)
	}
	return settings, nil
}

// SetAPIKey checks the key against the backend before storing it.
func (s *SettingsService) SetAPIKey(ctx context.Context, apiKey string) error {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return &domain.ValidationError{Field: "api_key", Reason: "must not be empty"}
	}

	models, err := s.newBackend(apiKey).ListModels(ctx)
	if err != nil {
		var upstream *domain.UpstreamError
		if errors.As(err, &upstream) && (upstream.StatusCode == http.StatusUnauthorized || upstream.StatusCode == http.StatusForbidden) {
			return &domain.ValidationError{Field: "api_key", Reason: "invalid API key", Err: err}
		}
		return domain.Upstream("verify api key", err)
	}

	settings, err := s.Settings(ctx)
	if err != nil {
		return err
	}
	if len(models) > 0 && !slices.Contains(models, settings.Model) {
		s.log.Warn("configured model is not available for this key", "model", settings.Model)
	}

	previousRef := settings.CredentialRef
	ref := previousRef
	if ref == "" {
		ref = DefaultCredentialRef
	}

	if err := s.store.Put(ctx, ref, apiKey); err != nil {
		return fmt.Errorf("store api key: %w", err)
	}

	settings.CredentialRef = ref
	if err := s.repo.Save(ctx, settings); err != nil {
		if previousRef == "" {
			if rollbackErr := s.store.Delete(ctx, ref); rollbackErr != nil {
				return fmt.Errorf("save credential reference and rollback stored key: %w", errors.Join(err, rollbackErr))
			}
		}
		return fmt.Errorf("save credential reference: %w", err)
	}

	s.log.Info("api key stored", "credential_ref", ref, "models", len(models))
	return nil
}

// ResolveAPIKey prefers the stored credential and falls back to the
// OPENAI_API_KEY environment variable.
func (s *SettingsService) ResolveAPIKey(ctx context.Context) (string, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return "", err
	}

	if settings.CredentialRef != "" {
		value, err := s.store.Get(ctx, settings.CredentialRef)
		switch {
		case err == nil && strings.TrimSpace(value) != "":
			return strings.TrimSpace(value), nil
		case err != nil && !errors.Is(err, domain.ErrCredentialMissing):
			return "", fmt.Errorf("read api key: %w", err)
		}
	}

	if value := strings.TrimSpace(s.getenv(APIKeyEnv)); value != "" {
		return value, nil
	}

	return "", &domain.ValidationError{
		Field:  "api_key",
		Reason: "not configured, run 'iplan config set-key' or set " + APIKeyEnv,
		Err:    domain.ErrCredentialMissing,
	}
}

func (s *SettingsService) ClearAPIKey(ctx context.Context) error {
	settings, err := s.Settings(ctx)
	if err != nil {
		return err
	}
	if settings.CredentialRef == "" {
		return nil
	}

	if err := s.store.Delete(ctx, settings.CredentialRef); err != nil {
		return fmt.Errorf("delete api key: %w", err)
	}

	settings.CredentialRef = ""
	if err := s.repo.Save(ctx, settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
