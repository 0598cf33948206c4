package toml

import (
	"context"
	"sync"

	"github.com/bnema/ihaveaplan/internal/domain"
	"github.com/bnema/ihaveaplan/internal/ports"
	"github.com/spf13/viper"
)

const settingsLabel = "settings"

type SettingsRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.SettingsRepository = (*SettingsRepository)(nil)

func NewSettingsRepository(cfg *viper.Viper) (*SettingsRepository, error) {
	path, err := resolvePath(cfg, SettingsPathKey, settingsFileName)
	if err != nil {
		return nil, err
	}
	return &SettingsRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *SettingsRepository) Path() string {
	return r.path
}

// Load returns domain.DefaultSettings when no settings file exists yet.
func (r *SettingsRepository) Load(ctx context.Context) (domain.Settings, error) {
	if err := ctx.Err(); err != nil {
		return domain.Settings{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var file settingsFileSchema
	found, err := readTOMLFile(r.path, settingsLabel, &file)
	if err != nil {
		return domain.Settings{}, err
	}
	if !found {
		return domain.DefaultSettings(), nil
	}
	if err := checkVersion(settingsLabel, file.Version, currentSettingsSchemaVersion); err != nil {
		return domain.Settings{}, err
	}

	return fromSettingsSchema(file), nil
}

func (r *SettingsRepository) Save(ctx context.Context, settings domain.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return writeTOMLFile(r.path, settingsLabel, toSettingsSchema(settings))
}
