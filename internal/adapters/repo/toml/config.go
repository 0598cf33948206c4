// Package toml persists settings and the study plan as TOML files.
package toml

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".iplan"
	envPrefix  = "IPLAN"

	SettingsPathKey   = "settings.path"
	PlanPathKey       = "plan.path"
	CredentialsDirKey = "credentials.dir"

	settingsFileName = "settings.toml"
	planFileName     = "plan.toml"
	credentialsDir   = "credentials"
)

// ConfigDir returns ~/.iplan.
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(homeDir, configDir), nil
}

// ReadConfig binds IPLAN_* variables, registers file defaults under the
// config directory and reads config.toml when one exists.
func ReadConfig(cfg *viper.Viper) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(dir)
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault(SettingsPathKey, filepath.Join(dir, settingsFileName))
	cfg.SetDefault(PlanPathKey, filepath.Join(dir, planFileName))
	cfg.SetDefault(CredentialsDirKey, filepath.Join(dir, credentialsDir))

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return fmt.Errorf("read config file: %w", err)
		}
	}
	return nil
}

// resolvePath reads key from cfg, falling back to fileName in the config directory.
func resolvePath(cfg *viper.Viper, key string, fileName string) (string, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path := cfg.GetString(key)
	if path == "" {
		dir, err := ConfigDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(dir, fileName)
	}

	return normalizePath(path)
}

func normalizePath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", path, err)
	}
	return filepath.Clean(absPath), nil
}
