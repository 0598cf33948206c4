package toml

import "github.com/bnema/ihaveaplan/internal/domain"

const currentSettingsSchemaVersion = 1

type settingsFileSchema struct {
	Version         int           `toml:"version"`
	Model           string        `toml:"model"`
	Temperature     *float64      `toml:"temperature"`
	CredentialRef   string        `toml:"credential_ref,omitempty"`
	IndexExpiryDays int           `toml:"index_expiry_days"`
	Persona         personaSchema `toml:"persona"`
}

type personaSchema struct {
	AssistantID   string `toml:"assistant_id,omitempty"`
	FileID        string `toml:"file_id,omitempty"`
	VectorStoreID string `toml:"vector_store_id,omitempty"`
}

// applyDefaults fills fields a hand-edited file may omit. A zero temperature
// is a valid setting, so only a missing key is defaulted.
func (s *settingsFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSettingsSchemaVersion
	}
	if s.Model == "" {
		s.Model = domain.DefaultModel
	}
	if s.Temperature == nil {
		temperature := domain.DefaultTemperature
		s.Temperature = &temperature
	}
	if s.IndexExpiryDays == 0 {
		s.IndexExpiryDays = domain.DefaultIndexExpiryDays
	}
}

func toSettingsSchema(settings domain.Settings) settingsFileSchema {
	temperature := settings.Temperature
	return settingsFileSchema{
		Version:         currentSettingsSchemaVersion,
		Model:           settings.Model,
		Temperature:     &temperature,
		CredentialRef:   settings.CredentialRef,
		IndexExpiryDays: settings.IndexExpiry,
		Persona: personaSchema{
			AssistantID:   settings.Persona.AssistantID,
			FileID:        settings.Persona.FileID,
			VectorStoreID: settings.Persona.VectorStoreID,
		},
	}
}

func fromSettingsSchema(file settingsFileSchema) domain.Settings {
	file.applyDefaults()
	return domain.Settings{
		Model:         file.Model,
		Temperature:   *file.Temperature,
		CredentialRef: file.CredentialRef,
		IndexExpiry:   file.IndexExpiryDays,
		Persona: domain.PersonaHandle{
			AssistantID:   file.Persona.AssistantID,
			FileID:        file.Persona.FileID,
			VectorStoreID: file.Persona.VectorStoreID,
		},
	}
}
