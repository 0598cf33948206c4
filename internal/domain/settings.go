package domain

import "fmt"

const (
	MinTemperature = 0.0
	MaxTemperature = 2.0
)

// Settings is the persisted configuration passed into every backend call.
type Settings struct {
	Model         string
	Temperature   float64
	CredentialRef string
	IndexExpiry   int
	Persona       PersonaHandle
}

func DefaultSettings() Settings {
	return Settings{
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
		IndexExpiry: DefaultIndexExpiryDays,
	}
}

func (s Settings) Validate() error {
	if s.Model == "" {
		return &ValidationError{Field: "model", Reason: "must not be empty"}
	}
	if s.Temperature < MinTemperature || s.Temperature > MaxTemperature {
		return &ValidationError{
			Field:  "temperature",
			Reason: fmt.Sprintf("%.2f is outside [%.0f, %.0f]", s.Temperature, MinTemperature, MaxTemperature),
		}
	}
	if s.IndexExpiry < 1 {
		return &ValidationError{Field: "index_expiry_days", Reason: "must be at least 1"}
	}
	return nil
}

func (s Settings) PersonaParams() PersonaParams {
	return PersonaParams{
		Name:         DefaultPersonaName,
		Model:        s.Model,
		Description:  DefaultPersonaDescription,
		Instructions: DefaultPersonaInstructions,
		Temperature:  s.Temperature,
	}
}
