package ports

// BackendFactory builds a backend client authenticated with apiKey.
type BackendFactory func(apiKey string) AssistantBackend
