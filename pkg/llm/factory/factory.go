package factory

import (
	"fmt"

	"notesmd-be/pkg/llm"
	"notesmd-be/pkg/llm/ollama"
	"notesmd-be/pkg/llm/openai"
)

// NewProvider builds the configured generation backend. Credentials and model
// identifiers are resolved by the host config before this is called.
func NewProvider(providerType, modelName, baseURL, apiKey string) (llm.Provider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewProvider(baseURL, modelName), nil
	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return openai.NewProvider(apiKey, baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
