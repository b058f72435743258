package factory

import (
	"fmt"

	"shop-assistant-be/pkg/llm"
	"shop-assistant-be/pkg/llm/ollama"
)

func NewLLMProvider(providerType, modelName, baseURL string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
