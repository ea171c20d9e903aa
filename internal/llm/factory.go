package llm

import (
	"errors"
	"fmt"
	"strings"
)

const (
	ProviderCopilot  = "copilot"
	ProviderOllama   = "ollama"
	ProviderLMStudio = "lmstudio"
)

// ErrUnsupportedProvider is returned for an unknown provider name.
var ErrUnsupportedProvider = errors.New("unsupported LLM provider")

// NormalizeProvider maps aliases to a canonical provider name.
func NormalizeProvider(provider string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", ProviderCopilot:
		return ProviderCopilot, nil
	case ProviderOllama:
		return ProviderOllama, nil
	case ProviderLMStudio, "lm-studio", "llmstudio":
		return ProviderLMStudio, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedProvider, provider)
	}
}

// NewClient creates an LLM client based on provider configuration.
func NewClient(provider, model, baseURL string) (Client, error) {
	name, err := NormalizeProvider(provider)
	if err != nil {
		return nil, err
	}
	switch name {
	case ProviderOllama:
		return NewOllamaClient(model, baseURL)
	case ProviderLMStudio:
		return NewLMStudioClient(model, baseURL)
	default:
		return NewCopilotClient(model)
	}
}
