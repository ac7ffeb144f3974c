package llm

import (
	"fmt"
	"strings"
)

const (
	ProviderCopilot  = "copilot"
	ProviderOllama   = "ollama"
	ProviderLMStudio = "lmstudio"
)

// Providers lists the supported provider names.
func Providers() []string {
	return []string{ProviderCopilot, ProviderOllama, ProviderLMStudio}
}

// NormalizeProvider maps aliases to a canonical provider name.
// It returns false for unknown providers.
func NormalizeProvider(provider string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", ProviderCopilot:
		return ProviderCopilot, true
	case ProviderOllama:
		return ProviderOllama, true
	case ProviderLMStudio, "lm-studio", "llmstudio":
		return ProviderLMStudio, true
	default:
		return "", false
	}
}

// NewClient creates an LLM client based on provider configuration.
func NewClient(provider, model, baseURL string) (Client, error) {
	name, ok := NormalizeProvider(provider)
	if !ok {
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}

	var (
		client Client
		err    error
	)
	switch name {
	case ProviderOllama:
		client, err = NewOllamaClient(model, baseURL)
	case ProviderLMStudio:
		client, err = NewLMStudioClient(model, baseURL)
	default:
		client, err = NewCopilotClient(model)
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}
