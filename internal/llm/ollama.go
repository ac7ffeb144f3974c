package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/schema"
)

const defaultOllamaBaseURL = "http://localhost:11434"

// OllamaClient runs chats against a local Ollama server through langchaingo.
type OllamaClient struct {
	client  llms.Model
	model   string
	baseURL string
}

// NewOllamaClient creates a client for model, defaulting to the local server.
func NewOllamaClient(model, baseURL string) (*OllamaClient, error) {
	if model == "" {
		return nil, errors.New("ollama model is required")
	}
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}

	lm, err := ollama.New(ollama.WithModel(model), ollama.WithServerURL(baseURL))
	if err != nil {
		return nil, fmt.Errorf("creating ollama client: %w", err)
	}
	return &OllamaClient{client: lm, model: model, baseURL: baseURL}, nil
}

// Chat implements Client.
func (c *OllamaClient) Chat(ctx context.Context, messages []Message) (string, error) {
	resp, err := c.client.GenerateContent(ctx, langChainMessages(messages),
		llms.WithModel(c.model),
		llms.WithTemperature(insightTemperature),
	)
	if err != nil {
		return "", fmt.Errorf("ollama chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Content, nil
}

var langChainRoles = map[string]schema.ChatMessageType{
	RoleSystem:    schema.ChatMessageTypeSystem,
	RoleUser:      schema.ChatMessageTypeHuman,
	RoleAssistant: schema.ChatMessageTypeAI,
}

// langChainMessages converts messages; unknown roles are sent as the user.
func langChainMessages(messages []Message) []llms.MessageContent {
	out := make([]llms.MessageContent, len(messages))
	for i, msg := range messages {
		role, ok := langChainRoles[msg.Role]
		if !ok {
			role = schema.ChatMessageTypeHuman
		}
		out[i] = llms.TextParts(role, msg.Content)
	}
	return out
}
