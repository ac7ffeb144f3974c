// Package llm provides chat clients used to generate a short read of the upcoming week.
package llm

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when a provider answers without any choices.
var ErrEmptyResponse = errors.New("no response choices returned")

// insightTemperature keeps the weekly read terse and repeatable.
const insightTemperature = 0.3

// Message represents a chat message.
type Message struct {
	Role    string
	Content string
}

// Chat roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Client defines the interface for LLM providers.
type Client interface {
	// Chat sends messages to the LLM and returns the response text.
	Chat(ctx context.Context, messages []Message) (string, error)
}
