package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	copilotTokenURL        = "https://api.github.com/copilot_internal/v2/token"
	copilotBaseURL         = "https://api.githubcopilot.com"
	defaultLMStudioBaseURL = "http://localhost:1234/v1"
	userAgent              = "weekpulse/1.0"

	// DefaultModel is used when no model is configured for Copilot.
	DefaultModel = "gpt-4o"
)

// OpenAIClient talks to any OpenAI-compatible chat completions endpoint.
// Copilot and LM Studio differ only in base URL and credentials.
type OpenAIClient struct {
	client  openai.Client
	name    string
	model   string
	baseURL string
}

// NewCopilotClient creates a client for GitHub Copilot's chat API.
// It loads the GitHub token and exchanges it for a Copilot bearer token.
func NewCopilotClient(model string) (*OpenAIClient, error) {
	if model == "" {
		model = DefaultModel
	}

	githubToken, err := LoadGitHubToken()
	if err != nil {
		return nil, fmt.Errorf("loading GitHub token: %w", err)
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	bearer, err := exchangeToken(httpClient, githubToken)
	if err != nil {
		return nil, fmt.Errorf("exchanging token: %w", err)
	}

	return newOpenAIClient(ProviderCopilot, model, copilotBaseURL,
		option.WithAPIKey(bearer),
		option.WithHeader("Editor-Version", userAgent),
		option.WithHeader("Editor-Plugin-Version", userAgent),
		option.WithHeader("Copilot-Integration-Id", "vscode-chat"),
	), nil
}

// NewLMStudioClient creates a client for LM Studio's OpenAI-compatible server.
func NewLMStudioClient(model, baseURL string) (*OpenAIClient, error) {
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("lm studio model is required")
	}
	if baseURL == "" {
		baseURL = defaultLMStudioBaseURL
	}

	apiKey := os.Getenv("LMSTUDIO_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		apiKey = "lm-studio"
	}

	return newOpenAIClient(ProviderLMStudio, model, baseURL, option.WithAPIKey(apiKey)), nil
}

func newOpenAIClient(name, model, baseURL string, opts ...option.RequestOption) *OpenAIClient {
	opts = append([]option.RequestOption{option.WithBaseURL(baseURL)}, opts...)
	return &OpenAIClient{
		client:  openai.NewClient(opts...),
		name:    name,
		model:   model,
		baseURL: baseURL,
	}
}

// Chat sends messages to the LLM and returns the response.
func (c *OpenAIClient) Chat(ctx context.Context, messages []Message) (string, error) {
	params := make([]openai.ChatCompletionMessageParamUnion, len(messages))
	for i, msg := range messages {
		switch msg.Role {
		case RoleSystem:
			params[i] = openai.SystemMessage(msg.Content)
		case RoleAssistant:
			params[i] = openai.AssistantMessage(msg.Content)
		default:
			params[i] = openai.UserMessage(msg.Content)
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       c.model,
		Messages:    params,
		Temperature: openai.Float(insightTemperature),
	})
	if err != nil {
		return "", fmt.Errorf("%s chat completion: %w", c.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

// exchangeToken exchanges a GitHub OAuth token for a Copilot bearer token.
func exchangeToken(httpClient *http.Client, githubToken string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, copilotTokenURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+githubToken)
	req.Header.Set("User-Agent", userAgent)

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("making request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token exchange failed (status %d): %s", resp.StatusCode, string(body))
	}

	var tok tokenResponse
	if err := sonic.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	return tok.Token, nil
}
