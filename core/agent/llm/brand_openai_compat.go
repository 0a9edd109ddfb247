package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"brand_server/core/domain"
	"brand_server/core/port/out"
)

const (
	// MistralBaseURL is Mistral's OpenAI-compatible API root.
	MistralBaseURL      = "https://api.mistral.ai/v1"
	DefaultMistralModel = "mistral-large-latest"
	DefaultOpenAIModel  = "gpt-4o-mini"
)

// ChatGenerator implements out.TextGenerator over any OpenAI-compatible
// chat-completions endpoint.
type ChatGenerator struct {
	client *openai.Client
	name   string
	model  string
	// jsonMode is false for endpoints that reject response_format.
	jsonMode bool
}

var _ out.TextGenerator = (*ChatGenerator)(nil)

// ChatGeneratorConfig configures a ChatGenerator.
type ChatGeneratorConfig struct {
	Name       string
	APIKey     string
	BaseURL    string
	Model      string
	JSONMode   bool
	HTTPClient *http.Client
}

// NewChatGenerator creates a generator. An empty API key is reported as
// domain.ErrProviderNotConfigured.
func NewChatGenerator(cfg ChatGeneratorConfig) (*ChatGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: %w", cfg.Name, domain.ErrProviderNotConfigured)
	}
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	if cfg.HTTPClient != nil {
		config.HTTPClient = cfg.HTTPClient
	}
	return &ChatGenerator{
		client:   openai.NewClientWithConfig(config),
		name:     cfg.Name,
		model:    cfg.Model,
		jsonMode: cfg.JSONMode,
	}, nil
}

// NewMistralGenerator reaches Mistral through its OpenAI-compatible API.
func NewMistralGenerator(apiKey, baseURL, model string, httpClient *http.Client) (*ChatGenerator, error) {
	if baseURL == "" {
		baseURL = MistralBaseURL
	}
	if model == "" {
		model = DefaultMistralModel
	}
	return NewChatGenerator(ChatGeneratorConfig{
		Name:       domain.ProviderMistral,
		APIKey:     apiKey,
		BaseURL:    baseURL,
		Model:      model,
		JSONMode:   true,
		HTTPClient: httpClient,
	})
}

// NewOpenAIGenerator talks to api.openai.com.
func NewOpenAIGenerator(apiKey, model string, httpClient *http.Client) (*ChatGenerator, error) {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return NewChatGenerator(ChatGeneratorConfig{
		Name:       domain.ProviderOpenAI,
		APIKey:     apiKey,
		Model:      model,
		JSONMode:   true,
		HTTPClient: httpClient,
	})
}

func (g *ChatGenerator) Name() string  { return g.name }
func (g *ChatGenerator) Model() string { return g.model }

// Complete sends an optional system message and one user message.
func (g *ChatGenerator) Complete(ctx context.Context, req out.CompletionRequest) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	chatReq := openai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: float32(req.Temperature),
	}
	if req.JSON && g.jsonMode {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := g.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("%s: %w: status %d: %s", g.name, domain.ErrProviderCallFailure, apiErr.HTTPStatusCode, apiErr.Message)
		}
		return "", fmt.Errorf("%s: %w: %v", g.name, domain.ErrProviderCallFailure, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: %w: no choices", g.name, domain.ErrMalformedProviderResponse)
	}
	return resp.Choices[0].Message.Content, nil
}
