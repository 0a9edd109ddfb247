package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"brand_server/core/domain"
	"brand_server/core/port/out"
)

// DefaultAnthropicModel is used when no model is configured.
const DefaultAnthropicModel = "claude-3-5-sonnet-latest"

// AnthropicClientInterface is the slice of the Anthropic SDK the generator needs.
// Tests substitute a mock.
type AnthropicClientInterface interface {
	CreateMessage(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error)
}

type anthropicClientWrapper struct {
	client anthropic.Client
}

func (w *anthropicClientWrapper) CreateMessage(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	return w.client.Messages.New(ctx, params)
}

// AnthropicGenerator implements out.TextGenerator on the Messages API.
type AnthropicGenerator struct {
	client AnthropicClientInterface
	model  string
}

var _ out.TextGenerator = (*AnthropicGenerator)(nil)

// NewAnthropicGenerator builds a generator for apiKey. httpClient may be nil.
func NewAnthropicGenerator(apiKey, model string, httpClient *http.Client) (*AnthropicGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic: %w", domain.ErrProviderNotConfigured)
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		// Retries are the user's decision ("regenerate"), not the transport's.
		option.WithMaxRetries(0),
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	client := anthropic.NewClient(opts...)
	return NewAnthropicGeneratorWithClient(&anthropicClientWrapper{client: client}, model), nil
}

// NewAnthropicGeneratorWithClient wires a custom client.
func NewAnthropicGeneratorWithClient(client AnthropicClientInterface, model string) *AnthropicGenerator {
	if model == "" {
		model = DefaultAnthropicModel
	}
	return &AnthropicGenerator{client: client, model: model}
}

func (g *AnthropicGenerator) Name() string  { return domain.ProviderAnthropic }
func (g *AnthropicGenerator) Model() string { return g.model }

// Complete sends one user turn and joins the text blocks of the reply.
func (g *AnthropicGenerator) Complete(ctx context.Context, req out.CompletionRequest) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}

	msg, err := g.client.CreateMessage(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic: %w: %v", domain.ErrProviderCallFailure, err)
	}
	if msg == nil {
		return "", fmt.Errorf("anthropic: %w: empty message", domain.ErrMalformedProviderResponse)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}
