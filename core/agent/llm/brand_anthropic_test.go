package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brand_server/core/domain"
	"brand_server/core/port/out"
)

type mockAnthropicClient struct {
	messageResponse *anthropic.Message
	messageErr      error
	capturedParams  anthropic.MessageNewParams
}

func (m *mockAnthropicClient) CreateMessage(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	m.capturedParams = params
	if m.messageErr != nil {
		return nil, m.messageErr
	}
	return m.messageResponse, nil
}

func TestNewAnthropicGenerator_EmptyKey(t *testing.T) {
	_, err := NewAnthropicGenerator("", "", nil)
	assert.ErrorIs(t, err, domain.ErrProviderNotConfigured)
}

func TestAnthropicGenerator_Complete(t *testing.T) {
	mock := &mockAnthropicClient{
		messageResponse: &anthropic.Message{
			Content: []anthropic.ContentBlockUnion{
				{Type: "text", Text: `{"fonts":`},
				{Type: "thinking", Text: "ignored"},
				{Type: "text", Text: `{}}`},
			},
		},
	}
	g := NewAnthropicGeneratorWithClient(mock, "claude-test")

	got, err := g.Complete(context.Background(), out.CompletionRequest{
		System:      "sys",
		Prompt:      "hello",
		MaxTokens:   1000,
		Temperature: 0.7,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"fonts":{}}`, got)

	p := mock.capturedParams
	assert.Equal(t, anthropic.Model("claude-test"), p.Model)
	assert.Equal(t, int64(1000), p.MaxTokens)
	require.Len(t, p.System, 1)
	assert.Equal(t, "sys", p.System[0].Text)
	assert.InDelta(t, 0.7, p.Temperature.Value, 1e-9)
	require.Len(t, p.Messages, 1)
}

func TestAnthropicGenerator_CallError(t *testing.T) {
	g := NewAnthropicGeneratorWithClient(&mockAnthropicClient{messageErr: errors.New("quota")}, "")

	_, err := g.Complete(context.Background(), out.CompletionRequest{Prompt: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProviderCallFailure)
	assert.Contains(t, err.Error(), "quota")
	assert.Equal(t, DefaultAnthropicModel, g.Model())
	assert.Equal(t, "anthropic", g.Name())
}
