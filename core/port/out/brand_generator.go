package out

import "context"

// CompletionRequest is one single-turn call to a text-generation provider.
type CompletionRequest struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
	// JSON asks the provider for a JSON-object response when it supports one.
	JSON bool
}

// TextGenerator is the contract every generative provider is reached through.
// Implementations return the concatenated text blocks of the reply.
type TextGenerator interface {
	Name() string
	Model() string
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
