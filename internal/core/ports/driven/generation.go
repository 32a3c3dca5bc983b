package driven

import (
	"context"
)

// GenerateOptions bounds a single generation call.
type GenerateOptions struct {
	// MaxTokens caps the reply length
	MaxTokens int

	// Temperature controls sampling randomness
	Temperature float64
}

// GenerationService produces a reply from an external language model.
// The provider is stateless across turns: all conversation state lives in
// the system instruction assembled by the caller.
type GenerationService interface {
	// Generate performs one single-turn completion. Calls are bounded by
	// the adapter's timeout and are one attempt only; retry policy, if
	// any, belongs to the adapter, not to callers.
	Generate(ctx context.Context, systemInstruction, userText string, opts GenerateOptions) (string, error)

	// Model returns the model name being used
	Model() string

	// Ping verifies the generation service is available
	Ping(ctx context.Context) error

	// Close releases resources held by the generation service
	Close() error
}
