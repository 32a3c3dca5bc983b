package ai

import (
	"fmt"

	"github.com/custodia-labs/nika-core/internal/core/ports/driven"
)

// ProviderSettings configures one AI provider connection.
type ProviderSettings struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// IsConfigured reports whether the settings are usable.
func (s ProviderSettings) IsConfigured() bool {
	return s.Provider != "" && s.APIKey != ""
}

// NewEmbeddingService creates an embedding service from settings.
// Unconfigured settings yield (nil, nil): the caller runs degraded with
// retrieval in fallback mode rather than failing startup.
func NewEmbeddingService(settings ProviderSettings) (driven.EmbeddingService, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case "openai":
		return NewOpenAIEmbedding(settings.APIKey, settings.Model, settings.BaseURL)
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
}

// NewGenerationService creates a generation service from settings.
// Unconfigured settings yield (nil, nil); turns then get the localized
// apology instead of generated replies.
func NewGenerationService(settings ProviderSettings) (driven.GenerationService, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case "openai":
		return NewOpenAILLM(settings.APIKey, settings.Model, settings.BaseURL)
	default:
		return nil, fmt.Errorf("unsupported generation provider: %s", settings.Provider)
	}
}
