package runtime

import (
	"testing"

	"github.com/custodia-labs/nika-core/internal/core/domain"
	"github.com/custodia-labs/nika-core/internal/core/ports/driven/mocks"
)

func TestServices_SetEmbeddingService(t *testing.T) {
	config := domain.NewRuntimeConfig("memory")
	services := NewServices(config)

	if services.EmbeddingService() != nil {
		t.Error("expected nil embedding service initially")
	}
	if config.EmbeddingAvailable() {
		t.Error("embedding should not be available initially")
	}

	services.SetEmbeddingService(mocks.NewMockEmbeddingService())

	if services.EmbeddingService() == nil {
		t.Error("expected embedding service after set")
	}
	if !config.EmbeddingAvailable() {
		t.Error("embedding availability flag not updated")
	}

	services.SetEmbeddingService(nil)
	if config.EmbeddingAvailable() {
		t.Error("clearing the service should clear the flag")
	}
}

func TestServices_SetGenerationService(t *testing.T) {
	config := domain.NewRuntimeConfig("redis")
	services := NewServices(config)

	services.SetGenerationService(mocks.NewMockGenerationService())

	if services.GenerationService() == nil {
		t.Error("expected generation service after set")
	}
	if !config.GenerationAvailable() {
		t.Error("generation availability flag not updated")
	}
}

func TestServices_Close(t *testing.T) {
	config := domain.NewRuntimeConfig("memory")
	services := NewServices(config)
	services.SetEmbeddingService(mocks.NewMockEmbeddingService())
	services.SetGenerationService(mocks.NewMockGenerationService())

	if err := services.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if services.EmbeddingService() != nil || services.GenerationService() != nil {
		t.Error("services should be nil after close")
	}
	if config.EmbeddingAvailable() || config.GenerationAvailable() {
		t.Error("availability flags should be cleared after close")
	}
}
