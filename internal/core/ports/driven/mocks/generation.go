package mocks

import (
	"context"

	"github.com/custodia-labs/nika-core/internal/core/domain"
	"github.com/custodia-labs/nika-core/internal/core/ports/driven"
)

// GenerationCall records one Generate invocation for assertions.
type GenerationCall struct {
	SystemInstruction string
	UserText          string
	Opts              driven.GenerateOptions
}

// MockGenerationService is a mock implementation of GenerationService for testing
type MockGenerationService struct {
	reply    string
	failNext bool

	// Calls records every Generate invocation
	Calls []GenerationCall
}

// NewMockGenerationService creates a new MockGenerationService
func NewMockGenerationService() *MockGenerationService {
	return &MockGenerationService{
		reply: "mock reply",
	}
}

func (m *MockGenerationService) Generate(_ context.Context, systemInstruction, userText string, opts driven.GenerateOptions) (string, error) {
	m.Calls = append(m.Calls, GenerationCall{
		SystemInstruction: systemInstruction,
		UserText:          userText,
		Opts:              opts,
	})

	if m.failNext {
		m.failNext = false
		return "", domain.ErrProviderUnavailable
	}
	return m.reply, nil
}

func (m *MockGenerationService) Model() string {
	return "mock-generation-model"
}

func (m *MockGenerationService) Ping(_ context.Context) error {
	return nil
}

func (m *MockGenerationService) Close() error {
	return nil
}

// Helper methods for testing

func (m *MockGenerationService) SetReply(reply string) {
	m.reply = reply
}

func (m *MockGenerationService) SetFailNext(fail bool) {
	m.failNext = fail
}
