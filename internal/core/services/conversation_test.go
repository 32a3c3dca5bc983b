package services

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/custodia-labs/nika-core/internal/config"
	"github.com/custodia-labs/nika-core/internal/core/domain"
	"github.com/custodia-labs/nika-core/internal/core/ports/driven/mocks"
	"github.com/custodia-labs/nika-core/internal/runtime"
)

type convFixture struct {
	orchestrator *Conversation
	store        *mocks.MockDialogueStore
	generator    *mocks.MockGenerationService
}

func newConvFixture(t *testing.T) *convFixture {
	t.Helper()
	cfg := config.Default()

	services := runtime.NewServices(domain.NewRuntimeConfig("memory"))
	services.SetEmbeddingService(mocks.NewMockEmbeddingService())
	generator := mocks.NewMockGenerationService()
	services.SetGenerationService(generator)

	store := mocks.NewMockDialogueStore()

	intents, err := NewIntentClassifier(cfg.Intents)
	if err != nil {
		t.Fatalf("failed to build classifier: %v", err)
	}

	retriever, err := NewRetriever(services, nil, nil, cfg.Retrieval, slog.Default())
	if err != nil {
		t.Fatalf("failed to build retriever: %v", err)
	}

	orchestrator := NewConversation(
		services,
		store,
		intents,
		NewAdvisor(cfg.Modes, cfg.Slots),
		retriever,
		NewMemory(store, slog.Default()),
		cfg.Generation,
		slog.Default(),
	)
	return &convFixture{orchestrator: orchestrator, store: store, generator: generator}
}

// seedSession gets past the first-contact greeting.
func (f *convFixture) seedSession(t *testing.T, userID string) {
	t.Helper()
	if err := f.store.Save(context.Background(), domain.NewConversation(userID)); err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
}

func TestReplyEmptyInput(t *testing.T) {
	f := newConvFixture(t)

	res, err := f.orchestrator.Reply(context.Background(), "u1", "   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Reply != msgEmptyInput {
		t.Errorf("expected clarification message, got %q", res.Reply)
	}
	if !res.ShortCircuit {
		t.Error("expected short-circuit for empty input")
	}
	if len(f.generator.Calls) != 0 {
		t.Errorf("expected no generation calls, got %d", len(f.generator.Calls))
	}
}

func TestReplyFirstContactGreeting(t *testing.T) {
	f := newConvFixture(t)

	res, err := f.orchestrator.Reply(context.Background(), "u1", "hello there")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Reply != msgWelcomeEN {
		t.Errorf("expected English welcome, got %q", res.Reply)
	}
	if !res.ShortCircuit {
		t.Error("expected greeting to short-circuit")
	}
	if res.Mode != domain.ModeQA {
		t.Errorf("expected default qa mode, got %q", res.Mode)
	}
	if len(f.generator.Calls) != 0 {
		t.Errorf("expected no provider calls on greeting, got %d", len(f.generator.Calls))
	}

	// Greeting fires at most once.
	res, err = f.orchestrator.Reply(context.Background(), "u1", "hello again")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Reply == msgWelcomeEN {
		t.Error("expected greeting to fire only once")
	}
}

func TestReplyFirstContactGreetingFarsi(t *testing.T) {
	f := newConvFixture(t)

	res, err := f.orchestrator.Reply(context.Background(), "u1", "سلام")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Reply != msgWelcomeFA {
		t.Errorf("expected Farsi welcome, got %q", res.Reply)
	}
}

func TestReplyGeneratesWithRetrievedContext(t *testing.T) {
	f := newConvFixture(t)
	f.seedSession(t, "u1")
	f.generator.SetReply("you need a study visa")

	res, err := f.orchestrator.Reply(context.Background(), "u1", "how do I get a student visa?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Reply != "you need a study visa" {
		t.Errorf("unexpected reply %q", res.Reply)
	}
	if res.Intent != domain.IntentStudentVisa {
		t.Errorf("expected student_visa intent, got %q", res.Intent)
	}
	if res.ShortCircuit {
		t.Error("expected a full generation turn")
	}

	if len(f.generator.Calls) != 1 {
		t.Fatalf("expected one generation call, got %d", len(f.generator.Calls))
	}
	call := f.generator.Calls[0]
	if !strings.Contains(call.SystemInstruction, "You are Nika") {
		t.Errorf("expected persona in system instruction, got %q", call.SystemInstruction)
	}
	if call.Opts.MaxTokens != 100 {
		t.Errorf("expected default token budget 100, got %d", call.Opts.MaxTokens)
	}
	if call.Opts.Temperature != 0.45 {
		t.Errorf("expected temperature 0.45, got %v", call.Opts.Temperature)
	}

	// Turn lands in memory.
	conv, err := f.store.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("failed to load conversation: %v", err)
	}
	if len(conv.History) != 1 {
		t.Fatalf("expected one memory turn, got %d", len(conv.History))
	}
	if conv.History[0].Reply != "you need a study visa" {
		t.Errorf("unexpected stored reply %q", conv.History[0].Reply)
	}
}

func TestReplyMultiQuestionWidensAndPrefixes(t *testing.T) {
	f := newConvFixture(t)
	f.seedSession(t, "u1")
	f.generator.SetReply("one at a time")

	res, err := f.orchestrator.Reply(context.Background(), "u1",
		"what visa do I need? how long does it take? how much does it cost?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(res.Reply, politeIntroEN) {
		t.Errorf("expected polite intro prefix, got %q", res.Reply)
	}
	if !strings.HasSuffix(res.Reply, "one at a time") {
		t.Errorf("expected generated text after intro, got %q", res.Reply)
	}

	call := f.generator.Calls[0]
	if call.Opts.MaxTokens != 180 {
		t.Errorf("expected widened token budget 180, got %d", call.Opts.MaxTokens)
	}
	if !strings.Contains(call.SystemInstruction, prePromptEN) {
		t.Errorf("expected multi-question pre-prompt in system instruction")
	}
}

func TestReplyTwoQuestionsStayNarrow(t *testing.T) {
	f := newConvFixture(t)
	f.seedSession(t, "u1")

	_, err := f.orchestrator.Reply(context.Background(), "u1", "what visa? how long?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := f.generator.Calls[0].Opts.MaxTokens; got != 100 {
		t.Errorf("expected narrow token budget 100, got %d", got)
	}
}

func TestReplyProviderFailureApology(t *testing.T) {
	f := newConvFixture(t)
	f.seedSession(t, "u1")
	f.generator.SetFailNext(true)

	res, err := f.orchestrator.Reply(context.Background(), "u1", "what about a work visa")
	if err != nil {
		t.Fatalf("expected apology, not error: %v", err)
	}
	if res.Reply != msgApologyEN {
		t.Errorf("expected English apology, got %q", res.Reply)
	}
	if len(f.generator.Calls) != 1 {
		t.Errorf("expected exactly one attempt, got %d", len(f.generator.Calls))
	}

	// Failed turns never land in memory.
	conv, err := f.store.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("failed to load conversation: %v", err)
	}
	if len(conv.History) != 0 {
		t.Errorf("expected empty history after failure, got %d turns", len(conv.History))
	}
}

func TestReplyProviderFailureApologyFarsi(t *testing.T) {
	f := newConvFixture(t)
	f.seedSession(t, "u1")
	f.generator.SetFailNext(true)

	res, err := f.orchestrator.Reply(context.Background(), "u1", "ویزای کار چطور؟")
	if err != nil {
		t.Fatalf("expected apology, not error: %v", err)
	}
	if res.Reply != msgApologyFA {
		t.Errorf("expected Farsi apology, got %q", res.Reply)
	}
}

func TestReplyAdvisorySlotFillingFlow(t *testing.T) {
	f := newConvFixture(t)
	f.seedSession(t, "u1")

	res, err := f.orchestrator.Reply(context.Background(), "u1", "give me advice based on me")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Mode != domain.ModeAdvisory {
		t.Fatalf("expected advisory mode, got %q", res.Mode)
	}
	if res.Reply != "What is your age?" {
		t.Fatalf("expected age question, got %q", res.Reply)
	}
	if !res.ShortCircuit {
		t.Error("expected slot question to short-circuit")
	}

	answers := []string{"27", "bachelor", "IELTS 7", "single"}
	questions := []string{
		"What is your latest degree or education level?",
		"What is your English level (IELTS, TOEFL, etc.)?",
		"Are you single or married?",
		"What is your approximate study or visa budget in euros?",
	}
	for i, answer := range answers {
		res, err = f.orchestrator.Reply(context.Background(), "u1", answer)
		if err != nil {
			t.Fatalf("unexpected error on answer %d: %v", i, err)
		}
		if res.Reply != questions[i] {
			t.Fatalf("answer %d: expected %q, got %q", i, questions[i], res.Reply)
		}
	}

	// Final answer completes the profile and yields the heuristic
	// suggestion without a model call.
	res, err = f.orchestrator.Reply(context.Background(), "u1", "about 10000 euros")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.Reply, "master's programs") {
		t.Errorf("expected master's suggestion for bachelor degree, got %q", res.Reply)
	}
	if !res.ShortCircuit {
		t.Error("expected heuristic suggestion to short-circuit")
	}
	if len(f.generator.Calls) != 0 {
		t.Errorf("expected no generation calls during slot filling, got %d", len(f.generator.Calls))
	}

	conv, err := f.store.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("failed to load conversation: %v", err)
	}
	if got := conv.Profile[domain.SlotAge]; got != "27" {
		t.Errorf("expected captured age 27, got %q", got)
	}
}

func TestReplyAdvisoryCompleteProfileFallsThrough(t *testing.T) {
	f := newConvFixture(t)
	conv := domain.NewConversation("u1")
	conv.Mode = domain.ModeAdvisory
	for _, slot := range domain.SlotOrder {
		conv.Profile[slot] = "filled"
	}
	if err := f.store.Save(context.Background(), conv); err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	f.generator.SetReply("here are your options")

	res, err := f.orchestrator.Reply(context.Background(), "u1", "which country suits me best")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Reply != "here are your options" {
		t.Errorf("expected generated reply, got %q", res.Reply)
	}
	if res.ShortCircuit {
		t.Error("expected full generation turn for complete profile")
	}
}

func TestReplyMemorySummaryInSystemInstruction(t *testing.T) {
	f := newConvFixture(t)
	conv := domain.NewConversation("u1")
	conv.Append(domain.MemoryTurn{Query: "earlier question", Reply: "earlier answer"})
	if err := f.store.Save(context.Background(), conv); err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}

	_, err := f.orchestrator.Reply(context.Background(), "u1", "and what about fees?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call := f.generator.Calls[0]
	if !strings.Contains(call.SystemInstruction, "[Conversation Memory]") {
		t.Errorf("expected memory summary in system instruction, got %q", call.SystemInstruction)
	}
	if !strings.Contains(call.SystemInstruction, "earlier question") {
		t.Errorf("expected prior turn in system instruction")
	}
}

func TestClearSession(t *testing.T) {
	f := newConvFixture(t)
	f.seedSession(t, "u1")

	if err := f.orchestrator.ClearSession(context.Background(), "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.store.Get(context.Background(), "u1"); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound after clear, got %v", err)
	}
}
