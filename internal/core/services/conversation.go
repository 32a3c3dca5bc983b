package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/custodia-labs/nika-core/internal/config"
	"github.com/custodia-labs/nika-core/internal/core/domain"
	"github.com/custodia-labs/nika-core/internal/core/ports/driven"
	"github.com/custodia-labs/nika-core/internal/core/ports/driving"
	"github.com/custodia-labs/nika-core/internal/runtime"
)

// Localized reply strings. The Farsi/English pairs are tuned for spoken
// output and kept verbatim across releases so downstream TTS caching
// stays valid.
const (
	msgEmptyInput = "⚠️ من صدای واضحی نشنیدم. لطفاً دوباره بگو."

	msgWelcomeEN = "Hi there! Welcome to Nika Visa AI Assistant. " +
		"Would you like to ask general immigration questions, " +
		"or would you like me to give personalized advice based on your background?"
	msgWelcomeFA = "سلام! خوش اومدی به نیکا ویزا. " +
		"می‌خوای سوالات عمومی مهاجرتی بپرسی یا بر اساس شرایط خودت برات مشاوره شخصی‌سازی‌شده بدم؟"

	msgApologyEN = "Sorry, something went wrong. Please try again."
	msgApologyFA = "متاسفم، خطایی رخ داد. لطفاً دوباره تلاش کن."

	politeIntroEN = "That’s a lot of great questions! Let’s start with the most important one, " +
		"and I’ll help you go through the rest next."
	politeIntroFA = "چند سؤال خیلی خوب پرسیدی! اجازه بده از مهم‌ترینش شروع کنیم " +
		"و بعد دونه‌دونه بقیه رو هم بررسی کنیم."

	prePromptEN = "The user asked several questions in one message. " +
		"You are a calm, friendly immigration consultant — acknowledge it politely, " +
		"answer the key questions first, and mention you can cover others next."
	prePromptFA = "کاربر چند سؤال پشت سر هم پرسیده است. " +
		"با لحنی دوستانه و مشاور‌گونه فقط به مهم‌ترین سؤالات پاسخ بده " +
		"و بگو که در ادامه می‌توانی بقیه را هم توضیح دهی."

	personaEN = "You are Nika, a friendly and accurate visa & immigration consultant. " +
		"Keep replies short, warm, and natural for spoken output. "
	personaFA = "تو نیکا هستی، یک دستیار مهاجرت دقیق و طبیعی. " +
		"پاسخ‌هایت باید کوتاه، صوتی‌پسند و مودبانه باشند. "
)

// multiQuestionThreshold is the question-mark count at which a turn is
// treated as a multi-question message.
const multiQuestionThreshold = 3

// Conversation is the reply orchestrator: one entry point per dialogue
// turn. Retrieval and generation failures are absorbed here and turned
// into user-readable replies; only infrastructure failures (the dialogue
// store) surface as errors.
type Conversation struct {
	services  *runtime.Services
	store     driven.DialogueStore
	intents   *IntentClassifier
	advisor   *Advisor
	retriever *Retriever
	memory    *Memory
	gen       config.GenerationConfig
	logger    *slog.Logger
}

var _ driving.ConversationService = (*Conversation)(nil)

// NewConversation creates the orchestrator.
func NewConversation(
	services *runtime.Services,
	store driven.DialogueStore,
	intents *IntentClassifier,
	advisor *Advisor,
	retriever *Retriever,
	memory *Memory,
	gen config.GenerationConfig,
	logger *slog.Logger,
) *Conversation {
	if logger == nil {
		logger = slog.Default()
	}
	return &Conversation{
		services:  services,
		store:     store,
		intents:   intents,
		advisor:   advisor,
		retriever: retriever,
		memory:    memory,
		gen:       gen,
		logger:    logger,
	}
}

// Reply handles one user utterance end to end.
func (c *Conversation) Reply(ctx context.Context, userID, text string) (*driving.TurnResult, error) {
	if strings.TrimSpace(text) == "" {
		return &driving.TurnResult{Reply: msgEmptyInput, ShortCircuit: true}, nil
	}

	farsi := hasArabicScript(text)

	conv, err := c.store.Get(ctx, userID)
	if err == domain.ErrNotFound {
		// First contact: greet, record the session, touch no provider.
		conv = domain.NewConversation(userID)
		conv.Greeted = true
		if err := c.store.Save(ctx, conv); err != nil {
			return nil, fmt.Errorf("failed to save conversation: %w", err)
		}

		c.logger.Info("first interaction, sending greeting", "user_id", userID)
		welcome := msgWelcomeEN
		if farsi {
			welcome = msgWelcomeFA
		}
		return &driving.TurnResult{Reply: welcome, Mode: conv.Mode, ShortCircuit: true}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	intent := c.intents.Classify(text)
	mode := c.advisor.DetectMode(conv, text)
	c.logger.Debug("turn classified", "user_id", userID, "intent", intent, "mode", mode)

	if mode == domain.ModeAdvisory {
		captured := c.advisor.CaptureAnswer(conv, text)

		if question, ok := c.advisor.NextQuestion(conv, farsi); ok {
			if err := c.store.Save(ctx, conv); err != nil {
				return nil, fmt.Errorf("failed to save conversation: %w", err)
			}
			return &driving.TurnResult{
				Reply:        question,
				Mode:         mode,
				Intent:       intent,
				ShortCircuit: true,
			}, nil
		}

		if captured {
			// The answer just completed the profile: the first
			// recommendation is the rule-based one, no model call.
			suggestion := c.advisor.SuggestOptions(conv.Profile)
			if err := c.store.Save(ctx, conv); err != nil {
				return nil, fmt.Errorf("failed to save conversation: %w", err)
			}
			if err := c.memory.Append(ctx, userID, intent, text, suggestion); err != nil {
				c.logger.Warn("failed to append turn to memory", "error", err)
			}
			return &driving.TurnResult{
				Reply:        suggestion,
				Mode:         mode,
				Intent:       intent,
				ShortCircuit: true,
			}, nil
		}
	}

	// Persist mode and profile changes before the provider call so a
	// failed generation does not lose state transitions.
	if err := c.store.Save(ctx, conv); err != nil {
		return nil, fmt.Errorf("failed to save conversation: %w", err)
	}

	memorySummary := SummarizeHistory(conv.History)
	retrieved := c.retriever.Retrieve(ctx, text, intent)

	questionCount := strings.Count(text, "?") + strings.Count(text, "؟")
	multiQuestion := questionCount >= multiQuestionThreshold
	if multiQuestion {
		c.logger.Debug("multi-question turn", "user_id", userID, "questions", questionCount)
	}

	systemInstruction := buildSystemInstruction(farsi, multiQuestion, retrieved.Text, memorySummary)

	opts := driven.GenerateOptions{
		MaxTokens:   c.gen.MaxTokens,
		Temperature: c.gen.Temperature,
	}
	if multiQuestion {
		opts.MaxTokens = c.gen.MaxTokensWide
	}

	generator := c.services.GenerationService()
	if generator == nil {
		c.logger.Error("no generation service configured")
		return &driving.TurnResult{Reply: apology(farsi), Mode: mode, Intent: intent}, nil
	}

	reply, err := generator.Generate(ctx, systemInstruction, strings.TrimSpace(text), opts)
	if err != nil {
		// One attempt per turn. Retry policy, if any, belongs to the
		// provider adapter.
		c.logger.Error("generation failed", "user_id", userID, "error", err)
		return &driving.TurnResult{Reply: apology(farsi), Mode: mode, Intent: intent}, nil
	}

	if multiQuestion {
		intro := politeIntroEN
		if farsi {
			intro = politeIntroFA
		}
		reply = intro + "\n" + reply
	}

	if err := c.memory.Append(ctx, userID, intent, text, reply); err != nil {
		c.logger.Warn("failed to append turn to memory", "error", err)
	}

	return &driving.TurnResult{Reply: reply, Mode: mode, Intent: intent}, nil
}

// ClearSession drops the user's conversation state immediately.
func (c *Conversation) ClearSession(ctx context.Context, userID string) error {
	return c.memory.Clear(ctx, userID)
}

// buildSystemInstruction assembles the per-turn system prompt from the
// persona, the multi-question pre-prompt, the retrieved context and the
// memory summary.
func buildSystemInstruction(farsi, multiQuestion bool, contextText, memorySummary string) string {
	if farsi {
		prePrompt := ""
		if multiQuestion {
			prePrompt = prePromptFA
		}
		return personaFA + prePrompt + "\n" + contextText + "\n" + memorySummary
	}

	prePrompt := ""
	if multiQuestion {
		prePrompt = prePromptEN
	}
	return personaEN + prePrompt + "\nUse this info if relevant:\n" + contextText + "\n" + memorySummary
}

// apology returns the localized provider-failure message.
func apology(farsi bool) string {
	if farsi {
		return msgApologyFA
	}
	return msgApologyEN
}

// hasArabicScript reports whether any rune falls in the Arabic blocks
// used by Farsi text, including the supplement and presentation forms.
func hasArabicScript(text string) bool {
	for _, r := range text {
		switch {
		case r >= 0x0600 && r <= 0x06FF,
			r >= 0x0750 && r <= 0x077F,
			r >= 0xFB50 && r <= 0xFDFF,
			r >= 0xFE70 && r <= 0xFEFF:
			return true
		}
	}
	return false
}
