package services

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/nika-core/internal/config"
	"github.com/custodia-labs/nika-core/internal/core/domain"
)

var digitsRe = regexp.MustCompile(`\d+`)

// Advisor is the advisory-mode half of the dialogue state machine: mode
// switching, profile slot-filling and the heuristic suggestion path that
// runs without a model call once the profile is complete.
type Advisor struct {
	triggers config.ModeTriggers
	slots    []config.SlotSpec
}

// NewAdvisor creates an advisor from the configured triggers and slots.
func NewAdvisor(triggers config.ModeTriggers, slots []config.SlotSpec) *Advisor {
	return &Advisor{triggers: triggers, slots: slots}
}

// DetectMode re-evaluates the dialogue mode for one utterance and stores
// it on the conversation. Sticky: with no trigger present the stored mode
// stays, and a brand-new conversation defaults to qa.
func (a *Advisor) DetectMode(conv *domain.Conversation, text string) domain.Mode {
	t := strings.ToLower(text)

	for _, kw := range a.triggers.Advisory {
		if strings.Contains(t, kw) {
			conv.Mode = domain.ModeAdvisory
			return conv.Mode
		}
	}
	for _, kw := range a.triggers.QA {
		if strings.Contains(t, kw) {
			conv.Mode = domain.ModeQA
			return conv.Mode
		}
	}

	if conv.Mode == "" {
		conv.Mode = domain.ModeQA
	}
	return conv.Mode
}

// CaptureAnswer interprets the utterance as the answer to the pending
// slot question, if one is pending. Age answers get numeric extraction;
// everything else is stored literally. Reports whether an answer was
// captured. The profile survives mode switches; only an explicit session
// clear resets it.
func (a *Advisor) CaptureAnswer(conv *domain.Conversation, text string) bool {
	if conv.LastField == "" {
		return false
	}

	value := strings.TrimSpace(text)
	if conv.LastField == domain.SlotAge {
		if num := digitsRe.FindString(value); num != "" {
			value = num
		}
	}

	if conv.Profile == nil {
		conv.Profile = make(domain.Profile)
	}
	conv.Profile[conv.LastField] = value
	conv.LastField = ""
	return true
}

// NextQuestion returns the question for the first unfilled slot and
// records it as pending. The fixed slot order always wins: asking when
// slot k is empty always requests slot k, even if the user volunteered a
// later answer unprompted.
func (a *Advisor) NextQuestion(conv *domain.Conversation, farsi bool) (string, bool) {
	slot, missing := conv.Profile.FirstMissing()
	if !missing {
		return "", false
	}

	for _, spec := range a.slots {
		if domain.ProfileSlot(spec.Name) == slot {
			conv.LastField = slot
			if farsi {
				return spec.QuestionFA, true
			}
			return spec.QuestionEN, true
		}
	}

	// Slot order and slot specs disagree; treat the profile as complete
	// rather than loop forever on an unaskable slot.
	return "", false
}

// SuggestOptions produces the fixed heuristic recommendation for a
// complete profile. This path deliberately stays rule-based: degree level
// picks the program tier, with addenda for English certification and
// budget hints. The model-backed synthesis path handles everything else.
func (a *Advisor) SuggestOptions(profile domain.Profile) string {
	degree := strings.ToLower(profile[domain.SlotLatestDegree])
	english := strings.ToLower(profile[domain.SlotEnglishLevel])
	budget := profile[domain.SlotBudget]

	var suggestion string
	switch {
	case strings.Contains(degree, "high school") || strings.Contains(degree, "diploma"):
		suggestion = "Since you have a high school diploma, bachelor programs in Europe or Canada " +
			"are a good fit. Focus on IELTS 6.0+ and a budget around €10,000–€15,000 per year."
	case strings.Contains(degree, "bachelor"):
		suggestion = "With a bachelor's degree, consider master's programs in Finland, Germany, or the Netherlands. " +
			"They often offer low tuition and English-taught programs."
	case strings.Contains(degree, "master") || strings.Contains(degree, "postgraduate"):
		suggestion = "With a master's background, you could apply for PhD or research visas in Europe or Canada."
	default:
		suggestion = "Once I know your degree and English level, I can suggest suitable countries and programs."
	}

	if strings.Contains(english, "ielts") || strings.Contains(english, "toefl") {
		suggestion += " Good! Your English preparation helps you qualify faster."
	}
	for _, hint := range []string{"5000", "8000", "10000", "€"} {
		if strings.Contains(budget, hint) {
			suggestion += " Your budget suggests affordable destinations like Finland or Poland."
			break
		}
	}

	return suggestion
}
