package domain

import (
	"time"
)

// Mode is the dialogue mode of a conversation. It is sticky: once a user
// switches to advisory, the conversation stays there until a trigger
// switches it back or the session expires.
type Mode string

const (
	ModeQA       Mode = "qa"
	ModeAdvisory Mode = "advisory"
)

// ProfileSlot is one required field of the advisory profile.
type ProfileSlot string

const (
	SlotAge           ProfileSlot = "age"
	SlotLatestDegree  ProfileSlot = "latest_degree"
	SlotEnglishLevel  ProfileSlot = "english_level"
	SlotMaritalStatus ProfileSlot = "marital_status"
	SlotBudget        ProfileSlot = "budget"
)

// SlotOrder is the fixed slot-filling order. The next question is always
// the first gap in this list, never a user-chosen order.
var SlotOrder = []ProfileSlot{
	SlotAge,
	SlotLatestDegree,
	SlotEnglishLevel,
	SlotMaritalStatus,
	SlotBudget,
}

// Profile maps filled slots to their answers.
type Profile map[ProfileSlot]string

// FirstMissing returns the first unfilled slot in SlotOrder.
func (p Profile) FirstMissing() (ProfileSlot, bool) {
	for _, slot := range SlotOrder {
		if p[slot] == "" {
			return slot, true
		}
	}
	return "", false
}

// Complete reports whether every slot has an answer.
func (p Profile) Complete() bool {
	_, missing := p.FirstMissing()
	return !missing
}

// MaxMemoryTurns bounds the sliding-window history per conversation.
const MaxMemoryTurns = 3

// SessionTTL is the idle lifetime of a conversation. Expiry is enforced by
// the DialogueStore, with sliding renewal on every read.
const SessionTTL = 30 * time.Minute

// MemoryTurn is one completed (query, reply) exchange. Immutable once
// appended; a turn is only appended after the reply has been produced, so
// no partial turn is ever stored.
type MemoryTurn struct {
	Intent    Intent    `json:"intent"`
	Query     string    `json:"query"`
	Reply     string    `json:"reply"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is the per-user dialogue state. Created lazily on a user's
// first utterance and expired by the store after SessionTTL of inactivity.
type Conversation struct {
	UserID    string       `json:"user_id"`
	Mode      Mode         `json:"mode"`
	Greeted   bool         `json:"greeted"` // welcome message fires at most once
	Profile   Profile      `json:"profile"`
	LastField ProfileSlot  `json:"last_field,omitempty"` // slot awaiting an answer
	History   []MemoryTurn `json:"history"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// NewConversation creates the initial state for a first-time user.
func NewConversation(userID string) *Conversation {
	return &Conversation{
		UserID:    userID,
		Mode:      ModeQA,
		Profile:   make(Profile),
		UpdatedAt: time.Now(),
	}
}

// Append records a completed turn, evicting the oldest entries beyond
// MaxMemoryTurns. Insertion order is preserved: history is always the most
// recent turns, newest last.
func (c *Conversation) Append(turn MemoryTurn) {
	c.History = append(c.History, turn)
	if len(c.History) > MaxMemoryTurns {
		c.History = c.History[len(c.History)-MaxMemoryTurns:]
	}
	c.UpdatedAt = turn.Timestamp
}
