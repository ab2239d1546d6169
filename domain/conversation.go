package domain

import (
	"time"

	"github.com/google/uuid"
)

// TitleMaxRunes is the number of leading runes kept when deriving a
// conversation title from its first message.
const TitleMaxRunes = 30

// Conversation groups an append-only, chronological sequence of messages.
// The title is derived once at creation and never recomputed.
type Conversation struct {
	ID        uuid.UUID
	Title     string
	Messages  []Message
	CreatedAt time.Time
}

// NewConversation creates a conversation atomically with its first message,
// so a visible conversation is never empty.
func NewConversation(first Message) Conversation {
	return Conversation{
		ID:        uuid.New(),
		Title:     DeriveTitle(first.Content),
		Messages:  []Message{first},
		CreatedAt: time.Now().UTC(),
	}
}

// DeriveTitle truncates content to TitleMaxRunes runes, marking longer
// originals with an ellipsis.
func DeriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= TitleMaxRunes {
		return content
	}
	return string(runes[:TitleMaxRunes]) + "…"
}

// Turns projects the message history into role+content pairs.
func (c Conversation) Turns() []Turn {
	turns := make([]Turn, len(c.Messages))
	for i, m := range c.Messages {
		turns[i] = m.Turn()
	}
	return turns
}
