// Package domain contains core concepts of the assistant.
// This file defines Message and its roles.
// Messages are immutable once created.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author side of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents one immutable half of a turn in a conversation.
type Message struct {
	ID        uuid.UUID
	Role      Role
	Content   string
	CreatedAt time.Time
}

func NewUserMessage(content string) Message {
	return Message{
		ID:        uuid.New(),
		Role:      RoleUser,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}

func NewAssistantMessage(content string) Message {
	return Message{
		ID:        uuid.New(),
		Role:      RoleAssistant,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}

// Turn is the role+content projection of a Message used as model context.
// IDs and timestamps never cross the wire.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

func (m Message) Turn() Turn {
	return Turn{Role: m.Role, Content: m.Content}
}
