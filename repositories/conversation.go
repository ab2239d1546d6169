//go:generate go run go.uber.org/mock/mockgen -source=conversation.go -destination=../mocks/mock_conversation_repository.go -package=mocks
package repositories

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"vitamed/domain"
)

type IConversationRepository interface {
	Create(first domain.Message) domain.Conversation
	Append(conversationID uuid.UUID, message domain.Message)
	Select(id *uuid.UUID)
	Delete(id uuid.UUID)
	List() []domain.Conversation
	Get(id uuid.UUID) (domain.Conversation, bool)
	Active() (domain.Conversation, bool)
}

// ConversationRepository holds the session's conversations in memory.
// Conversations are ordered most-recently-created first and keep that order
// for their whole lifetime; appends never re-sort the list.
//
// The active pointer is a weak reference: it may dangle after a deletion
// racing an in-flight dispatch, in which case Active reports no conversation
// instead of faulting.
type ConversationRepository struct {
	log *slog.Logger

	mu            sync.RWMutex
	conversations []domain.Conversation
	active        *uuid.UUID
}

func NewConversationRepository(log *slog.Logger) *ConversationRepository {
	return &ConversationRepository{log: log}
}

// Create inserts a new conversation at the head of the list, built
// atomically with its first message.
func (r *ConversationRepository) Create(first domain.Message) domain.Conversation {
	r.mu.Lock()
	defer r.mu.Unlock()

	conversation := domain.NewConversation(first)
	r.conversations = append([]domain.Conversation{conversation}, r.conversations...)
	r.log.Debug("Conversation created", "id", conversation.ID, "title", conversation.Title)
	return snapshot(conversation)
}

// Append adds a message to an existing conversation. A missing id is a
// silent no-op so a deletion racing an in-flight dispatch never faults.
func (r *ConversationRepository) Append(conversationID uuid.UUID, message domain.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.conversations {
		if r.conversations[i].ID == conversationID {
			r.conversations[i].Messages = append(r.conversations[i].Messages, message)
			return
		}
	}
	r.log.Debug("Append ignored, conversation no longer exists", "id", conversationID)
}

// Select moves the active pointer. nil denotes composing a new conversation.
func (r *ConversationRepository) Select(id *uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id == nil {
		r.active = nil
		return
	}
	selected := *id
	r.active = &selected
}

// Delete removes a conversation. Deleting the active conversation clears the
// active pointer; deleting anything else leaves it untouched. No undo.
func (r *ConversationRepository) Delete(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.conversations {
		if r.conversations[i].ID == id {
			r.conversations = append(r.conversations[:i], r.conversations[i+1:]...)
			break
		}
	}
	if r.active != nil && *r.active == id {
		r.active = nil
	}
}

// List returns a snapshot of the conversations, most-recently-created first.
func (r *ConversationRepository) List() []domain.Conversation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listed := make([]domain.Conversation, len(r.conversations))
	for i, c := range r.conversations {
		listed[i] = snapshot(c)
	}
	return listed
}

func (r *ConversationRepository) Get(id uuid.UUID) (domain.Conversation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.find(id)
}

// Active resolves the active pointer. A dangling pointer degrades to the
// new-chat state rather than an error.
func (r *ConversationRepository) Active() (domain.Conversation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.active == nil {
		return domain.Conversation{}, false
	}
	return r.find(*r.active)
}

func (r *ConversationRepository) find(id uuid.UUID) (domain.Conversation, bool) {
	for _, c := range r.conversations {
		if c.ID == id {
			return snapshot(c), true
		}
	}
	return domain.Conversation{}, false
}

// snapshot copies the message slice so callers can never mutate the store
// through a returned conversation.
func snapshot(c domain.Conversation) domain.Conversation {
	messages := make([]domain.Message, len(c.Messages))
	copy(messages, c.Messages)
	c.Messages = messages
	return c
}
