package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"vitamed/domain"
	"vitamed/infrastructure/http/client"
	"vitamed/repositories"
)

type IChatService interface {
	SendUserTurn(ctx context.Context, content string) uuid.UUID
	Pending(conversationID uuid.UUID) bool
}

// ChatService is the message dispatcher. Each turn commits in two phases:
// the user message is appended synchronously before any network I/O, then
// the relay's reply (or a synthesized error message) lands later in the
// same conversation. Phase two never removes phase-one data.
type ChatService struct {
	log        *slog.Logger
	repository repositories.IConversationRepository
	relay      client.IRelayClient

	mu       sync.Mutex
	inFlight map[uuid.UUID]uuid.UUID // dispatch token -> target conversation
}

func NewChatService(log *slog.Logger, repository repositories.IConversationRepository,
	relay client.IRelayClient) *ChatService {
	return &ChatService{
		log:        log,
		repository: repository,
		relay:      relay,
		inFlight:   make(map[uuid.UUID]uuid.UUID),
	}
}

// SendUserTurn dispatches one user turn and blocks until its reply (or
// error message) has been appended. Callers keep their UI responsive by
// running it on their own goroutine; multiple dispatches may overlap and
// replies are appended in completion order.
//
// The returned id is the target conversation, resolved before the network
// call so a mid-flight conversation switch never redirects the reply.
// Empty input is a no-op returning uuid.Nil. Failures are converted into a
// visible assistant message, never returned.
func (s *ChatService) SendUserTurn(ctx context.Context, content string) uuid.UUID {
	if strings.TrimSpace(content) == "" {
		return uuid.Nil
	}

	message := domain.NewUserMessage(content)

	// Phase one: optimistic append, target resolved synchronously.
	var target uuid.UUID
	if active, ok := s.repository.Active(); ok {
		target = active.ID
		s.repository.Append(target, message)
	} else {
		conversation := s.repository.Create(message)
		target = conversation.ID
		s.repository.Select(&target)
	}

	history := s.historyBefore(target, message.ID)

	token := uuid.New()
	s.track(token, target)
	defer s.untrack(token)

	text, err := s.relay.Generate(ctx, content, history)
	if err != nil {
		s.log.Error("Relay call failed", "conversation", target, "error", err)
		text = fmt.Sprintf("I was unable to get a response: %v. Please try again in a moment.", err)
	}
	s.repository.Append(target, domain.NewAssistantMessage(text))
	return target
}

// Pending reports whether any dispatch against the conversation is still in
// flight. State is keyed per dispatch token, so waiting in one conversation
// never shows as loading in another.
func (s *ChatService) Pending(conversationID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, target := range s.inFlight {
		if target == conversationID {
			return true
		}
	}
	return false
}

// historyBefore snapshots the target's turns up to, and excluding, the
// message being dispatched; the relay appends the prompt itself, so sending
// it in the history would duplicate it upstream.
func (s *ChatService) historyBefore(conversationID, messageID uuid.UUID) []domain.Turn {
	conversation, ok := s.repository.Get(conversationID)
	if !ok {
		return nil
	}
	var turns []domain.Turn
	for _, m := range conversation.Messages {
		if m.ID == messageID {
			break
		}
		turns = append(turns, m.Turn())
	}
	return turns
}

func (s *ChatService) track(token, target uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight[token] = target
}

func (s *ChatService) untrack(token uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, token)
}
