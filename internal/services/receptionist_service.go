package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"showroom/internal/core"
	"showroom/internal/receptionist"
	"showroom/internal/repository"

	"github.com/google/uuid"
)

var ErrUnknownQuickAction = errors.New("unknown quick action")

const maxChatMessageLength = 500

var ErrChatMessageTooLong = fmt.Errorf("message too long (max %d characters)", maxChatMessageLength)

// ReceptionistService runs the canned-response chat and keeps its history.
type ReceptionistService struct {
	history *repository.ChatHistoryRepository
	clock   Clock
}

func NewReceptionistService(history *repository.ChatHistoryRepository, clock Clock) *ReceptionistService {
	return &ReceptionistService{history: history, clock: clock}
}

// Send answers text and stores both sides of the exchange.
func (s *ReceptionistService) Send(ctx context.Context, visitor, text string) ([]core.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalid(core.ErrEmptyMessage)
	}
	if len(text) > maxChatMessageLength {
		return nil, invalid(ErrChatMessageTooLong)
	}
	intent, answer := receptionist.Reply(text)
	return s.exchange(ctx, visitor, text, intent, answer)
}

// QuickAction posts the action's prompt and answers with its intent.
func (s *ReceptionistService) QuickAction(ctx context.Context, visitor, id string) ([]core.ChatMessage, error) {
	qa, ok := receptionist.LookupQuickAction(id)
	if !ok {
		return nil, invalid(fmt.Errorf("%w: %q", ErrUnknownQuickAction, id))
	}
	return s.exchange(ctx, visitor, qa.Prompt, qa.Intent, receptionist.Respond(qa.Intent))
}

func (s *ReceptionistService) exchange(ctx context.Context, visitor, text string, intent receptionist.Intent, answer string) ([]core.ChatMessage, error) {
	now := s.clock.now().UTC()
	msgs := []core.ChatMessage{
		{ID: uuid.NewString(), Content: text, Sender: core.SenderUser, Timestamp: now},
		{ID: uuid.NewString(), Content: answer, Sender: core.SenderAssistant, Intent: string(intent), Timestamp: now},
	}
	if err := s.history.Append(ctx, visitor, msgs...); err != nil {
		return nil, fmt.Errorf("save chat: %w", err)
	}
	return msgs, nil
}

// History returns the stored conversation, or just the greeting when there
// is none yet. The greeting is not stored.
func (s *ReceptionistService) History(ctx context.Context, visitor string) ([]core.ChatMessage, error) {
	msgs, err := s.history.List(ctx, visitor)
	if err != nil {
		return nil, err
	}
	if len(msgs) > 0 {
		return msgs, nil
	}
	return []core.ChatMessage{{
		ID:        "greeting",
		Content:   receptionist.Greeting(),
		Sender:    core.SenderAssistant,
		Intent:    string(receptionist.IntentGreeting),
		Timestamp: s.clock.now().UTC(),
	}}, nil
}

func (s *ReceptionistService) Clear(ctx context.Context, visitor string) error {
	return s.history.Clear(ctx, visitor)
}

func (s *ReceptionistService) QuickActions() []receptionist.QuickAction {
	return receptionist.QuickActions()
}
