package repository

import (
	"context"

	"showroom/internal/core"
	"showroom/internal/storage"
)

// ChatHistoryRepository stores the receptionist conversation in chronological
// order, trimmed to the most recent capacity messages.
type ChatHistoryRepository struct {
	*base
	capacity int
}

func (r *ChatHistoryRepository) List(ctx context.Context, visitor string) ([]core.ChatMessage, error) {
	return readList[core.ChatMessage](ctx, r.base, visitor, storage.BucketChatHistory)
}

// Append adds messages to the end of the conversation.
func (r *ChatHistoryRepository) Append(ctx context.Context, visitor string, msgs ...core.ChatMessage) error {
	if len(msgs) == 0 {
		return nil
	}
	unlock := r.lock(visitor, storage.BucketChatHistory)
	defer unlock()

	history, err := readList[core.ChatMessage](ctx, r.base, visitor, storage.BucketChatHistory)
	if err != nil {
		return err
	}
	history = append(history, msgs...)
	if over := len(history) - r.capacity; over > 0 {
		history = history[over:]
	}
	return writeList(ctx, r.base, visitor, storage.BucketChatHistory, history)
}

func (r *ChatHistoryRepository) Clear(ctx context.Context, visitor string) error {
	unlock := r.lock(visitor, storage.BucketChatHistory)
	defer unlock()
	return r.remove(ctx, visitor, storage.BucketChatHistory)
}
