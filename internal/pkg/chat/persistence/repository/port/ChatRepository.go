package repository

import (
	"context"

	chat "go-huddle/internal/pkg/chat/application/domain"
)

// ChatRepository defines persistence operations for conversations and their
// message log.
type ChatRepository interface {
	// EnsureConversation computes the canonical key for the unordered pair
	// and inserts the conversation row if absent. Idempotent and safe under
	// concurrent first-time calls from both participants: first writer wins,
	// the second call is a no-op. Always returns the key.
	EnsureConversation(ctx context.Context, userA, userB string) (string, error)

	// AppendMessage persists a message with a store-assigned id and server
	// timestamp, bumps the conversation's updated_at, and returns the record
	// enriched with the sender's display fields.
	AppendMessage(ctx context.Context, conversationKey string, senderUsername string, content chat.MessageContent) (*chat.Message, error)

	// ListMessages returns the conversation's messages ascending by
	// (sent_at, id). sent_at alone is not unique; the id breaks ties.
	ListMessages(ctx context.Context, conversationKey string) ([]chat.Message, error)
}
