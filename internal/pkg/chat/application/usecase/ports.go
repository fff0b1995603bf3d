package usecase

import (
	chat "go-huddle/internal/pkg/chat/application/domain"
	push "go-huddle/internal/pkg/push/application/domain"
)

// Events published through Delivery by the send pipeline.
const (
	EventMessageSent     = "message_sent"
	EventMessageReceived = "message_received"
)

// Delivery publishes events to a user's live sessions and answers presence
// queries. The realtime hub implements it.
type Delivery interface {
	// PublishToUser sends to every live session of the user and returns how
	// many were written. Zero live sessions is a normal outcome, not an
	// error.
	PublishToUser(userID int64, event string, data any) int

	// IsOnline reports whether the user has at least one live session.
	IsOnline(userID int64) bool
}

// PushDispatcher hands a notification off for background fanout without
// blocking the caller.
type PushDispatcher interface {
	Dispatch(userID int64, n push.Notification)
}

// MessagePayload is the wire shape of a delivered message, shared by the
// realtime events and the HTTP response.
type MessagePayload struct {
	ID                int64         `json:"id"`
	ConversationKey   string        `json:"conversationKey"`
	SenderUsername    string        `json:"senderUsername"`
	SenderDisplayName string        `json:"senderDisplayName"`
	SenderAvatarURL   *string       `json:"senderAvatarUrl,omitempty"`
	Kind              string        `json:"kind"`
	Body              *string       `json:"body,omitempty"`
	File              *chat.FileRef `json:"file,omitempty"`
	SentAt            string        `json:"sentAt"`
}

// ToPayload converts a persisted message to its wire shape.
func ToPayload(m *chat.Message) MessagePayload {
	return MessagePayload{
		ID:                m.ID,
		ConversationKey:   m.ConversationKey,
		SenderUsername:    m.SenderUsername,
		SenderDisplayName: m.SenderDisplayName,
		SenderAvatarURL:   m.SenderAvatarURL,
		Kind:              string(m.Kind),
		Body:              m.Body,
		File:              m.File,
		SentAt:            m.SentAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
}
