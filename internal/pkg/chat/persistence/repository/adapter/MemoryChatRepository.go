package adapter

import (
	"context"
	"sort"
	"sync"
	"time"

	chat "go-huddle/internal/pkg/chat/application/domain"
	port "go-huddle/internal/pkg/chat/persistence/repository/port"
)

type senderProfile struct {
	displayName string
	avatarURL   *string
}

// MemoryChatRepository is an in-memory ChatRepository with the same contract
// as the Postgres adapter. Used by tests.
type MemoryChatRepository struct {
	mu            sync.Mutex
	conversations map[string]chat.Conversation
	messages      map[string][]chat.Message
	profiles      map[string]senderProfile
	nextID        int64

	now func() time.Time
}

func NewMemoryChatRepository() *MemoryChatRepository {
	return &MemoryChatRepository{
		conversations: make(map[string]chat.Conversation),
		messages:      make(map[string][]chat.Message),
		profiles:      make(map[string]senderProfile),
		nextID:        1,
		now:           time.Now,
	}
}

// Ensure interface compliance at compile time
var _ port.ChatRepository = (*MemoryChatRepository)(nil)

// SeedProfile registers sender display fields for message enrichment.
func (r *MemoryChatRepository) SeedProfile(username, displayName string, avatarURL *string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[username] = senderProfile{displayName: displayName, avatarURL: avatarURL}
}

// SetClock overrides the timestamp source, letting tests control sent_at
// granularity.
func (r *MemoryChatRepository) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

// ConversationCount reports how many conversation records exist.
func (r *MemoryChatRepository) ConversationCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conversations)
}

func (r *MemoryChatRepository) EnsureConversation(_ context.Context, userA, userB string) (string, error) {
	key := chat.PairKey(userA, userB)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conversations[key]; !ok {
		ts := r.now()
		r.conversations[key] = chat.Conversation{Key: key, CreatedAt: ts, UpdatedAt: ts}
	}
	return key, nil
}

func (r *MemoryChatRepository) AppendMessage(_ context.Context, conversationKey string, senderUsername string, content chat.MessageContent) (*chat.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg := chat.Message{
		ID:              r.nextID,
		ConversationKey: conversationKey,
		SenderUsername:  senderUsername,
		Kind:            content.Kind(),
		Body:            content.Body,
		File:            content.File,
		SentAt:          r.now(),
	}
	r.nextID++

	if p, ok := r.profiles[senderUsername]; ok {
		msg.SenderDisplayName = p.displayName
		msg.SenderAvatarURL = p.avatarURL
	} else {
		msg.SenderDisplayName = senderUsername
	}

	r.messages[conversationKey] = append(r.messages[conversationKey], msg)

	if conv, ok := r.conversations[conversationKey]; ok {
		conv.UpdatedAt = msg.SentAt
		r.conversations[conversationKey] = conv
	}

	out := msg
	return &out, nil
}

func (r *MemoryChatRepository) ListMessages(_ context.Context, conversationKey string) ([]chat.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msgs := make([]chat.Message, len(r.messages[conversationKey]))
	copy(msgs, r.messages[conversationKey])
	sort.SliceStable(msgs, func(i, j int) bool {
		if !msgs[i].SentAt.Equal(msgs[j].SentAt) {
			return msgs[i].SentAt.Before(msgs[j].SentAt)
		}
		return msgs[i].ID < msgs[j].ID
	})
	return msgs, nil
}
