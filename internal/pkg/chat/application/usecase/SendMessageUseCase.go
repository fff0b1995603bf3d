package usecase

import (
	"context"
	"errors"
	"fmt"

	chat "go-huddle/internal/pkg/chat/application/domain"
	repository "go-huddle/internal/pkg/chat/persistence/repository/port"
	push "go-huddle/internal/pkg/push/application/domain"
	userport "go-huddle/internal/repository/port"
)

// SendMessageInput carries one outbound message. Sender identity comes from
// the authenticated request; client timestamps are never accepted.
type SendMessageInput struct {
	SenderID          int64
	SenderUsername    string
	RecipientUsername string
	Body              *string
	File              *chat.FileRef
}

// SendMessageUseCase is the pipeline that turns one send into a durable
// record, live delivery, and a best-effort push. Persistence is the single
// source of truth: its failure fails the request, while everything downstream
// is additive over an already-durable fact and may partially fail silently.
type SendMessageUseCase struct {
	Repo       repository.ChatRepository
	Users      userport.UserRepository
	Delivery   Delivery
	Dispatcher PushDispatcher // optional
}

func NewSendMessageUseCase(repo repository.ChatRepository, users userport.UserRepository, delivery Delivery, dispatcher PushDispatcher) *SendMessageUseCase {
	return &SendMessageUseCase{Repo: repo, Users: users, Delivery: delivery, Dispatcher: dispatcher}
}

// Execute runs validate -> persist -> deliver -> maybe-notify and returns the
// persisted message.
func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*chat.Message, error) {
	// Rejected-before-persist path: no side effects at all.
	content, err := chat.NewContent(in.Body, in.File)
	if err != nil {
		return nil, err
	}
	if in.RecipientUsername == in.SenderUsername {
		return nil, ErrSelfMessage
	}
	recipient, err := uc.Users.FindByUsername(ctx, in.RecipientUsername)
	if errors.Is(err, userport.ErrUserNotFound) {
		return nil, ErrRecipientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// Persist. Nothing downstream runs on failure: a message that is not
	// durably stored must never be shown as delivered.
	key, err := uc.Repo.EnsureConversation(ctx, in.SenderUsername, recipient.Username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	msg, err := uc.Repo.AppendMessage(ctx, key, in.SenderUsername, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// Live delivery: echo to the sender's other devices, deliver to the
	// recipient's devices. Best-effort over a durable fact.
	payload := ToPayload(msg)
	uc.Delivery.PublishToUser(in.SenderID, EventMessageSent, payload)
	uc.Delivery.PublishToUser(recipient.ID, EventMessageReceived, payload)

	// Push only when the recipient has no live session; the response does
	// not wait for the fanout.
	if uc.Dispatcher != nil && !uc.Delivery.IsOnline(recipient.ID) {
		uc.Dispatcher.Dispatch(recipient.ID, push.Notification{
			Title: msg.SenderDisplayName,
			Body:  msg.Preview(),
			Tag:   msg.ConversationKey,
		})
	}

	return msg, nil
}
