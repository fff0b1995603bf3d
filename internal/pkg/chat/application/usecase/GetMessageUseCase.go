package usecase

import (
	"context"
	"fmt"

	chat "go-huddle/internal/pkg/chat/application/domain"
	repository "go-huddle/internal/pkg/chat/persistence/repository/port"
)

// GetMessageInput identifies a conversation by the requesting user and the
// peer they are talking to.
type GetMessageInput struct {
	RequesterUsername string
	PeerUsername      string
}

// GetMessageUseCase fetches the message history of a 1:1 conversation,
// ascending by (sentAt, id). A conversation that was never started yields an
// empty list, not an error.
type GetMessageUseCase struct {
	Repo repository.ChatRepository
}

func NewGetMessageUseCase(repo repository.ChatRepository) *GetMessageUseCase {
	return &GetMessageUseCase{Repo: repo}
}

func (uc *GetMessageUseCase) Execute(ctx context.Context, in GetMessageInput) ([]chat.Message, error) {
	if in.RequesterUsername == "" || in.PeerUsername == "" {
		return nil, fmt.Errorf("both participant usernames are required")
	}
	key := chat.PairKey(in.RequesterUsername, in.PeerUsername)
	msgs, err := uc.Repo.ListMessages(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return msgs, nil
}
