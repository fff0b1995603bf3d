package usecase

import (
	"context"
	"errors"
	"testing"

	wpport "go-huddle/internal/infrastructure/webpush/port"
	chat "go-huddle/internal/pkg/chat/application/domain"
	chatadapter "go-huddle/internal/pkg/chat/persistence/repository/adapter"
	push "go-huddle/internal/pkg/push/application/domain"
	pushusecase "go-huddle/internal/pkg/push/application/usecase"
	pushadapter "go-huddle/internal/pkg/push/persistence/repository/adapter"
	useradapter "go-huddle/internal/repository/adapter"
	userport "go-huddle/internal/repository/port"
)

// fakeDelivery records publishes and answers presence from a fixed set.
type fakeDelivery struct {
	online    map[int64]bool
	sessions  map[int64]int
	published []publishedEvent
}

type publishedEvent struct {
	userID int64
	event  string
	data   any
}

func newFakeDelivery() *fakeDelivery {
	return &fakeDelivery{online: make(map[int64]bool), sessions: make(map[int64]int)}
}

func (d *fakeDelivery) PublishToUser(userID int64, event string, data any) int {
	d.published = append(d.published, publishedEvent{userID: userID, event: event, data: data})
	return d.sessions[userID]
}

func (d *fakeDelivery) IsOnline(userID int64) bool { return d.online[userID] }

func (d *fakeDelivery) eventsFor(userID int64, event string) int {
	n := 0
	for _, p := range d.published {
		if p.userID == userID && p.event == event {
			n++
		}
	}
	return n
}

// recordingDispatcher captures dispatches without running a fanout.
type recordingDispatcher struct {
	calls []dispatchedPush
}

type dispatchedPush struct {
	userID int64
	n      push.Notification
}

func (d *recordingDispatcher) Dispatch(userID int64, n push.Notification) {
	d.calls = append(d.calls, dispatchedPush{userID: userID, n: n})
}

// syncDispatcher runs the fanout inline so tests can assert on its effects.
type syncDispatcher struct {
	uc *pushusecase.NotifyUserUseCase
}

func (d *syncDispatcher) Dispatch(userID int64, n push.Notification) {
	d.uc.Execute(context.Background(), userID, n)
}

// failingChatRepository errors out at a chosen stage of persistence.
type failingChatRepository struct {
	ensureErr error
	appendErr error
}

func (r *failingChatRepository) EnsureConversation(_ context.Context, a, b string) (string, error) {
	if r.ensureErr != nil {
		return "", r.ensureErr
	}
	return chat.PairKey(a, b), nil
}

func (r *failingChatRepository) AppendMessage(_ context.Context, _ string, _ string, _ chat.MessageContent) (*chat.Message, error) {
	return nil, r.appendErr
}

func (r *failingChatRepository) ListMessages(_ context.Context, _ string) ([]chat.Message, error) {
	return nil, nil
}

// goneSender reports one endpoint permanently dead.
type goneSender struct {
	deadEndpoint string
}

func (s *goneSender) Send(_ context.Context, sub push.Subscription, _ []byte) error {
	if sub.Endpoint == s.deadEndpoint {
		return wpport.ErrEndpointGone
	}
	return nil
}

func (s *goneSender) PublicKey() string { return "pk" }

func seedUsers(users *useradapter.MemoryUserRepository) {
	users.Seed(userport.User{ID: 1, Username: "wendy", DisplayName: "Wendy O"})
	users.Seed(userport.User{ID: 2, Username: "arif", DisplayName: "Arif K"})
}

func sendText(t *testing.T, uc *SendMessageUseCase, body string) *chat.Message {
	t.Helper()
	msg, err := uc.Execute(context.Background(), SendMessageInput{
		SenderID:          1,
		SenderUsername:    "wendy",
		RecipientUsername: "arif",
		Body:              &body,
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	return msg
}

func TestSendToOnlineRecipientSkipsPush(t *testing.T) {
	repo := chatadapter.NewMemoryChatRepository()
	repo.SeedProfile("wendy", "Wendy O", nil)
	users := useradapter.NewMemoryUserRepository()
	seedUsers(users)

	delivery := newFakeDelivery()
	delivery.online[2] = true
	delivery.sessions[2] = 1
	dispatcher := &recordingDispatcher{}

	uc := NewSendMessageUseCase(repo, users, delivery, dispatcher)
	msg := sendText(t, uc, "lunch?")

	if msg.ID == 0 || msg.SentAt.IsZero() {
		t.Fatal("message must be persisted with store-assigned fields")
	}
	if got := delivery.eventsFor(1, EventMessageSent); got != 1 {
		t.Fatalf("expected sender echo, got %d events", got)
	}
	if got := delivery.eventsFor(2, EventMessageReceived); got != 1 {
		t.Fatalf("expected recipient delivery, got %d events", got)
	}
	if len(dispatcher.calls) != 0 {
		t.Fatalf("online recipient must not trigger push, got %d dispatches", len(dispatcher.calls))
	}
}

func TestSendToOfflineRecipientDispatchesPush(t *testing.T) {
	repo := chatadapter.NewMemoryChatRepository()
	repo.SeedProfile("wendy", "Wendy O", nil)
	users := useradapter.NewMemoryUserRepository()
	seedUsers(users)

	delivery := newFakeDelivery() // arif offline
	dispatcher := &recordingDispatcher{}

	uc := NewSendMessageUseCase(repo, users, delivery, dispatcher)
	msg := sendText(t, uc, "you around?")

	if len(dispatcher.calls) != 1 {
		t.Fatalf("expected one push dispatch, got %d", len(dispatcher.calls))
	}
	call := dispatcher.calls[0]
	if call.userID != 2 {
		t.Fatalf("push must target the recipient, got user %d", call.userID)
	}
	if call.n.Title != "Wendy O" || call.n.Body != "you around?" {
		t.Fatalf("unexpected notification: %+v", call.n)
	}
	if call.n.Tag != msg.ConversationKey {
		t.Fatalf("notification tag should be the conversation key, got %q", call.n.Tag)
	}
}

func TestSendToOfflineRecipientPrunesDeadEndpoint(t *testing.T) {
	repo := chatadapter.NewMemoryChatRepository()
	repo.SeedProfile("wendy", "Wendy O", nil)
	users := useradapter.NewMemoryUserRepository()
	seedUsers(users)

	reg := pushadapter.NewMemorySubscriptionRegistry()
	ctx := context.Background()
	_ = reg.Upsert(ctx, 2, "https://push.example/dead", "k", "a", "")
	_ = reg.Upsert(ctx, 2, "https://push.example/live", "k", "a", "")

	notify := pushusecase.NewNotifyUserUseCase(reg, &goneSender{deadEndpoint: "https://push.example/dead"}, nil)
	delivery := newFakeDelivery() // arif offline

	uc := NewSendMessageUseCase(repo, users, delivery, &syncDispatcher{uc: notify})
	sendText(t, uc, "ping")

	subs, err := reg.ListForUser(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(subs) != 1 || subs[0].Endpoint != "https://push.example/live" {
		t.Fatalf("expected dead endpoint pruned and live kept, got %+v", subs)
	}
}

func TestSendRejectsUnknownRecipient(t *testing.T) {
	repo := chatadapter.NewMemoryChatRepository()
	users := useradapter.NewMemoryUserRepository()
	seedUsers(users)

	uc := NewSendMessageUseCase(repo, users, newFakeDelivery(), &recordingDispatcher{})
	body := "hello?"
	_, err := uc.Execute(context.Background(), SendMessageInput{
		SenderID:          1,
		SenderUsername:    "wendy",
		RecipientUsername: "nobody",
		Body:              &body,
	})
	if !errors.Is(err, ErrRecipientNotFound) {
		t.Fatalf("expected ErrRecipientNotFound, got %v", err)
	}
	if repo.ConversationCount() != 0 {
		t.Fatal("rejected send must leave no conversation behind")
	}
}

func TestSendRejectsSelfMessage(t *testing.T) {
	repo := chatadapter.NewMemoryChatRepository()
	users := useradapter.NewMemoryUserRepository()
	seedUsers(users)

	uc := NewSendMessageUseCase(repo, users, newFakeDelivery(), &recordingDispatcher{})
	body := "note to self"
	_, err := uc.Execute(context.Background(), SendMessageInput{
		SenderID:          1,
		SenderUsername:    "wendy",
		RecipientUsername: "wendy",
		Body:              &body,
	})
	if !errors.Is(err, ErrSelfMessage) {
		t.Fatalf("expected ErrSelfMessage, got %v", err)
	}
}

func TestSendRejectsInvalidContentBeforeSideEffects(t *testing.T) {
	repo := chatadapter.NewMemoryChatRepository()
	users := useradapter.NewMemoryUserRepository()
	seedUsers(users)
	delivery := newFakeDelivery()
	dispatcher := &recordingDispatcher{}

	uc := NewSendMessageUseCase(repo, users, delivery, dispatcher)
	_, err := uc.Execute(context.Background(), SendMessageInput{
		SenderID:          1,
		SenderUsername:    "wendy",
		RecipientUsername: "arif",
	})
	if !errors.Is(err, chat.ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if len(delivery.published) != 0 || len(dispatcher.calls) != 0 {
		t.Fatal("rejected send must have no delivery or push side effects")
	}
}

func TestSendFailsWhenStoreWriteFails(t *testing.T) {
	users := useradapter.NewMemoryUserRepository()
	seedUsers(users)
	delivery := newFakeDelivery()
	dispatcher := &recordingDispatcher{}
	repo := &failingChatRepository{appendErr: errors.New("connection reset")}

	uc := NewSendMessageUseCase(repo, users, delivery, dispatcher)
	body := "hello"
	_, err := uc.Execute(context.Background(), SendMessageInput{
		SenderID:          1,
		SenderUsername:    "wendy",
		RecipientUsername: "arif",
		Body:              &body,
	})
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	// A message that was never durably stored must never be delivered or
	// pushed.
	if len(delivery.published) != 0 {
		t.Fatalf("failed persist must publish nothing, got %d events", len(delivery.published))
	}
	if len(dispatcher.calls) != 0 {
		t.Fatalf("failed persist must dispatch no push, got %d calls", len(dispatcher.calls))
	}
}

func TestSendFailsWhenConversationCreateFails(t *testing.T) {
	users := useradapter.NewMemoryUserRepository()
	seedUsers(users)
	delivery := newFakeDelivery()
	dispatcher := &recordingDispatcher{}
	repo := &failingChatRepository{ensureErr: errors.New("relation missing")}

	uc := NewSendMessageUseCase(repo, users, delivery, dispatcher)
	body := "hello"
	_, err := uc.Execute(context.Background(), SendMessageInput{
		SenderID:          1,
		SenderUsername:    "wendy",
		RecipientUsername: "arif",
		Body:              &body,
	})
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if len(delivery.published) != 0 || len(dispatcher.calls) != 0 {
		t.Fatal("failed conversation create must have no side effects")
	}
}

func TestHistoryAfterSends(t *testing.T) {
	repo := chatadapter.NewMemoryChatRepository()
	repo.SeedProfile("wendy", "Wendy O", nil)
	users := useradapter.NewMemoryUserRepository()
	seedUsers(users)

	send := NewSendMessageUseCase(repo, users, newFakeDelivery(), nil)
	get := NewGetMessageUseCase(repo)

	sendText(t, send, "one")
	sendText(t, send, "two")

	msgs, err := get.Execute(context.Background(), GetMessageInput{
		RequesterUsername: "arif",
		PeerUsername:      "wendy",
	})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if *msgs[0].Body != "one" || *msgs[1].Body != "two" {
		t.Fatalf("history out of order: %q then %q", *msgs[0].Body, *msgs[1].Body)
	}
}
