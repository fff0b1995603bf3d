package task

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	qport "go-huddle/internal/infrastructure/queue/port"
	push "go-huddle/internal/pkg/push/application/domain"
	"go-huddle/internal/pkg/push/application/usecase"
)

// NotifyUserTaskType is the queue task name for push notification fanout.
const NotifyUserTaskType = "push:notify_user"

// NotifyUserTaskPayload is the JSON payload transported via the queue.
type NotifyUserTaskPayload struct {
	UserID       int64             `json:"userId"`
	Notification push.Notification `json:"notification"`
}

// RegisterNotifyUserTask binds the fanout handler to the provided server.
// The handler never signals retry: push is strictly best-effort and a failed
// fanout is retried naturally by the next message.
func RegisterNotifyUserTask(srv qport.Server, uc *usecase.NotifyUserUseCase) {
	srv.Register(NotifyUserTaskType, func(ctx context.Context, t qport.Task) error {
		var p NotifyUserTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload: drop, nothing to salvage
			return nil
		}

		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		uc.Execute(ctx, p.UserID, p.Notification)
		return nil
	})
}

// QueueDispatcher hands fanout jobs to the background queue. Enqueueing is
// fast and the worker completes the attempts off the request path.
type QueueDispatcher struct {
	Client qport.Client
	Log    *zap.Logger
}

func NewQueueDispatcher(client qport.Client, log *zap.Logger) *QueueDispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &QueueDispatcher{Client: client, Log: log}
}

func (d *QueueDispatcher) Dispatch(userID int64, n push.Notification) {
	payload, err := json.Marshal(NotifyUserTaskPayload{UserID: userID, Notification: n})
	if err != nil {
		d.Log.Error("encode push task", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	// NoRetry: best-effort delivery, no replay of failed fanouts.
	_, err = d.Client.Enqueue(ctx, qport.Task{Type: NotifyUserTaskType, Payload: payload},
		qport.EnqueueOption{Queue: "push", NoRetry: true})
	if err != nil {
		d.Log.Warn("enqueue push task", zap.Int64("user_id", userID), zap.Error(err))
	}
}
