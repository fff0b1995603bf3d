package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	webpush "github.com/SherClockHolmes/webpush-go"

	wpport "go-huddle/internal/infrastructure/webpush/port"
	push "go-huddle/internal/pkg/push/application/domain"
)

// ErrNotConfigured signals that no signing keypair is present in the
// environment. Callers treat this as degraded mode, not a startup failure.
var ErrNotConfigured = errors.New("webpush: VAPID keys not configured")

const defaultTTL = 60

// WebPushSender implements port.Sender over the Web Push protocol with VAPID
// authentication.
type WebPushSender struct {
	publicKey  string
	privateKey string
	subject    string
}

// NewWebPushSenderFromEnv reads VAPID_PUBLIC_KEY, VAPID_PRIVATE_KEY and
// VAPID_SUBJECT. Returns ErrNotConfigured when the keypair is absent.
func NewWebPushSenderFromEnv() (*WebPushSender, error) {
	pub := os.Getenv("VAPID_PUBLIC_KEY")
	priv := os.Getenv("VAPID_PRIVATE_KEY")
	if pub == "" || priv == "" {
		return nil, ErrNotConfigured
	}
	subject := os.Getenv("VAPID_SUBJECT")
	if subject == "" {
		subject = "mailto:admin@localhost"
	}
	return &WebPushSender{publicKey: pub, privateKey: priv, subject: subject}, nil
}

// Ensure interface compliance at compile time
var _ wpport.Sender = (*WebPushSender)(nil)

func (s *WebPushSender) PublicKey() string { return s.publicKey }

func (s *WebPushSender) Send(ctx context.Context, sub push.Subscription, payload []byte) error {
	resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      s.subject,
		VAPIDPublicKey:  s.publicKey,
		VAPIDPrivateKey: s.privateKey,
		TTL:             defaultTTL,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return wpport.ErrEndpointGone
	case resp.StatusCode >= 400:
		return fmt.Errorf("webpush: provider responded %d", resp.StatusCode)
	}
	return nil
}
