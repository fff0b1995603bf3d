package port

import (
	"context"
	"errors"

	push "go-huddle/internal/pkg/push/application/domain"
)

// ErrEndpointGone signals that the push provider reported the endpoint as
// permanently invalid (HTTP 404/410). The subscription should be pruned;
// every other failure is transient and the subscription kept.
var ErrEndpointGone = errors.New("webpush: endpoint gone")

// Sender delivers one encrypted payload to one subscription endpoint.
// Implementations hold the process-wide signing identity configured at
// startup.
type Sender interface {
	// Send attempts delivery and classifies the outcome: nil on success,
	// ErrEndpointGone for permanently dead endpoints, any other error for
	// transient failures.
	Send(ctx context.Context, sub push.Subscription, payload []byte) error

	// PublicKey returns the signing public key clients need to subscribe.
	PublicKey() string
}
