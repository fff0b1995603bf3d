package push

import "time"

// Subscription is one browser/device push endpoint belonging to a user. The
// endpoint URL is the natural key: re-subscribing from the same browser under
// a different logged-in user overwrites the row rather than duplicating it.
type Subscription struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Endpoint  string    `db:"endpoint"`
	P256dh    string    `db:"p256dh"`
	Auth      string    `db:"auth"`
	UserAgent string    `db:"user_agent"`
	CreatedAt time.Time `db:"created_at"`
}

// Notification is the payload shown by the service worker on the receiving
// device.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Icon  string `json:"icon,omitempty"`
	Tag   string `json:"tag,omitempty"`
}
