package chat

import (
	"sort"
	"strings"
	"time"
)

// Conversation represents a 1:1 thread between two users, identified by the
// canonical key of its unordered participant pair.
type Conversation struct {
	Key       string    `db:"key"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// PairKey derives the canonical conversation key for two usernames.
// The handles are sorted lexicographically before joining, so both
// participants compute the same key no matter who sends first.
func PairKey(a, b string) string {
	pair := []string{a, b}
	sort.Strings(pair)
	return strings.Join(pair, ":")
}
