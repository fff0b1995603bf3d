package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	cacheport "go-huddle/internal/infrastructure/cache/port"
)

// Event names the hub emits on its own behalf. Message events are published
// through PublishToUser by the send pipeline.
const (
	EventUserTyping        = "user_typing"
	EventUserStatusChanged = "user_status_changed"
	EventConnected         = "connected"
)

const lastSeenTTL = 30 * 24 * time.Hour

// Session is one live client attachment, addressable by id and owned by a
// user. The websocket Connection implements it in production; tests supply
// fakes.
type Session interface {
	ID() string
	UserID() int64
	Send(payload []byte) error
}

type envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type statusPayload struct {
	UserID   int64 `json:"userId"`
	IsOnline bool  `json:"isOnline"`
}

type typingPayload struct {
	UserID   int64  `json:"userId"`
	UserName string `json:"userName"`
	IsTyping bool   `json:"isTyping"`
}

// Hub routes outbound events to live sessions. A user's sessions form a
// delivery group so every device receives a published event exactly once.
// Publishing to a user with no sessions is a normal no-op; that silence is
// what triggers push fanout upstream.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]Session
	groups   map[int64]map[string]Session

	presence *PresenceTable
	lastSeen cacheport.Cache // optional, advisory
	log      *zap.Logger
}

// NewHub constructs an empty Hub. lastSeen may be nil, in which case no
// advisory last-seen timestamps are recorded.
func NewHub(presence *PresenceTable, lastSeen cacheport.Cache, log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		sessions: make(map[string]Session),
		groups:   make(map[int64]map[string]Session),
		presence: presence,
		lastSeen: lastSeen,
		log:      log,
	}
}

// Join registers the session into its user's delivery group. When this is the
// user's first live session, every other connected user is told the user came
// online.
func (h *Hub) Join(sess Session) {
	userID := sess.UserID()

	h.mu.Lock()
	h.sessions[sess.ID()] = sess
	group := h.groups[userID]
	if group == nil {
		group = make(map[string]Session)
		h.groups[userID] = group
	}
	group[sess.ID()] = sess
	h.mu.Unlock()

	if h.presence.Add(userID, sess.ID()) {
		h.broadcastExcept(userID, EventUserStatusChanged, statusPayload{UserID: userID, IsOnline: true})
	}
}

// Leave is the symmetric teardown, also invoked implicitly when a connection
// drops. When the user's last session goes away the offline status is
// broadcast and an advisory last-seen timestamp recorded.
func (h *Hub) Leave(sessionID string) {
	h.mu.Lock()
	sess, tracked := h.sessions[sessionID]
	if tracked {
		delete(h.sessions, sessionID)
		userID := sess.UserID()
		if group := h.groups[userID]; group != nil {
			delete(group, sessionID)
			if len(group) == 0 {
				delete(h.groups, userID)
			}
		}
	}
	h.mu.Unlock()

	userID, becameOffline, ok := h.presence.Remove(sessionID)
	if ok && becameOffline {
		h.broadcastExcept(userID, EventUserStatusChanged, statusPayload{UserID: userID, IsOnline: false})
		h.touchLastSeen(userID)
	}
}

// PublishToUser delivers an event to every live session of the user and
// returns how many sessions were written. Zero sessions is the expected
// "user is offline" case, not an error.
func (h *Hub) PublishToUser(userID int64, event string, data any) int {
	payload, err := json.Marshal(envelope{Type: event, Data: data})
	if err != nil {
		h.log.Error("encode event", zap.String("event", event), zap.Error(err))
		return 0
	}

	h.mu.RLock()
	targets := make([]Session, 0, len(h.groups[userID]))
	for _, sess := range h.groups[userID] {
		targets = append(targets, sess)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, sess := range targets {
		if err := sess.Send(payload); err == nil {
			delivered++
		}
	}
	return delivered
}

// PublishTyping broadcasts a typing indicator to everyone except the typist's
// own sessions. Fire-and-forget: no persistence, no delivery guarantee.
func (h *Hub) PublishTyping(userID int64, userName string, isTyping bool) {
	h.broadcastExcept(userID, EventUserTyping, typingPayload{
		UserID:   userID,
		UserName: userName,
		IsTyping: isTyping,
	})
}

// IsOnline exposes the presence table to callers holding only the hub.
func (h *Hub) IsOnline(userID int64) bool {
	return h.presence.IsOnline(userID)
}

// OnlineUserIDs snapshots the currently online users, used for the connect
// handshake roster.
func (h *Hub) OnlineUserIDs() []int64 {
	return h.presence.OnlineUserIDs()
}

// LastSeen reads back the advisory last-seen timestamp recorded when the
// user's final session dropped. ok is false when no record exists, the value
// expired, or no cache is configured.
func (h *Hub) LastSeen(userID int64) (time.Time, bool) {
	if h.lastSeen == nil {
		return time.Time{}, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	key := "lastseen:" + strconv.FormatInt(userID, 10)
	raw, err := h.lastSeen.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cacheport.ErrMiss) {
			h.log.Warn("read last seen", zap.Int64("user_id", userID), zap.Error(err))
		}
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// Close clears hub state. Connection shutdown is owned by the transport layer.
func (h *Hub) Close() {
	h.mu.Lock()
	h.sessions = make(map[string]Session)
	h.groups = make(map[int64]map[string]Session)
	h.mu.Unlock()
}

func (h *Hub) broadcastExcept(excludeUserID int64, event string, data any) {
	payload, err := json.Marshal(envelope{Type: event, Data: data})
	if err != nil {
		h.log.Error("encode event", zap.String("event", event), zap.Error(err))
		return
	}

	h.mu.RLock()
	targets := make([]Session, 0, len(h.sessions))
	for _, sess := range h.sessions {
		if sess.UserID() == excludeUserID {
			continue
		}
		targets = append(targets, sess)
	}
	h.mu.RUnlock()

	for _, sess := range targets {
		_ = sess.Send(payload)
	}
}

func (h *Hub) touchLastSeen(userID int64) {
	if h.lastSeen == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	key := "lastseen:" + strconv.FormatInt(userID, 10)
	if err := h.lastSeen.Set(ctx, key, time.Now().UTC().Format(time.RFC3339), lastSeenTTL); err != nil {
		h.log.Warn("record last seen", zap.Int64("user_id", userID), zap.Error(err))
	}
}
