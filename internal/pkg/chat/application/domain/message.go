package chat

import (
	"errors"
	"strings"
	"time"
)

// MessageKind tells whether a message carries text or a file reference.
type MessageKind string

const (
	KindText MessageKind = "text"
	KindFile MessageKind = "file"
)

// Domain-level errors for message content rules.
var (
	ErrEmptyMessage      = errors.New("chat: empty message (no body or file)")
	ErrAmbiguousContent  = errors.New("chat: message carries both body and file")
	ErrIncompleteFileRef = errors.New("chat: file reference missing path or name")
)

// FileRef points at an already-uploaded attachment. Upload and validation of
// the file itself happen outside this core.
type FileRef struct {
	Path     string `db:"file_path" json:"path"`
	Name     string `db:"file_name" json:"name"`
	Size     int64  `db:"file_size" json:"size"`
	MimeType string `db:"file_mime" json:"mimeType"`
}

// MessageContent is the validated payload of a message: exactly one of Body
// or File is set.
type MessageContent struct {
	Body *string
	File *FileRef
}

// Kind reports the message kind implied by the content.
func (c MessageContent) Kind() MessageKind {
	if c.File != nil {
		return KindFile
	}
	return KindText
}

// NewContent normalizes and validates raw message input. A whitespace-only
// body counts as absent.
func NewContent(body *string, file *FileRef) (MessageContent, error) {
	if body != nil {
		trimmed := strings.TrimSpace(*body)
		if trimmed == "" {
			body = nil
		} else {
			body = &trimmed
		}
	}

	switch {
	case body == nil && file == nil:
		return MessageContent{}, ErrEmptyMessage
	case body != nil && file != nil:
		return MessageContent{}, ErrAmbiguousContent
	}

	if file != nil && (file.Path == "" || file.Name == "") {
		return MessageContent{}, ErrIncompleteFileRef
	}

	return MessageContent{Body: body, File: file}, nil
}

// Message is an immutable log entry in a conversation. ID and SentAt are
// store-assigned; client timestamps are never trusted. The Sender* display
// fields are join-derived for responses and live delivery, not stored on the
// message row.
type Message struct {
	ID              int64       `db:"id"`
	ConversationKey string      `db:"conversation_key"`
	SenderUsername  string      `db:"sender_username"`
	Kind            MessageKind `db:"-"`
	Body            *string     `db:"body"`
	File            *FileRef    `db:"-"`
	SentAt          time.Time   `db:"sent_at"`
	ReadAt          *time.Time  `db:"read_at"`

	SenderDisplayName string  `db:"-"`
	SenderAvatarURL   *string `db:"-"`
}

// Preview returns a short human-readable stand-in for the message content,
// used as the push notification body.
func (m *Message) Preview() string {
	if m.Body != nil {
		return *m.Body
	}
	if m.File != nil {
		return m.File.Name
	}
	return ""
}
