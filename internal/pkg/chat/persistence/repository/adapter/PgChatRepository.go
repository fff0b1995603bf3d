package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	chat "go-huddle/internal/pkg/chat/application/domain"
	port "go-huddle/internal/pkg/chat/persistence/repository/port"
)

// PgChatRepository persists conversations and messages in Postgres.
type PgChatRepository struct {
	pool *pgxpool.Pool
}

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

// Ensure interface compliance at compile time
var _ port.ChatRepository = (*PgChatRepository)(nil)

func (r *PgChatRepository) EnsureConversation(ctx context.Context, userA, userB string) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgChatRepository: nil pool")
	}
	key := chat.PairKey(userA, userB)
	// ON CONFLICT DO NOTHING makes concurrent first-time sends race-safe:
	// whichever insert lands first wins, the other is a no-op.
	_, err := r.pool.Exec(ctx,
		"INSERT INTO conversations (key) VALUES ($1) ON CONFLICT (key) DO NOTHING",
		key,
	)
	if err != nil {
		return "", err
	}
	return key, nil
}

func (r *PgChatRepository) AppendMessage(ctx context.Context, conversationKey string, senderUsername string, content chat.MessageContent) (*chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}

	var (
		filePath *string
		fileName *string
		fileSize *int64
		fileMime *string
	)
	if content.File != nil {
		filePath = &content.File.Path
		fileName = &content.File.Name
		fileSize = &content.File.Size
		fileMime = &content.File.MimeType
	}

	msg := chat.Message{
		ConversationKey: conversationKey,
		SenderUsername:  senderUsername,
		Kind:            content.Kind(),
		Body:            content.Body,
		File:            content.File,
	}

	// Single round trip: insert the row, bump the conversation watermark,
	// and join the sender's display fields for the response.
	err := r.pool.QueryRow(ctx, `
		WITH ins AS (
			INSERT INTO messages (
				conversation_key, sender_username, body, file_path, file_name, file_size, file_mime
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, sent_at
		), bump AS (
			UPDATE conversations SET updated_at = now() WHERE key = $1
		)
		SELECT ins.id, ins.sent_at, u.display_name, u.avatar_url
		FROM ins
		JOIN users u ON u.username = $2
	`, conversationKey, senderUsername, content.Body, filePath, fileName, fileSize, fileMime).
		Scan(&msg.ID, &msg.SentAt, &msg.SenderDisplayName, &msg.SenderAvatarURL)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *PgChatRepository) ListMessages(ctx context.Context, conversationKey string) ([]chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT m.id, m.conversation_key, m.sender_username, m.body,
		       m.file_path, m.file_name, m.file_size, m.file_mime,
		       m.sent_at, m.read_at,
		       u.display_name, u.avatar_url
		FROM messages m
		JOIN users u ON u.username = m.sender_username
		WHERE m.conversation_key = $1
		ORDER BY m.sent_at ASC, m.id ASC
	`, conversationKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []chat.Message
	for rows.Next() {
		var (
			msg      chat.Message
			filePath *string
			fileName *string
			fileSize *int64
			fileMime *string
		)
		if err := rows.Scan(
			&msg.ID, &msg.ConversationKey, &msg.SenderUsername, &msg.Body,
			&filePath, &fileName, &fileSize, &fileMime,
			&msg.SentAt, &msg.ReadAt,
			&msg.SenderDisplayName, &msg.SenderAvatarURL,
		); err != nil {
			return nil, err
		}
		if filePath != nil {
			ref := chat.FileRef{Path: *filePath}
			if fileName != nil {
				ref.Name = *fileName
			}
			if fileSize != nil {
				ref.Size = *fileSize
			}
			if fileMime != nil {
				ref.MimeType = *fileMime
			}
			msg.File = &ref
			msg.Kind = chat.KindFile
		} else {
			msg.Kind = chat.KindText
		}
		msgs = append(msgs, msg)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return msgs, nil
}
