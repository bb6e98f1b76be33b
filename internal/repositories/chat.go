package repositories

import (
	"context"
	"log/slog"
	"time"

	"github.com/pawalert/pawalert/internal/errors"
	"github.com/pawalert/pawalert/internal/models"
	"github.com/pawalert/pawalert/internal/sqlite"
)

// maxTranscriptLength bounds the stored transcript per session. Sessions are
// short-lived, but an unbounded transcript would still grow on every message.
const maxTranscriptLength = 50

type ChatRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func NewChatRepository(db *sqlite.Database, logger *slog.Logger) *ChatRepository {
	return &ChatRepository{
		db:     db,
		logger: logger.With("source", "ChatRepository"),
	}
}

// Append adds a message to the end of the session's transcript and trims
// entries beyond the transcript cap, oldest first.
func (r *ChatRepository) Append(
	ctx context.Context,
	sessionID string,
	speaker models.ChatSpeaker,
	text string,
) error {
	stmt := `INSERT INTO chat_messages (session_id, speaker, text, created_at) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ReadWrite.ExecContext(ctx, stmt, sessionID, speaker, text, time.Now().UTC()); err != nil {
		return errors.Wrap(err, "insert chat message")
	}

	stmt = `DELETE FROM chat_messages
	WHERE session_id = ?
	  AND id NOT IN (SELECT id FROM chat_messages WHERE session_id = ? ORDER BY id DESC LIMIT ?)`
	if _, err := r.db.ReadWrite.ExecContext(ctx, stmt, sessionID, sessionID, maxTranscriptLength); err != nil {
		return errors.Wrap(err, "trim chat transcript")
	}
	return nil
}

// List returns the session's transcript in chronological order.
func (r *ChatRepository) List(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	stmt := `SELECT id, speaker, text, created_at FROM chat_messages WHERE session_id = ? ORDER BY id`
	if err := r.db.ReadOnly.SelectContext(ctx, &messages, stmt, sessionID); err != nil {
		return nil, errors.Wrap(err, "list chat messages")
	}
	return messages, nil
}

// Window returns the last n messages of the transcript in chronological order.
func (r *ChatRepository) Window(ctx context.Context, sessionID string, n int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	stmt := `SELECT id, speaker, text, created_at FROM (
		SELECT id, speaker, text, created_at FROM chat_messages WHERE session_id = ? ORDER BY id DESC LIMIT ?
	) ORDER BY id`
	if err := r.db.ReadOnly.SelectContext(ctx, &messages, stmt, sessionID, n); err != nil {
		return nil, errors.Wrap(err, "window chat messages")
	}
	return messages, nil
}
