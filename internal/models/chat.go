package models

import "time"

// ChatSpeaker identifies who produced a chat message.
type ChatSpeaker string

const (
	ChatSpeakerUser      ChatSpeaker = "user"
	ChatSpeakerAssistant ChatSpeaker = "assistant"
)

// ChatMessage is one entry of a session's append-only chat transcript.
type ChatMessage struct {
	ID        int64       `db:"id"`
	Speaker   ChatSpeaker `db:"speaker"`
	Text      string      `db:"text"`
	CreatedAt time.Time   `db:"created_at"`
}
