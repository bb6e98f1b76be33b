package repositories_test

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/pawalert/pawalert/internal/models"
	"github.com/pawalert/pawalert/internal/repositories"
	"github.com/pawalert/pawalert/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

func TestChatRepository_AppendAndList(t *testing.T) {
	db := newTestDB(t)
	logger := testhelpers.NewLogger(io.Discard)
	repo := repositories.NewChatRepository(db, logger)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, "session-a", models.ChatSpeakerUser, "Is the dog going to be okay?"))
	require.NoError(t, repo.Append(ctx, "session-a", models.ChatSpeakerAssistant, "The responders are on their way."))
	require.NoError(t, repo.Append(ctx, "session-b", models.ChatSpeakerUser, "Hello from another session"))

	messages, err := repo.List(ctx, "session-a")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	require.Equal(t, models.ChatSpeakerUser, messages[0].Speaker)
	require.Equal(t, "Is the dog going to be okay?", messages[0].Text)
	require.Equal(t, models.ChatSpeakerAssistant, messages[1].Speaker)

	messages, err = repo.List(ctx, "session-b")
	require.NoError(t, err)
	require.Len(t, messages, 1, "transcripts are per session")
}

func TestChatRepository_Window(t *testing.T) {
	db := newTestDB(t)
	logger := testhelpers.NewLogger(io.Discard)
	repo := repositories.NewChatRepository(db, logger)
	ctx := context.Background()

	for i := 1; i <= 8; i++ {
		require.NoError(t, repo.Append(ctx, "session-a", models.ChatSpeakerUser, fmt.Sprintf("message %d", i)))
	}

	window, err := repo.Window(ctx, "session-a", 5)
	require.NoError(t, err)
	require.Len(t, window, 5)
	require.Equal(t, "message 4", window[0].Text, "window keeps the most recent messages")
	require.Equal(t, "message 8", window[4].Text, "window is in chronological order")

	t.Run("window larger than transcript", func(t *testing.T) {
		window, err := repo.Window(ctx, "session-a", 100)
		require.NoError(t, err)
		require.Len(t, window, 8)
	})
}

func TestChatRepository_TrimsTranscript(t *testing.T) {
	db := newTestDB(t)
	logger := testhelpers.NewLogger(io.Discard)
	repo := repositories.NewChatRepository(db, logger)
	ctx := context.Background()

	for i := 1; i <= 60; i++ {
		require.NoError(t, repo.Append(ctx, "session-a", models.ChatSpeakerUser, fmt.Sprintf("message %d", i)))
	}

	messages, err := repo.List(ctx, "session-a")
	require.NoError(t, err)
	require.Len(t, messages, 50, "transcript is capped")
	require.Equal(t, "message 11", messages[0].Text, "oldest messages are trimmed first")
	require.Equal(t, "message 60", messages[49].Text)
}
