package main

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_application_chat(t *testing.T) {
	t.Parallel()
	server := startTestServer(t, "The responders should arrive within the hour.")
	ctx := context.Background()

	doc, err := server.Client().GetDoc(ctx, "/chat")
	require.NoError(t, err)
	require.Contains(t, doc.Find(".chat-transcript").Text(), "Hi! Ask me anything",
		"the empty transcript shows the greeting")
	require.Zero(t, doc.Find(".chat-transcript li.user").Length())

	doc, err = server.Client().SubmitFormDoc(ctx, doc, "/chat",
		url.Values{"message": {"Is the dog going to be okay?"}})
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find(".chat-transcript li.user").Length())
	require.Equal(t, 1, doc.Find(".chat-transcript li.assistant").Length())
	require.Contains(t, doc.Text(), "Is the dog going to be okay?")
	require.Contains(t, doc.Text(), "The responders should arrive within the hour.")

	t.Run("the transcript survives a reload", func(t *testing.T) {
		doc, err := server.Client().GetDoc(ctx, "/chat")
		require.NoError(t, err)
		require.Equal(t, 1, doc.Find(".chat-transcript li.user").Length())
		require.Equal(t, 1, doc.Find(".chat-transcript li.assistant").Length())
	})
}

func Test_application_chat_collaboratorFailure(t *testing.T) {
	t.Parallel()
	server := startTestServerWithFailingCollaborator(t)
	ctx := context.Background()

	doc, err := server.Client().SubmitForm(ctx, "/chat", "/chat",
		url.Values{"message": {"Hello?"}})
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find(".chat-transcript li.assistant").Length(),
		"the failed reply is stored as the assistant turn")
	require.Contains(t, doc.Text(), "the assistant is unavailable right now")
}

func Test_application_openCaseChat(t *testing.T) {
	t.Parallel()
	server := startTestServer(t, "ok")
	ctx := context.Background()

	_, err := server.Client().SubmitForm(ctx, "/report/injury", "/report/injury", injuryFormValues())
	require.NoError(t, err)

	statusDoc, err := server.Client().GetDoc(ctx, "/status")
	require.NoError(t, err)

	// Submitting the case's chat form redirects to the chat screen with the
	// case as the active subject.
	chatDoc, err := server.Client().SubmitFormDoc(ctx, statusDoc, "/cases/INJ1001/chat", nil)
	require.NoError(t, err)
	require.Contains(t, chatDoc.Text(), "Discussing case")
	require.Contains(t, chatDoc.Text(), "INJ1001")
}
