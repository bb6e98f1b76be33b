package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pawalert/pawalert/internal/e2etest"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCollaboratorStub serves OpenAI-compatible chat completions with a fixed
// reply so the tests never talk to the real API.
func newCollaboratorStub(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response := openai.ChatCompletionResponse{ //nolint:exhaustruct // only the choices matter
			Choices: []openai.ChatCompletionChoice{
				{ //nolint:exhaustruct
					Message: openai.ChatCompletionMessage{ //nolint:exhaustruct
						Role:    openai.ChatMessageRoleAssistant,
						Content: reply,
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(response)
		assert.NoError(t, err)
	}))
	t.Cleanup(server.Close)
	return server
}

// newFailingCollaboratorStub serves errors so the tests can exercise the
// degraded paths.
func newFailingCollaboratorStub(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": {"message": "stubbed outage"}}`, http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)
	return server
}

func testLookupEnv(collaboratorURL string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		switch key {
		case "PAWALERT_ADDR":
			return "localhost:0", true
		case "PAWALERT_SQLITE_URL":
			return ":memory:", true
		case "PAWALERT_PPROF_PORT":
			// An ephemeral port so that parallel tests don't clash.
			return ":0", true
		case "OPENAI_API_KEY":
			return "test-api-key", true
		case "PAWALERT_OPENAI_BASE_URL":
			return collaboratorURL + "/v1", true
		default:
			return "", false
		}
	}
}

// startTestServer starts the server against a collaborator stub that answers
// every completion with reply.
func startTestServer(t *testing.T, reply string) *e2etest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	stub := newCollaboratorStub(t, reply)
	server, err := e2etest.StartServer(ctx, io.Discard, testLookupEnv(stub.URL), run)
	require.NoError(t, err)
	return server
}

// startTestServerWithFailingCollaborator starts the server against a
// collaborator stub that fails every completion.
func startTestServerWithFailingCollaborator(t *testing.T) *e2etest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	stub := newFailingCollaboratorStub(t)
	server, err := e2etest.StartServer(ctx, io.Discard, testLookupEnv(stub.URL), run)
	require.NoError(t, err)
	return server
}
