package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/pawalert/pawalert/internal/e2etest"
	"github.com/pawalert/pawalert/internal/errors"
	"github.com/pawalert/pawalert/internal/logging"
)

// TestScreens loads the screens a fresh visitor can reach without submitting
// a report.
func TestScreens(client *e2etest.Client) error {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()
	var err error

	doc, err := client.GetDoc(ctx, "/")
	if err != nil {
		return errors.Wrap(err, "get home")
	}
	if doc.Find("h1").Length() == 0 {
		return errors.New("home is missing its heading")
	}
	if _, err = client.GetDoc(ctx, "/report/injury"); err != nil {
		return errors.Wrap(err, "get injury report form")
	}
	if _, err = client.GetDoc(ctx, "/report/abuse"); err != nil {
		return errors.Wrap(err, "get abuse report form")
	}
	if _, err = client.GetDoc(ctx, "/status"); err != nil {
		return errors.Wrap(err, "get status dashboard")
	}
	if _, err = client.GetDoc(ctx, "/chat"); err != nil {
		return errors.Wrap(err, "get chat")
	}
	return nil
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		url      = "https://" + hostname
		client   *e2etest.Client
		err      error
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", url))

	if client, err = e2etest.NewClient(url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error waiting for server", errors.SlogError(err))
		os.Exit(1)
	}
	if err = TestScreens(client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing screens", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
	os.Exit(0)
}
