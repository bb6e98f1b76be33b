package repositories_test

import (
	"context"
	"io"
	"testing"

	"github.com/pawalert/pawalert/internal/sqlite"
	"github.com/pawalert/pawalert/internal/testhelpers"
)

// newTestDB creates a new in-memory database for testing purposes.
func newTestDB(t *testing.T) *sqlite.Database {
	t.Helper()
	logger := testhelpers.NewLogger(io.Discard)

	db, err := sqlite.NewDatabase(context.Background(), ":memory:", logger)
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Fatal(err)
		}
	})

	return db
}
