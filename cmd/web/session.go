package main

import (
	"net/http"

	"github.com/pawalert/pawalert/internal/errors"
	"github.com/pawalert/pawalert/internal/models"
	"github.com/pawalert/pawalert/internal/random"
)

const sessionIDSessionKey = "sessionID"
const activeCaseSessionKey = "activeCaseID"

// sessionID returns the stable identifier that keys the session's case store
// and chat transcript, creating it on the session's first interaction.
func (app *application) sessionID(r *http.Request) (string, error) {
	ctx := r.Context()
	id := app.sessionManager.GetString(ctx, sessionIDSessionKey)
	if id == "" {
		var err error
		sessionIDLength := uint(32)
		if id, err = random.Letters(sessionIDLength); err != nil {
			return "", errors.Wrap(err, "generate session ID")
		}
		app.sessionManager.Put(ctx, sessionIDSessionKey, id)
	}
	return id, nil
}

// activeCase resolves the session's "discuss this case" reference set from
// the status dashboard. A stale reference is cleared instead of erroring.
func (app *application) activeCase(r *http.Request, sessionID string) *models.Case {
	ctx := r.Context()
	caseID := app.sessionManager.GetString(ctx, activeCaseSessionKey)
	if caseID == "" {
		return nil
	}
	c, err := app.reports.Case(ctx, sessionID, caseID)
	if err != nil {
		app.sessionManager.Remove(ctx, activeCaseSessionKey)
		return nil
	}
	return c
}
