package main

import (
	"net/http"

	"github.com/pawalert/pawalert/internal/errors"
	"github.com/pawalert/pawalert/internal/models"
	"github.com/pawalert/pawalert/internal/reports"
)

type chatTemplateData struct {
	BaseTemplateData

	Transcript []models.ChatMessage
	ActiveCase *models.Case
}

func (app *application) chatScreen(w http.ResponseWriter, r *http.Request) {
	sessionID, err := app.sessionID(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	transcript, err := app.reports.Transcript(r.Context(), sessionID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	data := chatTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Transcript:       transcript,
		ActiveCase:       app.activeCase(r, sessionID),
	}
	app.render(w, r, http.StatusOK, "chat", data)
}

// sendChatMessage appends the user's message and the assistant's reply to the
// transcript. htmx requests get the transcript fragment back, plain form
// submissions get the whole page.
func (app *application) sendChatMessage(w http.ResponseWriter, r *http.Request) {
	sessionID, err := app.sessionID(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	activeCase := app.activeCase(r, sessionID)
	transcript, err := app.reports.Chat(r.Context(), sessionID, activeCase, r.PostFormValue("message"))
	if err != nil {
		var validationError reports.ValidationError
		if errors.As(err, &validationError) {
			app.clientError(w, r, http.StatusUnprocessableEntity)
			return
		}
		app.serverError(w, r, err)
		return
	}

	data := chatTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Transcript:       transcript,
		ActiveCase:       activeCase,
	}

	h := app.htmx.NewHandler(w, r)
	if h.IsHxRequest() {
		app.renderPartial(w, r, http.StatusOK, "chat", "transcript", data)
		return
	}
	app.render(w, r, http.StatusOK, "chat", data)
}

// openCaseChat marks a case as the chat's active subject and moves the user
// to the chat screen.
func (app *application) openCaseChat(w http.ResponseWriter, r *http.Request) {
	sessionID, err := app.sessionID(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	caseID := r.PathValue("caseID")

	if _, err = app.reports.Case(r.Context(), sessionID, caseID); err != nil {
		app.notFound(w, r)
		return
	}

	app.sessionManager.Put(r.Context(), activeCaseSessionKey, caseID)
	http.Redirect(w, r, "/chat", http.StatusSeeOther)
}
