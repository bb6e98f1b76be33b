package main

import (
	"net/http"

	"github.com/justinas/alice"
	"github.com/pawalert/pawalert/ui"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	fileServer := http.FileServer(http.FS(ui.Files))
	mux.Handle("GET /static/", cacheForeverHeaders(fileServer))

	session := alice.New(app.sessionManager.LoadAndSave, noSurf, app.commonContext)

	// Home doubles as the fallback for unrecognised screens: unknown paths
	// fail closed by rendering the home screen.
	mux.Handle("/", session.ThenFunc(app.home))

	mux.Handle("GET /report/injury", session.ThenFunc(app.injuryReportForm))
	mux.Handle("POST /report/injury", session.ThenFunc(app.submitInjuryReport))
	mux.Handle("GET /report/abuse", session.ThenFunc(app.abuseReportForm))
	mux.Handle("POST /report/abuse", session.ThenFunc(app.submitAbuseReport))

	mux.Handle("POST /cases/{caseID}/dispatch", session.ThenFunc(app.dispatchCase))
	mux.Handle("POST /cases/{caseID}/notify", session.ThenFunc(app.notifyCase))
	mux.Handle("POST /cases/{caseID}/chat", session.ThenFunc(app.openCaseChat))

	mux.Handle("GET /status", session.ThenFunc(app.statusDashboard))
	mux.Handle("GET /chat", session.ThenFunc(app.chatScreen))
	mux.Handle("POST /chat", session.ThenFunc(app.sendChatMessage))

	mux.HandleFunc("GET /api/healthy", app.healthy)

	standard := alice.New(app.recoverPanic, app.logRequest, secureHeaders)

	return standard.Then(timeoutHandler(mux, writeTimeout))
}
