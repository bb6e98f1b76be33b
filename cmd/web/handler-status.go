package main

import (
	"net/http"

	"github.com/pawalert/pawalert/internal/reports"
)

type statusTemplateData struct {
	BaseTemplateData

	Dashboard *reports.Dashboard
}

// statusDashboard renders the read-only view of the session's case store,
// partitioned by kind.
func (app *application) statusDashboard(w http.ResponseWriter, r *http.Request) {
	sessionID, err := app.sessionID(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	dashboard, err := app.reports.DashboardFor(r.Context(), sessionID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	data := statusTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Dashboard:        dashboard,
	}
	app.render(w, r, http.StatusOK, "status", data)
}
