package main

import (
	"net/http"

	"github.com/pawalert/pawalert/internal/models"
)

// abuseReportForm always renders a fresh form, see injuryReportForm.
func (app *application) abuseReportForm(w http.ResponseWriter, r *http.Request) {
	data := injuryReportTemplateData{ //nolint:exhaustruct // fresh form
		BaseTemplateData: newBaseTemplateData(r),
	}

	app.render(w, r, http.StatusOK, "abusereport", data)
}

func (app *application) submitAbuseReport(w http.ResponseWriter, r *http.Request) {
	app.submitReport(w, r, models.CaseKindAbuse, "abusereport")
}
