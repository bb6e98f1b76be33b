package main

import (
	"net/http"
	"strconv"

	"github.com/pawalert/pawalert/internal/errors"
	"github.com/pawalert/pawalert/internal/reports"
	"github.com/pawalert/pawalert/internal/repositories"
)

// dispatchCase assigns the chosen facility to an injury case. The underlying
// transition is idempotent: dispatching an already dispatched case changes
// nothing and triggers no second advisory call.
func (app *application) dispatchCase(w http.ResponseWriter, r *http.Request) {
	sessionID, err := app.sessionID(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	caseID := r.PathValue("caseID")

	facilityIndex, err := strconv.ParseInt(r.PostFormValue("facility"), 10, 64)
	if err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	c, err := app.reports.SelectFacility(r.Context(), sessionID, caseID, facilityIndex)
	if err != nil {
		app.caseOperationError(w, r, err)
		return
	}

	data := injuryReportTemplateData{ //nolint:exhaustruct // result view
		BaseTemplateData: newBaseTemplateData(r),
		Case:             c,
	}
	app.render(w, r, http.StatusOK, "injuryreport", data)
}

// notifyCase forwards an abuse case to the authorities exactly once.
func (app *application) notifyCase(w http.ResponseWriter, r *http.Request) {
	sessionID, err := app.sessionID(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	caseID := r.PathValue("caseID")

	c, err := app.reports.NotifyAuthority(r.Context(), sessionID, caseID)
	if err != nil {
		app.caseOperationError(w, r, err)
		return
	}

	data := injuryReportTemplateData{ //nolint:exhaustruct // result view
		BaseTemplateData: newBaseTemplateData(r),
		Case:             c,
	}
	app.render(w, r, http.StatusOK, "abusereport", data)
}

func (app *application) caseOperationError(w http.ResponseWriter, r *http.Request, err error) {
	var validationError reports.ValidationError
	switch {
	case errors.Is(err, repositories.ErrCaseNotFound):
		app.notFound(w, r)
	case errors.Is(err, reports.ErrWrongKind), errors.As(err, &validationError):
		app.clientError(w, r, http.StatusBadRequest)
	default:
		app.serverError(w, r, err)
	}
}
