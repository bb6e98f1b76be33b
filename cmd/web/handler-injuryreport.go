package main

import (
	"net/http"

	"github.com/pawalert/pawalert/internal/errors"
	"github.com/pawalert/pawalert/internal/models"
	"github.com/pawalert/pawalert/internal/reports"
)

type injuryReportTemplateData struct {
	BaseTemplateData

	Form  reportForm
	Error string
	Case  *models.Case
}

// injuryReportForm always renders a fresh form so that re-visiting the screen
// after a prior submission never shows stale results.
func (app *application) injuryReportForm(w http.ResponseWriter, r *http.Request) {
	data := injuryReportTemplateData{ //nolint:exhaustruct // fresh form
		BaseTemplateData: newBaseTemplateData(r),
	}

	app.render(w, r, http.StatusOK, "injuryreport", data)
}

func (app *application) submitInjuryReport(w http.ResponseWriter, r *http.Request) {
	app.submitReport(w, r, models.CaseKindInjury, "injuryreport")
}

// submitReport runs the submission workflow shared by both report kinds and
// renders either the created case or the form with a field-level error.
func (app *application) submitReport(
	w http.ResponseWriter,
	r *http.Request,
	kind models.CaseKind,
	pageName string,
) {
	sessionID, err := app.sessionID(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	form, imageData, imageMIME, err := parseReportForm(r)
	if err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	c, err := app.reports.SubmitReport(r.Context(), sessionID, reports.SubmitReportParams{
		Kind:          kind,
		AnimalType:    form.AnimalType,
		Location:      form.Location,
		Description:   form.Description,
		AbuseCategory: form.AbuseCategory,
		ImageData:     imageData,
		ImageMIME:     imageMIME,
	})
	if err != nil {
		var validationError reports.ValidationError
		if errors.As(err, &validationError) {
			data := injuryReportTemplateData{
				BaseTemplateData: newBaseTemplateData(r),
				Form:             form,
				Error:            validationError.Message,
				Case:             nil,
			}
			app.render(w, r, http.StatusUnprocessableEntity, pageName, data)
			return
		}
		app.serverError(w, r, errors.Wrap(err, "submit report"))
		return
	}

	data := injuryReportTemplateData{ //nolint:exhaustruct // result view
		BaseTemplateData: newBaseTemplateData(r),
		Case:             c,
	}
	app.render(w, r, http.StatusOK, pageName, data)
}
