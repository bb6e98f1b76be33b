package main

import (
	"net/http"
)

type homeTemplateData struct {
	BaseTemplateData
}

// home renders the home screen. It is also the catch-all for unrecognised
// paths: an unknown screen fails closed by rendering home.
func (app *application) home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		app.logger.Debug("unknown screen, falling back to home", "path", r.URL.Path)
	}

	data := homeTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
	}

	app.render(w, r, http.StatusOK, "home", data)
}
