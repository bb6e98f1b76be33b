package main

import (
	"io"
	"net/http"

	"github.com/pawalert/pawalert/internal/errors"
)

// maxUploadBytes bounds the optional photo attachment.
const maxUploadBytes = 10 << 20

// reportForm carries the reporter-supplied fields between the form and its
// re-render on a validation error.
type reportForm struct {
	AnimalType    string
	Location      string
	Description   string
	AbuseCategory string
}

// parseReportForm reads the submitted report fields and the optional photo.
// It accepts both multipart and urlencoded submissions.
func parseReportForm(r *http.Request) (reportForm, []byte, string, error) {
	var form reportForm

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return form, nil, "", errors.Wrap(err, "parse multipart form")
	}

	form = reportForm{
		AnimalType:    r.PostFormValue("animal_type"),
		Location:      r.PostFormValue("location"),
		Description:   r.PostFormValue("description"),
		AbuseCategory: r.PostFormValue("abuse_category"),
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return form, nil, "", nil
		}
		return form, nil, "", errors.Wrap(err, "read photo")
	}
	defer func() {
		_ = file.Close()
	}()

	imageData, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return form, nil, "", errors.Wrap(err, "read photo data")
	}
	if len(imageData) == 0 {
		return form, nil, "", nil
	}

	imageMIME := header.Header.Get("Content-Type")
	if imageMIME == "" {
		imageMIME = "image/jpeg"
	}
	return form, imageData, imageMIME, nil
}
