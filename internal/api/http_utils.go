package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/officeshinyujun/torax-api/internal/extractor"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"detail": msg,
	})
}

// writeExtractorError maps the taxonomy to HTTP: extraction and search
// failures are client faults, download failures are server faults.
func writeExtractorError(w http.ResponseWriter, err error) {
	var (
		ee *extractor.ExtractionError
		se *extractor.SearchError
		de *extractor.DownloadError
	)
	switch {
	case errors.As(err, &ee):
		writeError(w, http.StatusBadRequest, ee.Error())
	case errors.As(err, &se):
		writeError(w, http.StatusBadRequest, se.Error())
	case errors.As(err, &de):
		writeError(w, http.StatusInternalServerError, de.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
