// Package httputil provides shared HTTP response helpers for the mock server
// and the admin API.
package httputil

import (
	"encoding/json"
	"net/http"
)

// Content types used across handlers.
const (
	ContentTypeJSON        = "application/json"
	ContentTypeText        = "text/plain"
	ContentTypeOctetStream = "application/octet-stream"
	ContentTypeJPEG        = "image/jpeg"
)

// WriteJSON writes a JSON response with the given status code.
// A nil data value is encoded as the JSON literal null.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteRaw writes body verbatim with the given status and content type.
// An empty contentType leaves the header untouched.
func WriteRaw(w http.ResponseWriter, status int, contentType string, body []byte) {
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(status)
	if len(body) > 0 {
		_, _ = w.Write(body)
	}
}

// WriteText writes a plain-text body.
func WriteText(w http.ResponseWriter, status int, body string) {
	WriteRaw(w, status, ContentTypeText, []byte(body))
}

// WriteStatus writes only a status line and headers.
func WriteStatus(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}

// WriteError writes a JSON error response with the given status code.
// The error response includes an error code and a human-readable message.
func WriteError(w http.ResponseWriter, status int, errCode, message string) {
	WriteJSON(w, status, map[string]string{
		"error":   errCode,
		"message": message,
	})
}

// WriteOK writes a 200 OK JSON response with data.
func WriteOK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

// WriteNoContent writes a 204 No Content response.
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteBadRequest writes an empty 400 response.
func WriteBadRequest(w http.ResponseWriter) {
	WriteStatus(w, http.StatusBadRequest)
}
