package mockserver

import (
	"bytes"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/getmockd/wretchkit/pkg/httputil"
)

// Request content types the round-trip routes compare against. The
// comparison is exact: parameters such as charset cause a mismatch.
const (
	contentTypeText           = httputil.ContentTypeText
	contentTypeJSON           = httputil.ContentTypeJSON
	contentTypeURLEncoded     = "application/x-www-form-urlencoded"
	contentTypeXXXOctetStream = "application/xxx-octet-stream"
	contentTypeOctetStream    = httputil.ContentTypeOctetStream
	contentTypeMultipart      = "multipart/form-data"
)

// maxBodySize bounds every request body the handlers read.
const maxBodySize = 10 << 20

var (
	textPayload = "A text string"
	jsonPayload = []byte(`{"a":"json","object":"which","is":"stringified"}`)
	json500     = []byte(`{"error":500,"message":"ok"}`)
	acceptJSON  = []byte(`{"json":"ok"}`)
	jsonNull    = []byte("null")
)

// customHeaderNames must all be present for /customHeaders to succeed.
var customHeaderNames = []string{
	"X-Custom-Header",
	"X-Custom-Header-2",
	"X-Custom-Header-3",
	"X-Custom-Header-4",
}

func (s *Server) handleText(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteText(w, http.StatusOK, textPayload)
}

func (s *Server) handleJSON(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteRaw(w, http.StatusOK, httputil.ContentTypeJSON, jsonPayload)
}

func (s *Server) handleBlob(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteRaw(w, http.StatusOK, httputil.ContentTypeJPEG, duckJPEG)
}

func (s *Server) handleArrayBuffer(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteRaw(w, http.StatusOK, httputil.ContentTypeOctetStream, arrayBufferPayload)
}

func (s *Server) handleJSONHead(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", httputil.ContentTypeJSON)
	httputil.WriteStatus(w, http.StatusOK)
}

func (s *Server) handleJSONNull(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteRaw(w, http.StatusOK, httputil.ContentTypeJSON, jsonNull)
}

func (s *Server) handleOptions(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Allow", http.MethodOptions)
	httputil.WriteStatus(w, http.StatusOK)
}

func (s *Server) handleCustomHeaders(w http.ResponseWriter, r *http.Request) {
	for _, name := range customHeaderNames {
		if r.Header.Get(name) == "" {
			httputil.WriteBadRequest(w)
			return
		}
	}
	httputil.WriteStatus(w, http.StatusOK)
}

// readBody reads the full request body, logging failures at the handler
// boundary.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		s.log.Warn("failed to read request body", "path", r.URL.Path, "error", err)
		return nil, false
	}
	return body, true
}

// echoRoundTrip returns a handler that echoes the body back when the
// request Content-Type equals want. The reply carries replyType, or the
// request's own content type when replyType is empty.
func (s *Server) echoRoundTrip(want, replyType string) http.HandlerFunc {
	if replyType == "" {
		replyType = want
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != want {
			httputil.WriteBadRequest(w)
			return
		}
		body, ok := s.readBody(w, r)
		if !ok {
			httputil.WriteBadRequest(w)
			return
		}
		httputil.WriteRaw(w, http.StatusOK, replyType, body)
	}
}

func (s *Server) handleJSONRoundTrip(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Content-Type") != contentTypeJSON {
		httputil.WriteBadRequest(w)
		return
	}
	body, ok := s.readBody(w, r)
	if !ok {
		httputil.WriteBadRequest(w)
		return
	}
	out, err := compactJSON(body)
	if err != nil {
		s.log.Warn("invalid JSON body", "path", r.URL.Path, "error", err)
		httputil.WriteBadRequest(w)
		return
	}
	httputil.WriteRaw(w, http.StatusOK, httputil.ContentTypeJSON, out)
}

// compactJSON validates that body holds exactly one JSON value and returns it
// with insignificant whitespace removed. Key order, escapes and number
// literals are kept as sent.
func compactJSON(body []byte) ([]byte, error) {
	if !json.Valid(body) {
		return nil, errors.New("body is not a single JSON value")
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, body); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Server) handleFormDataDecode(w http.ResponseWriter, r *http.Request) {
	mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != contentTypeMultipart || params["boundary"] == "" {
		httputil.WriteBadRequest(w)
		return
	}
	body, ok := s.readBody(w, r)
	if !ok {
		httputil.WriteBadRequest(w)
		return
	}
	fields, err := readFormFields(body, params["boundary"])
	if err != nil {
		s.log.Warn("failed to decode multipart body", "path", r.URL.Path, "error", err)
		httputil.WriteBadRequest(w)
		return
	}
	httputil.WriteOK(w, fields)
}

func (s *Server) handleAccept(w http.ResponseWriter, r *http.Request) {
	if strings.Contains(r.Header.Get("Accept"), contentTypeJSON) {
		httputil.WriteRaw(w, http.StatusOK, httputil.ContentTypeJSON, acceptJSON)
		return
	}
	httputil.WriteText(w, http.StatusOK, "text")
}

func (s *Server) handleBasicAuth(w http.ResponseWriter, r *http.Request) {
	user, pass, ok := r.BasicAuth()
	if !ok || !credentialsMatch(user, pass, s.cfg.BasicAuth.Username, s.cfg.BasicAuth.Password) {
		httputil.WriteStatus(w, http.StatusUnauthorized)
		return
	}
	httputil.WriteText(w, http.StatusOK, "ok")
}

func credentialsMatch(user, pass, wantUser, wantPass string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(wantUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(wantPass)) == 1
	return userOK && passOK
}

func (s *Server) handleJSON500(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteRaw(w, http.StatusInternalServerError, httputil.ContentTypeJSON, json500)
}

// handleLongResult answers after the configured delay. A client that goes
// away first gets nothing.
func (s *Server) handleLongResult(w http.ResponseWriter, r *http.Request) {
	timer := time.NewTimer(s.cfg.LongResultDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		httputil.WriteText(w, http.StatusOK, "ok")
	case <-r.Context().Done():
		s.log.Debug("long result abandoned", "error", r.Context().Err())
	}
}

func (s *Server) errorCodeHandler(code int) http.HandlerFunc {
	body := "error code : " + strconv.Itoa(code)
	return func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteText(w, code, body)
	}
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteRaw(w, http.StatusNotFound, httputil.ContentTypeJSON, []byte("{}"))
}
