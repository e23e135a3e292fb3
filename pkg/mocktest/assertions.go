package mocktest

import (
	"net/url"
	"strings"
	"testing"

	"github.com/getmockd/wretchkit/pkg/requestlog"
	"github.com/stretchr/testify/assert"
)

// RequestLog is a logged request for assertions.
type RequestLog struct {
	// Method is the HTTP method (GET, POST, etc.)
	Method string
	// Path is the request URL path
	Path string
	// Headers are the request headers
	Headers map[string][]string
	// Body is the request body, truncated to requestlog.MaxBodyCapture bytes
	Body string
	// QueryString is the raw query string
	QueryString string
	// Status is the response status the mock server wrote
	Status int
}

func newRequestLog(e *requestlog.Entry) RequestLog {
	return RequestLog{
		Method:      e.Method,
		Path:        e.Path,
		Headers:     e.Headers,
		Body:        e.Body,
		QueryString: e.QueryString,
		Status:      e.ResponseStatus,
	}
}

// Header returns the first value of the named header, matched case-insensitively.
func (r *RequestLog) Header(key string) (string, bool) {
	for k, v := range r.Headers {
		if strings.EqualFold(k, key) && len(v) > 0 {
			return v[0], true
		}
	}
	return "", false
}

// AssertJSONBody asserts that the request body is JSON equivalent to expected.
func (r *RequestLog) AssertJSONBody(t testing.TB, expected string) {
	t.Helper()
	assert.JSONEq(t, expected, r.Body, "request body does not match expected JSON")
}

// AssertBody asserts that the request body exactly matches the expected string.
func (r *RequestLog) AssertBody(t testing.TB, expected string) {
	t.Helper()
	assert.Equal(t, expected, r.Body, "request body does not match")
}

// AssertBodyContains asserts that the request body contains substr.
func (r *RequestLog) AssertBodyContains(t testing.TB, substr string) {
	t.Helper()
	assert.Contains(t, r.Body, substr, "request body does not contain %q", substr)
}

// AssertHeader asserts that the request had the specified header with the expected value.
func (r *RequestLog) AssertHeader(t testing.TB, key, expected string) {
	t.Helper()

	actual, ok := r.Header(key)
	if !ok {
		t.Errorf("request does not have header %q", key)
		return
	}
	assert.Equal(t, expected, actual, "header %q value mismatch", key)
}

// AssertHeaderExists asserts that the request had the specified header (any value).
func (r *RequestLog) AssertHeaderExists(t testing.TB, key string) {
	t.Helper()

	if _, ok := r.Header(key); !ok {
		t.Errorf("request does not have header %q", key)
	}
}

// AssertQueryParam asserts that the request had the specified query parameter.
func (r *RequestLog) AssertQueryParam(t testing.TB, key, expected string) {
	t.Helper()

	params, err := url.ParseQuery(r.QueryString)
	if err != nil || !params.Has(key) {
		t.Errorf("request does not have query parameter %q", key)
		return
	}
	assert.Equal(t, expected, params.Get(key), "query parameter %q value mismatch", key)
}

// AssertMethod asserts that the request used the expected HTTP method.
func (r *RequestLog) AssertMethod(t testing.TB, expected string) {
	t.Helper()

	if !strings.EqualFold(r.Method, expected) {
		t.Errorf("request method mismatch\nexpected: %q\nactual: %q", expected, r.Method)
	}
}

// AssertPath asserts that the request path matches.
func (r *RequestLog) AssertPath(t testing.TB, expected string) {
	t.Helper()
	assert.Equal(t, expected, r.Path, "request path mismatch")
}

// AssertStatus asserts the status the mock server answered with.
func (r *RequestLog) AssertStatus(t testing.TB, expected int) {
	t.Helper()
	assert.Equal(t, expected, r.Status, "response status mismatch")
}
