package admin

import (
	"net/url"
	"testing"

	"github.com/getmockd/wretchkit/pkg/requestlog"
	"github.com/stretchr/testify/assert"
)

func TestParsePositiveInt(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   int
		wantOK bool
	}{
		{name: "empty", in: "", want: 0, wantOK: false},
		{name: "invalid", in: "10x", want: 0, wantOK: false},
		{name: "zero", in: "0", want: 0, wantOK: false},
		{name: "negative", in: "-1", want: 0, wantOK: false},
		{name: "positive", in: "25", want: 25, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parsePositiveInt(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestParseNonNegativeInt(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   int
		wantOK bool
	}{
		{name: "empty", in: "", want: 0, wantOK: false},
		{name: "invalid", in: "3x", want: 0, wantOK: false},
		{name: "negative", in: "-1", want: 0, wantOK: false},
		{name: "zero", in: "0", want: 0, wantOK: true},
		{name: "positive", in: "7", want: 7, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseNonNegativeInt(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestRequestFilter(t *testing.T) {
	q := url.Values{}
	q.Set("method", "POST")
	q.Set("path", "/json")
	q.Set("status", "400")
	q.Set("limit", "5")
	q.Set("offset", "2")

	assert.Equal(t, &requestlog.Filter{
		Method:     "POST",
		Path:       "/json",
		StatusCode: 400,
		Limit:      5,
		Offset:     2,
	}, requestFilter(q))

	bad := url.Values{"status": {"abc"}, "limit": {"-1"}, "offset": {"x"}}
	assert.Equal(t, &requestlog.Filter{}, requestFilter(bad))
}
