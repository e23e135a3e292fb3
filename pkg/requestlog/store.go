package requestlog

import "strings"

// Logger is the minimal interface for recording entries.
type Logger interface {
	Log(entry *Entry)
}

// Store defines request history storage.
type Store interface {
	Logger

	// Get retrieves a log entry by ID.
	Get(id string) *Entry

	// List returns log entries, newest first, optionally filtered.
	List(filter *Filter) []*Entry

	// Clear removes all log entries.
	Clear()

	// Count returns the number of log entries.
	Count() int
}

// Filter defines criteria for filtering request logs.
type Filter struct {
	// Method filters by HTTP method.
	Method string

	// Path filters by path prefix.
	Path string

	// StatusCode filters by response status code.
	StatusCode int

	// Limit is the maximum number of entries to return.
	Limit int

	// Offset is the number of entries to skip.
	Offset int
}

// Matches reports whether e satisfies every set criterion of f.
func (f *Filter) Matches(e *Entry) bool {
	if f == nil {
		return true
	}
	if f.Method != "" && f.Method != e.Method {
		return false
	}
	if f.Path != "" && !strings.HasPrefix(e.Path, f.Path) {
		return false
	}
	if f.StatusCode != 0 && f.StatusCode != e.ResponseStatus {
		return false
	}
	return true
}
