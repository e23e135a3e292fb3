// Package requestlog records the requests served by the mock server so client
// test suites can inspect what actually went over the wire.
//
// It is distinct from operational logging (log/slog): entries are data that
// the admin API returns from GET /requests and that Go tests read through
// mockserver.Server.Requests().
//
//	store := requestlog.NewMemoryStore(500)
//	store.Log(&requestlog.Entry{Method: "GET", Path: "/json", ResponseStatus: 200})
//	entries := store.List(&requestlog.Filter{Path: "/json"})
//
// This is a leaf package with no internal dependencies.
package requestlog
