// Package mockserver provides the deterministic HTTP server the wretch client
// test suite runs against.
//
// # Routes
//
// The route table is fixed. Canned payloads are served on /text, /json,
// /blob and /arrayBuffer for GET, POST, PUT, PATCH and DELETE. The
// round-trip endpoints (/text/roundTrip, /json/roundTrip,
// /urlencoded/roundTrip, /blob/roundTrip) echo a body back only when the
// request Content-Type matches exactly, and /formData/decode answers with the
// multipart fields as JSON. Every code returned by [ErrorCodes] is served at
// /{code}. Anything else is a 404 with an empty JSON object.
//
// # Lifecycle
//
// A Server is an owned value:
//
//	srv := mockserver.New(cfg, mockserver.WithLogger(log))
//	if err := srv.Launch(ctx); err != nil {
//		return err
//	}
//	defer srv.Stop(context.Background())
//
// Launch binds synchronously, so Addr and URL are valid as soon as it
// returns. A port of 0 picks a free port. Stop is idempotent.
package mockserver
