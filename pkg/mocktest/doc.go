// Package mocktest runs the wretchkit mock server inside Go tests.
//
// # Basic Usage
//
//	func TestClient(t *testing.T) {
//	    mock := mocktest.New(t)
//
//	    resp, err := mock.Client().Get(mock.URL() + "/json")
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer resp.Body.Close()
//
//	    mock.AssertCalled(t, "GET", "/json")
//	}
//
// The server listens on a free loopback port and is stopped by t.Cleanup.
// Options adjust the configuration before launch:
//
//	mock := mocktest.New(t, mocktest.WithLongResultDelay(10*time.Millisecond))
//
// # Request Assertions
//
// Every request is recorded. Requests returns them newest first:
//
//	last := mock.Requests()[0]
//	last.AssertMethod(t, "POST")
//	last.AssertHeader(t, "Content-Type", "application/json")
//	last.AssertJSONBody(t, `{"a": 1}`)
package mocktest
