package mockserver

import (
	"net/http"
	"strconv"
)

// cannedMethods serve the canned payload routes.
var cannedMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// registerRoutes sets up the route table on mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// Canned payloads
	for _, method := range cannedMethods {
		mux.HandleFunc(method+" /text", s.handleText)
		mux.HandleFunc(method+" /json", s.handleJSON)
		mux.HandleFunc(method+" /blob", s.handleBlob)
		mux.HandleFunc(method+" /arrayBuffer", s.handleArrayBuffer)
	}
	mux.HandleFunc("HEAD /json", s.handleJSONHead)
	mux.HandleFunc("GET /json/null", s.handleJSONNull)
	mux.HandleFunc("OPTIONS /options", s.handleOptions)
	mux.HandleFunc("GET /customHeaders", s.handleCustomHeaders)

	// Round trips
	mux.HandleFunc("POST /text/roundTrip", s.echoRoundTrip(contentTypeText, ""))
	mux.HandleFunc("POST /json/roundTrip", s.handleJSONRoundTrip)
	mux.HandleFunc("POST /urlencoded/roundTrip", s.echoRoundTrip(contentTypeURLEncoded, ""))
	mux.HandleFunc("POST /blob/roundTrip", s.echoRoundTrip(contentTypeXXXOctetStream, contentTypeOctetStream))
	mux.HandleFunc("POST /formData/decode", s.handleFormDataDecode)

	// Negotiation, auth, slow and failing replies
	mux.HandleFunc("GET /accept", s.handleAccept)
	mux.HandleFunc("GET /basicauth", s.handleBasicAuth)
	mux.HandleFunc("GET /json500", s.handleJSON500)
	mux.HandleFunc("GET /longResult", s.handleLongResult)

	for _, code := range ErrorCodes() {
		mux.HandleFunc("GET /"+strconv.Itoa(code), s.errorCodeHandler(code))
	}

	mux.HandleFunc("/", s.handleNotFound)
}
