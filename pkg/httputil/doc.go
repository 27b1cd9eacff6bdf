// Package httputil holds the response and middleware helpers shared by the
// HTTP API.
//
// Handlers report failures as *errors.Error values; [WriteError] maps each
// error code to an HTTP status and writes a JSON body:
//
//	{"error": "no graph named \"Foo\"", "code": "NOT_FOUND"}
//
// [ReadBody] bounds request bodies, and [Instrument] reports every request
// to the observability request hooks.
package httputil
