// Package transport is the output side of a web application: a place to
// emit raw header lines and body bytes.
//
// [HTTP] adapts an http.ResponseWriter. Header lines are parsed into the
// writer's header map and the status line sets the response code; the
// status and headers are committed on the first body write or on
// [HTTP.Finish]. [Recorder] keeps every call for inspection in tests.
package transport
