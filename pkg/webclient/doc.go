// Package webclient classifies the client behind an HTTP request.
//
// A Client is built once per request from the User-Agent string and the
// Accept-Encoding and Accept-Language headers. Detection is ordered pattern
// matching: for each category (platform, engine, browser) the first matching
// rule wins, and platform tokens are checked before engine tokens.
//
// # Usage
//
//	c := webclient.FromRequest(r)
//	if c.Mobile {
//	    // serve the compact layout
//	}
//	if slices.Contains(c.Encodings, "gzip") {
//	    // client accepts gzip
//	}
//
// Detection is pure string parsing and never fails. Unknown values are left
// empty.
package webclient
