package internal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	// expiresInThePast makes proxies and browsers treat the response as stale.
	expiresInThePast = "Wed, 17 Aug 2005 00:00:00 GMT"
	noCacheControl   = "no-store, no-cache, must-revalidate, post-check=0, pre-check=0"
	cacheLifetime    = 900 * time.Second
)

// IsValidHTTPStatus reports whether code is a registered HTTP status.
func IsValidHTTPStatus(code int) bool {
	return http.StatusText(code) != ""
}

// StatusLine returns the HTTP/1.1 status line for code.
func StatusLine(code int) string {
	return fmt.Sprintf("HTTP/1.1 %d %s", code, http.StatusText(code))
}

// statusCode reads the leading integer of a Status header value such as
// "201" or "201 Created". Unreadable values fall back to 200.
func statusCode(value string) int {
	value = strings.TrimSpace(value)
	end := 0
	for end < len(value) && value[end] >= '0' && value[end] <= '9' {
		end++
	}
	code, err := strconv.Atoi(value[:end])
	if err != nil || !IsValidHTTPStatus(code) {
		return http.StatusOK
	}
	return code
}

// Respond finalizes the buffered headers, sends them and writes the body.
func (a *WebApplication) Respond(ctx context.Context) error {
	a.state = StateResponding

	if !a.response.HasHeader("Content-Type") {
		a.SetHeader("Content-Type", a.mimeType+"; charset="+a.charset, false)
	}

	now := a.clock().UTC()
	if !a.cachable {
		a.SetHeader("Expires", expiresInThePast, true)
		a.SetHeader("Last-Modified", now.Format(http.TimeFormat), true)
		a.SetHeader("Cache-Control", noCacheControl, false)
		a.SetHeader("Pragma", "no-cache", false)
	} else {
		if !a.response.HasHeader("Expires") {
			a.SetHeader("Expires", now.Add(cacheLifetime).Format(http.TimeFormat), false)
		}
		if !a.modifiedDate.IsZero() {
			a.SetHeader("Last-Modified", a.modifiedDate.UTC().Format(http.TimeFormat), true)
		}
	}

	if err := a.saveSession(ctx); err != nil {
		return err
	}

	if !a.response.HasHeader("Status") {
		a.SetHeader("Status", "200", true)
	}

	a.SendHeaders()

	if _, err := io.WriteString(a.transport, a.response.Body()); err != nil {
		return fmt.Errorf("%w: %w", ErrUnableToWriteBody, err)
	}
	return nil
}

// SendHeaders emits the buffered headers in order. It does nothing once
// the transport reports headers as sent. Repeated names are added rather
// than replaced so multi-value headers survive.
func (a *WebApplication) SendHeaders() *WebApplication {
	if a.transport.HeadersSent() {
		return a
	}
	a.sendHeaders(nil)
	return a
}

// sendHeaders writes the buffered headers, skipping names in skip.
func (a *WebApplication) sendHeaders(skip map[string]struct{}) {
	seen := make(map[string]struct{})
	for _, h := range a.response.Headers() {
		name := strings.ToLower(h.Name)
		if _, ok := skip[name]; ok {
			continue
		}

		if name == "status" {
			code := statusCode(h.Value)
			a.transport.WriteHeader(StatusLine(code), true, code)
			continue
		}

		_, repeated := seen[name]
		seen[name] = struct{}{}
		a.transport.WriteHeader(h.Name+": "+h.Value, !repeated, 0)
	}
}
