package internal

import (
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"

	"github.com/dmitrymomot/appshell/pkg/webclient"
)

var (
	json          = jsoniter.ConfigCompatibleWithStandardLibrary
	schemePattern = regexp.MustCompile(`(?i)^[a-z]+://`)

	// Headers Redirect writes itself; buffered copies are not forwarded.
	redirectHeaders = map[string]struct{}{
		"status":        {},
		"location":      {},
		"content-type":  {},
		"expires":       {},
		"last-modified": {},
		"cache-control": {},
		"pragma":        {},
	}
)

// Redirect sends the client to target and closes the application. A 303
// is used unless moved is true, in which case it is a 301.
//
// A modified session is saved first so its cookie travels with the
// redirect. Once headers have been sent the redirect falls back to a
// script in the body.
func (a *WebApplication) Redirect(target string, moved bool) {
	if i := strings.IndexAny(target, "\r\n"); i >= 0 {
		target = target[:i]
	}
	if !schemePattern.MatchString(target) {
		target = a.absoluteURL(target)
	}

	trident := a.client.Engine == webclient.EngineTrident

	switch {
	case a.transport.HeadersSent():
		if trident {
			a.writeRedirectDocument(target)
		} else {
			_, _ = io.WriteString(a.transport, "<script>document.location.href="+jsString(target)+";</script>\n")
		}

	case trident && !isASCII(target):
		a.writeRedirectDocument(target)

	default:
		if err := a.saveSession(a.requestContext()); err != nil {
			a.logger.Error("failed to save session before redirect", slog.Any("error", err))
		}

		if v, ok := a.response.Header("Status"); ok {
			code := statusCode(v)
			a.transport.WriteHeader(StatusLine(code), true, code)
		}

		code := http.StatusSeeOther
		if moved {
			code = http.StatusMovedPermanently
		}
		a.transport.WriteHeader(StatusLine(code), true, code)
		a.transport.WriteHeader("Location: "+target, true, 0)
		a.transport.WriteHeader("Content-Type: text/html; charset="+a.charset, true, 0)
		a.transport.WriteHeader("Expires: "+expiresInThePast, true, 0)
		a.transport.WriteHeader("Last-Modified: "+a.clock().UTC().Format(http.TimeFormat), true, 0)
		a.transport.WriteHeader("Cache-Control: "+noCacheControl, true, 0)
		a.transport.WriteHeader("Pragma: no-cache", true, 0)
		a.sendHeaders(redirectHeaders)
	}

	a.Close(0)
}

// writeRedirectDocument emits a minimal HTML page whose script performs the
// redirect. Trident does not run script-only bodies reliably.
func (a *WebApplication) writeRedirectDocument(target string) {
	html := `<html><head>` +
		`<meta http-equiv="content-type" content="text/html; charset=` + a.charset + `" />` +
		`<script>document.location.href=` + jsString(target) + `;</script>` +
		`</head><body></body></html>`
	_, _ = io.WriteString(a.transport, html)
}

// absoluteURL resolves a scheme-less target against the request URI.
func (a *WebApplication) absoluteURL(target string) string {
	req, err := url.Parse(a.config.String("uri.request", ""))
	if err != nil {
		return target
	}

	prefix := ""
	if req.Scheme != "" {
		prefix = req.Scheme + "://"
	}
	if req.User != nil {
		prefix += req.User.String() + "@"
	}
	prefix += req.Host

	if strings.HasPrefix(target, "/") {
		return prefix + target
	}

	dir := req.EscapedPath()
	if i := strings.LastIndex(dir, "/"); i >= 0 {
		dir = dir[:i]
	} else {
		dir = ""
	}
	return prefix + dir + "/" + target
}

func jsString(s string) string {
	out, err := json.MarshalToString(s)
	if err != nil {
		return `""`
	}
	return out
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
