package transport

import (
	"strconv"
	"strings"
)

// Transport receives raw header lines and body bytes.
type Transport interface {
	// WriteHeader emits a header line such as "Location: /x" or a status
	// line such as "HTTP/1.1 303 See Other". When replace is true a previous
	// header with the same name is overwritten. A non-zero code sets the
	// response status.
	WriteHeader(line string, replace bool, code int)

	// HeadersSent reports whether headers can no longer be changed.
	HeadersSent() bool

	Write(p []byte) (int, error)
}

// IsStatusLine reports whether line is an HTTP status line.
func IsStatusLine(line string) bool {
	return strings.HasPrefix(line, "HTTP/")
}

// ParseStatusLine returns the code of a line like "HTTP/1.1 201 Created".
func ParseStatusLine(line string) (int, bool) {
	if !IsStatusLine(line) {
		return 0, false
	}
	_, rest, ok := strings.Cut(line, " ")
	if !ok {
		return 0, false
	}
	codeStr, _, _ := strings.Cut(rest, " ")
	code, err := strconv.Atoi(codeStr)
	if err != nil || code < 100 || code > 999 {
		return 0, false
	}
	return code, true
}

// SplitHeaderLine splits "Name: value" into its parts.
func SplitHeaderLine(line string) (name, value string, ok bool) {
	name, value, ok = strings.Cut(line, ":")
	if !ok {
		return "", "", false
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", false
	}
	return name, strings.TrimSpace(value), true
}
