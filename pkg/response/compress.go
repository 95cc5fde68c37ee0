package response

import (
	"bytes"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// DefaultProduct is reported in the X-Content-Encoded-By header.
const DefaultProduct = "AppShell"

// DefaultLevel is the compression level used for both encodings.
const DefaultLevel = 4

// supported lists the encodings the negotiator can produce, in priority order.
var supported = []string{"gzip", "deflate"}

// NegotiatorOption configures a Negotiator.
type NegotiatorOption func(*Negotiator)

// WithProduct sets the value of the X-Content-Encoded-By header.
func WithProduct(name string) NegotiatorOption {
	return func(n *Negotiator) {
		if name != "" {
			n.product = name
		}
	}
}

// WithLevel sets the compression level.
func WithLevel(level int) NegotiatorOption {
	return func(n *Negotiator) {
		n.level = level
	}
}

// Negotiator compresses a response buffer with the best encoding the client
// accepts.
type Negotiator struct {
	product string
	level   int
}

// NewNegotiator creates a Negotiator.
func NewNegotiator(opts ...NegotiatorOption) *Negotiator {
	n := &Negotiator{
		product: DefaultProduct,
		level:   DefaultLevel,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Compress replaces the body of buf with its compressed form and appends
// Content-Encoding, Vary and X-Content-Encoded-By headers. The encoding is
// chosen by server priority (gzip, then deflate), not by client order.
//
// Nothing happens when headersSent is true, when encodings is empty, or when
// no supported encoding is accepted. Compress never fails: an encoder error
// moves on to the next supported encoding. It returns the applied encoding,
// or an empty string.
func (n *Negotiator) Compress(buf *Buffer, encodings []string, headersSent bool) string {
	if headersSent || len(encodings) == 0 {
		return ""
	}

	for _, enc := range supported {
		if !accepts(encodings, enc) {
			continue
		}

		data, err := n.encode(enc, buf.Body())
		if err != nil {
			continue
		}

		buf.SetBody(data)
		buf.SetHeader("Content-Encoding", enc, false)
		buf.SetHeader("Vary", "Accept-Encoding", false)
		buf.SetHeader("X-Content-Encoded-By", n.product, false)

		return enc
	}

	return ""
}

func (n *Negotiator) encode(encoding, body string) (string, error) {
	var (
		out bytes.Buffer
		w   io.WriteCloser
		err error
	)

	switch encoding {
	case "gzip":
		w, err = gzip.NewWriterLevel(&out, n.level)
	default:
		w, err = zlib.NewWriterLevel(&out, n.level)
	}
	if err != nil {
		return "", err
	}

	if _, err := io.WriteString(w, body); err != nil {
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	return out.String(), nil
}

func accepts(encodings []string, enc string) bool {
	for _, e := range encodings {
		if strings.EqualFold(e, enc) {
			return true
		}
	}
	return false
}
