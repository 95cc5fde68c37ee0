package response

import (
	"slices"
	"strings"
)

// Header is a single header record.
type Header struct {
	Name  string
	Value string
}

// Buffer holds the headers and body of a response that has not been sent
// yet. It is not safe for concurrent use; each request owns its own Buffer.
type Buffer struct {
	headers []Header
	chunks  []string
}

// NewBuffer returns an empty response buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// SetHeader appends a header record. With replace set, every record whose
// name matches case-insensitively is removed first.
func (b *Buffer) SetHeader(name, value string, replace bool) *Buffer {
	if replace {
		b.headers = slices.DeleteFunc(b.headers, func(h Header) bool {
			return strings.EqualFold(h.Name, name)
		})
	}
	b.headers = append(b.headers, Header{Name: name, Value: value})
	return b
}

// Header returns the value of the first record matching name.
func (b *Buffer) Header(name string) (string, bool) {
	for _, h := range b.headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value, true
		}
	}
	return "", false
}

// HasHeader reports whether a record matching name exists.
func (b *Buffer) HasHeader(name string) bool {
	_, ok := b.Header(name)
	return ok
}

// Headers returns a copy of the header records in insertion order.
func (b *Buffer) Headers() []Header {
	return slices.Clone(b.headers)
}

// ClearHeaders drops every header record.
func (b *Buffer) ClearHeaders() *Buffer {
	b.headers = nil
	return b
}

// SetBody replaces the body with a single chunk.
func (b *Buffer) SetBody(content string) *Buffer {
	b.chunks = []string{content}
	return b
}

// PrependBody inserts a chunk before the first one.
func (b *Buffer) PrependBody(content string) *Buffer {
	b.chunks = slices.Insert(b.chunks, 0, content)
	return b
}

// AppendBody adds a chunk after the last one.
func (b *Buffer) AppendBody(content string) *Buffer {
	b.chunks = append(b.chunks, content)
	return b
}

// Body returns the concatenated body.
func (b *Buffer) Body() string {
	return strings.Join(b.chunks, "")
}

// Chunks returns a copy of the body chunks.
func (b *Buffer) Chunks() []string {
	return slices.Clone(b.chunks)
}

// Len returns the body length in bytes.
func (b *Buffer) Len() int {
	n := 0
	for _, c := range b.chunks {
		n += len(c)
	}
	return n
}
