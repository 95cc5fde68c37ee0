// Package response accumulates an outgoing HTTP response before it is
// written to the wire.
//
// A Buffer keeps header records in insertion order, since that order is
// the transmission order, and holds the body as a sequence of chunks that
// are concatenated on output. A Negotiator compresses a finished buffer
// according to the encodings the client advertised.
//
//	buf := response.NewBuffer()
//	buf.SetHeader("Content-Type", "text/plain", true)
//	buf.SetBody("world")
//	buf.PrependBody("hello ")
//
//	n := response.NewNegotiator(response.WithProduct("MyApp"))
//	n.Compress(buf, []string{"gzip", "deflate"}, false)
package response
