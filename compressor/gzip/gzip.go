// Package gzip is the gzip baseline the engine benchmarks split coding
// against.
package gzip

import (
	"fmt"
	"io"

	kgzip "github.com/klauspost/compress/gzip"
)

const Level = kgzip.DefaultCompression

func NewWriter(w io.Writer) (io.WriteCloser, error) {
	gw, err := kgzip.NewWriterLevel(w, Level)
	if err != nil {
		return nil, fmt.Errorf("gzip writer: %w", err)
	}
	return gw, nil
}

// NewReader checks the gzip header immediately; the CRC and size in the
// trailer are checked when the stream is read to its end.
func NewReader(r io.Reader) (io.ReadCloser, error) {
	gr, err := kgzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("gzip reader: %w", err)
	}
	return gr, nil
}
