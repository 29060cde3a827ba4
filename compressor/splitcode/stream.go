package splitcode

import (
	"bytes"
	"errors"
	"io"
	"sync"
)

type compressionCore struct {
	lock    sync.Mutex
	closed  bool
	input   bytes.Buffer
	output  io.Writer
	options []Option
}

// CompressionWriter collects everything written to it and emits one
// archive on Close. Codes depend on the whole input, so nothing reaches
// the underlying writer earlier.
type CompressionWriter struct {
	core *compressionCore
}

func NewWriter(w io.Writer, opts ...Option) io.WriteCloser {
	return &CompressionWriter{core: &compressionCore{output: w, options: opts}}
}

func (cw *CompressionWriter) Write(data []byte) (int, error) {
	cw.core.lock.Lock()
	defer cw.core.lock.Unlock()
	if cw.core.closed {
		return 0, errors.New("splitcode: write after close")
	}
	return cw.core.input.Write(data)
}

func (cw *CompressionWriter) Close() error {
	cw.core.lock.Lock()
	defer cw.core.lock.Unlock()
	if cw.core.closed {
		return nil
	}
	cw.core.closed = true
	archive, err := Compress(cw.core.input.Bytes(), cw.core.options...)
	if err != nil {
		return err
	}
	cw.core.input.Reset()
	_, err = cw.core.output.Write(archive)
	return err
}

type decompressionCore struct {
	lock    sync.Mutex
	input   io.Reader
	output  *bytes.Reader
	err     error
	options []Option
}

// DecompressionReader reads a complete archive from its source on the
// first Read and serves the decoded bytes from memory. A failed first
// Read is sticky: later calls return the same error.
type DecompressionReader struct {
	core *decompressionCore
}

func NewReader(r io.Reader, opts ...Option) io.ReadCloser {
	return &DecompressionReader{core: &decompressionCore{input: r, options: opts}}
}

func (dr *DecompressionReader) Read(data []byte) (int, error) {
	dr.core.lock.Lock()
	defer dr.core.lock.Unlock()
	if dr.core.err != nil {
		return 0, dr.core.err
	}
	if dr.core.output == nil {
		archive, err := io.ReadAll(dr.core.input)
		if err != nil {
			dr.core.err = err
			return 0, err
		}
		decoded, err := Decompress(archive, dr.core.options...)
		if err != nil {
			dr.core.err = err
			return 0, err
		}
		dr.core.output = bytes.NewReader(decoded)
	}
	return dr.core.output.Read(data)
}

func (dr *DecompressionReader) Close() error {
	dr.core.lock.Lock()
	defer dr.core.lock.Unlock()
	dr.core.output = bytes.NewReader(nil)
	if c, ok := dr.core.input.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
