// Package lz is the LZ4 frame baseline: fast, low ratio, byte oriented.
package lz

import (
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

func NewWriter(w io.Writer) (io.WriteCloser, error) {
	zw := lz4.NewWriter(w)
	if err := zw.Apply(lz4.ChecksumOption(true), lz4.CompressionLevelOption(lz4.Fast)); err != nil {
		return nil, fmt.Errorf("lz4 writer: %w", err)
	}
	return zw, nil
}

func NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}
