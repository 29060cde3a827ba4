package engine

import (
	"fmt"
	"io"

	"github.com/FitrahHaque/splitpack/compressor/gzip"
	"github.com/FitrahHaque/splitpack/compressor/lz"
	"github.com/FitrahHaque/splitpack/compressor/splitcode"
	"github.com/FitrahHaque/splitpack/compressor/zstd"
)

// Engines lists every algorithm name the registry knows, default first.
var Engines = [...]string{
	"splitcode",
	"zstd",
	"lz4",
	"gzip",
}

// Options carries per-run settings to an algorithm. Baselines ignore them.
type Options struct {
	Progress splitcode.ProgressFunc

	// Size is the decompressed length, or -1 when unknown.
	Size int
}

// Algorithm pairs the writer and reader factories of one codec.
type Algorithm struct {
	Name      string
	NewWriter func(w io.Writer, o Options) (io.WriteCloser, error)
	NewReader func(r io.Reader, o Options) (io.ReadCloser, error)
}

var algorithms = map[string]Algorithm{
	"splitcode": {
		Name: "splitcode",
		NewWriter: func(w io.Writer, o Options) (io.WriteCloser, error) {
			return splitcode.NewWriter(w, o.splitcode()...), nil
		},
		NewReader: func(r io.Reader, o Options) (io.ReadCloser, error) {
			return splitcode.NewReader(r, o.splitcode()...), nil
		},
	},
	"zstd": baseline("zstd", zstd.NewWriter, zstd.NewReader),
	"lz4":  baseline("lz4", lz.NewWriter, lz.NewReader),
	"gzip": baseline("gzip", gzip.NewWriter, gzip.NewReader),
}

func baseline(name string, newWriter func(io.Writer) (io.WriteCloser, error), newReader func(io.Reader) (io.ReadCloser, error)) Algorithm {
	return Algorithm{
		Name: name,
		NewWriter: func(w io.Writer, _ Options) (io.WriteCloser, error) {
			return newWriter(w)
		},
		NewReader: func(r io.Reader, _ Options) (io.ReadCloser, error) {
			return newReader(r)
		},
	}
}

func (o Options) splitcode() []splitcode.Option {
	var opts []splitcode.Option
	if o.Progress != nil {
		opts = append(opts, splitcode.WithProgress(o.Progress))
	}
	if o.Size >= 0 {
		opts = append(opts, splitcode.WithOutputLength(o.Size))
	}
	return opts
}

// Lookup returns the algorithm registered under name.
func Lookup(name string) (Algorithm, error) {
	alg, ok := algorithms[name]
	if !ok {
		return Algorithm{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return alg, nil
}

// Resolve looks up a chain of names. An empty chain is an error.
func Resolve(names []string) ([]Algorithm, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no algorithm selected", ErrUnknownAlgorithm)
	}
	chain := make([]Algorithm, 0, len(names))
	for _, name := range names {
		alg, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		chain = append(chain, alg)
	}
	return chain, nil
}
