// Package engine runs chains of compressors over files.
package engine

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/zeebo/blake3"

	"github.com/FitrahHaque/splitpack/compressor/splitcode"
)

// Engine compresses and decompresses content through a chain of
// registered algorithms.
type Engine struct {
	logger      *slog.Logger
	progress    bool
	progressOut io.Writer
	verify      bool
}

type Option func(*Engine)

// WithProgress draws a progress bar while split coding.
func WithProgress(enabled bool) Option {
	return func(e *Engine) {
		e.progress = enabled
	}
}

// WithProgressOutput redirects progress bars, os.Stderr by default.
func WithProgressOutput(w io.Writer) Option {
	return func(e *Engine) {
		e.progressOut = w
	}
}

// WithVerify decodes every archive CompressFiles writes and compares
// its digest to the input.
func WithVerify(enabled bool) Option {
	return func(e *Engine) {
		e.verify = enabled
	}
}

// New returns an Engine logging to logger. A nil logger discards.
func New(logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	e := &Engine{
		logger:      logger,
		progressOut: os.Stderr,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compress applies the named algorithms in order.
func (e *Engine) Compress(content []byte, names []string) ([]byte, error) {
	chain, err := Resolve(names)
	if err != nil {
		return nil, err
	}
	return e.compress(content, chain)
}

// Decompress undoes Compress by applying the chain in reverse. size is
// the original length, or -1 when unknown.
func (e *Engine) Decompress(content []byte, names []string, size int) ([]byte, error) {
	chain, err := Resolve(names)
	if err != nil {
		return nil, err
	}
	return e.decompress(content, chain, size)
}

func (e *Engine) compress(content []byte, chain []Algorithm) ([]byte, error) {
	for _, alg := range chain {
		observe, finish := e.progressBar(alg.Name + " encode")
		out, err := e.write(alg, content, Options{Progress: observe, Size: -1})
		finish()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", alg.Name, err)
		}
		e.logger.Debug("compression stage done", "algorithm", alg.Name,
			"in", len(content), "out", len(out))
		content = out
	}
	return content, nil
}

func (e *Engine) decompress(content []byte, chain []Algorithm, size int) ([]byte, error) {
	for i, alg := range slices.Backward(chain) {
		o := Options{Size: -1}
		if i == 0 {
			o.Size = size
		}
		observe, finish := e.progressBar(alg.Name + " decode")
		o.Progress = observe
		out, err := e.read(alg, content, o)
		finish()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", alg.Name, err)
		}
		e.logger.Debug("decompression stage done", "algorithm", alg.Name,
			"in", len(content), "out", len(out))
		content = out
	}
	return content, nil
}

func (e *Engine) write(alg Algorithm, content []byte, o Options) ([]byte, error) {
	var b bytes.Buffer
	w, err := alg.NewWriter(&b, o)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(content); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func (e *Engine) read(alg Algorithm, content []byte, o Options) ([]byte, error) {
	r, err := alg.NewReader(bytes.NewReader(content), o)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// Verify decodes compressed with the original size and compares blake3
// digests. It also warns when decoding without the size, as a plain
// decompress does, would not reproduce original.
func (e *Engine) Verify(original, compressed []byte, names []string) error {
	chain, err := Resolve(names)
	if err != nil {
		return err
	}
	want := blake3.Sum256(original)
	restored, err := e.decompress(compressed, chain, len(original))
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	if got := blake3.Sum256(restored); got != want {
		return &VerifyError{Algorithms: names, Want: want, Got: got}
	}
	e.logger.Debug("verified", "algorithms", strings.Join(names, ","),
		"blake3", hex.EncodeToString(want[:]))

	unsized, err := e.decompress(compressed, chain, -1)
	switch {
	case err != nil:
		e.logger.Warn("archive needs its original size to decode", "error", err)
	case len(unsized) != len(original):
		e.logger.Warn("archive decodes with extra trailing symbols unless its original size is given",
			"size", len(original), "decoded", len(unsized))
	}
	return nil
}

// CompressFiles writes file+extension for every file.
func (e *Engine) CompressFiles(names []string, files []string, extension string) error {
	chain, err := Resolve(names)
	if err != nil {
		return err
	}
	for _, file := range files {
		if err := e.compressFile(names, chain, file, file+extension); err != nil {
			return fmt.Errorf("compressing %s: %w", file, err)
		}
	}
	return nil
}

func (e *Engine) compressFile(names []string, chain []Algorithm, filePath, outputFileName string) error {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	if chain[0].Name == "splitcode" {
		freq := splitcode.CountFrequencies(content)
		if freq.AlphabetSize() == 1 {
			e.logger.Warn("input holds a single distinct byte; its archive decodes to nothing without the original size",
				"file", filePath)
		}
	}
	compressed, err := e.compress(content, chain)
	if err != nil {
		return err
	}
	if e.verify {
		if err := e.Verify(content, compressed, names); err != nil {
			return err
		}
	}
	if err := os.WriteFile(outputFileName, compressed, 0o644); err != nil {
		return err
	}
	e.logger.Info("compressed", "file", filePath, "output", outputFileName,
		"original", humanize.Bytes(uint64(len(content))),
		"compressed", humanize.Bytes(uint64(len(compressed))),
		"ratio", fmt.Sprintf("%.2f%%", ratio(len(compressed), len(content))))
	return nil
}

// DecompressFiles strips extension from every file name, or appends
// ".out" when the name does not carry it.
func (e *Engine) DecompressFiles(names []string, files []string, extension string) error {
	chain, err := Resolve(names)
	if err != nil {
		return err
	}
	for _, file := range files {
		output, ok := strings.CutSuffix(file, extension)
		if !ok || output == "" {
			output = file + ".out"
		}
		if err := e.decompressFile(chain, file, output); err != nil {
			return fmt.Errorf("decompressing %s: %w", file, err)
		}
	}
	return nil
}

func (e *Engine) decompressFile(chain []Algorithm, filePath, outputFileName string) error {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	restored, err := e.decompress(content, chain, -1)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputFileName, restored, 0o644); err != nil {
		return err
	}
	e.logger.Info("decompressed", "file", filePath, "output", outputFileName,
		"size", humanize.Bytes(uint64(len(restored))))
	return nil
}

// InspectFile reads a split-coded archive's header and code table.
func (e *Engine) InspectFile(path string) (splitcode.Header, *splitcode.CodeTable, error) {
	archive, err := os.ReadFile(path)
	if err != nil {
		return splitcode.Header{}, nil, err
	}
	header, err := splitcode.Inspect(archive)
	if err != nil {
		return splitcode.Header{}, nil, fmt.Errorf("inspecting %s: %w", path, err)
	}
	_, table, err := splitcode.Deserialize(archive)
	if err != nil {
		return splitcode.Header{}, nil, fmt.Errorf("inspecting %s: %w", path, err)
	}
	return header, table, nil
}

// ratio is compressed as a percentage of original; empty input is 0%.
func ratio(compressed, original int) float64 {
	if original == 0 {
		return 0
	}
	return float64(compressed) / float64(original) * 100
}
