package engine

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/zeebo/blake3"
)

// Result is one algorithm's run over one file.
type Result struct {
	File           string        `cbor:"file"`
	Algorithm      string        `cbor:"algorithm"`
	OriginalSize   int           `cbor:"original_size"`
	CompressedSize int           `cbor:"compressed_size"`
	CompressTime   time.Duration `cbor:"compress_ns"`
	DecompressTime time.Duration `cbor:"decompress_ns"`
	Digest         [32]byte      `cbor:"blake3"`
	RoundTrip      bool          `cbor:"round_trip"`
	Err            string        `cbor:"error,omitempty"`
}

// Ratio is the compressed size as a percentage of the original.
func (r Result) Ratio() float64 {
	return ratio(r.CompressedSize, r.OriginalSize)
}

// Benchmark compresses every file with every algorithm on its own and
// decodes it back. A failing algorithm is recorded in its Result and
// does not stop the run; only unknown names and unreadable files do.
func (e *Engine) Benchmark(names []string, files []string) ([]Result, error) {
	chain, err := Resolve(names)
	if err != nil {
		return nil, err
	}
	var results []Result
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("benchmark: %w", err)
		}
		digest := blake3.Sum256(content)
		for _, alg := range chain {
			r := e.benchmarkOne(alg, content)
			r.File = file
			r.Digest = digest
			e.logger.Debug("benchmarked", "file", file, "algorithm", alg.Name,
				"ratio", fmt.Sprintf("%.2f%%", r.Ratio()), "round_trip", r.RoundTrip)
			results = append(results, r)
		}
	}
	return results, nil
}

func (e *Engine) benchmarkOne(alg Algorithm, content []byte) Result {
	r := Result{Algorithm: alg.Name, OriginalSize: len(content)}

	start := time.Now()
	compressed, err := e.write(alg, content, Options{Size: -1})
	r.CompressTime = time.Since(start)
	if err != nil {
		r.Err = err.Error()
		return r
	}
	r.CompressedSize = len(compressed)

	start = time.Now()
	restored, err := e.read(alg, compressed, Options{Size: len(content)})
	r.DecompressTime = time.Since(start)
	if err != nil {
		r.Err = err.Error()
		return r
	}
	r.RoundTrip = blake3.Sum256(restored) == blake3.Sum256(content)
	return r
}

// WriteTable prints results as aligned text columns.
func WriteTable(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tALGORITHM\tORIGINAL\tCOMPRESSED\tRATIO\tCOMPRESS\tDECOMPRESS\tROUND TRIP")
	for _, r := range results {
		if r.Err != "" {
			fmt.Fprintf(tw, "%s\t%s\t%s\t-\t-\t-\t-\t%s\n",
				r.File, r.Algorithm, humanize.Bytes(uint64(r.OriginalSize)), r.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f%%\t%s\t%s\t%v\n",
			r.File, r.Algorithm,
			humanize.Bytes(uint64(r.OriginalSize)),
			humanize.Bytes(uint64(r.CompressedSize)),
			r.Ratio(),
			r.CompressTime.Round(time.Microsecond),
			r.DecompressTime.Round(time.Microsecond),
			r.RoundTrip)
	}
	return tw.Flush()
}
