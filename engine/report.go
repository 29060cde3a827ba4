package engine

import (
	"fmt"
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"
)

const reportVersion = 1

// Report is the CBOR document --report writes.
type Report struct {
	Version int       `cbor:"version"`
	Created time.Time `cbor:"created"`
	Results []Result  `cbor:"results"`
}

var reportEncMode cbor.EncMode

func init() {
	opts := cbor.CoreDetEncOptions()
	opts.Time = cbor.TimeRFC3339Nano
	var err error
	reportEncMode, err = opts.EncMode()
	if err != nil {
		panic("engine: CBOR encoder initialization failed: " + err.Error())
	}
}

// WriteReport encodes results with the given creation time.
func WriteReport(w io.Writer, created time.Time, results []Result) error {
	report := Report{
		Version: reportVersion,
		Created: created,
		Results: results,
	}
	if err := reportEncMode.NewEncoder(w).Encode(report); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// ReadReport decodes a report written by WriteReport.
func ReadReport(r io.Reader) (*Report, error) {
	var report Report
	if err := cbor.NewDecoder(r).Decode(&report); err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	if report.Version != reportVersion {
		return nil, fmt.Errorf("reading report: unsupported version %d", report.Version)
	}
	return &report, nil
}
