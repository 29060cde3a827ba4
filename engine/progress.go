package engine

import (
	"github.com/cheggaaa/pb/v3"

	"github.com/FitrahHaque/splitpack/compressor/splitcode"
)

// progressBar returns an observer that draws a bar on the engine's
// progress output, created on the first report, and a func that
// completes it. Both are no-ops when progress is disabled.
func (e *Engine) progressBar(label string) (splitcode.ProgressFunc, func()) {
	if !e.progress {
		return nil, func() {}
	}
	var bar *pb.ProgressBar
	observe := func(done, total int) {
		if bar == nil {
			bar = pb.New(total)
			bar.SetWriter(e.progressOut)
			bar.Set("prefix", label+" ")
			bar.Start()
		}
		bar.SetCurrent(int64(done))
	}
	finish := func() {
		if bar != nil {
			bar.Finish()
		}
	}
	return observe, finish
}
