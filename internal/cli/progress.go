package cli

import (
	"github.com/schollz/progressbar/v3"
)

// scanProgress adapts a progress bar to the scanner's progress callback.
type scanProgress struct {
	quiet bool
	bar   *progressbar.ProgressBar
}

func newScanProgress(quiet bool) *scanProgress {
	return &scanProgress{quiet: quiet}
}

// OnProgress receives (processed, total) updates from the scanner's merge
// goroutine.
func (p *scanProgress) OnProgress(processed, total int) {
	if p.quiet || total == 0 {
		return
	}
	if p.bar == nil {
		p.bar = progressbar.Default(int64(total), "scanning")
	}
	p.bar.Set(processed)
	if processed == total {
		p.bar.Finish()
	}
}
