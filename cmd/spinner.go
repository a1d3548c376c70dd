package cmd

import (
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

func newSpinner(w io.Writer, description string) *progressbar.ProgressBar {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(15),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
	_ = bar.RenderBlank()
	return bar
}

func finishSpinner(bar *progressbar.ProgressBar) {
	if bar != nil {
		_ = bar.Finish()
	}
}
