package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/tlqiu/quic3/pkg/utils"
)

// ProgressUI handles progress display for file transfers
type ProgressUI struct {
	bar       *progressbar.ProgressBar
	operation string // "Sending" or "Receiving"
	started   time.Time
}

// NewProgressUI creates a new progress UI
func NewProgressUI() *ProgressUI {
	return &ProgressUI{}
}

// StartSending initializes the progress bar for sending a file
func (p *ProgressUI) StartSending(filename string, totalBytes int64) {
	p.start("Sending", filename, totalBytes)
}

func (p *ProgressUI) start(operation, filename string, totalBytes int64) {
	p.operation = operation
	p.started = time.Now()
	p.bar = progressbar.NewOptions64(totalBytes,
		progressbar.OptionSetDescription(fmt.Sprintf("%s %s", operation, filename)),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(50),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(false),
	)
}

// Add advances the progress bar by n bytes
func (p *ProgressUI) Add(n int) {
	if p.bar == nil {
		return
	}
	_ = p.bar.Add(n)
}

// Complete finishes the bar and prints a transfer summary
func (p *ProgressUI) Complete(totalBytes int64) {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()

	elapsed := time.Since(p.started)
	throughput := 0.0
	if elapsed > 0 {
		throughput = float64(totalBytes) / elapsed.Seconds() / (1024 * 1024)
	}

	fmt.Printf("\n=============================================\n")
	fmt.Printf("File transfer completed successfully!\n")
	fmt.Printf("+ Total bytes sent: %s\n", utils.FormatFileSize(totalBytes))
	fmt.Printf("+ Transfer time: %s\n", elapsed.Round(time.Millisecond))
	fmt.Printf("+ Average throughput: %.2f MB/s\n", throughput)
	fmt.Printf("=============================================\n")
}
