package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Options configures the progress reporter.
type Options struct {
	// TotalRecordings is the number of report rows in the batch.
	TotalRecordings int

	// Output is where to write progress output.
	// Default: os.Stderr
	Output io.Writer

	// UpdateInterval is how often to refresh the status line.
	// Default: 500ms
	UpdateInterval time.Duration
}

// Reporter outputs human-readable progress for a running batch.
type Reporter struct {
	opts Options

	downloaded atomic.Int32
	skipped    atomic.Int32
	failed     atomic.Int32
	bytes      atomic.Int64

	mu        sync.Mutex
	startTime time.Time
	stopCh    chan struct{}
	stopped   bool
}

// NewReporter creates a new progress reporter.
func NewReporter(opts Options) *Reporter {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	if opts.UpdateInterval == 0 {
		opts.UpdateInterval = 500 * time.Millisecond
	}

	return &Reporter{
		opts:   opts,
		stopCh: make(chan struct{}),
	}
}

// Start begins printing status lines.
func (r *Reporter) Start() {
	r.startTime = time.Now()
	go r.updateLoop()
}

// Stop stops the reporter and prints the final summary.
func (r *Reporter) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	r.mu.Unlock()

	close(r.stopCh)
}

// Downloaded records one completed recording of the given size.
func (r *Reporter) Downloaded(size int64) {
	r.downloaded.Add(1)
	r.bytes.Add(size)
}

// Skipped records one skipped row.
func (r *Reporter) Skipped() {
	r.skipped.Add(1)
}

// Failed records one failed row.
func (r *Reporter) Failed() {
	r.failed.Add(1)
}

// Downloads returns the number of completed recordings so far.
func (r *Reporter) Downloads() int {
	return int(r.downloaded.Load())
}

// Bytes returns the number of bytes downloaded so far.
func (r *Reporter) Bytes() int64 {
	return r.bytes.Load()
}

func (r *Reporter) updateLoop() {
	ticker := time.NewTicker(r.opts.UpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			r.printSummary()
			return
		case <-ticker.C:
			r.printStatus()
		}
	}
}

func (r *Reporter) printStatus() {
	done := int(r.downloaded.Load())
	skipped := int(r.skipped.Load())
	processed := done + skipped + int(r.failed.Load())

	fmt.Fprintf(r.opts.Output, "\r[collab-dl] Recordings: %d/%d | %d skipped | %s downloaded    ",
		processed,
		r.opts.TotalRecordings,
		skipped,
		formatBytes(r.bytes.Load()),
	)
}

func (r *Reporter) printSummary() {
	total := r.bytes.Load()
	duration := time.Since(r.startTime)
	speed := float64(total) / duration.Seconds()

	fmt.Fprintf(r.opts.Output, "\r[collab-dl] Done: %d downloaded | %d skipped | %d failed | %s in %s (%s/s)    \n",
		r.downloaded.Load(),
		r.skipped.Load(),
		r.failed.Load(),
		formatBytes(total),
		formatDuration(duration),
		formatBytes(int64(speed)),
	)
}

// formatBytes formats bytes as a human-readable string.
func formatBytes(b int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case b >= GB:
		return fmt.Sprintf("%.2f GB", float64(b)/float64(GB))
	case b >= MB:
		return fmt.Sprintf("%.2f MB", float64(b)/float64(MB))
	case b >= KB:
		return fmt.Sprintf("%.2f KB", float64(b)/float64(KB))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// formatDuration formats a duration as a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}
