package progress

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer serializes writes from the reporter goroutine with reads
// from the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitForOutput(t *testing.T, b *syncBuffer, want string) string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if out := b.String(); strings.Contains(out, want) {
			return out
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("output never contained %q: %q", want, b.String())
	return ""
}

func TestReporterCounters(t *testing.T) {
	r := NewReporter(Options{TotalRecordings: 5})

	r.Downloaded(100)
	r.Downloaded(50)
	r.Skipped()
	r.Failed()

	if r.Downloads() != 2 {
		t.Errorf("Downloads() = %d, want 2", r.Downloads())
	}
	if r.Bytes() != 150 {
		t.Errorf("Bytes() = %d, want 150", r.Bytes())
	}
}

func TestReporterSummary(t *testing.T) {
	out := &syncBuffer{}
	r := NewReporter(Options{
		TotalRecordings: 3,
		Output:          out,
		UpdateInterval:  10 * time.Millisecond,
	})

	r.Start()
	r.Downloaded(2048)
	r.Downloaded(1024)
	r.Skipped()
	r.Stop()

	summary := waitForOutput(t, out, "Done:")
	if !strings.Contains(summary, "2 downloaded") {
		t.Errorf("summary missing download count: %q", summary)
	}
	if !strings.Contains(summary, "1 skipped") {
		t.Errorf("summary missing skip count: %q", summary)
	}
	if !strings.Contains(summary, "3.00 KB") {
		t.Errorf("summary missing byte total: %q", summary)
	}
}

func TestReporterStatusLine(t *testing.T) {
	out := &syncBuffer{}
	r := NewReporter(Options{
		TotalRecordings: 10,
		Output:          out,
		UpdateInterval:  10 * time.Millisecond,
	})

	r.Start()
	defer r.Stop()
	r.Downloaded(1024 * 1024)

	status := waitForOutput(t, out, "Recordings:")
	if !strings.Contains(status, "1/10") {
		t.Errorf("status missing progress fraction: %q", status)
	}
}

func TestReporterStopTwice(t *testing.T) {
	r := NewReporter(Options{Output: &syncBuffer{}})
	r.Start()
	r.Stop()
	r.Stop() // must not panic
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.00 KB"},
		{3 * 1024 * 1024, "3.00 MB"},
		{5 * 1024 * 1024 * 1024, "5.00 GB"},
	}

	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{30 * time.Second, "30s"},
		{90 * time.Second, "1m 30s"},
		{3*time.Hour + 5*time.Minute + 7*time.Second, "3h 5m 7s"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.in); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
