package ui

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
)

// Progress prints a "[n/total] label" line as each concurrent task ends.
// It is safe for use from multiple goroutines.
type Progress struct {
	out       io.Writer
	total     int
	completed atomic.Int32
	mu        sync.Mutex
}

// NewProgress creates a progress tracker for total tasks.
func NewProgress(out io.Writer, total int) *Progress {
	return &Progress{out: out, total: total}
}

// Done marks one task as finished.
func (p *Progress) Done(label string) {
	p.line(label)
}

// Skip marks one task as finished without a result.
func (p *Progress) Skip(label, reason string) {
	p.line(fmt.Sprintf("%s (skipped: %s)", label, reason))
}

// Completed returns how many tasks have finished.
func (p *Progress) Completed() int {
	return int(p.completed.Load())
}

func (p *Progress) line(label string) {
	n := int(p.completed.Add(1))
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.out, "[%d/%d] %s\n", n, p.total, label)
}
