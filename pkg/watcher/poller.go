// Package watcher drives the poll/parse/report cycle over a growing
// training log.
package watcher

import (
	"fmt"
	"io"
	"os"
)

// Poller tracks a byte cursor into the log file and returns newly
// appended text on each call. The cursor is monotonically non-decreasing;
// file truncation or rotation is not detected, so a file that shrinks
// below the cursor reads from a stale offset.
type Poller struct {
	path   string
	offset int64
}

// NewPoller creates a poller starting at the beginning of the file.
func NewPoller(path string) *Poller {
	return &Poller{path: path}
}

// Poll opens the file, seeks to the cursor, and reads to end of file.
// It returns the newly appended text, which is empty when the file has
// not grown. On any I/O error the cursor is left unchanged so the same
// region is retried on the next cycle.
func (p *Poller) Poll() (string, error) {
	f, err := os.Open(p.path) // #nosec G304 -- user-provided log path is expected
	if err != nil {
		return "", fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	if _, err := f.Seek(p.offset, io.SeekStart); err != nil {
		return "", fmt.Errorf("seeking to offset %d: %w", p.offset, err)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("reading log file: %w", err)
	}

	p.offset += int64(len(data))
	return string(data), nil
}

// Offset returns the current cursor position.
func (p *Poller) Offset() int64 {
	return p.offset
}
