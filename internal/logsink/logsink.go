// Package logsink appends one human-readable line per machine reading to a
// text log. The file is only ever appended to: never truncated, never
// rotated. Lines are meant for people, not parsers.
package logsink

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/luki/plantmon/internal/sensor"
)

// timeLayout matches the default textual form of a wall-clock timestamp,
// e.g. "2026-10-15 14:30:00.123456".
const timeLayout = "2006-01-02 15:04:05.000000"

// Sink receives one entry per (cycle, machine).
type Sink interface {
	Write(t time.Time, machine string, r sensor.Reading) error
}

// FormatLine renders a log entry without the trailing newline.
func FormatLine(t time.Time, machine string, r sensor.Reading) string {
	return fmt.Sprintf("%s - %s: %s", t.Format(timeLayout), machine, r)
}

// FileSink appends entries to a file on disk.
type FileSink struct {
	path    string
	current *os.File
}

// New creates a sink for path. The file is opened on the first write so a
// missing or unwritable location surfaces per entry rather than at startup.
func New(path string) *FileSink {
	return &FileSink{path: path}
}

// Path returns the log file location.
func (s *FileSink) Path() string {
	return s.path
}

// Write appends one line. After a failure the file is closed and reopened
// on the next call.
func (s *FileSink) Write(t time.Time, machine string, r sensor.Reading) error {
	if s.current == nil {
		if dir := filepath.Dir(s.path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("cannot create log dir: %w", err)
			}
		}
		f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("cannot open log: %w", err)
		}
		s.current = f
	}

	if _, err := io.WriteString(s.current, FormatLine(t, machine, r)+"\n"); err != nil {
		s.Close()
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// Close closes the current file. The sink may be written to again.
func (s *FileSink) Close() error {
	if s.current == nil {
		return nil
	}
	err := s.current.Close()
	s.current = nil
	return err
}

// Discard drops every entry.
type Discard struct{}

func (Discard) Write(time.Time, string, sensor.Reading) error { return nil }
