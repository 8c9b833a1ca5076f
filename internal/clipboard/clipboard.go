// Package clipboard writes formatted text to the system clipboard or a
// stand-in.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("clipboard unsupported on this system")

// Sink is a clipboard.
type Sink interface {
	Write(text string) error
	Read() (string, error)
}

// System is the desktop clipboard.
type System struct{}

// Write replaces the clipboard contents.
func (System) Write(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// Read returns the clipboard contents.
func (System) Read() (string, error) {
	if clipboard.Unsupported {
		return "", ErrUnsupported
	}
	s, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return s, nil
}

// Writer prints copied text to W, one entry per line. Read returns the
// last entry.
type Writer struct {
	W io.Writer

	mu   sync.Mutex
	last string
}

// NewWriter returns a Writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{W: w}
}

func (w *Writer) Write(text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := text
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	if _, err := io.WriteString(w.W, out); err != nil {
		return fmt.Errorf("print clipboard text: %w", err)
	}
	w.last = text
	return nil
}

func (w *Writer) Read() (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last, nil
}

// Memory keeps the clipboard in memory and records every write.
type Memory struct {
	mu      sync.Mutex
	content string
	writes  []string
	fail    error
}

// NewMemory returns an in-memory clipboard holding initial.
func NewMemory(initial string) *Memory {
	return &Memory{content: initial}
}

// FailWith makes later writes return err.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = err
}

func (m *Memory) Write(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.content = text
	m.writes = append(m.writes, text)
	return nil
}

func (m *Memory) Read() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.content, nil
}

// Writes returns every successful write in order.
func (m *Memory) Writes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.writes...)
}
