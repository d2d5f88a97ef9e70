// Package clipboard provides the text stores the editor copies bundles into.
package clipboard

import (
	"errors"
	"sync"

	"github.com/atotto/clipboard"

	"isoflow/interaction"
)

// ErrUnsupported is returned when the platform has no usable clipboard.
var ErrUnsupported = errors.New("clipboard: no system clipboard available")

// System reads and writes the operating system clipboard.
type System struct{}

// NewSystem returns the OS clipboard, or ErrUnsupported when none of the
// platform helpers (pbcopy, xclip, xsel, wl-clipboard, ...) are installed.
func NewSystem() (*System, error) {
	if clipboard.Unsupported {
		return nil, ErrUnsupported
	}
	return &System{}, nil
}

func (*System) ReadText() (string, error) {
	return clipboard.ReadAll()
}

func (*System) WriteText(text string) error {
	return clipboard.WriteAll(text)
}

// Memory is a process-local clipboard, used in tests and headless sessions.
type Memory struct {
	mu   sync.Mutex
	text string
}

func (m *Memory) ReadText() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// Text is a convenience accessor for tests.
func (m *Memory) Text() string {
	t, _ := m.ReadText()
	return t
}

// New picks a clipboard by name: "memory" or "system". A system clipboard
// that is unavailable falls back to memory and reports the fallback.
func New(kind string) (c interaction.Clipboard, fellBack bool) {
	if kind == "memory" {
		return &Memory{}, false
	}
	sys, err := NewSystem()
	if err != nil {
		return &Memory{}, true
	}
	return sys, false
}
