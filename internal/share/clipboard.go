package share

import (
	"errors"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// CopyMethod says how text reached the clipboard.
type CopyMethod int

const (
	CopyNone CopyMethod = iota
	CopySystem
	CopyTerminal
)

// ErrNoClipboard means neither the system clipboard nor a terminal was
// available; the caller should leave the text on screen for manual copy.
var ErrNoClipboard = errors.New("clipboard unavailable")

// Copier writes text to the system clipboard, falling back to an OSC 52
// escape sequence on the terminal.
type Copier struct {
	term   io.Writer
	system func(string) error
	usable func() bool
}

// NewCopier returns a Copier whose fallback writes to term. term may be nil.
func NewCopier(term io.Writer) *Copier {
	return &Copier{
		term:   term,
		system: clipboard.WriteAll,
		usable: func() bool { return !clipboard.Unsupported },
	}
}

// NewSystemCopier returns a Copier with no terminal fallback, for use
// while something else owns the terminal. When the system clipboard is
// out of reach Copy reports ErrNoClipboard.
func NewSystemCopier() *Copier {
	return NewCopier(nil)
}

// Copy places text on a clipboard and reports which one.
func (c *Copier) Copy(text string) (CopyMethod, error) {
	var sysErr error
	if c.usable() {
		if sysErr = c.system(text); sysErr == nil {
			return CopySystem, nil
		}
	}
	if c.term == nil {
		if sysErr != nil {
			return CopyNone, fmt.Errorf("%w: %v", ErrNoClipboard, sysErr)
		}
		return CopyNone, ErrNoClipboard
	}
	if _, err := osc52.New(text).WriteTo(c.term); err != nil {
		return CopyNone, fmt.Errorf("%w: %v", ErrNoClipboard, err)
	}
	return CopyTerminal, nil
}
