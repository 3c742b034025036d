package overlay

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode/utf8"
)

// Surface is the narrow contract to the rendering toolkit: a borderless,
// always-on-top panel that can show one block of text or disappear. The
// toolkit's event loop and window internals live behind this boundary.
type Surface interface {
	Show(text string)
	Hide()
}

// ConsoleSurface renders the overlay panel as a framed block on a
// terminal. It stands in for a windowed surface in headless and
// development environments.
type ConsoleSurface struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsoleSurface creates a surface writing to out
func NewConsoleSurface(out io.Writer) *ConsoleSurface {
	return &ConsoleSurface{out: out}
}

// Show renders the text inside a frame
func (s *ConsoleSurface) Show(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rule := strings.Repeat("-", 48)
	fmt.Fprintf(s.out, "+%s+\n", rule)
	for _, line := range strings.Split(text, "\n") {
		fmt.Fprintf(s.out, "| %-46s |\n", truncate(line, 46))
	}
	fmt.Fprintf(s.out, "+%s+\n", rule)
}

// Hide clears the panel
func (s *ConsoleSurface) Hide() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.out, "[overlay hidden]")
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}
