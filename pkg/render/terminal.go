package render

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Glamour style names accepted by NewTerminal.
const (
	StyleAuto  = "auto"
	StyleDark  = "dark"
	StyleLight = "light"
	StyleNoTTY = "notty"
)

// Terminal renders markdown for a terminal pane of a given width.
// Renderers are cached per width because building one parses the style.
// A glamour renderer keeps state while rendering, so mu also serializes
// Render calls.
type Terminal struct {
	style string

	mu    sync.Mutex
	cache map[int]*glamour.TermRenderer
}

// NewTerminal creates a terminal renderer. An empty style means StyleAuto.
func NewTerminal(style string) *Terminal {
	if style == "" {
		style = StyleAuto
	}
	return &Terminal{style: style, cache: make(map[int]*glamour.TermRenderer)}
}

// Render returns src as styled text wrapped at width columns.
func (t *Terminal) Render(src string, width int) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, err := t.renderer(width)
	if err != nil {
		return "", err
	}
	out, err := r.Render(src)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

// renderer returns the cached renderer for width. Caller holds mu.
func (t *Terminal) renderer(width int) (*glamour.TermRenderer, error) {
	if width < 20 {
		width = 20
	}

	if r, ok := t.cache[width]; ok {
		return r, nil
	}

	styleOpt := glamour.WithStandardStyle(t.style)
	if t.style == StyleAuto {
		styleOpt = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return nil, fmt.Errorf("failed to create terminal renderer: %w", err)
	}
	t.cache[width] = r
	return r, nil
}
