package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// selectBar is a horizontal tab row of toggleable entries. The source bar
// allows any combination; the topic bar is single-select, toggling an entry
// clears the previous one.
type selectBar struct {
	entries    []string
	active     map[string]bool
	single     bool
	selectMode bool
	cursor     int
}

func newSelectBar(entries []string, single bool) selectBar {
	return selectBar{
		entries: entries,
		active:  make(map[string]bool),
		single:  single,
	}
}

func (b *selectBar) toggle(entry string) {
	if b.active[entry] {
		delete(b.active, entry)
		return
	}
	if b.single {
		clear(b.active)
	}
	b.active[entry] = true
}

func (b *selectBar) toggleCurrent() {
	if b.cursor < len(b.entries) {
		b.toggle(b.entries[b.cursor])
	}
}

func (b *selectBar) activeEntries() []string {
	if len(b.active) == 0 {
		return nil // nil = everything
	}
	var out []string
	for _, e := range b.entries {
		if b.active[e] {
			out = append(out, e)
		}
	}
	return out
}

// activeEntry returns the single active entry, for single-select bars.
func (b *selectBar) activeEntry() string {
	active := b.activeEntries()
	if len(active) == 0 {
		return ""
	}
	return active[0]
}

func (b *selectBar) activeLabel() string {
	active := b.activeEntries()
	if active == nil {
		return "All"
	}
	return strings.Join(active, ", ")
}

func (b *selectBar) render(width int) string {
	sep := tabSeparatorStyle.Render(" · ")
	var parts []string

	// "All" tab
	if len(b.active) == 0 {
		parts = append(parts, tabActiveStyle.Render("All"))
	} else {
		parts = append(parts, tabInactiveStyle.Render("All"))
	}

	for i, e := range b.entries {
		style := tabInactiveStyle
		if b.active[e] {
			style = tabActiveStyle
		}
		label := e
		if b.selectMode && i == b.cursor {
			label = "[" + e + "]"
		}
		parts = append(parts, style.Render(label))
	}

	// Build row with · separators, stopping when we'd exceed width
	var row string
	for i, part := range parts {
		candidate := row
		if i > 0 {
			candidate += sep
		}
		candidate += part
		if lipgloss.Width(candidate) > width && row != "" {
			break
		}
		row = candidate
	}

	barStyle := lipgloss.NewStyle().
		Background(colorSurface).
		Width(width).
		PaddingLeft(1)
	return barStyle.Render(row)
}
