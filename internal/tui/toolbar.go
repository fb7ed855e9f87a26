package tui

import (
	"strings"

	"cbx-editor/internal/editor"

	"github.com/charmbracelet/lipgloss"
)

type toolbarButton struct {
	label  string
	active bool
}

// renderToolbar mirrors the formatting bar: inline styles, block type,
// lists and alignment, each highlighted from live editor state.
func (m appModel) renderToolbar() string {
	onStyle := lipgloss.NewStyle().
		Padding(0, 1).
		Bold(true).
		Foreground(colorToolbarOnFg).
		Background(colorToolbarOnBg)
	offStyle := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorToolbarOffFg)

	active := m.session.Tracker.Active()
	buttons := []toolbarButton{
		{"B", m.session.Bridge.IsActive(editor.CmdBold)},
		{"I", m.session.Bridge.IsActive(editor.CmdItalic)},
		{"U", m.session.Bridge.IsActive(editor.CmdUnderline)},
		{"H1", active == editor.BlockHeading1},
		{"H2", active == editor.BlockHeading2},
		{"H3", active == editor.BlockHeading3},
		{"H4", active == editor.BlockHeading4},
		{"•List", m.session.Bridge.IsActive(editor.CmdInsertUnorderedList)},
		{"1.List", m.session.Bridge.IsActive(editor.CmdInsertOrderedList)},
		{"Left", m.session.Bridge.IsActive(editor.CmdJustifyLeft)},
		{"Center", m.session.Bridge.IsActive(editor.CmdJustifyCenter)},
		{"Right", m.session.Bridge.IsActive(editor.CmdJustifyRight)},
	}

	parts := make([]string, 0, len(buttons))
	for _, b := range buttons {
		if b.active {
			parts = append(parts, onStyle.Render(b.label))
		} else {
			parts = append(parts, offStyle.Render(b.label))
		}
	}
	return " " + strings.Join(parts, " ")
}
