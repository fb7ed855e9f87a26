package tui

import (
	"fmt"
	"strings"

	"cbx-editor/internal/editor"
	"cbx-editor/internal/surface"

	"github.com/charmbracelet/lipgloss"
)

const editorPlaceholder = "Enter message here..."

// renderVisualPane renders the styled editing surface. The caret is shown
// as a reverse-video cell and a single-line selection as a highlighted
// range, matching how the raw-source textarea presents its cursor.
func (m appModel) renderVisualPane(width, height int) string {
	blocks := m.host.Blocks()
	if m.isSurfaceEmpty(blocks) {
		placeholder := styleMuted().Render(editorPlaceholder)
		if m.pane == paneVisual {
			placeholder = caretCell() + placeholder
		}
		return placeholder
	}

	cb, cl, co := m.host.Caret()
	sb, sl, sFrom, sTo, hasSel := m.host.SelectionRange()

	var out []string
	for bi, bl := range blocks {
		for li, line := range bl.Lines {
			showCaret := m.pane == paneVisual && !hasSel && bi == cb && li == cl
			selFrom, selTo := -1, -1
			if hasSel && bi == sb && li == sl {
				selFrom, selTo = sFrom, sTo
			}
			text := renderLine(bl, line, showCaret, co, selFrom, selTo)
			text = blockPrefix(bl, li) + text
			if bl.Align == "center" || bl.Align == "right" {
				pos := lipgloss.Center
				if bl.Align == "right" {
					pos = lipgloss.Right
				}
				text = lipgloss.PlaceHorizontal(width, pos, text)
			}
			out = append(out, text)
		}
	}

	if len(out) > height {
		// Keep the caret line in view.
		caretLine := caretDisplayLine(blocks, cb, cl)
		start := caretLine - height + 1
		if start < 0 {
			start = 0
		}
		if start+height > len(out) {
			start = len(out) - height
		}
		out = out[start : start+height]
	}
	return strings.Join(out, "\n")
}

// isSurfaceEmpty covers both empty shapes the host produces: no blocks at
// all (fresh host, or markup set to "") and a single bare block with one
// empty line (everything typed was deleted).
func (m appModel) isSurfaceEmpty(blocks []surface.RenderBlock) bool {
	if !editor.IsEmpty(m.session.Sync.HTML()) {
		return false
	}
	if len(blocks) == 0 {
		return true
	}
	return len(blocks) == 1 && blocks[0].Tag == "" &&
		len(blocks[0].Lines) == 1 && len(blocks[0].Lines[0]) == 0
}

func blockPrefix(bl surface.RenderBlock, lineIdx int) string {
	switch bl.Tag {
	case "ul":
		return styleMuted().Render("• ")
	case "ol":
		return styleMuted().Render(fmt.Sprintf("%d. ", lineIdx+1))
	case "h1", "h2", "h3", "h4":
		return styleMuted().Render(strings.ToUpper(bl.Tag) + " ")
	}
	return ""
}

func renderLine(bl surface.RenderBlock, line []surface.RenderSpan, showCaret bool, caretOff, selFrom, selTo int) string {
	var b strings.Builder
	off := 0
	caretDrawn := false
	for _, sp := range line {
		runes := []rune(sp.Text)
		for i, r := range runes {
			cell := string(r)
			switch {
			case showCaret && off+i == caretOff:
				b.WriteString(lipgloss.NewStyle().Reverse(true).Render(cell))
				caretDrawn = true
			case selFrom >= 0 && off+i >= selFrom && off+i < selTo:
				b.WriteString(lipgloss.NewStyle().
					Foreground(colorSelectedFg).
					Background(colorSelectedBg).
					Render(cell))
			default:
				b.WriteString(spanStyle(bl, sp).Render(cell))
			}
		}
		off += len(runes)
	}
	if showCaret && !caretDrawn {
		b.WriteString(caretCell())
	}
	return b.String()
}

func caretCell() string {
	return lipgloss.NewStyle().Reverse(true).Render(" ")
}

func spanStyle(bl surface.RenderBlock, sp surface.RenderSpan) lipgloss.Style {
	st := lipgloss.NewStyle()
	if sp.Bold || strings.HasPrefix(bl.Tag, "h") {
		st = st.Bold(true)
	}
	if sp.Italic {
		st = st.Italic(true)
	}
	if sp.Underline {
		st = st.Underline(true)
	}
	if sp.Color != "" && sp.Color != editor.DefaultTextColor {
		st = st.Foreground(lipgloss.Color(sp.Color))
	}
	if sp.Background != "" && sp.Background != editor.DefaultHighlightColor {
		st = st.Background(lipgloss.Color(sp.Background))
	}
	return st
}

func caretDisplayLine(blocks []surface.RenderBlock, cb, cl int) int {
	n := 0
	for bi, bl := range blocks {
		if bi == cb {
			return n + cl
		}
		n += len(bl.Lines)
	}
	return n
}
