package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and
// height lines tall, keeping split-pane rendering stable under
// lipgloss.JoinHorizontal.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i := range lines {
		ln := lines[i]
		w := xansi.StringWidth(ln)
		if w > width {
			if width <= 1 {
				ln = xansi.Cut(ln, 0, width)
			} else {
				ln = xansi.Cut(ln, 0, width-1) + "…"
			}
			w = xansi.StringWidth(ln)
		}
		if w < width {
			ln = ln + strings.Repeat(" ", width-w)
		}
		lines[i] = ln
	}
	return strings.Join(lines, "\n")
}

// modalBodyWidth bounds modal content width against the terminal.
func modalBodyWidth(width int) int {
	w := width - 12
	if w > 64 {
		w = 64
	}
	if w < 24 {
		w = 24
	}
	return w
}

// renderModalBox renders a titled modal surface. No inner borders: some
// terminals show background artifacts when nesting bordered components
// inside a modal with a background color.
func renderModalBox(width int, title string, content string) string {
	bodyW := modalBodyWidth(width)

	titleLine := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorSurfaceFg).
		Background(colorSurfaceBg).
		Width(bodyW).
		Render(title)

	body := lipgloss.NewStyle().
		Foreground(colorSurfaceFg).
		Background(colorSurfaceBg).
		Width(bodyW).
		Render(content)

	return lipgloss.NewStyle().
		Background(colorSurfaceBg).
		Padding(1, 2).
		Render(titleLine + "\n\n" + body)
}

// renderInputLine renders a single-line text input inside a modal. The
// view must never contain newlines or overflow the modal body; either can
// trigger wrapping that looks like "newline insertion" while typing.
func renderInputLine(bodyW int, inputView string) string {
	if bodyW < 10 {
		bodyW = 10
	}
	inputView = strings.ReplaceAll(inputView, "\n", " ")
	inputView = strings.ReplaceAll(inputView, "\r", " ")

	line := lipgloss.PlaceHorizontal(
		bodyW,
		lipgloss.Left,
		" "+inputView+" ",
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
	if xansi.StringWidth(line) > bodyW {
		// Terminate ANSI styling to prevent bleed past the modal edge.
		line = xansi.Cut(line, 0, bodyW) + "\x1b[0m"
	}
	return line
}

// placeCentered overlays the modal in the middle of the full frame.
func placeCentered(width, height int, s string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s)
}
