package tui

import (
	"fmt"
	"strings"

	"cbx-editor/internal/editor"
	"cbx-editor/internal/model"
	"cbx-editor/internal/preview"

	"github.com/charmbracelet/lipgloss"
)

func draftsModalTitle(n int) string {
	return fmt.Sprintf("My Saved Drafts (%d/%d)", n, model.MaxDrafts)
}

func (m *appModel) refreshPreview() {
	html := m.session.Sync.HTML()
	if editor.IsEmpty(html) {
		m.previewVP.SetContent(styleMuted().Render(preview.EmptyNotice))
		return
	}
	m.previewVP.SetContent(preview.HostDocument(html))
}

func (m appModel) View() string {
	if !m.seenWindowSize {
		return "Loading..."
	}

	header := m.renderHeader()
	toolbar := m.renderToolbar()
	panes := m.renderPanes()
	status := m.renderStatus()

	screen := lipgloss.JoinVertical(lipgloss.Left, header, toolbar, panes, status)

	if m.modal != modalNone {
		return m.renderModal()
	}
	return screen
}

func (m appModel) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Render("CBX Editor")

	saved := "Not autosaved yet"
	if at, ok := m.session.LastSavedAt(); ok {
		saved = "Last autosaved: " + at.Format("3:04:05 PM")
	}
	right := styleMuted().Render(saved)

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return " " + title + strings.Repeat(" ", gap) + right
}

func (m appModel) renderPanes() string {
	paneW := m.width/2 - 2
	paneH := m.height - 6
	if paneH < 3 {
		paneH = 3
	}

	visual := m.renderVisualPane(paneW-2, paneH)

	border := lipgloss.RoundedBorder()
	activeStyle := lipgloss.NewStyle().Border(border).BorderForeground(colorAccent).Width(paneW).Height(paneH)
	idleStyle := lipgloss.NewStyle().Border(border).BorderForeground(colorMuted).Width(paneW).Height(paneH)

	visualBox, sourceBox := idleStyle, idleStyle
	if m.pane == paneVisual {
		visualBox = activeStyle
	} else {
		sourceBox = activeStyle
	}

	left := visualBox.Render(normalizePane(visual, paneW, paneH))
	right := sourceBox.Render(m.source.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

func (m appModel) renderStatus() string {
	if m.flash != "" {
		return " " + lipgloss.NewStyle().Foreground(colorAccent).Render(m.flash)
	}
	help := "tab: source   ctrl+s: save   ctrl+o: drafts   ctrl+p: preview   ctrl+d: download   ctrl+x: clear   ctrl+c: quit"
	if m.session.ActiveDraftID() != "" {
		help = "ctrl+n: new editor   " + help
	}
	return " " + styleMuted().Render(help)
}

func (m appModel) renderModal() string {
	bodyW := modalBodyWidth(m.width)
	var title, body, help string

	switch m.modal {
	case modalSaveDraft:
		title = "Save Draft"
		body = renderInputLine(bodyW, m.nameInput.View())
		help = "enter: save   esc: cancel"
	case modalDrafts:
		title = draftsModalTitle(len(m.session.Drafts()))
		if len(m.session.Drafts()) == 0 {
			body = styleMuted().Render("No saved drafts yet.")
		} else {
			body = m.draftsList.View()
		}
		help = "enter: load   x: delete   esc: close"
	case modalPreview:
		title = "Preview"
		body = m.previewVP.View()
		help = "up/down: scroll   esc: close"
	case modalFont:
		title = "Font"
		body = m.fontList.View()
		help = "enter: apply   esc: cancel"
	case modalTextColor:
		title = "Text Color"
		body = renderInputLine(bodyW, m.colorInput.View())
		help = "enter: apply   esc: cancel"
	case modalHiliteColor:
		title = "Highlight Color"
		body = renderInputLine(bodyW, m.colorInput.View())
		help = "enter: apply   esc: cancel"
	case modalConfirmClear:
		return placeCentered(m.width, m.height,
			renderConfirmModal(m.width, "Clear Editor",
				"Clear the editor? All unsaved content will be lost.",
				"Clear", "Cancel", m.confirmFocus))
	}

	content := strings.Join([]string{
		body,
		"",
		styleMuted().Width(bodyW).Render(help),
	}, "\n")
	return placeCentered(m.width, m.height, renderModalBox(m.width, title, content))
}
