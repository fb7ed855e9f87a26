package tui

import (
	"errors"
	"os"

	"cbx-editor/internal/editor"

	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Init() tea.Cmd { return savedTick() }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.fromSource = false

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.seenWindowSize = true
		m.resizeChildren()
		return m, nil

	case savedTickMsg:
		return m, savedTick()

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil

	case tea.KeyMsg:
		var (
			next tea.Model
			cmd  tea.Cmd
		)
		if m.modal != modalNone {
			next, cmd = m.updateModal(msg)
		} else {
			next, cmd = m.updateEditor(msg)
		}
		// Reconcile the raw-source textarea with the canonical HTML unless
		// this pass originated there, where overwriting would fight the
		// user's cursor.
		if am, ok := next.(appModel); ok && !am.fromSource {
			am.syncSourcePane()
			return am, cmd
		}
		return next, cmd
	}

	return m, nil
}

func (m appModel) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "tab":
		if m.pane == paneVisual {
			m.pane = paneSource
			m.host.Blur()
			m.source.Focus()
		} else {
			m.pane = paneVisual
			m.source.Blur()
			m.host.Focus()
		}
		return m, nil

	case "ctrl+s":
		m.modal = modalSaveDraft
		m.nameInput.SetValue("")
		m.nameInput.Focus()
		return m, nil

	case "ctrl+o":
		m.refreshDraftsList()
		m.modal = modalDrafts
		return m, nil

	case "ctrl+p":
		m.modal = modalPreview
		m.refreshPreview()
		return m, nil

	case "ctrl+d":
		return m.download()

	case "ctrl+n":
		// "New Editor" detaches from the active draft; only offered while
		// one is active.
		if m.session.ActiveDraftID() != "" {
			m.session.Clear()
			return m, m.setFlash("Started a new editor")
		}
		return m, nil

	case "ctrl+x":
		m.modal = modalConfirmClear
		m.confirmFocus = confirmFocusCancel
		return m, nil
	}

	if m.pane == paneSource {
		return m.updateSourcePane(msg)
	}
	return m.updateVisualPane(msg)
}

func (m appModel) updateVisualPane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+b":
		m.session.Bridge.Apply(editor.CmdBold, "")
		return m, nil
	case "ctrl+i":
		m.session.Bridge.Apply(editor.CmdItalic, "")
		return m, nil
	case "ctrl+u":
		m.session.Bridge.Apply(editor.CmdUnderline, "")
		return m, nil

	case "alt+1", "alt+2", "alt+3", "alt+4":
		kinds := map[string]editor.BlockKind{
			"alt+1": editor.BlockHeading1,
			"alt+2": editor.BlockHeading2,
			"alt+3": editor.BlockHeading3,
			"alt+4": editor.BlockHeading4,
		}
		m.session.SetBlock(kinds[msg.String()])
		return m, nil

	case "alt+u":
		m.session.Bridge.Apply(editor.CmdInsertUnorderedList, "")
		return m, nil
	case "alt+o":
		m.session.Bridge.Apply(editor.CmdInsertOrderedList, "")
		return m, nil

	case "alt+l":
		m.session.Bridge.Apply(editor.CmdJustifyLeft, "")
		return m, nil
	case "alt+c":
		m.session.Bridge.Apply(editor.CmdJustifyCenter, "")
		return m, nil
	case "alt+r":
		m.session.Bridge.Apply(editor.CmdJustifyRight, "")
		return m, nil

	case "ctrl+f":
		m.modal = modalFont
		return m, nil
	case "alt+t":
		m.modal = modalTextColor
		m.colorInput.SetValue("")
		m.colorInput.Focus()
		return m, nil
	case "alt+b":
		m.modal = modalHiliteColor
		m.colorInput.SetValue("")
		m.colorInput.Focus()
		return m, nil

	case "enter":
		m.host.InsertNewline()
		m.resyncFromSurface()
		return m, nil
	case "backspace":
		m.host.DeleteBackward()
		m.resyncFromSurface()
		return m, nil

	case "left":
		m.host.MoveLeft(false)
		m.resyncFromSurface()
		return m, nil
	case "right":
		m.host.MoveRight(false)
		m.resyncFromSurface()
		return m, nil
	case "shift+left":
		m.host.MoveLeft(true)
		return m, nil
	case "shift+right":
		m.host.MoveRight(true)
		return m, nil
	case "up":
		m.host.MoveUp()
		m.resyncFromSurface()
		return m, nil
	case "down":
		m.host.MoveDown()
		m.resyncFromSurface()
		return m, nil
	case "home", "ctrl+a":
		m.host.MoveLineStart()
		return m, nil
	case "end", "ctrl+e":
		m.host.MoveLineEnd()
		return m, nil
	case "ctrl+k":
		m.host.SelectLine()
		return m, nil
	}

	if msg.Type == tea.KeyRunes && !msg.Alt {
		m.host.InsertText(string(msg.Runes))
		m.resyncFromSurface()
		return m, nil
	}
	if msg.Type == tea.KeySpace {
		m.host.InsertText(" ")
		m.resyncFromSurface()
		return m, nil
	}
	return m, nil
}

func (m appModel) updateSourcePane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.source.Value()
	var cmd tea.Cmd
	m.source, cmd = m.source.Update(msg)
	if v := m.source.Value(); v != before {
		m.fromSource = true
		m.session.Sync.SetFromSource(v)
		m.session.Tracker.Resync(m.host.CaretAncestry())
	}
	return m, cmd
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.modal {
	case modalSaveDraft:
		switch msg.String() {
		case "esc":
			m.modal = modalNone
			m.nameInput.SetValue("")
			return m, nil
		case "enter":
			_, err := m.session.SaveDraft(m.nameInput.Value())
			m.modal = modalNone
			m.nameInput.SetValue("")
			if errors.Is(err, editor.ErrEmptyContent) {
				return m, m.setFlash("Editor is empty. Cannot save an empty draft.")
			}
			if err != nil {
				return m, m.setFlash("Save failed: " + err.Error())
			}
			return m, m.setFlash("Draft saved")
		}
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd

	case modalDrafts:
		switch msg.String() {
		case "esc":
			m.modal = modalNone
			return m, nil
		case "enter":
			if it, ok := m.draftsList.SelectedItem().(draftItem); ok {
				if d, ok := m.session.LoadDraft(it.draft.ID); ok {
					m.modal = modalNone
					return m, m.setFlash("Draft \"" + d.Name + "\" loaded")
				}
			}
			return m, nil
		case "x", "delete":
			if it, ok := m.draftsList.SelectedItem().(draftItem); ok {
				m.session.DeleteDraft(it.draft.ID)
				m.refreshDraftsList()
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.draftsList, cmd = m.draftsList.Update(msg)
		return m, cmd

	case modalPreview:
		if msg.String() == "esc" {
			m.modal = modalNone
			return m, nil
		}
		var cmd tea.Cmd
		m.previewVP, cmd = m.previewVP.Update(msg)
		return m, cmd

	case modalFont:
		switch msg.String() {
		case "esc":
			m.modal = modalNone
			return m, nil
		case "enter":
			if f, ok := m.fontList.SelectedItem().(fontItem); ok {
				m.session.Bridge.Apply(editor.CmdFontName, string(f)+", sans-serif")
			}
			m.modal = modalNone
			return m, nil
		}
		var cmd tea.Cmd
		m.fontList, cmd = m.fontList.Update(msg)
		return m, cmd

	case modalTextColor, modalHiliteColor:
		switch msg.String() {
		case "esc":
			m.modal = modalNone
			return m, nil
		case "enter":
			value := m.colorInput.Value()
			cmd, reset := editor.CmdForeColor, editor.DefaultTextColor
			if m.modal == modalHiliteColor {
				cmd, reset = editor.CmdHiliteColor, editor.DefaultHighlightColor
			}
			if value == "" {
				// Clearing a color is an ordinary apply with the sentinel.
				value = reset
			}
			m.session.Bridge.Apply(cmd, value)
			m.modal = modalNone
			return m, nil
		}
		var cmd tea.Cmd
		m.colorInput, cmd = m.colorInput.Update(msg)
		return m, cmd

	case modalConfirmClear:
		switch msg.String() {
		case "esc":
			m.modal = modalNone
			return m, nil
		case "tab":
			if m.confirmFocus == confirmFocusConfirm {
				m.confirmFocus = confirmFocusCancel
			} else {
				m.confirmFocus = confirmFocusConfirm
			}
			return m, nil
		case "enter":
			m.modal = modalNone
			if m.confirmFocus == confirmFocusConfirm {
				m.session.Clear()
				return m, m.setFlash("Editor cleared")
			}
			return m, nil
		}
		return m, nil
	}

	m.modal = modalNone
	return m, nil
}

// download writes the canonical HTML, byte for byte, to email_draft.html
// in the working directory.
func (m appModel) download() (tea.Model, tea.Cmd) {
	b, err := m.session.ExportHTML()
	if errors.Is(err, editor.ErrEmptyContent) {
		return m, m.setFlash("The editor is empty. Nothing to download.")
	}
	if err != nil {
		return m, m.setFlash("Download failed: " + err.Error())
	}
	if err := os.WriteFile(editor.ExportFileName, b, 0o644); err != nil {
		return m, m.setFlash("Download failed: " + err.Error())
	}
	return m, m.setFlash("Saved " + editor.ExportFileName)
}

// syncSourcePane pushes the canonical HTML into the raw-source textarea
// when they diverge.
func (m *appModel) syncSourcePane() {
	if html := m.session.Sync.HTML(); m.source.Value() != html {
		m.source.SetValue(html)
	}
}

func (m *appModel) resizeChildren() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	paneW := m.width/2 - 2
	paneH := m.height - 6
	if paneH < 3 {
		paneH = 3
	}
	m.source.SetWidth(paneW)
	m.source.SetHeight(paneH)
	bodyW := modalBodyWidth(m.width)
	m.draftsList.SetSize(bodyW, paneH)
	m.fontList.SetSize(bodyW, paneH)
	m.previewVP.Width = bodyW
	m.previewVP.Height = paneH
	m.nameInput.Width = bodyW - 4
	m.colorInput.Width = bodyW - 4
}
