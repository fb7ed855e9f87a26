package tui

import (
	"time"

	"cbx-editor/internal/editor"
	"cbx-editor/internal/model"
	"cbx-editor/internal/store"
	"cbx-editor/internal/surface"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type pane int

const (
	paneVisual pane = iota
	paneSource
)

type modalKind int

const (
	modalNone modalKind = iota
	modalSaveDraft
	modalDrafts
	modalPreview
	modalFont
	modalTextColor
	modalHiliteColor
	modalConfirmClear
)

type flashDoneMsg struct{ seq int }

type savedTickMsg struct{}

// savedTick refreshes the "Last autosaved" line; autosave writes land on a
// timer goroutine, outside the bubbletea loop.
func savedTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return savedTickMsg{} })
}

type appModel struct {
	session *editor.Session
	host    *surface.Host
	store   store.Store

	width  int
	height int
	// The very first WindowSizeMsg is initial sizing, not a user resize.
	seenWindowSize bool

	pane  pane
	modal modalKind

	source     textarea.Model
	nameInput  textinput.Model
	colorInput textinput.Model

	draftsList list.Model
	fontList   list.Model
	previewVP  viewport.Model

	confirmFocus confirmModalFocus

	flash    string
	flashSeq int

	// fromSource marks the current Update pass as a raw-source edit so the
	// textarea is not overwritten with its own value afterwards.
	fromSource bool
}

type draftItem struct{ draft model.Draft }

func (d draftItem) Title() string { return d.draft.Name }
func (d draftItem) Description() string {
	return d.draft.Timestamp.Local().Format("Jan 2 15:04") + "  " + excerpt(d.draft.Content, 40)
}
func (d draftItem) FilterValue() string { return d.draft.Name }

type fontItem string

func (f fontItem) Title() string       { return string(f) }
func (f fontItem) Description() string { return "" }
func (f fontItem) FilterValue() string { return string(f) }

func newAppModel(st store.Store) appModel {
	host := surface.NewHost()
	host.Focus()
	session := editor.NewSession(host, st)

	src := textarea.New()
	src.Placeholder = "Raw HTML"
	src.ShowLineNumbers = false
	src.SetValue(session.Sync.HTML())

	name := textinput.New()
	name.Placeholder = "e.g., My first email draft"
	name.CharLimit = 120

	color := textinput.New()
	color.Placeholder = "#rrggbb (empty resets)"
	color.CharLimit = 32

	drafts := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	drafts.SetShowHelp(false)
	drafts.SetShowStatusBar(false)
	drafts.DisableQuitKeybindings()

	fonts := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	fonts.Title = "Font family"
	fonts.SetShowHelp(false)
	fonts.SetShowStatusBar(false)
	fonts.DisableQuitKeybindings()
	fontItems := make([]list.Item, 0, len(editor.FontFamilies))
	for _, f := range editor.FontFamilies {
		fontItems = append(fontItems, fontItem(f))
	}
	fonts.SetItems(fontItems)

	return appModel{
		session:    session,
		host:       host,
		store:      st,
		source:     src,
		nameInput:  name,
		colorInput: color,
		draftsList: drafts,
		fontList:   fonts,
		previewVP:  viewport.New(0, 0),
	}
}

func (m *appModel) refreshDraftsList() {
	drafts := m.session.Drafts()
	items := make([]list.Item, 0, len(drafts))
	for _, d := range drafts {
		items = append(items, draftItem{draft: d})
	}
	m.draftsList.SetItems(items)
	m.draftsList.Title = draftsModalTitle(len(drafts))
}

// resyncFromSurface propagates a visual-surface edit into the canonical
// HTML and recomputes the block classification. Runs after every keystroke
// in the visual pane because selection state changes continuously.
func (m *appModel) resyncFromSurface() {
	m.session.Sync.ResyncFromSurface()
	m.session.Tracker.Resync(m.host.CaretAncestry())
}

func (m *appModel) setFlash(s string) tea.Cmd {
	m.flash = s
	m.flashSeq++
	seq := m.flashSeq
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return flashDoneMsg{seq: seq} })
}

func excerpt(html string, max int) string {
	text := editor.PlainText(html)
	runes := []rune(text)
	if len(runes) > max {
		return string(runes[:max-1]) + "…"
	}
	return text
}
