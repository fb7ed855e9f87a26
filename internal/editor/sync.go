package editor

// Origin tags where a canonical-HTML change came from, so views can skip
// re-applying updates they themselves produced (no feedback loops).
type Origin int

const (
	// OriginSurface: the visual surface was edited and re-serialized.
	OriginSurface Origin = iota
	// OriginSource: the raw HTML source view was typed into.
	OriginSource
	// OriginExternal: a draft load, clear, or other non-view cause.
	OriginExternal
)

// Synchronizer owns the single canonical HTML string shared by the visual
// surface and the raw-source view. All mutation goes through it.
type Synchronizer struct {
	surface   Surface
	html      string
	listeners []func(html string, origin Origin)
}

func NewSynchronizer(surface Surface) *Synchronizer {
	return &Synchronizer{surface: surface}
}

// HTML returns the canonical markup value.
func (s *Synchronizer) HTML() string { return s.html }

// Subscribe registers a listener for canonical-HTML changes. Listeners run
// synchronously on the mutating call.
func (s *Synchronizer) Subscribe(fn func(html string, origin Origin)) {
	s.listeners = append(s.listeners, fn)
}

// ResyncFromSurface reads the surface's serialized markup into the
// canonical string. Called after every surface edit and formatting command
// so the canonical value never lags the surface by more than one action.
func (s *Synchronizer) ResyncFromSurface() {
	s.html = s.surface.Markup()
	s.notify(OriginSurface)
}

// SetFromSource writes raw-source text into the canonical string verbatim,
// with no sanitization or validation, and pushes it into the surface.
func (s *Synchronizer) SetFromSource(text string) {
	s.html = text
	if s.surface.Markup() != s.html {
		s.surface.SetMarkup(s.html)
	}
	s.notify(OriginSource)
}

// SetExternal replaces the canonical string due to a non-view cause (draft
// load, clear). The surface is only overwritten when its markup actually
// differs, preserving caret position and native edit history.
func (s *Synchronizer) SetExternal(html string) {
	s.html = html
	if s.surface.Markup() != s.html {
		s.surface.SetMarkup(s.html)
	}
	s.notify(OriginExternal)
}

func (s *Synchronizer) notify(origin Origin) {
	for _, fn := range s.listeners {
		fn(s.html, origin)
	}
}
