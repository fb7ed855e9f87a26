package editor

// Surface is the native rich-text edit capability the editor drives. It is
// deliberately small: any host that can apply a formatting command, report
// command state at the caret, serialize itself to markup, and walk the
// caret's ancestor chain can back the editor. internal/surface provides the
// in-process implementation; a browser's contentEditable element provides
// the same pair of capabilities for the web shell.
type Surface interface {
	// Execute applies a formatting command to the current caret/selection.
	Execute(cmd Command, value string)

	// QueryActive reports whether cmd currently applies at the
	// caret/selection. Must never mutate the surface.
	QueryActive(cmd Command) bool

	// Markup returns the surface's current serialized markup.
	Markup() string

	// SetMarkup replaces the surface content wholesale. Callers are
	// expected to skip the call when the markup already matches; an
	// unconditional overwrite destroys caret position and edit history.
	SetMarkup(html string)

	// Focus returns input focus to the surface after a toolbar action.
	Focus()

	// CaretAncestry lists node names from the selection's start container
	// upward, excluding the editing root, nearest first.
	CaretAncestry() []string
}
