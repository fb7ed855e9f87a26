package editor

// Command names the native rich-text edit operations understood by a host
// surface. The names follow the browser execCommand vocabulary so the same
// toolbar wiring drives both the in-process surface and a browser surface.
type Command string

const (
	CmdBold      Command = "bold"
	CmdItalic    Command = "italic"
	CmdUnderline Command = "underline"

	CmdFontName    Command = "fontName"
	CmdForeColor   Command = "foreColor"
	CmdHiliteColor Command = "hiliteColor"

	CmdJustifyLeft   Command = "justifyLeft"
	CmdJustifyCenter Command = "justifyCenter"
	CmdJustifyRight  Command = "justifyRight"

	CmdInsertUnorderedList Command = "insertUnorderedList"
	CmdInsertOrderedList   Command = "insertOrderedList"

	CmdFormatBlock Command = "formatBlock"
)

// Color clears are ordinary commands carrying a sentinel reset value; there
// is no separate "remove formatting" primitive at this layer.
const (
	DefaultTextColor      = "#000000"
	DefaultHighlightColor = "#FFFFFF"
)

// FontFamilies is the font menu offered by the composition shells.
var FontFamilies = []string{
	"Arial",
	"Helvetica",
	"Times New Roman",
	"Georgia",
	"Verdana",
	"Trebuchet MS",
	"Comic Sans MS",
	"Impact",
	"Poppins",
}

// DefaultFontFamily is preselected in the font menu.
const DefaultFontFamily = "Poppins"
