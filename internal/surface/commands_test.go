package surface

import (
	"reflect"
	"testing"

	"cbx-editor/internal/editor"
)

func typeAndSelectAll(h *Host, text string) {
	h.InsertText(text)
	h.MoveLineStart()
	for range text {
		h.MoveRight(true)
	}
}

func TestBoldSelectionToggle(t *testing.T) {
	t.Parallel()

	h := NewHost()
	typeAndSelectAll(h, "hi")
	h.Execute(editor.CmdBold, "")
	if got := h.Markup(); got != "<b>hi</b>" {
		t.Fatalf("markup = %q", got)
	}
	if !h.QueryActive(editor.CmdBold) {
		t.Fatalf("bold not reported active over bold selection")
	}

	// The whole selection is bold, so toggling removes it.
	h.Execute(editor.CmdBold, "")
	if got := h.Markup(); got != "hi" {
		t.Fatalf("markup after untoggle = %q", got)
	}
}

func TestBoldMixedSelectionApplies(t *testing.T) {
	t.Parallel()

	h := NewHost()
	h.Execute(editor.CmdBold, "")
	h.InsertText("a")
	h.Execute(editor.CmdBold, "")
	h.InsertText("b")
	h.MoveLineStart()
	h.MoveRight(true)
	h.MoveRight(true)

	// Mixed selection: browser rule applies the attribute everywhere.
	h.Execute(editor.CmdBold, "")
	if got := h.Markup(); got != "<b>ab</b>" {
		t.Fatalf("markup = %q", got)
	}
}

func TestCollapsedToggleAffectsTypingOnly(t *testing.T) {
	t.Parallel()

	h := NewHost()
	h.InsertText("x")
	h.Execute(editor.CmdItalic, "")
	if got := h.Markup(); got != "x" {
		t.Fatalf("collapsed toggle mutated the document: %q", got)
	}
	if !h.QueryActive(editor.CmdItalic) {
		t.Fatalf("typing style not reported active")
	}
	h.InsertText("y")
	if got := h.Markup(); got != "x<i>y</i>" {
		t.Fatalf("markup = %q", got)
	}
}

func TestFontAndColors(t *testing.T) {
	t.Parallel()

	h := NewHost()
	typeAndSelectAll(h, "hi")
	h.Execute(editor.CmdFontName, "Poppins, sans-serif")
	h.Execute(editor.CmdForeColor, "#ff0000")
	h.Execute(editor.CmdHiliteColor, "#ffff00")

	want := `<span style="font-family:Poppins, sans-serif; color:#ff0000; background-color:#ffff00">hi</span>`
	if got := h.Markup(); got != want {
		t.Fatalf("markup = %q, want %q", got, want)
	}
}

func TestJustifyMaterializesParagraph(t *testing.T) {
	t.Parallel()

	h := NewHost()
	h.InsertText("hi")
	h.Execute(editor.CmdJustifyCenter, "")
	if got := h.Markup(); got != `<p style="text-align: center">hi</p>` {
		t.Fatalf("markup = %q", got)
	}
	if !h.QueryActive(editor.CmdJustifyCenter) {
		t.Fatalf("justifyCenter not active")
	}
	if h.QueryActive(editor.CmdJustifyLeft) {
		t.Fatalf("justifyLeft must not report active for center")
	}
}

func TestListToggleAndUnwrap(t *testing.T) {
	t.Parallel()

	h := NewHost()
	h.InsertText("one")
	h.Execute(editor.CmdInsertOrderedList, "")
	h.MoveLineEnd()
	h.InsertNewline()
	h.InsertText("two")
	if got := h.Markup(); got != "<ol><li>one</li><li>two</li></ol>" {
		t.Fatalf("markup = %q", got)
	}
	if !h.QueryActive(editor.CmdInsertOrderedList) {
		t.Fatalf("ordered list not active inside list")
	}

	// Toggling the same kind unwraps each item into its own paragraph.
	h.Execute(editor.CmdInsertOrderedList, "")
	if got := h.Markup(); got != "<p>one</p><p>two</p>" {
		t.Fatalf("markup after unwrap = %q", got)
	}
	if h.QueryActive(editor.CmdInsertOrderedList) {
		t.Fatalf("ordered list still active after unwrap")
	}
}

func TestFormatBlockValueShapes(t *testing.T) {
	t.Parallel()

	h := NewHost()
	h.InsertText("x")
	h.Execute(editor.CmdFormatBlock, "<H3>")
	if got := h.Markup(); got != "<h3>x</h3>" {
		t.Fatalf("markup = %q", got)
	}
	h.Execute(editor.CmdFormatBlock, "p")
	if got := h.Markup(); got != "<p>x</p>" {
		t.Fatalf("bracketless value: markup = %q", got)
	}
	h.Execute(editor.CmdFormatBlock, "<blockquote>")
	if got := h.Markup(); got != "<p>x</p>" {
		t.Fatalf("unsupported tag must be ignored, got %q", got)
	}
}

func TestQueryActiveValueCommandsAreFalse(t *testing.T) {
	t.Parallel()

	h := NewHost()
	h.InsertText("x")
	for _, cmd := range []editor.Command{editor.CmdFontName, editor.CmdForeColor, editor.CmdHiliteColor, editor.CmdFormatBlock} {
		if h.QueryActive(cmd) {
			t.Fatalf("QueryActive(%s) = true, want false for value commands", cmd)
		}
	}
}

func TestCaretAncestryNearestFirst(t *testing.T) {
	t.Parallel()

	h := NewHost()
	h.Execute(editor.CmdBold, "")
	h.InsertText("hi")
	h.Execute(editor.CmdFormatBlock, "<h2>")
	if got := h.CaretAncestry(); !reflect.DeepEqual(got, []string{"B", "H2"}) {
		t.Fatalf("ancestry = %v, want [B H2]", got)
	}
}

func TestCaretAncestryInList(t *testing.T) {
	t.Parallel()

	h := NewHost()
	h.InsertText("item")
	h.Execute(editor.CmdInsertUnorderedList, "")
	if got := h.CaretAncestry(); !reflect.DeepEqual(got, []string{"LI", "UL"}) {
		t.Fatalf("ancestry = %v, want [LI UL]", got)
	}
}

func TestCaretAncestryBareBlockIsEmpty(t *testing.T) {
	t.Parallel()

	h := NewHost()
	h.InsertText("loose")
	if got := h.CaretAncestry(); len(got) != 0 {
		t.Fatalf("ancestry = %v, want none for the bare block", got)
	}
}
