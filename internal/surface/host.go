// Package surface provides an in-process host for the editor's native
// rich-text capability pair: it keeps a small markup tree (blocks of styled
// spans), applies the same command semantics a browser surface would, and
// serializes itself to HTML. The TUI edits it directly; tests drive it in
// place of a browser.
package surface

import (
	"strings"

	"cbx-editor/internal/editor"
)

// style is the inline formatting state of a run of text.
type style struct {
	bold       bool
	italic     bool
	underline  bool
	font       string
	color      string
	background string
}

func (s style) isPlain() bool {
	return s == style{}
}

type span struct {
	text  string
	style style
}

// block is a block-level node. Paragraphs and headings hold one line per
// explicit <br>; lists hold one line per <li>. Tag "" is the implicit bare
// block a browser keeps until a block command runs.
type block struct {
	tag   string // "", "p", "h1".."h4", "ul", "ol"
	align string // "", "left", "center", "right"
	lines [][]span
}

func (b block) isList() bool { return b.tag == "ul" || b.tag == "ol" }

// caret addresses a rune offset within one line.
type caret struct {
	block, line, off int
}

func (c caret) before(o caret) bool {
	if c.block != o.block {
		return c.block < o.block
	}
	if c.line != o.line {
		return c.line < o.line
	}
	return c.off < o.off
}

// Host implements editor.Surface over the markup tree.
type Host struct {
	blocks []block

	pos       caret
	anchor    caret
	selecting bool

	// typing is the pending style applied to subsequently inserted text;
	// toggling an inline command at a collapsed caret mutates it.
	typing style

	focused bool
}

func NewHost() *Host {
	return &Host{}
}

var _ editor.Surface = (*Host)(nil)

// Focus marks the host as the focused editing surface. The formatting
// bridge calls it after every command.
func (h *Host) Focus() { h.focused = true }

// Blur drops focus (raw-source pane takes over input).
func (h *Host) Blur() { h.focused = false }

func (h *Host) Focused() bool { return h.focused }

func lineText(ln []span) string {
	var b strings.Builder
	for _, sp := range ln {
		b.WriteString(sp.text)
	}
	return b.String()
}

func lineLen(ln []span) int {
	n := 0
	for _, sp := range ln {
		n += len([]rune(sp.text))
	}
	return n
}

func (h *Host) curLine() []span {
	if h.pos.block >= len(h.blocks) {
		return nil
	}
	bl := h.blocks[h.pos.block]
	if h.pos.line >= len(bl.lines) {
		return nil
	}
	return bl.lines[h.pos.line]
}

// clampCaret keeps the caret inside the document after structural edits.
func (h *Host) clampCaret() {
	if len(h.blocks) == 0 {
		h.pos = caret{}
		h.selecting = false
		return
	}
	if h.pos.block >= len(h.blocks) {
		h.pos.block = len(h.blocks) - 1
	}
	bl := h.blocks[h.pos.block]
	if h.pos.line >= len(bl.lines) {
		h.pos.line = len(bl.lines) - 1
	}
	if h.pos.line < 0 {
		h.pos.line = 0
	}
	if n := lineLen(bl.lines[h.pos.line]); h.pos.off > n {
		h.pos.off = n
	}
}

// selection returns the ordered selection bounds and whether one exists.
// Selections are kept within a single line; a cross-line drag collapses to
// the caret.
func (h *Host) selection() (from, to caret, ok bool) {
	if !h.selecting {
		return h.pos, h.pos, false
	}
	a, b := h.anchor, h.pos
	if a == b {
		return h.pos, h.pos, false
	}
	if b.before(a) {
		a, b = b, a
	}
	if a.block != b.block || a.line != b.line {
		return h.pos, h.pos, false
	}
	return a, b, true
}

func (h *Host) collapseSelection() {
	h.selecting = false
}

// ensureBlock guarantees at least one block exists before an insert. A
// fresh document gets the implicit bare block, like an empty
// contentEditable element.
func (h *Host) ensureBlock() {
	if len(h.blocks) == 0 {
		h.blocks = []block{{lines: [][]span{nil}}}
		h.pos = caret{}
	}
}

// InsertText inserts s at the caret with the pending typing style,
// replacing the selection if one exists.
func (h *Host) InsertText(s string) {
	if s == "" {
		return
	}
	h.deleteSelection()
	h.ensureBlock()
	bl := &h.blocks[h.pos.block]
	ln := bl.lines[h.pos.line]
	bl.lines[h.pos.line] = insertIntoLine(ln, h.pos.off, s, h.typing)
	h.pos.off += len([]rune(s))
}

// InsertNewline splits the current line at the caret. In a list the tail
// becomes a new item; in a bare block the document is promoted to
// paragraphs first, matching how browsers materialize blocks on Enter.
func (h *Host) InsertNewline() {
	h.deleteSelection()
	h.ensureBlock()
	bl := &h.blocks[h.pos.block]
	if bl.tag == "" {
		bl.tag = "p"
	}

	head, tail := splitLine(bl.lines[h.pos.line], h.pos.off)
	if bl.isList() {
		bl.lines[h.pos.line] = head
		rest := append([][]span{tail}, bl.lines[h.pos.line+1:]...)
		bl.lines = append(bl.lines[:h.pos.line+1], rest...)
		h.pos.line++
		h.pos.off = 0
		return
	}

	// Paragraph/heading: the tail starts a new block of the same kind.
	tailLines := append([][]span{tail}, bl.lines[h.pos.line+1:]...)
	bl.lines = bl.lines[:h.pos.line+1]
	bl.lines[h.pos.line] = head
	nb := block{tag: bl.tag, align: bl.align, lines: tailLines}
	h.blocks = append(h.blocks[:h.pos.block+1], append([]block{nb}, h.blocks[h.pos.block+1:]...)...)
	h.pos = caret{block: h.pos.block + 1}
}

// DeleteBackward removes the selection, or the rune before the caret, or
// joins with the previous line/block at a line start.
func (h *Host) DeleteBackward() {
	if h.deleteSelection() {
		return
	}
	if len(h.blocks) == 0 {
		return
	}
	if h.pos.off > 0 {
		bl := &h.blocks[h.pos.block]
		bl.lines[h.pos.line] = deleteFromLine(bl.lines[h.pos.line], h.pos.off-1, h.pos.off)
		h.pos.off--
		h.refreshTypingStyle()
		return
	}
	h.joinWithPrevious()
}

func (h *Host) joinWithPrevious() {
	bl := &h.blocks[h.pos.block]
	if h.pos.line > 0 {
		prev := bl.lines[h.pos.line-1]
		off := lineLen(prev)
		bl.lines[h.pos.line-1] = joinSpans(prev, bl.lines[h.pos.line])
		bl.lines = append(bl.lines[:h.pos.line], bl.lines[h.pos.line+1:]...)
		h.pos.line--
		h.pos.off = off
		return
	}
	if h.pos.block == 0 {
		return
	}
	pb := &h.blocks[h.pos.block-1]
	lastLine := len(pb.lines) - 1
	off := lineLen(pb.lines[lastLine])
	pb.lines[lastLine] = joinSpans(pb.lines[lastLine], bl.lines[0])
	pb.lines = append(pb.lines, bl.lines[1:]...)
	h.blocks = append(h.blocks[:h.pos.block], h.blocks[h.pos.block+1:]...)
	h.pos = caret{block: h.pos.block - 1, line: lastLine, off: off}
}

// deleteSelection removes selected text; reports whether anything was
// removed.
func (h *Host) deleteSelection() bool {
	from, to, ok := h.selection()
	if !ok {
		h.collapseSelection()
		return false
	}
	bl := &h.blocks[from.block]
	bl.lines[from.line] = deleteFromLine(bl.lines[from.line], from.off, to.off)
	h.pos = from
	h.collapseSelection()
	h.refreshTypingStyle()
	return true
}

// Movement. Plain moves collapse the selection; extend moves grow it from
// an anchor.

func (h *Host) MoveLeft(extend bool)  { h.move(-1, extend) }
func (h *Host) MoveRight(extend bool) { h.move(1, extend) }

func (h *Host) move(delta int, extend bool) {
	h.beginOrEndSelect(extend)
	if len(h.blocks) == 0 {
		return
	}
	p := h.pos
	p.off += delta
	if p.off < 0 {
		if p.line > 0 {
			p.line--
			p.off = lineLen(h.blocks[p.block].lines[p.line])
		} else if p.block > 0 {
			p.block--
			p.line = len(h.blocks[p.block].lines) - 1
			p.off = lineLen(h.blocks[p.block].lines[p.line])
		} else {
			p.off = 0
		}
	} else if p.off > lineLen(h.blocks[p.block].lines[p.line]) {
		if p.line < len(h.blocks[p.block].lines)-1 {
			p.line++
			p.off = 0
		} else if p.block < len(h.blocks)-1 {
			p.block++
			p.line = 0
			p.off = 0
		} else {
			p.off = lineLen(h.blocks[p.block].lines[p.line])
		}
	}
	h.pos = p
	h.refreshTypingStyle()
}

func (h *Host) MoveUp() {
	h.collapseSelection()
	if len(h.blocks) == 0 {
		return
	}
	if h.pos.line > 0 {
		h.pos.line--
	} else if h.pos.block > 0 {
		h.pos.block--
		h.pos.line = len(h.blocks[h.pos.block].lines) - 1
	}
	h.clampCaret()
	h.refreshTypingStyle()
}

func (h *Host) MoveDown() {
	h.collapseSelection()
	if len(h.blocks) == 0 {
		return
	}
	if h.pos.line < len(h.blocks[h.pos.block].lines)-1 {
		h.pos.line++
	} else if h.pos.block < len(h.blocks)-1 {
		h.pos.block++
		h.pos.line = 0
	}
	h.clampCaret()
	h.refreshTypingStyle()
}

func (h *Host) MoveLineStart() {
	h.collapseSelection()
	h.pos.off = 0
	h.refreshTypingStyle()
}

func (h *Host) MoveLineEnd() {
	h.collapseSelection()
	if ln := h.curLine(); ln != nil {
		h.pos.off = lineLen(ln)
	}
	h.refreshTypingStyle()
}

// SelectLine selects the whole current line, the TUI's stand-in for a
// mouse drag.
func (h *Host) SelectLine() {
	if len(h.blocks) == 0 {
		return
	}
	h.anchor = caret{block: h.pos.block, line: h.pos.line}
	h.pos.off = lineLen(h.curLine())
	h.selecting = true
}

func (h *Host) beginOrEndSelect(extend bool) {
	if extend {
		if !h.selecting {
			h.anchor = h.pos
			h.selecting = true
		}
		return
	}
	h.collapseSelection()
}

// refreshTypingStyle adopts the style of the rune before the caret, the
// way a browser caret picks up surrounding formatting.
func (h *Host) refreshTypingStyle() {
	ln := h.curLine()
	if ln == nil {
		h.typing = style{}
		return
	}
	st, ok := styleAt(ln, h.pos.off)
	if ok {
		h.typing = st
	}
}
