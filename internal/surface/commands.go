package surface

import (
	"strings"

	"cbx-editor/internal/editor"
)

// Execute applies a formatting command with the same observable semantics
// as the browser primitive: inline toggles act on the selection or on the
// pending typing style, block commands act on the caret's block.
func (h *Host) Execute(cmd editor.Command, value string) {
	switch cmd {
	case editor.CmdBold:
		h.toggleInline(func(s *style, on bool) { s.bold = on }, func(s style) bool { return s.bold })
	case editor.CmdItalic:
		h.toggleInline(func(s *style, on bool) { s.italic = on }, func(s style) bool { return s.italic })
	case editor.CmdUnderline:
		h.toggleInline(func(s *style, on bool) { s.underline = on }, func(s style) bool { return s.underline })

	case editor.CmdFontName:
		h.setInline(func(s *style) { s.font = value })
	case editor.CmdForeColor:
		h.setInline(func(s *style) { s.color = value })
	case editor.CmdHiliteColor:
		h.setInline(func(s *style) { s.background = value })

	case editor.CmdJustifyLeft:
		h.setAlign("left")
	case editor.CmdJustifyCenter:
		h.setAlign("center")
	case editor.CmdJustifyRight:
		h.setAlign("right")

	case editor.CmdInsertUnorderedList:
		h.toggleList("ul")
	case editor.CmdInsertOrderedList:
		h.toggleList("ol")

	case editor.CmdFormatBlock:
		h.formatBlock(value)
	}
}

// QueryActive implements the query half of the capability pair. It never
// mutates the tree.
func (h *Host) QueryActive(cmd editor.Command) bool {
	switch cmd {
	case editor.CmdBold:
		return h.inlineActive(func(s style) bool { return s.bold })
	case editor.CmdItalic:
		return h.inlineActive(func(s style) bool { return s.italic })
	case editor.CmdUnderline:
		return h.inlineActive(func(s style) bool { return s.underline })
	case editor.CmdJustifyLeft:
		return h.caretAlign() == "left"
	case editor.CmdJustifyCenter:
		return h.caretAlign() == "center"
	case editor.CmdJustifyRight:
		return h.caretAlign() == "right"
	case editor.CmdInsertUnorderedList:
		return h.caretTag() == "ul"
	case editor.CmdInsertOrderedList:
		return h.caretTag() == "ol"
	}
	// Value-carrying commands have no boolean state.
	return false
}

func (h *Host) inlineActive(pred func(style) bool) bool {
	if from, to, ok := h.selection(); ok {
		return rangeHas(h.blocks[from.block].lines[from.line], from.off, to.off, pred)
	}
	return pred(h.typing)
}

func (h *Host) caretAlign() string {
	if h.pos.block >= len(h.blocks) {
		return ""
	}
	return h.blocks[h.pos.block].align
}

func (h *Host) caretTag() string {
	if h.pos.block >= len(h.blocks) {
		return ""
	}
	return h.blocks[h.pos.block].tag
}

// toggleInline follows the browser rule: when the whole selection already
// carries the attribute it is removed, otherwise applied. A collapsed
// caret toggles the pending typing style only.
func (h *Host) toggleInline(set func(*style, bool), pred func(style) bool) {
	from, to, ok := h.selection()
	if !ok {
		on := !pred(h.typing)
		set(&h.typing, on)
		return
	}
	ln := h.blocks[from.block].lines[from.line]
	on := !rangeHas(ln, from.off, to.off, pred)
	h.blocks[from.block].lines[from.line] = applyToRange(ln, from.off, to.off, func(s *style) { set(s, on) })
	set(&h.typing, on)
}

func (h *Host) setInline(set func(*style)) {
	if from, to, ok := h.selection(); ok {
		ln := h.blocks[from.block].lines[from.line]
		h.blocks[from.block].lines[from.line] = applyToRange(ln, from.off, to.off, set)
	}
	set(&h.typing)
}

// setAlign sets block alignment at the caret. A bare block is materialized
// as a paragraph first, the way browsers wrap loose content when a block
// property is applied.
func (h *Host) setAlign(align string) {
	if len(h.blocks) == 0 {
		h.ensureBlock()
	}
	bl := &h.blocks[h.pos.block]
	if bl.tag == "" {
		bl.tag = "p"
	}
	bl.align = align
}

// toggleList converts the caret block to the given list kind, or back to
// paragraphs (one per item) when it already is that kind.
func (h *Host) toggleList(tag string) {
	if len(h.blocks) == 0 {
		h.ensureBlock()
	}
	bl := h.blocks[h.pos.block]
	if bl.tag == tag {
		// Unwrap: each item becomes its own paragraph.
		repl := make([]block, 0, len(bl.lines))
		for _, ln := range bl.lines {
			repl = append(repl, block{tag: "p", align: bl.align, lines: [][]span{ln}})
		}
		h.blocks = append(h.blocks[:h.pos.block], append(repl, h.blocks[h.pos.block+1:]...)...)
		h.pos.block += h.pos.line
		h.pos.line = 0
		h.clampCaret()
		return
	}
	h.blocks[h.pos.block].tag = tag
}

// formatBlock accepts the execCommand value shape ("<H2>", "<P>", with or
// without brackets, any case) and retags the caret block.
func (h *Host) formatBlock(value string) {
	tag := strings.ToLower(strings.Trim(strings.TrimSpace(value), "<>"))
	switch tag {
	case "p", "h1", "h2", "h3", "h4":
	default:
		return
	}
	if len(h.blocks) == 0 {
		h.ensureBlock()
	}
	h.blocks[h.pos.block].tag = tag
	h.clampCaret()
}

// CaretAncestry lists node names from the caret upward, nearest first,
// excluding the editing root: inline wrappers, then the block element(s).
func (h *Host) CaretAncestry() []string {
	if h.pos.block >= len(h.blocks) {
		return nil
	}
	var out []string
	st := h.typing
	if ln := h.curLine(); ln != nil {
		if at, ok := styleAt(ln, h.pos.off); ok {
			st = at
		}
	}
	if st.bold {
		out = append(out, "B")
	}
	if st.italic {
		out = append(out, "I")
	}
	if st.underline {
		out = append(out, "U")
	}
	if st.font != "" || st.color != "" || st.background != "" {
		out = append(out, "SPAN")
	}
	bl := h.blocks[h.pos.block]
	switch {
	case bl.isList():
		out = append(out, "LI", strings.ToUpper(bl.tag))
	case bl.tag != "":
		out = append(out, strings.ToUpper(bl.tag))
	}
	return out
}
