package surface

// Render snapshots expose the tree to the TUI's visual pane without
// letting it reach into mutable internals.

type RenderSpan struct {
	Text       string
	Bold       bool
	Italic     bool
	Underline  bool
	Font       string
	Color      string
	Background string
}

type RenderBlock struct {
	Tag   string // "" for the implicit bare block
	Align string
	Lines [][]RenderSpan
}

func (h *Host) Blocks() []RenderBlock {
	out := make([]RenderBlock, 0, len(h.blocks))
	for _, bl := range h.blocks {
		rb := RenderBlock{Tag: bl.tag, Align: bl.align}
		for _, ln := range bl.lines {
			rl := make([]RenderSpan, 0, len(ln))
			for _, sp := range ln {
				rl = append(rl, RenderSpan{
					Text:       sp.text,
					Bold:       sp.style.bold,
					Italic:     sp.style.italic,
					Underline:  sp.style.underline,
					Font:       sp.style.font,
					Color:      sp.style.color,
					Background: sp.style.background,
				})
			}
			rb.Lines = append(rb.Lines, rl)
		}
		out = append(out, rb)
	}
	return out
}

// Caret reports the caret position as (block, line, rune offset).
func (h *Host) Caret() (blockIdx, lineIdx, off int) {
	return h.pos.block, h.pos.line, h.pos.off
}

// SelectionRange reports the active selection within its line, if any.
func (h *Host) SelectionRange() (blockIdx, lineIdx, from, to int, ok bool) {
	a, b, sel := h.selection()
	if !sel {
		return 0, 0, 0, 0, false
	}
	return a.block, a.line, a.off, b.off, true
}
