package surface

// Span list surgery. Offsets are rune offsets within the concatenated line
// text; helpers split spans at boundaries as needed and drop empties.

func compactLine(ln []span) []span {
	out := ln[:0]
	for _, sp := range ln {
		if sp.text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].style == sp.style {
			out[n-1].text += sp.text
			continue
		}
		out = append(out, sp)
	}
	return out
}

// splitAt cuts ln into head (runes [0,off)) and tail (runes [off,end)).
func splitAt(ln []span, off int) (head, tail []span) {
	for _, sp := range ln {
		runes := []rune(sp.text)
		switch {
		case off >= len(runes):
			head = append(head, sp)
			off -= len(runes)
		case off <= 0:
			tail = append(tail, sp)
		default:
			head = append(head, span{text: string(runes[:off]), style: sp.style})
			tail = append(tail, span{text: string(runes[off:]), style: sp.style})
			off = 0
		}
	}
	return head, tail
}

func splitLine(ln []span, off int) (head, tail []span) {
	h, t := splitAt(ln, off)
	return compactLine(h), compactLine(t)
}

func joinSpans(a, b []span) []span {
	return compactLine(append(append([]span{}, a...), b...))
}

func insertIntoLine(ln []span, off int, text string, st style) []span {
	head, tail := splitAt(ln, off)
	head = append(head, span{text: text, style: st})
	return compactLine(append(head, tail...))
}

func deleteFromLine(ln []span, from, to int) []span {
	if to <= from {
		return ln
	}
	head, rest := splitAt(ln, from)
	_, tail := splitAt(rest, to-from)
	return compactLine(append(head, tail...))
}

// applyToRange rewrites the style of runes [from,to) in place.
func applyToRange(ln []span, from, to int, f func(*style)) []span {
	if to <= from {
		return ln
	}
	head, rest := splitAt(ln, from)
	mid, tail := splitAt(rest, to-from)
	for i := range mid {
		f(&mid[i].style)
	}
	out := append(head, mid...)
	return compactLine(append(out, tail...))
}

// rangeHas reports whether every rune in [from,to) satisfies pred. An
// empty range reports false.
func rangeHas(ln []span, from, to int, pred func(style) bool) bool {
	if to <= from {
		return false
	}
	_, rest := splitAt(ln, from)
	mid, _ := splitAt(rest, to-from)
	if len(mid) == 0 {
		return false
	}
	for _, sp := range mid {
		if !pred(sp.style) {
			return false
		}
	}
	return true
}

// styleAt returns the style governing the caret at off: the rune before it
// when one exists, else the rune after. False on an empty line.
func styleAt(ln []span, off int) (style, bool) {
	if len(ln) == 0 {
		return style{}, false
	}
	if off > 0 {
		off--
	}
	_, rest := splitAt(ln, off)
	if len(rest) == 0 {
		last := ln[len(ln)-1]
		return last.style, true
	}
	return rest[0].style, true
}
