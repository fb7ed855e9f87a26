package surface

import "strings"

// Markup serializes the tree back to HTML. The shapes mirror what the
// browser primitive produces for the same commands: <b>/<i>/<u> wrappers,
// a <span style=...> for font/color/highlight, text-align on the block.
func (h *Host) Markup() string {
	var b strings.Builder
	for _, bl := range h.blocks {
		writeBlock(&b, bl)
	}
	return b.String()
}

func writeBlock(b *strings.Builder, bl block) {
	if bl.isList() {
		b.WriteString("<" + bl.tag + alignAttr(bl.align) + ">")
		for _, ln := range bl.lines {
			b.WriteString("<li>")
			writeInline(b, ln)
			b.WriteString("</li>")
		}
		b.WriteString("</" + bl.tag + ">")
		return
	}
	if bl.tag == "" {
		writeLines(b, bl.lines)
		return
	}
	b.WriteString("<" + bl.tag + alignAttr(bl.align) + ">")
	writeLines(b, bl.lines)
	b.WriteString("</" + bl.tag + ">")
}

func writeLines(b *strings.Builder, lines [][]span) {
	for i, ln := range lines {
		if i > 0 {
			b.WriteString("<br>")
		}
		writeInline(b, ln)
	}
}

func writeInline(b *strings.Builder, ln []span) {
	for _, sp := range ln {
		writeSpan(b, sp)
	}
}

func writeSpan(b *strings.Builder, sp span) {
	var closers []string
	if css := inlineCSS(sp.style); css != "" {
		b.WriteString(`<span style="` + css + `">`)
		closers = append(closers, "</span>")
	}
	if sp.style.bold {
		b.WriteString("<b>")
		closers = append(closers, "</b>")
	}
	if sp.style.italic {
		b.WriteString("<i>")
		closers = append(closers, "</i>")
	}
	if sp.style.underline {
		b.WriteString("<u>")
		closers = append(closers, "</u>")
	}
	b.WriteString(escapeText(sp.text))
	for i := len(closers) - 1; i >= 0; i-- {
		b.WriteString(closers[i])
	}
}

func inlineCSS(st style) string {
	var parts []string
	if st.font != "" {
		parts = append(parts, "font-family:"+st.font)
	}
	if st.color != "" {
		parts = append(parts, "color:"+st.color)
	}
	if st.background != "" {
		parts = append(parts, "background-color:"+st.background)
	}
	return strings.Join(parts, "; ")
}

func alignAttr(align string) string {
	if align == "" {
		return ""
	}
	return ` style="text-align: ` + align + `"`
}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	" ", "&nbsp;",
)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}
