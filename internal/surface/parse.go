package surface

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// SetMarkup replaces the tree wholesale from raw HTML (the raw-source view
// or a draft load). Parsing is permissive, never validating: whatever the
// parser salvages becomes the tree, and unknown wrappers are traversed
// transparently. The caret lands at the end of the document.
func (h *Host) SetMarkup(raw string) {
	h.blocks = parseBlocks(raw)
	h.collapseSelection()
	if n := len(h.blocks); n > 0 {
		bl := h.blocks[n-1]
		h.pos = caret{block: n - 1, line: len(bl.lines) - 1, off: lineLen(bl.lines[len(bl.lines)-1])}
	} else {
		h.pos = caret{}
	}
	h.typing = style{}
	h.refreshTypingStyle()
}

func parseBlocks(raw string) []block {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(raw), body)
	if err != nil {
		// Keep whatever the user typed visible rather than dropping it.
		return []block{{lines: [][]span{{span{text: raw}}}}}
	}

	var blocks []block
	var pending [][]span // loose inline content becomes a bare block

	flush := func() {
		if len(pending) == 0 {
			return
		}
		blocks = append(blocks, block{lines: pending})
		pending = nil
	}

	for _, n := range nodes {
		if tag, ok := blockTag(n); ok {
			flush()
			blocks = append(blocks, parseBlockNode(n, tag))
			continue
		}
		if n.Type == html.TextNode && strings.TrimSpace(n.Data) == "" && len(pending) == 0 {
			continue // inter-block whitespace
		}
		pending = appendInline(pending, n, style{})
	}
	flush()
	return blocks
}

func blockTag(n *html.Node) (string, bool) {
	if n.Type != html.ElementNode {
		return "", false
	}
	switch n.Data {
	case "p", "h1", "h2", "h3", "h4", "ul", "ol":
		return n.Data, true
	case "div", "h5", "h6", "blockquote", "pre":
		// Normalized to paragraphs, like pasting into contentEditable.
		return "p", true
	}
	return "", false
}

func parseBlockNode(n *html.Node, tag string) block {
	bl := block{tag: tag, align: styleProp(attrVal(n, "style"), "text-align")}
	if bl.isList() {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == "li" {
				item := collectLines(c, style{})
				if len(item) == 0 {
					item = [][]span{nil}
				}
				// A multi-line item collapses to one line per item.
				bl.lines = append(bl.lines, flattenLines(item))
			}
		}
		if len(bl.lines) == 0 {
			bl.lines = [][]span{nil}
		}
		return bl
	}
	bl.lines = collectLines(n, style{})
	if len(bl.lines) == 0 {
		bl.lines = [][]span{nil}
	}
	return bl
}

// collectLines gathers the inline content of n, splitting lines on <br>.
func collectLines(n *html.Node, st style) [][]span {
	var lines [][]span
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		lines = appendInline(lines, c, st)
	}
	return lines
}

// appendInline folds one node into the running line list.
func appendInline(lines [][]span, n *html.Node, st style) [][]span {
	if n == nil {
		return lines
	}
	switch n.Type {
	case html.TextNode:
		if n.Data == "" {
			return lines
		}
		return appendSpan(lines, span{text: n.Data, style: st})
	case html.ElementNode:
		switch n.Data {
		case "br":
			return append(lines, nil)
		case "b", "strong":
			st.bold = true
		case "i", "em":
			st.italic = true
		case "u":
			st.underline = true
		case "span":
			css := attrVal(n, "style")
			if v := styleProp(css, "color"); v != "" {
				st.color = v
			}
			if v := styleProp(css, "background-color"); v != "" {
				st.background = v
			}
			if v := styleProp(css, "font-family"); v != "" {
				st.font = v
			}
		case "font":
			if v := attrVal(n, "face"); v != "" {
				st.font = v
			}
			if v := attrVal(n, "color"); v != "" {
				st.color = v
			}
		case "script", "style":
			return lines
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			lines = appendInline(lines, c, st)
		}
		return lines
	}
	return lines
}

func appendSpan(lines [][]span, sp span) [][]span {
	if len(lines) == 0 {
		lines = append(lines, nil)
	}
	i := len(lines) - 1
	lines[i] = compactLine(append(lines[i], sp))
	return lines
}

func flattenLines(lines [][]span) []span {
	switch len(lines) {
	case 0:
		return nil
	case 1:
		return lines[0]
	}
	out := lines[0]
	for _, ln := range lines[1:] {
		out = joinSpans(out, ln)
	}
	return out
}

func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// styleProp pulls one property out of an inline CSS declaration list.
func styleProp(css, prop string) string {
	for _, decl := range strings.Split(css, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(k), prop) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
