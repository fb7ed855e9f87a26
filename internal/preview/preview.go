// Package preview builds the sandboxed host document the composed HTML is
// rendered inside. The content is embedded unmodified; isolation comes
// from the iframe sandbox, not from sanitization.
package preview

import "fmt"

// SandboxAttr allows same-origin, forms, scripts, and popups while
// disallowing top-level navigation.
const SandboxAttr = "allow-same-origin allow-popups allow-popups-to-escape-sandbox allow-forms allow-scripts"

// EmptyNotice is shown in place of the frame when there is nothing to
// render yet.
const EmptyNotice = "Nothing to preview yet. Start typing in the editor!"

// stylingCDN is the external styling framework loaded into previews so
// utility classes in composed content resolve.
const stylingCDN = "https://cdn.tailwindcss.com"

// HostDocument wraps the canonical HTML in a minimal document: UTF-8
// charset, responsive viewport, the styling framework reference, and a
// body with fixed padding. No other wrapping and no sanitization.
func HostDocument(html string) string {
	return fmt.Sprintf(`<!DOCTYPE html><html><head><meta charset="utf-8" /><meta name="viewport" content="width=device-width, initial-scale=1" /><script src="%s"></script></head><body style="margin:0; padding:20px; box-sizing:border-box;">%s</body></html>`, stylingCDN, html)
}
