package gmail

import (
	"regexp"
	"strings"
)

var (
	doctypeRe   = regexp.MustCompile(`(?i)<!DOCTYPE[^>]*>`)
	htmlOpenRe  = regexp.MustCompile(`(?i)<html[^>]*>`)
	htmlCloseRe = regexp.MustCompile(`(?i)</html>`)
	headRe      = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	bodyOpenRe  = regexp.MustCompile(`(?i)<body[^>]*>`)
	bodyCloseRe = regexp.MustCompile(`(?i)</body>`)
	fontDivRe   = regexp.MustCompile(`(?i)<div style="font-family:[^"]*"[^>]*>`)
	widthDivRe  = regexp.MustCompile(`(?i)<div style="max-width:[^"]*"[^>]*>`)
	divOpenRe   = regexp.MustCompile(`(?i)<div`)
	divCloseRe  = regexp.MustCompile(`(?i)</div>`)
)

// CleanHTML strips the email document shell from a draft body so only
// the content markup remains. Stripping the style wrapper divs leaves
// orphaned closing tags behind; any excess closing </div>s are removed
// from the end.
func CleanHTML(html string) string {
	if html == "" {
		return html
	}

	html = doctypeRe.ReplaceAllString(html, "")
	html = htmlOpenRe.ReplaceAllString(html, "")
	html = htmlCloseRe.ReplaceAllString(html, "")
	html = headRe.ReplaceAllString(html, "")
	html = bodyOpenRe.ReplaceAllString(html, "")
	html = bodyCloseRe.ReplaceAllString(html, "")
	html = fontDivRe.ReplaceAllString(html, "")
	html = widthDivRe.ReplaceAllString(html, "")

	excess := len(divCloseRe.FindAllString(html, -1)) - len(divOpenRe.FindAllString(html, -1))
	for i := 0; i < excess; i++ {
		if idx := strings.LastIndex(strings.ToLower(html), "</div>"); idx >= 0 {
			html = html[:idx] + html[idx+len("</div>"):]
		}
	}

	return strings.TrimSpace(html)
}
