package gmail

import (
	"regexp"
	"strings"
)

var tableBlockRe = regexp.MustCompile(`(?s)(<table.*?</table>)`)

// RenderBody converts generated email text to the HTML document that is
// filed as the draft body. HTML tables pass through untouched; outside
// of tables, newlines become <br> tags and "* " bullets become "• ",
// then everything is wrapped in a minimal email shell.
func RenderBody(body string) string {
	var processed strings.Builder

	last := 0
	for _, loc := range tableBlockRe.FindAllStringIndex(body, -1) {
		processed.WriteString(renderText(body[last:loc[0]]))
		processed.WriteString(body[loc[0]:loc[1]])
		last = loc[1]
	}
	processed.WriteString(renderText(body[last:]))

	var doc strings.Builder
	doc.WriteString("<!DOCTYPE html>\n")
	doc.WriteString("<html>\n<head>\n<meta charset=\"UTF-8\">\n</head>\n")
	doc.WriteString(`<body style="font-family: Calibri, Arial, sans-serif; font-size: 14px; line-height: 1.6; color: #000000; margin: 0; padding: 20px;">`)
	doc.WriteString("\n")
	doc.WriteString(`<div style="max-width: 800px;">`)
	doc.WriteString("\n")
	doc.WriteString(processed.String())
	doc.WriteString("\n</div>\n</body>\n</html>")

	return doc.String()
}

func renderText(s string) string {
	s = strings.ReplaceAll(s, "\n", "<br>")
	return strings.ReplaceAll(s, "* ", "• ")
}
