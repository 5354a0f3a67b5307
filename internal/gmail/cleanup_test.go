package gmail

import (
	"strings"
	"testing"
)

func TestCleanHTML(t *testing.T) {
	html := `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>body { color: red; }</style>
</head>
<body style="font-family: Calibri;">
<div style="max-width: 800px;">
<p>Hi Mr. Castillo,</p>
<table><tr><td>Fix bug</td></tr></table>
</div>
</body>
</html>`

	got := CleanHTML(html)

	for _, banned := range []string{"<!DOCTYPE", "<html", "</html>", "<head", "<style", "<body", "</body>", "max-width"} {
		if strings.Contains(got, banned) {
			t.Errorf("cleaned output still contains %q:\n%s", banned, got)
		}
	}
	if !strings.Contains(got, "<p>Hi Mr. Castillo,</p>") {
		t.Error("content should survive cleaning")
	}
	if !strings.Contains(got, "<table><tr><td>Fix bug</td></tr></table>") {
		t.Error("tables should survive cleaning")
	}
	if strings.Contains(got, "</div>") {
		t.Errorf("orphaned closing div should be removed:\n%s", got)
	}
}

func TestCleanHTML_KeepsBalancedDivs(t *testing.T) {
	html := `<body><div class="note">kept</div></body>`

	got := CleanHTML(html)

	if got != `<div class="note">kept</div>` {
		t.Errorf("CleanHTML() = %q, want the balanced div kept", got)
	}
}

func TestCleanHTML_Empty(t *testing.T) {
	if got := CleanHTML(""); got != "" {
		t.Errorf("CleanHTML(\"\") = %q, want empty", got)
	}
}

func TestCleanHTML_PlainContent(t *testing.T) {
	content := "<p>no shell at all</p>"
	if got := CleanHTML(content); got != content {
		t.Errorf("CleanHTML() = %q, want unchanged content", got)
	}
}
