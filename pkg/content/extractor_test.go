package content

import (
	"strings"
	"testing"
)

const testPage = `<!DOCTYPE html>
<html>
<head>
	<title>Why Feeds Still Matter</title>
	<meta property="og:title" content="Why Feeds Still Matter (og)">
</head>
<body>
	<article>
		<h1>Why Feeds Still Matter</h1>
		<p>Syndication feeds remain the most reliable way to follow a site
		without depending on its front page layout. This paragraph exists to
		give the readability extractor enough body text to work with, since
		it ignores pages that look like navigation shells.</p>
		<p>A second paragraph, because real articles have more than one.</p>
	</article>
</body>
</html>`

func TestExtractTitle(t *testing.T) {
	title, err := ExtractTitle(testPage)
	if err != nil {
		t.Fatalf("Failed to extract title: %v", err)
	}
	if !strings.Contains(title, "Why Feeds Still Matter") {
		t.Errorf("Unexpected title: %q", title)
	}
}

func TestExtractTitle_FallbackToTitleTag(t *testing.T) {
	html := `<html><head><title>Bare Title</title></head><body></body></html>`
	title, err := ExtractTitle(html)
	if err != nil {
		t.Fatalf("Failed to extract title: %v", err)
	}
	if title != "Bare Title" {
		t.Errorf("Expected 'Bare Title', got %q", title)
	}
}

func TestExtractTitle_NotFound(t *testing.T) {
	_, err := ExtractTitle(`<html><body><div></div></body></html>`)
	if err == nil {
		t.Error("Expected error for page without a title, got nil")
	}
}

func TestExtractText(t *testing.T) {
	text, err := ExtractText(testPage)
	if err != nil {
		t.Fatalf("Failed to extract text: %v", err)
	}
	if !strings.Contains(text, "Syndication feeds remain") {
		t.Errorf("Expected article body in extracted text, got %q", text)
	}
}
