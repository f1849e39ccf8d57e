package htmlparse

import (
	"strings"
	"testing"

	"github.com/corvidscan/keyhunter/assert"
)

func TestParse(t *testing.T) {
	doc, err := Parse("<html><body><p>Hello</p></body></html>")
	assert.NoError(t, err)
	assert.NotNil(t, doc)
}

func TestParseReader(t *testing.T) {
	r := strings.NewReader("<html><body><p>Hello</p></body></html>")
	doc, err := ParseReader(r)
	assert.NoError(t, err)
	assert.NotNil(t, doc)
}

func TestMalformedHTML(t *testing.T) {
	tests := []string{
		"<p>Unclosed",
		"<div><p>Mismatched</div></p>",
		"Just text",
		"<>Invalid</>",
		"",
	}

	for _, html := range tests {
		doc, err := Parse(html)
		assert.NoError(t, err)
		assert.NotNil(t, doc)
		_ = doc.Scripts("https://example.com")
		_ = doc.PageLinks("https://example.com")
	}
}

func TestDocument_Scripts(t *testing.T) {
	doc, _ := Parse(`
<html>
<head><script src="main.js"></script></head>
<body><script>console.log("inline")</script></body>
</html>`)
	refs := doc.Scripts("https://example.com")
	assert.Equal(t, 2, len(refs))
	assert.Equal(t, ScriptRemote, refs[0].Kind)
	assert.Equal(t, "https://example.com/main.js", refs[0].URL)
	assert.Equal(t, ScriptInline, refs[1].Kind)
	assert.Contains(t, refs[1].Source, "inline")
	assert.Equal(t, "https://example.com", refs[1].PageURL)
}

func TestDocument_Scripts_NoSrcAttribute(t *testing.T) {
	doc, _ := Parse(`<html><body><script type="application/json">{"a":1}</script></body></html>`)
	refs := doc.Scripts("https://example.com")
	assert.Equal(t, 1, len(refs))
	assert.Equal(t, ScriptInline, refs[0].Kind)
	assert.Contains(t, refs[0].Source, `"a":1`)
}

func TestDocument_PageLinks_Basic(t *testing.T) {
	doc, _ := Parse(`
<html><body>
<a href="https://example.com/foo">foo</a>
<a href="bar">bar</a>
<a href="/baz">baz</a>
</body></html>`)
	links := doc.PageLinks("https://example.com")
	assert.Equal(t, 3, len(links))
	assert.Contains(t, links, "https://example.com/foo")
	assert.Contains(t, links, "https://example.com/bar")
	assert.Contains(t, links, "https://example.com/baz")
}

func TestDocument_PageLinks_Ignored(t *testing.T) {
	doc, _ := Parse(`
<html><body>
<a href="#section">intra-page</a>
<a href="mailto:foo@example.com">email</a>
<a href="javascript:void(0)">js</a>
<a href="/assets/pic.jpg?id=123">image</a>
</body></html>`)
	links := doc.PageLinks("https://example.com")
	assert.Empty(t, links)
}

func TestDocument_PageLinks_EmptyDocument(t *testing.T) {
	doc, _ := Parse("<html><body></body></html>")
	links := doc.PageLinks("https://example.com")
	assert.Empty(t, links)
}
