// Package htmlparse provides the HTML parsing the Site Crawler needs:
// extracting script references and outbound links from a parsed page.
//
// Basic usage:
//
//	doc, err := htmlparse.Parse("<html>...</html>")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	scripts := doc.Scripts("https://example.com")
//	links := doc.PageLinks("https://example.com")
package htmlparse

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/corvidscan/keyhunter/web"
)

// Document represents a parsed HTML document.
type Document struct {
	root *html.Node
}

// Parse parses HTML content into a Document.
func Parse(htmlContent string) (*Document, error) {
	return ParseReader(strings.NewReader(htmlContent))
}

// ParseReader parses HTML from an io.Reader into a Document.
func ParseReader(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}

// ScriptKind distinguishes a remote, separately-fetched script from one
// whose source is embedded directly in the page.
type ScriptKind int

const (
	// ScriptRemote is a <script src="..."> reference resolved to an
	// absolute URL, not yet fetched.
	ScriptRemote ScriptKind = iota
	// ScriptInline is a <script>...</script> element with no src
	// attribute; Source holds its text content directly.
	ScriptInline
)

// ScriptRef is a reference to a script discovered in a document: either a
// remote URL to fetch, or inline source text already in hand.
type ScriptRef struct {
	Kind ScriptKind
	// URL is the resolved absolute script URL. Set only for ScriptRemote.
	URL string
	// Source is the script's JavaScript text. Set only for ScriptInline.
	Source string
	// PageURL is the URL of the page the script was found on. Set only
	// for ScriptInline, since an inline script has no URL of its own.
	PageURL string
}

// Scripts extracts every <script> element in the document as a ScriptRef.
// Elements with a src attribute resolve to a ScriptRemote against pageURL;
// elements without one become a ScriptInline carrying their text content
// and pageURL.
func (d *Document) Scripts(pageURL string) []ScriptRef {
	var refs []ScriptRef
	d.walkNodes(d.root, func(n *html.Node) bool {
		if n.Type != html.ElementNode || strings.ToLower(n.Data) != "script" {
			return true
		}
		if src := getAttr(n, "src"); src != "" {
			resolved, ok := web.ResolveLink(pageURL, src)
			if !ok {
				return true
			}
			refs = append(refs, ScriptRef{Kind: ScriptRemote, URL: resolved})
			return true
		}
		refs = append(refs, ScriptRef{
			Kind:    ScriptInline,
			Source:  getTextContent(n),
			PageURL: pageURL,
		})
		return true
	})
	return refs
}

// PageLinks extracts outbound <a href> links from the document, resolved
// against pageURL. Empty, fragment-only, mailto:, and javascript: hrefs
// are dropped before resolution; links resolving to a media file
// (web.IsMediaURL) are dropped after resolution, since query parameters
// on an image link would otherwise defeat a pre-parse extension check.
func (d *Document) PageLinks(pageURL string) []string {
	var links []string
	d.walkNodes(d.root, func(n *html.Node) bool {
		if n.Type != html.ElementNode || strings.ToLower(n.Data) != "a" {
			return true
		}
		href := strings.TrimSpace(getAttr(n, "href"))
		if href == "" || strings.HasPrefix(href, "#") ||
			strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") {
			return true
		}
		resolved, ok := web.ResolveLink(pageURL, href)
		if !ok {
			return true
		}
		if u, err := url.Parse(resolved); err == nil && web.IsMediaURL(u) {
			return true
		}
		links = append(links, resolved)
		return true
	})
	return links
}

// walkNodes traverses the DOM tree, calling fn for each node.
// If fn returns false, the node's children are skipped.
func (d *Document) walkNodes(n *html.Node, fn func(*html.Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.walkNodes(c, fn)
	}
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, key) {
			return attr.Val
		}
	}
	return ""
}

func getTextContent(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return buf.String()
}
