package htmlutil

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/happyhackingspace/wakachi/internal/textutil"
)

// skipElements never contribute text.
var skipElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"head":     true,
}

// blockElements end the current text block.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "dd": true, "div": true, "dl": true, "dt": true,
	"figcaption": true, "footer": true, "form": true, "h1": true,
	"h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "main": true, "nav": true,
	"ol": true, "p": true, "pre": true, "section": true, "table": true,
	"td": true, "th": true, "title": true, "tr": true, "ul": true,
}

// GetTextBlocks walks the subtree of root and returns its visible text split
// at block-level elements. Inline text is concatenated as is, so words
// split by markup (<b>, <a>, <ruby>) stay joined. Blocks are
// whitespace-normalized; empty ones are dropped.
func GetTextBlocks(root *goquery.Selection) []string {
	var blocks []string
	var buf strings.Builder

	flushBuf := func() {
		text := strings.TrimSpace(textutil.NormalizeWhitespaces(buf.String()))
		if text != "" {
			blocks = append(blocks, text)
		}
		buf.Reset()
	}

	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			buf.WriteString(n.Data)
			return
		case html.ElementNode:
			if skipElements[n.Data] {
				return
			}
			// Ruby annotations repeat the base text's reading.
			if n.Data == "rt" || n.Data == "rp" {
				return
			}
		}

		block := n.Type == html.ElementNode && blockElements[n.Data]
		if block {
			flushBuf()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
		if block {
			flushBuf()
		}
	}

	for _, n := range root.Nodes {
		visit(n)
	}
	flushBuf()
	return blocks
}
