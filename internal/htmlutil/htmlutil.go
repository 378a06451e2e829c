// Package htmlutil extracts segmentable text from HTML documents.
package htmlutil

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LoadHTML parses HTML bytes into a goquery Document.
func LoadHTML(r io.Reader) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(r)
}

// LoadHTMLString parses HTML string into a goquery Document.
func LoadHTMLString(htmlStr string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
}

// GetTitle returns the trimmed document title.
func GetTitle(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// GetBody returns the <body> element, or the whole document if it has none.
func GetBody(doc *goquery.Document) *goquery.Selection {
	body := doc.Find("body")
	if body.Length() > 0 {
		return body.First()
	}
	return doc.Selection
}

// DocumentText returns the text blocks of the document body, one per line
// of visible text.
func DocumentText(doc *goquery.Document) []string {
	return GetTextBlocks(GetBody(doc))
}

// ReadText parses HTML from r and returns its text blocks.
func ReadText(r io.Reader) ([]string, error) {
	doc, err := LoadHTML(r)
	if err != nil {
		return nil, err
	}
	return DocumentText(doc), nil
}
