package reviews

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractHTML returns the text of every element matching selector, in document
// order, with whitespace collapsed. Blank matches are skipped.
func ExtractHTML(r io.Reader, selector string) ([]string, error) {
	if strings.TrimSpace(selector) == "" {
		selector = DefaultSelector
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var texts []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if text := collapseSpace(s.Text()); text != "" {
			texts = append(texts, text)
		}
	})
	if len(texts) == 0 {
		return nil, fmt.Errorf("no reviews matched selector %q", selector)
	}
	return texts, nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
