// Package richtext turns API-supplied HTML into markup that is safe to
// embed in storefront pages.
package richtext

import (
	"fmt"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	log "github.com/sirupsen/logrus"
)

type Renderer struct {
	policy *bluemonday.Policy
}

// NewRenderer allows the user-generated-content subset: formatting,
// lists, tables, links and images. Scripts, styles, event handlers and
// iframes are stripped.
func NewRenderer() *Renderer {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return &Renderer{policy: policy}
}

// Sanitize returns raw as sanitized HTML.
func (r *Renderer) Sanitize(raw string) template.HTML {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return template.HTML(r.policy.Sanitize(raw))
}

// Text returns the visible text of raw with whitespace collapsed.
func (r *Renderer) Text(raw string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript").Remove()
	// block boundaries separate words
	doc.Find("p, br, li, div, tr, td, th, h1, h2, h3, h4, h5, h6").AppendHtml(" ")
	return strings.Join(strings.Fields(doc.Text()), " "), nil
}

// Excerpt returns at most limit runes of the visible text, cut at a word
// boundary where possible.
func (r *Renderer) Excerpt(raw string, limit int) string {
	text, err := r.Text(raw)
	if err != nil {
		log.Warnf("Failed to extract excerpt: %v", err)
		return ""
	}

	if utf8.RuneCountInString(text) <= limit {
		return text
	}

	runes := []rune(text)
	cut := string(runes[:limit])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}
