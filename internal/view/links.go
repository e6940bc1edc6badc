package view

import (
	"fmt"
	"net/url"
	"strings"

	"teakwood/storefront/internal/domain"
)

// Links builds canonical product URLs and WhatsApp deep links.
type Links struct {
	SiteURL        string
	WhatsAppNumber string
}

// ProductURL is the canonical page of the product when it has a uuid,
// otherwise current, the URL the visitor is on.
func (l Links) ProductURL(p *domain.Product, current string) string {
	if p == nil {
		return current
	}
	if id, ok := p.CanonicalID(); ok {
		return fmt.Sprintf("%s/product/%s", l.SiteURL, id)
	}
	if p.UUID != "" {
		return fmt.Sprintf("%s/product/%s", l.SiteURL, url.PathEscape(p.UUID))
	}
	return current
}

// ChatURL opens a chat with the store.
func (l Links) ChatURL() string {
	return "https://wa.me/" + l.WhatsAppNumber
}

// MessageURL opens a chat with the store prefilled with interest in p.
func (l Links) MessageURL(p *domain.Product, current string) string {
	text := fmt.Sprintf("Hi, I'm interested in %s - %s", p.Name, l.ProductURL(p, current))
	return fmt.Sprintf("https://wa.me/%s?text=%s", l.WhatsAppNumber, QueryEscapeSpaces(text))
}

// TileBuyURL is the "Buy now" link of a product grid tile.
func (l Links) TileBuyURL(p *domain.Product) string {
	text := fmt.Sprintf("I'm interested in %s - %s", p.Name, l.ProductURL(p, l.SiteURL+"/product/"+url.PathEscape(p.Key())))
	return fmt.Sprintf("https://wa.me/%s?text=%s", l.WhatsAppNumber, QueryEscapeSpaces(text))
}

// ShareURL opens WhatsApp without a recipient so the visitor can pick one.
func (l Links) ShareURL(p *domain.Product, current string) string {
	text := fmt.Sprintf("Check this product: %s\n%s", p.Name, l.ProductURL(p, current))
	return "https://wa.me/?text=" + QueryEscapeSpaces(text)
}

// BuyNowURL starts a purchase conversation for qty units of p.
func (l Links) BuyNowURL(p *domain.Product, qty int, color, current string) string {
	if color == "" {
		color = "N/A"
	}
	text := fmt.Sprintf("I'm interested in purchasing:\n\nProduct: %s\nQty: %d\nColor: %s\nLink: %s",
		p.Name, max(1, qty), color, l.ProductURL(p, current))
	return fmt.Sprintf("https://api.whatsapp.com/send?phone=%s&text=%s", l.WhatsAppNumber, QueryEscapeSpaces(text))
}

// QueryEscapeSpaces percent-encodes s for use as a query value, spaces as
// %20. Unlike JavaScript's encodeURIComponent it also escapes !'()*.
func QueryEscapeSpaces(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
