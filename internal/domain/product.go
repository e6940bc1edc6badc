package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID       Identifier          `json:"id"`
	UUID     string              `json:"uuid,omitempty"`
	Name     string              `json:"name"`
	Price    decimal.NullDecimal `json:"price"`
	Brand    string              `json:"brand,omitempty"`
	Material string              `json:"material,omitempty"`
	SKU      string              `json:"sku,omitempty"`
	Category *CategoryRef        `json:"category,omitempty"`

	ImageOne   string `json:"image_one,omitempty"`
	ImageTwo   string `json:"image_two,omitempty"`
	ImageThree string `json:"image_three,omitempty"`
	ImageFour  string `json:"image_four,omitempty"`
	ImageFive  string `json:"image_five,omitempty"`

	IsFeatured   bool `json:"is_featured"`
	IsNew        bool `json:"is_new"`
	IsBestseller bool `json:"is_bestseller"`

	// Raw HTML from the API, sanitized before rendering.
	Description string `json:"description,omitempty"`
	Features    string `json:"features,omitempty"`

	Dimensions string `json:"dimensions,omitempty"`
	Length     Number `json:"length"`
	Width      Number `json:"width"`
	Height     Number `json:"height"`
	Size       string `json:"size,omitempty"`
	Dimension  string `json:"dimension,omitempty"`

	MinDeliveryDays Number `json:"min_delivery_days"`
	MaxDeliveryDays Number `json:"max_delivery_days"`
	ShippingMinDays Number `json:"shipping_min_days"`
	ShippingMaxDays Number `json:"shipping_max_days"`
	LeadTimeMin     Number `json:"lead_time_min"`
	LeadTimeMax     Number `json:"lead_time_max"`

	Warranty        Number `json:"warranty"`
	CountryOfOrigin string `json:"country_of_origin,omitempty"`
	SoldBy          string `json:"sold_by,omitempty"`

	AverageRating Number   `json:"average_rating"`
	ReviewsCount  Number   `json:"reviews_count"`
	Reviews       []Review `json:"reviews,omitempty"`
}

// Validate checks the fields every view relies on.
func (p Product) Validate() error {
	if p.ID == "" && p.UUID == "" {
		return errors.New("product has no identifier")
	}
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("product has no name")
	}
	return nil
}

// Key returns the identifier used in storefront routes: the uuid when
// there is one, otherwise the numeric id.
func (p Product) Key() string {
	if id, ok := p.CanonicalID(); ok {
		return id
	}
	if p.UUID != "" {
		return p.UUID
	}
	return p.ID.String()
}

// CanonicalID returns the product uuid if it is a well-formed one.
func (p Product) CanonicalID() (string, bool) {
	if p.UUID == "" {
		return "", false
	}
	id, err := uuid.Parse(p.UUID)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// Images returns the non-empty image references in display order.
func (p Product) Images() []string {
	all := []string{p.ImageOne, p.ImageTwo, p.ImageThree, p.ImageFour, p.ImageFive}
	images := make([]string, 0, len(all))
	for _, img := range all {
		if img != "" {
			images = append(images, img)
		}
	}
	return images
}

// CategoryName falls back to a generic label.
func (p Product) CategoryName() string {
	if p.Category != nil && p.Category.Name != "" {
		return p.Category.Name
	}
	return "Product"
}

// PriceText renders the price without trailing zeros, or "" when absent.
func (p Product) PriceText() string {
	if !p.Price.Valid {
		return ""
	}
	return p.Price.Decimal.String()
}

// DimensionsText prefers the preformatted field, then length x width x
// height, then the free-form size fields.
func (p Product) DimensionsText() string {
	if p.Dimensions != "" {
		return p.Dimensions
	}

	parts := make([]string, 0, 3)
	for _, n := range []Number{p.Length, p.Width, p.Height} {
		if n.Truthy() {
			parts = append(parts, n.String())
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " x ")
	}

	if p.Size != "" {
		return p.Size
	}
	return p.Dimension
}

// MatchesSearch is a case-insensitive substring match over name, brand and
// material. An empty query matches everything.
func (p Product) MatchesSearch(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range []string{p.Name, p.Brand, p.Material} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// InCategory reports whether the product belongs to the category with the
// given identifier. An empty identifier matches everything.
func (p Product) InCategory(id string) bool {
	if id == "" {
		return true
	}
	return p.Category != nil && p.Category.ID.String() == id
}
