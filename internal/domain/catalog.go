package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type Category struct {
	ID    Identifier `json:"id"`
	Name  string     `json:"name"`
	Image string     `json:"image,omitempty"`
	Count Number     `json:"count"` // optional item count
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("category has no name")
	}
	return nil
}

type Banner struct {
	Image       string `json:"image,omitempty"`
	Name        string `json:"name,omitempty"`
	Title       string `json:"title,omitempty"`
	Subtitle    string `json:"subtitle,omitempty"`
	CTAText     string `json:"cta_text,omitempty"`
	CTALink     string `json:"cta_link,omitempty"`
	CTAExternal bool   `json:"cta_external,omitempty"`
}

// HasCaption reports whether the banner carries an overlay caption.
func (b Banner) HasCaption() bool {
	return b.Title != "" || b.Subtitle != ""
}

// HasCTA reports whether both the call-to-action text and link are set.
func (b Banner) HasCTA() bool {
	return b.CTAText != "" && b.CTALink != ""
}

// CategoryRef is the category embedded in a product. The API sends either
// the full object or just its identifier.
type CategoryRef struct {
	ID   Identifier `json:"id"`
	Name string     `json:"name,omitempty"`
}

func (c *CategoryRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		type plain CategoryRef
		var p plain
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("failed to decode category: %w", err)
		}
		*c = CategoryRef(p)
		return nil
	}

	*c = CategoryRef{}
	return json.Unmarshal(data, &c.ID)
}
