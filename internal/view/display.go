package view

import (
	"math"
	"strconv"
	"strings"
)

const StarCount = 5

// Stars maps a rating to filled (true) and unfilled glyphs. Values are
// clamped to [0, 5].
func Stars(value int) []bool {
	value = max(0, min(StarCount, value))

	stars := make([]bool, StarCount)
	for i := range stars {
		stars[i] = i < value
	}
	return stars
}

// RoundRating rounds an average rating half up.
func RoundRating(avg float64) int {
	return int(math.Floor(avg + 0.5))
}

// ColumnsForWidth is the product/category grid column hint for a viewport
// width in CSS pixels. Unknown widths get the widest layout.
func ColumnsForWidth(width int) int {
	switch {
	case width <= 0:
		return 5
	case width < 640:
		return 2
	case width < 1024:
		return 3
	case width < 1280:
		return 4
	default:
		return 5
	}
}

// ParseViewportWidth reads a Viewport-Width client hint value.
func ParseViewportWidth(header string) int {
	width, err := strconv.ParseFloat(strings.TrimSpace(header), 64)
	if err != nil || width <= 0 {
		return 0
	}
	return int(width)
}

// Assets resolves API image paths.
type Assets struct {
	BaseURL         string
	Fallback        string
	ProductFallback string
}

// Image joins the API base URL and path, or returns the fallback image when
// path is empty.
func (a Assets) Image(path string) string {
	if path == "" {
		return a.Fallback
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return a.BaseURL + path
}

// ProductImage is Image with the product hero fallback.
func (a Assets) ProductImage(path string) string {
	if path == "" {
		return a.ProductFallback
	}
	return a.Image(path)
}
