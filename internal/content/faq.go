package content

import (
	"sort"
	"strconv"
	"strings"
)

type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQs is the storefront's question list, in display order.
var FAQs = []FAQEntry{
	{
		Question: "How do I place an order?",
		Answer:   "Click the WhatsApp icon next to the product to place your order, and our team will assist you promptly.",
	},
	{
		Question: "What types of furniture do you offer?",
		Answer:   "We offer a wide range of furniture styles, including sofas, beds, dining sets, and more.",
	},
	{
		Question: "What are your delivery options?",
		Answer:   "We provide doorstep delivery to your location with flexible scheduling Upto 1st Floor.",
	},
	{
		Question: "Do you offer customization options?",
		Answer:   "Yes, certain items can be customized to suit your preferences; contact us on WhatsApp to discuss.",
	},
	{
		Question: "What is your warranty policy?",
		Answer:   "Our warranty period is 2 years for all products.",
	},
	{
		Question: "Do you offer free delivery?",
		Answer:   "Yes, we offer free delivery to Bangalore locations.",
	},
}

const FAQNoMatchMessage = "No FAQs match your search. Try different keywords or contact support on WhatsApp."

// FilterFAQs keeps the entries whose question or answer contains query,
// ignoring case and surrounding whitespace. A blank query keeps all.
func FilterFAQs(entries []FAQEntry, query string) []FAQEntry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return entries
	}

	filtered := make([]FAQEntry, 0, len(entries))
	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry.Question), q) ||
			strings.Contains(strings.ToLower(entry.Answer), q) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// Accordion is the set of expanded items, indexed by position in the
// filtered list. The zero value has everything collapsed.
type Accordion struct {
	open map[int]bool
}

// ParseAccordion reads the comma-separated open list carried in the URL.
// Indices outside [0, count) and garbage are ignored.
func ParseAccordion(open string, expandAll bool, count int) Accordion {
	if expandAll {
		return Accordion{}.ExpandAll(count)
	}

	a := Accordion{open: make(map[int]bool)}
	for _, part := range strings.Split(open, ",") {
		i, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || i < 0 || i >= count {
			continue
		}
		a.open[i] = true
	}
	return a
}

func (a Accordion) IsOpen(i int) bool {
	return a.open[i]
}

// Toggle returns a copy with item i flipped.
func (a Accordion) Toggle(i int) Accordion {
	next := Accordion{open: make(map[int]bool, len(a.open)+1)}
	for k, v := range a.open {
		if v {
			next.open[k] = true
		}
	}
	if next.open[i] {
		delete(next.open, i)
	} else {
		next.open[i] = true
	}
	return next
}

func (a Accordion) ExpandAll(count int) Accordion {
	next := Accordion{open: make(map[int]bool, count)}
	for i := 0; i < count; i++ {
		next.open[i] = true
	}
	return next
}

// Encode renders the open set as a sorted comma-separated list.
func (a Accordion) Encode() string {
	indices := make([]int, 0, len(a.open))
	for i, v := range a.open {
		if v {
			indices = append(indices, i)
		}
	}
	sort.Ints(indices)

	parts := make([]string, len(indices))
	for n, i := range indices {
		parts[n] = strconv.Itoa(i)
	}
	return strings.Join(parts, ",")
}
