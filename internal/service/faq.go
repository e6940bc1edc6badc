package service

import (
	"strings"

	"teakwood/storefront/internal/content"
)

type FAQQuery struct {
	Search    string
	Open      string
	ExpandAll bool
}

type FAQItem struct {
	Index    int
	Question string
	Answer   string
	Open     bool
	// ToggleOpen is the open list after toggling this item.
	ToggleOpen string
}

type FAQView struct {
	Search  string
	Items   []FAQItem
	NoMatch string
	// OpenAll is the open list with every matching item expanded.
	OpenAll string
}

// FAQ filters the static FAQ and resolves which items are expanded. The
// expanded state is positional over the filtered list.
func (s *Service) FAQ(query FAQQuery) FAQView {
	filtered := content.FilterFAQs(content.FAQs, query.Search)
	accordion := content.ParseAccordion(query.Open, query.ExpandAll, len(filtered))

	v := FAQView{
		Search:  strings.TrimSpace(query.Search),
		Items:   make([]FAQItem, 0, len(filtered)),
		OpenAll: accordion.ExpandAll(len(filtered)).Encode(),
	}
	for i, entry := range filtered {
		v.Items = append(v.Items, FAQItem{
			Index:      i,
			Question:   entry.Question,
			Answer:     entry.Answer,
			Open:       accordion.IsOpen(i),
			ToggleOpen: accordion.Toggle(i).Encode(),
		})
	}
	if len(v.Items) == 0 {
		v.NoMatch = content.FAQNoMatchMessage
	}
	return v
}
