package domain

import (
	"strings"
	"unicode/utf8"
)

const (
	MinReviewRating        = 1
	MaxReviewRating        = 5
	MinReviewCommentLength = 5
)

type Review struct {
	Author  string `json:"author,omitempty"`
	Date    string `json:"date,omitempty"`
	Rating  Number `json:"rating"`
	Comment string `json:"comment"`
}

func (r Review) AuthorName() string {
	if r.Author == "" {
		return "Anonymous"
	}
	return r.Author
}

// ReviewSubmission is the payload posted to the reviews endpoint. The
// storefront sends no author; attribution is left to the backend.
type ReviewSubmission struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Normalize trims the comment.
func (s ReviewSubmission) Normalize() ReviewSubmission {
	s.Comment = strings.TrimSpace(s.Comment)
	return s
}

func (s ReviewSubmission) Validate() error {
	if s.Rating < MinReviewRating || s.Rating > MaxReviewRating {
		return NewValidationError("Please select a rating (1-5).")
	}
	if utf8.RuneCountInString(strings.TrimSpace(s.Comment)) < MinReviewCommentLength {
		return NewValidationError("Please enter a comment (at least 5 characters).")
	}
	return nil
}
