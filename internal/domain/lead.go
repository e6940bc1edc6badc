package domain

import "strings"

// Lead is a contact-form submission.
type Lead struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func (l Lead) Validate() error {
	if strings.TrimSpace(l.Name) == "" ||
		strings.TrimSpace(l.Phone) == "" ||
		strings.TrimSpace(l.Message) == "" {
		return NewValidationError("Please complete all fields.")
	}
	return nil
}

// Fields returns the multipart form fields.
func (l Lead) Fields() map[string]string {
	return map[string]string{
		"name":    l.Name,
		"phone":   l.Phone,
		"message": l.Message,
	}
}
