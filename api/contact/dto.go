// Package contact serves the contact form endpoint and the admin message list.
package contact

// SubmitRequest is the contact form as posted by the site.
type SubmitRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Botcheck bool   `json:"botcheck"`
}

// ListQuery pages the archived messages.
type ListQuery struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}
