package github

import "fmt"

// Comment is an issue comment.
type Comment struct {
	ID      int64  `json:"id"`
	Body    string `json:"body"`
	HTMLURL string `json:"html_url"`
}

// Reaction is a reaction on a comment or issue.
type Reaction struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
}

// Error is returned for non-2xx GitHub responses.
type Error struct {
	StatusCode       int
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url,omitempty"`
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("github API error %d", e.StatusCode)
	}
	return fmt.Sprintf("github API error %d: %s", e.StatusCode, e.Message)
}

// Details returns the structured error detail.
func (e *Error) Details() []string {
	if e.DocumentationURL == "" {
		return []string{e.Message}
	}
	return []string{e.Message + " (" + e.DocumentationURL + ")"}
}
