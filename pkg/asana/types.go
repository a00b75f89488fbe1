package asana

import (
	"fmt"
	"strings"
)

// AddProjectRequest is the data of POST /tasks/{gid}/addProject.
type AddProjectRequest struct {
	Project string `json:"project"`
	Section string `json:"section,omitempty"`
}

// Story is an Asana story (comment).
type Story struct {
	GID      string `json:"gid"`
	Type     string `json:"type"`
	Text     string `json:"text"`
	HTMLText string `json:"html_text"`
}

type createStoryRequest struct {
	HTMLText string `json:"html_text"`
}

// envelope is the {"data": ...} wrapper of every Asana request and response.
type envelope[T any] struct {
	Data T `json:"data"`
}

// ErrorDetail is one entry of an Asana error response.
type ErrorDetail struct {
	Message string `json:"message"`
	Help    string `json:"help,omitempty"`
	Phrase  string `json:"phrase,omitempty"`
}

// Error is returned for non-2xx Asana responses.
type Error struct {
	StatusCode int
	Errors     []ErrorDetail `json:"errors"`
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, d := range e.Errors {
		msgs = append(msgs, d.Message)
	}
	if len(msgs) == 0 {
		return fmt.Sprintf("asana API error %d", e.StatusCode)
	}
	return fmt.Sprintf("asana API error %d: %s", e.StatusCode, strings.Join(msgs, "; "))
}

// Details returns the structured error entries.
func (e *Error) Details() []string {
	out := make([]string, 0, len(e.Errors))
	for _, d := range e.Errors {
		s := d.Message
		if d.Help != "" {
			s += " (" + d.Help + ")"
		}
		if d.Phrase != "" {
			s += " [" + d.Phrase + "]"
		}
		out = append(out, s)
	}
	return out
}
