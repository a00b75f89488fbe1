package model

import "strings"

// Action is the webhook action verb.
type Action string

const (
	ActionCreated   Action = "created"
	ActionOpened    Action = "opened"
	ActionClosed    Action = "closed"
	ActionReopened  Action = "reopened"
	ActionLabeled   Action = "labeled"
	ActionUnlabeled Action = "unlabeled"
	ActionEdited    Action = "edited"

	// ActionMerged is synthetic: a closed pull request with merged=true.
	ActionMerged Action = "merged"
)

// Fallback titles for entities without one.
const (
	TitleComment = "comment"
	TitleIssue   = "issue"
)

// RawEvent is the subset of a GitHub issues / issue_comment / pull_request
// webhook payload the bridge reads.
type RawEvent struct {
	Action      Action   `json:"action"`
	Comment     *Entity  `json:"comment,omitempty"`
	Issue       *Entity  `json:"issue,omitempty"`
	PullRequest *Entity  `json:"pull_request,omitempty"`
	Changes     *Changes `json:"changes,omitempty"`
}

// Entity is a comment, issue or pull request.
type Entity struct {
	Body    string  `json:"body"`
	HTMLURL string  `json:"html_url"`
	URL     string  `json:"url,omitempty"` // API url, used for reactions
	Title   string  `json:"title,omitempty"`
	Merged  bool    `json:"merged,omitempty"`
	Labels  []Label `json:"labels,omitempty"`
}

// Label is a GitHub label.
type Label struct {
	Name string `json:"name"`
}

// Changes holds the previous values of an edited entity.
type Changes struct {
	Body *struct {
		From string `json:"from"`
	} `json:"body,omitempty"`
}

// PreviousBody returns changes.body.from, or "" when absent.
func (e RawEvent) PreviousBody() string {
	if e.Changes == nil || e.Changes.Body == nil {
		return ""
	}
	return e.Changes.Body.From
}

// Target returns the entity the event is about. A comment wins over the
// issue or pull request it belongs to.
func (e RawEvent) Target() *Entity {
	switch {
	case e.Comment != nil:
		return e.Comment
	case e.Issue != nil:
		return e.Issue
	default:
		return e.PullRequest
	}
}

// IsComment reports whether the target entity is a comment.
func (e RawEvent) IsComment() bool {
	return e.Comment != nil
}

// EventContext is what downstream logic needs to know about an event.
type EventContext struct {
	EffectiveAction Action
	Title           string
	TargetURL       string
	APIURL          string
	IsComment       bool
}

// EffectiveAction remaps closed+merged to merged.
func EffectiveAction(action Action, entity *Entity) Action {
	if action == ActionClosed && entity != nil && entity.Merged {
		return ActionMerged
	}
	return action
}

// NewEventContext derives the EventContext of e. The title falls back to
// "comment" or "issue"; pull request labels are appended as "(name)".
func NewEventContext(e RawEvent) EventContext {
	entity := e.Target()
	ec := EventContext{
		EffectiveAction: EffectiveAction(e.Action, entity),
		IsComment:       e.IsComment(),
	}
	if entity == nil {
		return ec
	}
	ec.TargetURL = entity.HTMLURL
	ec.APIURL = entity.URL

	parts := make([]string, 0, 1)
	switch {
	case entity.Title != "":
		parts = append(parts, entity.Title)
	case e.Comment != nil:
		parts = append(parts, TitleComment)
	case e.Issue != nil:
		parts = append(parts, TitleIssue)
	}
	if e.PullRequest != nil {
		for _, label := range e.PullRequest.Labels {
			parts = append(parts, "("+label.Name+")")
		}
	}
	ec.Title = strings.Join(parts, " ")
	return ec
}
