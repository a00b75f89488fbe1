package backlink

import (
	"errors"

	"github-asana-bridge/internal/model"
	"github-asana-bridge/internal/tasklink"
)

// Config is the sync policy. It is fixed at construction time.
type Config struct {
	Project        string         // target project gid; empty disables moves
	PROpenSection  string         // section for controlled tasks of open PRs
	MergedSection  string         // section for controlled tasks of merged PRs
	MoveOnActions  []model.Action // effective actions that trigger a move
	MaxConcurrency int            // concurrent dispatches per event, 0 = unbounded
	AckReaction    string         // reaction added to a comment after a sync, empty = none
}

// DefaultMoveOnActions is every action except closed: a PR closed without
// merging never moves a task.
var DefaultMoveOnActions = []model.Action{
	model.ActionCreated,
	model.ActionOpened,
	model.ActionReopened,
	model.ActionEdited,
	model.ActionLabeled,
	model.ActionUnlabeled,
	model.ActionMerged,
}

// processedActions are handled unconditionally; edited needs a body change.
var processedActions = map[model.Action]bool{
	model.ActionCreated:   true,
	model.ActionOpened:    true,
	model.ActionClosed:    true,
	model.ActionReopened:  true,
	model.ActionLabeled:   true,
	model.ActionUnlabeled: true,
}

// ProcessEventInput is input for event processing.
type ProcessEventInput struct {
	Event model.RawEvent
}

// ProcessEventOutput is the result of event processing.
type ProcessEventOutput struct {
	Skipped    bool   // nothing to do for this event
	Reason     string // why it was skipped
	Context    model.EventContext
	References tasklink.ReferenceSet // new references
	Report     Report
}

// Stage is the remote call a dispatch failed at.
type Stage string

const (
	StageComment  Stage = "comment"
	StageMove     Stage = "move"
	StageCanceled Stage = "canceled"
)

// Result is the outcome of syncing one reference.
type Result struct {
	TaskID     string
	Controlled bool
	Commented  bool
	Moved      bool
	Project    string
	Section    string
	Stage      Stage // set on failure
	Err        error
}

// OK reports whether every attempted call succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Report collects the results of one event, in reference order.
type Report struct {
	Results []Result
}

// Succeeded counts the references whose calls all succeeded.
func (r Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() {
			n++
		}
	}
	return n
}

// Failed returns the failed results.
func (r Report) Failed() []Result {
	out := make([]Result, 0)
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}

var ErrRenderMessage = errors.New("failed to render task notification")

// Skip reasons.
const (
	reasonNoEntity     = "event has no comment, issue or pull request"
	reasonNoBody       = "entity has no body or html_url"
	reasonAction       = "action is not processed"
	reasonNoBodyChange = "edit did not change the body"
	reasonNoReferences = "no new task references"
)
