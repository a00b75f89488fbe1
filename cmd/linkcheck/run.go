package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github-asana-bridge/internal/backlink"
	"github-asana-bridge/internal/model"
	"github-asana-bridge/internal/notify"
	"github-asana-bridge/internal/tasklink"
	"github-asana-bridge/pkg/asana"
	"github-asana-bridge/pkg/log"
)

const (
	kindIssue       = "issue"
	kindPullRequest = "pull_request"
	kindComment     = "comment"
)

type options struct {
	bodyPath      string
	previousPath  string
	action        string
	kind          string
	title         string
	url           string
	merged        bool
	project       string
	prOpenSection string
	mergedSection string
	json          bool
}

func defaultOptions() *options {
	return &options{
		action: string(model.ActionOpened),
		kind:   kindPullRequest,
		url:    "https://github.com/example/repo/pull/1",
	}
}

// plannedCall is a tracker call the webhook would have made.
type plannedCall struct {
	TaskID  string `json:"task_id"`
	Comment string `json:"comment,omitempty"`
	Project string `json:"project,omitempty"`
	Section string `json:"section,omitempty"`
}

// dryRunTracker records tracker calls instead of sending them.
type dryRunTracker struct {
	mu    sync.Mutex
	calls map[string]*plannedCall
}

func newDryRunTracker() *dryRunTracker {
	return &dryRunTracker{calls: make(map[string]*plannedCall)}
}

func (t *dryRunTracker) call(taskGID string) *plannedCall {
	c, ok := t.calls[taskGID]
	if !ok {
		c = &plannedCall{TaskID: taskGID}
		t.calls[taskGID] = c
	}
	return c
}

func (t *dryRunTracker) AddComment(ctx context.Context, taskGID, htmlText string) (*asana.Story, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.call(taskGID).Comment = htmlText
	return &asana.Story{}, nil
}

func (t *dryRunTracker) AddProject(ctx context.Context, taskGID string, req asana.AddProjectRequest) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	c := t.call(taskGID)
	c.Project, c.Section = req.Project, req.Section
	return nil
}

type reference struct {
	TaskID      string `json:"task_id"`
	ProjectID   string `json:"project_id"`
	ControlWord string `json:"control_word,omitempty"`
	Controlled  bool   `json:"controlled"`
}

type result struct {
	Action     model.Action  `json:"action"`
	Skipped    bool          `json:"skipped"`
	Reason     string        `json:"reason,omitempty"`
	References []reference   `json:"references"`
	Calls      []plannedCall `json:"calls"`
}

func run(ctx context.Context, stdin io.Reader, out io.Writer, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	event, err := buildEvent(stdin, opts)
	if err != nil {
		return err
	}

	tracker := newDryRunTracker()
	uc := backlink.New(
		tasklink.MustGrammar(tasklink.DefaultHost),
		notify.New(),
		tracker,
		nil,
		backlink.Config{
			Project:        opts.project,
			PROpenSection:  opts.prOpenSection,
			MergedSection:  opts.mergedSection,
			MaxConcurrency: 1,
		},
		log.NewNop(),
	)

	output, err := uc.ProcessEvent(ctx, backlink.ProcessEventInput{Event: event})
	if err != nil {
		return err
	}

	res := result{
		Action:     model.EffectiveAction(event.Action, event.Target()),
		Skipped:    output.Skipped,
		Reason:     output.Reason,
		References: []reference{},
		Calls:      []plannedCall{},
	}
	for _, ref := range output.References.Refs() {
		res.References = append(res.References, reference{
			TaskID:      ref.TaskID,
			ProjectID:   ref.ProjectID,
			ControlWord: string(ref.ControlWord),
			Controlled:  ref.Controlled(),
		})
		if c, ok := tracker.calls[ref.TaskID]; ok {
			res.Calls = append(res.Calls, *c)
		}
	}

	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	printHuman(out, res)
	return nil
}

func buildEvent(stdin io.Reader, opts *options) (model.RawEvent, error) {
	body, err := readText(stdin, opts.bodyPath)
	if err != nil {
		return model.RawEvent{}, fmt.Errorf("reading body: %w", err)
	}

	entity := &model.Entity{
		Body:    body,
		HTMLURL: opts.url,
		Title:   opts.title,
		Merged:  opts.merged,
	}
	event := model.RawEvent{Action: model.Action(opts.action)}

	switch opts.kind {
	case kindIssue:
		event.Issue = entity
	case kindPullRequest:
		event.PullRequest = entity
	case kindComment:
		event.Comment = entity
	default:
		return model.RawEvent{}, fmt.Errorf("unknown kind %q", opts.kind)
	}

	if opts.previousPath != "" {
		previous, err := readText(stdin, opts.previousPath)
		if err != nil {
			return model.RawEvent{}, fmt.Errorf("reading previous body: %w", err)
		}
		event.Changes = &model.Changes{}
		event.Changes.Body = &struct {
			From string `json:"from"`
		}{From: previous}
	}
	return event, nil
}

func readText(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}

func printHuman(out io.Writer, res result) {
	fmt.Fprintf(out, "Action: %s\n", res.Action)
	if res.Skipped {
		fmt.Fprintf(out, "Skipped: %s\n", res.Reason)
		return
	}

	fmt.Fprintf(out, "New references: %d\n", len(res.References))
	for _, ref := range res.References {
		marker := " "
		if ref.Controlled {
			marker = "*"
		}
		fmt.Fprintf(out, "  [%s] task %s (project %s) %s\n", marker, ref.TaskID, ref.ProjectID, ref.ControlWord)
	}

	for _, c := range res.Calls {
		fmt.Fprintf(out, "\nTask %s comment:\n%s\n", c.TaskID, c.Comment)
		if c.Project != "" {
			fmt.Fprintf(out, "Task %s move: project %s section %q\n", c.TaskID, c.Project, c.Section)
		}
	}
}
