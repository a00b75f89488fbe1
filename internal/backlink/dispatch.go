package backlink

import (
	"context"
	"regexp"

	"golang.org/x/sync/errgroup"

	"github-asana-bridge/internal/model"
	"github-asana-bridge/internal/tasklink"
	"github-asana-bridge/pkg/asana"
)

var pullRequestPath = regexp.MustCompile(`/pull/[0-9]+`)

// dispatcher performs the remote calls for each new reference.
type dispatcher struct {
	tracker TaskTracker
	cfg     Config
	moveOn  map[model.Action]bool
}

// Dispatch syncs every reference concurrently and waits for all of them to
// settle. A failure never stops the other references.
func (d *dispatcher) Dispatch(ctx context.Context, refs tasklink.ReferenceSet, ec model.EventContext, msgs messages) Report {
	list := refs.Refs()
	results := make([]Result, len(list))

	var g errgroup.Group
	if d.cfg.MaxConcurrency > 0 {
		g.SetLimit(d.cfg.MaxConcurrency)
	}
	for i, ref := range list {
		g.Go(func() error {
			results[i] = d.sync(ctx, ref, ec, msgs.forReference(ref))
			return nil
		})
	}
	_ = g.Wait()

	return Report{Results: results}
}

func (d *dispatcher) sync(ctx context.Context, ref tasklink.TaskReference, ec model.EventContext, msg string) Result {
	res := Result{TaskID: ref.TaskID, Controlled: ref.Controlled()}

	if err := ctx.Err(); err != nil {
		res.Stage, res.Err = StageCanceled, err
		return res
	}

	if _, err := d.tracker.AddComment(ctx, ref.TaskID, msg); err != nil {
		res.Stage, res.Err = StageComment, err
		return res
	}
	res.Commented = true

	if !d.shouldMove(ref, ec) {
		return res
	}

	res.Project, res.Section = d.cfg.Project, d.section(ec.EffectiveAction)
	err := d.tracker.AddProject(ctx, ref.TaskID, asana.AddProjectRequest{
		Project: res.Project,
		Section: res.Section,
	})
	if err != nil {
		res.Stage, res.Err = StageMove, err
		return res
	}
	res.Moved = true
	return res
}

// shouldMove: controlled reference, project configured, pull request target
// and an effective action in the move set.
func (d *dispatcher) shouldMove(ref tasklink.TaskReference, ec model.EventContext) bool {
	return ref.Controlled() &&
		d.cfg.Project != "" &&
		pullRequestPath.MatchString(ec.TargetURL) &&
		d.moveOn[ec.EffectiveAction]
}

func (d *dispatcher) section(action model.Action) string {
	if action == model.ActionMerged {
		return d.cfg.MergedSection
	}
	return d.cfg.PROpenSection
}
