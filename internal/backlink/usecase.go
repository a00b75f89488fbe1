package backlink

import (
	"context"
	"fmt"

	"github-asana-bridge/internal/model"
	"github-asana-bridge/internal/notify"
	"github-asana-bridge/internal/tasklink"
)

// ProcessEvent runs extract -> diff -> classify -> render -> dispatch for one
// webhook event.
func (uc *usecase) ProcessEvent(ctx context.Context, input ProcessEventInput) (ProcessEventOutput, error) {
	event := input.Event

	if reason := skipReason(event); reason != "" {
		uc.l.Debugf(ctx, "backlink: skipping %s event: %s", event.Action, reason)
		return ProcessEventOutput{Skipped: true, Reason: reason}, nil
	}

	ec := model.NewEventContext(event)
	refs := uc.grammar.NewReferences(event.Target().Body, event.PreviousBody())
	if refs.IsEmpty() {
		uc.l.Debugf(ctx, "backlink: no new task references in %s", ec.TargetURL)
		return ProcessEventOutput{Skipped: true, Reason: reasonNoReferences, Context: ec}, nil
	}

	plain, controlled := tasklink.Classify(refs)
	uc.l.Infof(ctx, "backlink: %s %s references tasks plain=%v controlled=%v",
		ec.TargetURL, ec.EffectiveAction, plain, controlled)

	msgs, err := uc.render(ec, event.Target().Body, len(plain) > 0, len(controlled) > 0)
	if err != nil {
		return ProcessEventOutput{}, err
	}

	report := uc.dispatcher.Dispatch(ctx, refs, ec, msgs)
	uc.logReport(ctx, ec, report)
	uc.acknowledge(ctx, ec, report)

	return ProcessEventOutput{
		Context:    ec,
		References: refs,
		Report:     report,
	}, nil
}

// skipReason returns why event needs no processing, or "".
func skipReason(event model.RawEvent) string {
	entity := event.Target()
	switch {
	case entity == nil:
		return reasonNoEntity
	case entity.Body == "" || entity.HTMLURL == "":
		return reasonNoBody
	case event.Action == model.ActionEdited:
		if event.Changes == nil || event.Changes.Body == nil {
			return reasonNoBodyChange
		}
		return ""
	case !processedActions[event.Action]:
		return reasonAction
	}
	return ""
}

// messages holds the rendered comment for plain and controlled references.
type messages struct {
	plain      string
	controlled string
}

func (m messages) forReference(ref tasklink.TaskReference) string {
	if ref.Controlled() {
		return m.controlled
	}
	return m.plain
}

func (uc *usecase) render(ec model.EventContext, body string, needPlain, needControlled bool) (messages, error) {
	var msgs messages
	var err error

	if needPlain {
		msgs.plain, err = uc.renderer.Render(notify.RenderInput{Event: ec, Body: body})
		if err != nil {
			return messages{}, fmt.Errorf("%w: %v", ErrRenderMessage, err)
		}
	}
	if needControlled {
		msgs.controlled, err = uc.renderer.Render(notify.RenderInput{Event: ec, Body: body, Controlled: true})
		if err != nil {
			return messages{}, fmt.Errorf("%w: %v", ErrRenderMessage, err)
		}
	}
	return msgs, nil
}

// acknowledge reacts on the triggering comment once at least one task synced.
func (uc *usecase) acknowledge(ctx context.Context, ec model.EventContext, report Report) {
	if uc.source == nil || uc.cfg.AckReaction == "" || !ec.IsComment || ec.APIURL == "" {
		return
	}
	if report.Succeeded() == 0 {
		return
	}

	if _, err := uc.source.AddReaction(ctx, ec.APIURL, uc.cfg.AckReaction); err != nil {
		uc.l.Warnf(ctx, "backlink: failed to add %q reaction to %s: %v", uc.cfg.AckReaction, ec.TargetURL, err)
		uc.logDetails(ctx, err)
	}
}
