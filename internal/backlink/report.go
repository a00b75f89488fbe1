package backlink

import (
	"context"
	"errors"

	"github-asana-bridge/internal/model"
)

// detailer is implemented by remote API errors that carry structured detail.
type detailer interface {
	Details() []string
}

// logReport logs the outcome of every dispatch once all of them settled.
func (uc *usecase) logReport(ctx context.Context, ec model.EventContext, report Report) {
	for _, res := range report.Results {
		if !res.OK() {
			uc.l.Errorf(ctx, "backlink: task %s (controlled=%t) failed at %s for %s: %v",
				res.TaskID, res.Controlled, res.Stage, ec.TargetURL, res.Err)
			uc.logDetails(ctx, res.Err)
			continue
		}

		if res.Moved {
			uc.l.Infof(ctx, "backlink: task %s commented and moved to project %s section %q",
				res.TaskID, res.Project, res.Section)
			continue
		}
		uc.l.Infof(ctx, "backlink: task %s commented (controlled=%t)", res.TaskID, res.Controlled)
	}

	uc.l.Infof(ctx, "backlink: %s %s synced %d/%d task(s)",
		ec.TargetURL, ec.EffectiveAction, report.Succeeded(), len(report.Results))
}

func (uc *usecase) logDetails(ctx context.Context, err error) {
	var d detailer
	if !errors.As(err, &d) {
		return
	}
	for _, detail := range d.Details() {
		uc.l.Warnf(ctx, "backlink:   %s", detail)
	}
}
