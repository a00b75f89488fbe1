package backlink

import (
	"github-asana-bridge/internal/model"
	"github-asana-bridge/internal/notify"
	"github-asana-bridge/internal/tasklink"
	pkgLog "github-asana-bridge/pkg/log"
)

type usecase struct {
	grammar    *tasklink.Grammar
	renderer   notify.Renderer
	dispatcher *dispatcher
	source     SourcePlatform
	cfg        Config
	l          pkgLog.Logger
}

// New creates the backlink UseCase. source may be nil, which disables the
// acknowledgement reaction.
func New(
	grammar *tasklink.Grammar,
	renderer notify.Renderer,
	tracker TaskTracker,
	source SourcePlatform,
	cfg Config,
	l pkgLog.Logger,
) UseCase {
	if cfg.MoveOnActions == nil {
		cfg.MoveOnActions = DefaultMoveOnActions
	}

	moveOn := make(map[model.Action]bool, len(cfg.MoveOnActions))
	for _, a := range cfg.MoveOnActions {
		moveOn[a] = true
	}

	return &usecase{
		grammar:  grammar,
		renderer: renderer,
		dispatcher: &dispatcher{
			tracker: tracker,
			cfg:     cfg,
			moveOn:  moveOn,
		},
		source: source,
		cfg:    cfg,
		l:      l,
	}
}
