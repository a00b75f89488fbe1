package webhook

import (
	"time"

	"github-asana-bridge/internal/backlink"
	pkgLog "github-asana-bridge/pkg/log"
)

type Handler struct {
	backlinkUC backlink.UseCase
	validator  *SignatureValidator
	deliveries *deliveryCache

	processTimeout time.Duration
	l              pkgLog.Logger
}

func NewHandler(
	backlinkUC backlink.UseCase,
	cfg Config,
	l pkgLog.Logger,
) *Handler {
	if cfg.ProcessTimeout <= 0 {
		cfg.ProcessTimeout = DefaultProcessTimeout
	}

	return &Handler{
		backlinkUC: backlinkUC,
		validator:  NewSignatureValidator(cfg.Secret),
		deliveries: newDeliveryCache(cfg.DedupSize, cfg.DedupTTL),

		processTimeout: cfg.ProcessTimeout,
		l:              l,
	}
}
