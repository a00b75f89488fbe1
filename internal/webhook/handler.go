package webhook

import (
	"context"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github-asana-bridge/internal/backlink"
	pkgLog "github-asana-bridge/pkg/log"
	pkgResponse "github-asana-bridge/pkg/response"
)

// HandleGitHubWebhook processes a GitHub issue, pull request or comment event.
// @Summary GitHub webhook
// @Description Syncs Asana task references found in an issue, pull request or comment body.
// @Tags Webhook
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce plain
// @Param X-GitHub-Event header string false "GitHub event name"
// @Param X-GitHub-Delivery header string false "GitHub delivery id"
// @Param X-Hub-Signature-256 header string false "HMAC-SHA256 of the body"
// @Success 200 "Processed, skipped or duplicate delivery"
// @Failure 400 {string} string "Missing, unparseable or unsigned payload"
// @Failure 500 {string} string "Processing failed"
// @Router /webhook/github [post]
func (h *Handler) HandleGitHubWebhook(c *gin.Context) {
	deliveryID := c.GetHeader(headerDelivery)
	if deliveryID == "" {
		deliveryID = uuid.NewString()
	}
	ctx := pkgLog.WithDeliveryID(c.Request.Context(), deliveryID)

	reply := h.handle(ctx, c)
	reply.Write(c)
}

func (h *Handler) handle(ctx context.Context, c *gin.Context) pkgResponse.Reply {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.l.Errorf(ctx, "webhook: failed to read body: %v", err)
		return pkgResponse.BadRequest(ErrNoBody.Error())
	}

	if err := h.validator.Validate(body, c.GetHeader(headerSignature)); err != nil {
		h.l.Warnf(ctx, "webhook: signature verification failed: %v", err)
		return pkgResponse.BadRequest(ErrInvalidSignature.Error())
	}

	event, err := decodePayload(body, c.ContentType())
	if err != nil {
		h.l.Warnf(ctx, "webhook: rejected payload: %v", err)
		if errors.Is(err, ErrNoBody) {
			return pkgResponse.BadRequest(ErrNoBody.Error())
		}
		return pkgResponse.BadRequest(err.Error())
	}

	if !h.deliveries.Claim(c.GetHeader(headerDelivery)) {
		h.l.Infof(ctx, "webhook: duplicate delivery, skipping")
		return pkgResponse.Empty()
	}

	h.l.Debugf(ctx, "webhook: %s %s received", c.GetHeader(headerEvent), event.Action)

	// GitHub hanging up must not cancel syncs that are already claimed.
	processCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.processTimeout)
	defer cancel()

	out, err := h.backlinkUC.ProcessEvent(processCtx, backlink.ProcessEventInput{Event: event})
	if err != nil {
		h.l.Errorf(ctx, "webhook: processing failed: %v", err)
		h.deliveries.Release(c.GetHeader(headerDelivery))
		return pkgResponse.Internal(err)
	}

	if out.Skipped {
		h.l.Debugf(ctx, "webhook: nothing to sync: %s", out.Reason)
	}
	return pkgResponse.Empty()
}
