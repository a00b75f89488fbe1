package webhook

import "time"

// Config holds webhook delivery settings.
type Config struct {
	Secret    string        // shared secret for X-Hub-Signature-256; empty disables the check
	DedupSize int           // delivery ids remembered; 0 disables de-duplication
	DedupTTL  time.Duration // how long a delivery id is remembered

	ProcessTimeout time.Duration // upper bound for syncing one event; 0 uses DefaultProcessTimeout
}

// DefaultProcessTimeout bounds an event's syncs once the request is detached.
const DefaultProcessTimeout = 2 * time.Minute

const (
	headerSignature = "X-Hub-Signature-256"
	headerDelivery  = "X-GitHub-Delivery"
	headerEvent     = "X-GitHub-Event"

	formPayloadKey = "payload"
)
