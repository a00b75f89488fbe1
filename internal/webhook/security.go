package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// SignatureValidator checks X-Hub-Signature-256 against the shared secret.
type SignatureValidator struct {
	secret []byte
}

func NewSignatureValidator(secret string) *SignatureValidator {
	return &SignatureValidator{secret: []byte(secret)}
}

// Enabled reports whether a secret is configured.
func (v *SignatureValidator) Enabled() bool {
	return len(v.secret) > 0
}

// Validate verifies the GitHub signature of payload. It always succeeds when
// no secret is configured.
func (v *SignatureValidator) Validate(payload []byte, signature string) error {
	if !v.Enabled() {
		return nil
	}

	// GitHub sends signature as "sha256=<hex>"
	hexSig, ok := strings.CutPrefix(signature, "sha256=")
	if !ok {
		return fmt.Errorf("%w: missing sha256 prefix", ErrInvalidSignature)
	}

	expected, err := hex.DecodeString(hexSig)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write(payload)

	if !hmac.Equal(expected, mac.Sum(nil)) {
		return ErrInvalidSignature
	}
	return nil
}

// deliveryCache remembers recently processed delivery ids.
type deliveryCache struct {
	mu   sync.Mutex
	seen *expirable.LRU[string, time.Time]
}

func newDeliveryCache(size int, ttl time.Duration) *deliveryCache {
	if size <= 0 {
		return nil
	}
	return &deliveryCache{
		seen: expirable.NewLRU[string, time.Time](size, nil, ttl),
	}
}

// Claim records id and reports whether it was new.
func (d *deliveryCache) Claim(id string) bool {
	if d == nil || id == "" {
		return true
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.seen.Contains(id) {
		return false
	}
	d.seen.Add(id, time.Now())
	return true
}

// Release forgets id so a redelivery is processed again.
func (d *deliveryCache) Release(id string) {
	if d == nil || id == "" {
		return
	}
	d.seen.Remove(id)
}
