package webhook

import "errors"

var (
	ErrNoBody           = errors.New("No request body")
	ErrInvalidPayload   = errors.New("invalid webhook payload")
	ErrInvalidSignature = errors.New("invalid webhook signature")
)
