package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"net/url"

	"github-asana-bridge/internal/model"
)

// decodePayload turns a delivery body into a RawEvent. The body is a JSON
// object, a JSON string holding the object, or a form with a payload field.
func decodePayload(body []byte, contentType string) (model.RawEvent, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return model.RawEvent{}, ErrNoBody
	}

	if isForm(contentType, body) {
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return model.RawEvent{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		body = bytes.TrimSpace([]byte(values.Get(formPayloadKey)))
		if len(body) == 0 {
			return model.RawEvent{}, ErrNoBody
		}
	}

	// Some relays deliver the payload as a JSON-encoded string.
	if body[0] == '"' {
		var inner string
		if err := json.Unmarshal(body, &inner); err != nil {
			return model.RawEvent{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		body = bytes.TrimSpace([]byte(inner))
		if len(body) == 0 {
			return model.RawEvent{}, ErrNoBody
		}
	}

	if bytes.Equal(body, []byte("null")) {
		return model.RawEvent{}, ErrNoBody
	}
	if body[0] != '{' {
		return model.RawEvent{}, fmt.Errorf("%w: expected a JSON object", ErrInvalidPayload)
	}

	var event model.RawEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return model.RawEvent{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return event, nil
}

func isForm(contentType string, body []byte) bool {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil && mediaType == "application/x-www-form-urlencoded" {
		return true
	}
	return bytes.HasPrefix(body, []byte(formPayloadKey+"="))
}
