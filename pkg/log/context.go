package log

import "context"

type contextKey string

const deliveryIDKey contextKey = "delivery_id"

// WithDeliveryID attaches a webhook delivery id to ctx. Every line logged with
// the returned context carries it as the delivery_id field.
func WithDeliveryID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, deliveryIDKey, id)
}

// DeliveryID returns the delivery id stored in ctx, if any.
func DeliveryID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(deliveryIDKey).(string)
	return id
}
