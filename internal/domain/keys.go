package domain

import "context"

type CtxKey string

const (
	KeyRequestID CtxKey = "RequestID"
	KeyClientIP  CtxKey = "ClientIP"
)

// StringFromContext reads a string value stored under key, or ""
func StringFromContext(ctx context.Context, key CtxKey) string {
	v, _ := ctx.Value(key).(string)
	return v
}
