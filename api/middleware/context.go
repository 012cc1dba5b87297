package middleware

import "context"

type contextKey string

const (
	ctxToken     contextKey = "bearer_token"
	ctxRequestID contextKey = "request_id"
)

// TokenFromContext returns the caller's bearer token, empty when the request
// was unauthenticated.
func TokenFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxToken).(string); ok {
		return v
	}
	return ""
}

// WithToken injects the bearer token into the context.
func WithToken(ctx context.Context, token string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxToken, token)
}

// RequestIDFromContext returns the id assigned by the RequestID middleware,
// empty when it did not run.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRequestID).(string); ok {
		return v
	}
	return ""
}
