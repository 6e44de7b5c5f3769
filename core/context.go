package core

import "context"

type ctxKey int

const suppressHeaderKey ctxKey = iota

// WithSuppressHeader marks the context so analysis skips the console
// header. Used by the MCP and HTTP surfaces where stdout is structured.
func WithSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// shouldSuppressHeader reports whether the console header is disabled.
func shouldSuppressHeader(ctx context.Context) bool {
	v, _ := ctx.Value(suppressHeaderKey).(bool)
	return v
}
