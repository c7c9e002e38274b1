package core

import "context"

type contextKey string

const (
	ctxKeySource   contextKey = "import_source"
	ctxKeyClientIP contextKey = "client_ip"
)

// ContextWithSource records where a batch came from ("http", "cli", a file name).
func ContextWithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, ctxKeySource, source)
}

// ContextWithClientIP records the remote address of an HTTP caller.
func ContextWithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ctxKeyClientIP, ip)
}

// SourceFromContext extracts the batch source from context.
func SourceFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeySource).(string); ok {
		return v
	}
	return ""
}

// ClientIPFromContext extracts the client IP from context.
func ClientIPFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyClientIP).(string); ok {
		return v
	}
	return ""
}
