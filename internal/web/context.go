package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/teistermask/internal/core"
)

// withRequestMetadata tags the context with the import source and client IP
// for the import logs.
func withRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	ctx = core.ContextWithSource(ctx, "http")
	ctx = core.ContextWithClientIP(ctx, r.RemoteAddr) // already processed by TrustedRealIP
	return ctx
}
