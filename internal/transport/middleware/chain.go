// Package middleware holds the net/http middleware used by the lookup server.
package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// Middleware is a function that wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain applies middleware so that the first one given is the outermost:
// Chain(a, b)(h) serves as a(b(h)).
func Chain(mws ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			final = mws[i](final)
		}
		return final
	}
}

// Server is the stack every lookup server request passes through. The request
// ID is assigned first so the access log and panic reports carry it, and the
// lookup timeout only bounds the handler itself.
func Server(logger *slog.Logger, lookupTimeout time.Duration) Middleware {
	return Chain(
		RequestID(),
		Logger(logger),
		Recovery(logger),
		Timeout(lookupTimeout),
	)
}
