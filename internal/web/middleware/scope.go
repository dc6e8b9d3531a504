package middleware

import (
	"context"

	"github.com/rfallows/campgrounds/internal/model"
)

type contextKey string

const scopeContextKey contextKey = "scope"

// Scope is the per-request pipeline state: one typed struct threaded
// through the middleware chain instead of loose context values.
// Middlewares populate fields; handlers read them.
type Scope struct {
	// Session is always present once the session middleware has run
	Session *model.Session
	// Identity is the resolved user, nil while anonymous
	Identity *model.Identity
	// Flash is the one-shot message popped for this response, if any
	Flash *model.Flash
	// Campground is the resource loaded by the ownership guard, so the
	// handler need not reload it
	Campground *model.Campground
	// Review is the resource loaded by the review-author guard
	Review *model.Review
}

// GetScope retrieves the request scope from the context.
// Returns an empty scope if the session middleware has not run.
func GetScope(ctx context.Context) *Scope {
	scope, _ := ctx.Value(scopeContextKey).(*Scope)
	if scope == nil {
		return &Scope{}
	}
	return scope
}

// withScope attaches a scope to the context
func withScope(ctx context.Context, scope *Scope) context.Context {
	return context.WithValue(ctx, scopeContextKey, scope)
}
