package app

import "context"

type ctxKey struct{}

// NewContext returns a copy of ctx carrying the application container, for
// handing dependencies to command handlers without globals.
func NewContext(ctx context.Context, a *App) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// FromContext returns the App carried by ctx, or nil when none was attached.
func FromContext(ctx context.Context) *App {
	a, _ := ctx.Value(ctxKey{}).(*App)
	return a
}
