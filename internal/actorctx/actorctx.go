package actorctx

import (
	"context"

	"github.com/geocoder89/toolhub/internal/auth"
)

type ctxKey struct{}

// WithPrincipal attaches the authenticated caller to ctx so services can
// attribute writes without depending on the HTTP layer.
func WithPrincipal(ctx context.Context, p auth.Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

func PrincipalFrom(ctx context.Context) (auth.Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(auth.Principal)

	return p, ok && p.UserID != ""
}

// UserIDFrom is a shortcut for log attribution.
func UserIDFrom(ctx context.Context) (string, bool) {
	p, ok := PrincipalFrom(ctx)
	return p.UserID, ok
}
