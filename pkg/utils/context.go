package utils

import (
	"context"

	"github.com/C4ndyFl4mes/dt207g-project/pkg/token"
)

type contextKey string

const identityKey contextKey = "identity"

// SetIdentity stores the verified identity for downstream handlers.
func SetIdentity(ctx context.Context, identity *token.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentity retrieves the verified identity set by the authorization
// gate. The second return is false when the request never passed it.
func GetIdentity(ctx context.Context) (*token.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*token.Identity)
	if !ok || identity == nil {
		return nil, false
	}
	return identity, true
}
