package auth

import (
	"context"

	"github.com/tteslee/fundamental/internal"
)

// Provider resolves a bearer credential to an identity. There is no
// fallback identity: a credential that does not resolve is an
// authentication failure.
type Provider interface {
	ValidateTokenLocal(token string) (*internal.User, error)
	ValidateTokenRemote(ctx context.Context, token string) (*internal.User, error)
}
