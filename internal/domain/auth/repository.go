package auth

import (
	"context"
	"time"
)

type RefreshToken struct {
	UserID    string
	Token     string
	ExpiresAt time.Time
	Session   SessionTrackingRequest
}

// RefreshTokenRepository persists issued refresh tokens by hash so they can be revoked.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token RefreshToken) error
	// IsRevoked reports true for revoked or expired tokens and returns ErrInvalidToken for unknown ones.
	IsRevoked(ctx context.Context, token string) (bool, error)
	Revoke(ctx context.Context, token string) error
}
