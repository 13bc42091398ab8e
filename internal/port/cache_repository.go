package port

import (
	"context"

	"github.com/rl1809/retail/internal/core/domain"
)

type SessionRepository interface {
	// SaveSession stores a session under token
	SaveSession(ctx context.Context, token string, session domain.Session) error

	// LoadSession returns the session for token, or nil if expired or unknown
	LoadSession(ctx context.Context, token string) (*domain.Session, error)

	// DeleteSession drops the session for token
	DeleteSession(ctx context.Context, token string) error
}

type IdempotencyRepository interface {
	// SetIdempotency sets a key for idempotency check, returns false if already exists
	SetIdempotency(ctx context.Context, key string) (bool, error)

	// ReleaseIdempotency frees a key whose request did not complete
	ReleaseIdempotency(ctx context.Context, key string) error
}

type CacheRepository interface {
	SessionRepository
	IdempotencyRepository
}
