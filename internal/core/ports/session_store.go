package ports

import (
	"context"

	"github.com/parkease/parking-console/internal/core/domain"
)

// SessionStore persists the current session across process restarts.
// The session service and the gateway's 401 handler are the only writers;
// presentation code never touches a store directly.
type SessionStore interface {
	// Load returns the persisted session, or nil when none is stored.
	// Implementations fail soft on corrupt data: nil, no error.
	Load(ctx context.Context) (*domain.Session, error)
	// Save persists profile and token as one atomic record.
	Save(ctx context.Context, session domain.Session) error
	// Clear removes any persisted session. Idempotent.
	Clear(ctx context.Context) error
}
