package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/parkease/parking-console/internal/core/domain"
	"github.com/parkease/parking-console/internal/core/ports"
)

// SessionService owns all session state transitions. It is the sole writer of
// the persisted store apart from the gateway's 401 handler, and it performs no
// navigation itself: operations return the route the caller should move to.
type SessionService struct {
	store  ports.SessionStore
	auth   ports.AuthAPI
	logger zerolog.Logger
}

func NewSessionService(store ports.SessionStore, auth ports.AuthAPI, logger zerolog.Logger) *SessionService {
	return &SessionService{store: store, auth: auth, logger: logger}
}

// Login authenticates against the backend and persists the session. On any
// failure the previously persisted session is left untouched.
func (s *SessionService) Login(ctx context.Context, creds ports.Credentials) (*domain.Session, error) {
	if err := CheckInput(creds); err != nil {
		return nil, err
	}

	res, err := s.auth.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, domain.ErrTokenMissing
	}

	session := domain.Session{User: res.User, Token: res.Token}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("username", session.User.Username).
		Str("role", session.User.Role).
		Msg("logged in")

	return &session, nil
}

// Register creates an account and persists the resulting session, with the
// same persistence contract as Login. Input is validated before dispatch.
func (s *SessionService) Register(ctx context.Context, reg ports.Registration) (*domain.Session, error) {
	if err := CheckInput(reg); err != nil {
		return nil, err
	}

	res, err := s.auth.Register(ctx, reg)
	if err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, domain.ErrTokenMissing
	}

	session := domain.Session{User: res.User, Token: res.Token}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("username", session.User.Username).
		Str("role", session.User.Role).
		Msg("registered")

	return &session, nil
}

// Logout clears the persisted session and returns the route the caller
// should navigate to. It does not navigate itself.
func (s *SessionService) Logout(ctx context.Context) (domain.Route, error) {
	if err := s.store.Clear(ctx); err != nil {
		return domain.RouteLogin, err
	}
	s.logger.Info().Msg("logged out")
	return domain.RouteLogin, nil
}

// Current returns the persisted session, or nil when none exists or the
// stored record cannot be read. Never propagates a deserialization failure.
func (s *SessionService) Current(ctx context.Context) *domain.Session {
	session, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("session store unreadable")
		return nil
	}
	return session
}

// Authenticated reports whether a credential token is currently persisted.
// Store writes are atomic, so this cannot disagree with profile presence.
func (s *SessionService) Authenticated(ctx context.Context) bool {
	return s.Current(ctx).Authenticated()
}

// HasRole reports whether the persisted user holds the given role.
func (s *SessionService) HasRole(ctx context.Context, role string) bool {
	session := s.Current(ctx)
	return session != nil && session.User.Role == role
}
