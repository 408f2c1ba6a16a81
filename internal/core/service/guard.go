package service

import "github.com/parkease/parking-console/internal/core/domain"

// Decision is the guard's verdict for one navigation attempt.
type Decision int

const (
	// Unauthenticated: no session, redirect to the login entry point.
	Unauthenticated Decision = iota
	// AuthorizedForRoute: render the guarded view.
	AuthorizedForRoute
	// AuthorizedWrongRole: authenticated but outside the allowed subtree,
	// redirect to the default landing route, not to login.
	AuthorizedWrongRole
)

// Evaluate decides whether a session may enter a route guarded by
// allowedRoles. An empty allowedRoles set means any authenticated role.
// The evaluation is pure and holds no state: re-running it with unchanged
// inputs yields the same verdict.
func Evaluate(session *domain.Session, allowedRoles []string) (Decision, domain.Route) {
	if !session.Authenticated() {
		return Unauthenticated, domain.RouteLogin
	}
	if len(allowedRoles) == 0 {
		return AuthorizedForRoute, ""
	}
	for _, role := range allowedRoles {
		if session.User.Role == role {
			return AuthorizedForRoute, ""
		}
	}
	return AuthorizedWrongRole, domain.RouteDefault
}
