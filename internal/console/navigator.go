package console

import (
	"sync"

	"github.com/parkease/parking-console/internal/core/domain"
)

// Navigator tracks the client's current route. It is the one piece of
// navigation state shared between the app and the gateway's 401 handler,
// which must know whether the user already sits on the login route.
type Navigator struct {
	mu    sync.Mutex
	route domain.Route
}

func NewNavigator() *Navigator {
	return &Navigator{route: domain.RouteLogin}
}

// Current returns the route the user is on.
func (n *Navigator) Current() domain.Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.route
}

// Go moves the user to a route.
func (n *Navigator) Go(route domain.Route) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.route = route
}
