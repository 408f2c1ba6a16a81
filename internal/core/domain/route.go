package domain

// Route identifies a navigation target inside the client. The guard and the
// gateway's forced-logout hook speak in these values; rendering is the
// console's concern.
type Route string

const (
	RouteLogin        Route = "/login"
	RouteDefault      Route = "/"
	RouteAdminHome    Route = "/admin/home"
	RouteCustomerHome Route = "/user/home"
)

// LandingRoute returns the post-login destination for a role.
func LandingRoute(role string) Route {
	if role == RoleAdmin {
		return RouteAdminHome
	}
	return RouteCustomerHome
}
