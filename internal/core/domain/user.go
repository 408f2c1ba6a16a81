package domain

const (
	RoleAdmin    = "ADMIN"
	RoleCustomer = "CUSTOMER"
)

// User models an account as the backend reports it. The canonical wire field
// for the role is "role"; the legacy "userType" variant is not supported.
type User struct {
	ID          int64  `json:"id"`
	FullName    string `json:"fullName,omitempty"`
	Username    string `json:"username"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Role        string `json:"role"`
}

// Session is the authenticated principal held in client storage: the user
// profile plus the opaque credential token. Stores persist it as a single
// record, so a token without a profile cannot be observed.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Authenticated reports whether the session carries a credential token.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

// IsAdmin reports whether the session belongs to an administrator.
func (s *Session) IsAdmin() bool {
	return s != nil && s.User.Role == RoleAdmin
}
