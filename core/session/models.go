package session

// UserMetadata holds the authorization flags the identity backend attaches
// to a user. Absent keys unmarshal to false.
type UserMetadata struct {
	IsAdmin bool `json:"isAdmin"`
	IsPaid  bool `json:"isPaid"`
}

// User is the identity record carried by a Session. It is supplied by the
// identity backend and read-only to consumers.
type User struct {
	ID       string       `json:"id"`
	Email    string       `json:"email,omitempty"`
	Metadata UserMetadata `json:"user_metadata"`
}

// Session is the local record of a signed-in identity.
// Exactly one Session is live per process; it is owned by the Store and
// replaced wholesale on every update, never mutated in place.
type Session struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Role is the authorization tier derived from session metadata.
type Role int

const (
	RoleAnonymous Role = iota
	RoleAuthenticated
	RoleEntitled
	RoleAdmin
)

var roleNames = map[Role]string{
	RoleAnonymous:     "anonymous",
	RoleAuthenticated: "authenticated",
	RoleEntitled:      "entitled",
	RoleAdmin:         "admin",
}

func (r Role) String() string {
	return roleNames[r]
}

// Entitled reports whether the role grants access to premium content.
// Admin always implies entitlement.
func (r Role) Entitled() bool {
	return r >= RoleEntitled
}

// DeriveRole maps a session to its authorization Role.
// It is a pure function of the session passed at call time: the result is
// never cached so a replaced session can not leak a stale role.
func DeriveRole(sess *Session) Role {
	if sess == nil || sess.User == nil {
		return RoleAnonymous
	}
	switch md := sess.User.Metadata; {
	case md.IsAdmin:
		return RoleAdmin
	case md.IsPaid:
		return RoleEntitled
	default:
		return RoleAuthenticated
	}
}
