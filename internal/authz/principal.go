package authz

// Principal is the identity attached to a request. The zero value is the
// anonymous principal; an authenticated principal always has a non-empty ID.
type Principal struct {
	ID       string
	Username string
	Email    string
	Admin    bool
}

// Anonymous is the principal of an unauthenticated request.
var Anonymous = Principal{}

func (p Principal) Authenticated() bool {
	return p.ID != ""
}
