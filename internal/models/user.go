package models

type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Admin        bool   `json:"admin"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token,omitempty"`
}

// UserProfile is the payload of GET /api/users/{id} and /api/users/me:
// the user together with everything they sell and everything they bid on.
type UserProfile struct {
	User     *User      `json:"user"`
	Products []*Product `json:"products"`
	Bids     []*Bid     `json:"bids"`
}
