package domain

import "time"

const (
	RoleAdmin       = "admin"
	RoleEmploye     = "employe"
	RoleVeterinaire = "veterinaire"
)

// Role is a flat label attached to a user. There is no hierarchy or
// inheritance between roles.
type Role struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// User models an authenticated actor in the system.
type User struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name,omitempty"`
	PasswordHash       string    `json:"-"`
	Role               Role      `json:"role"`
	MustChangePassword bool      `json:"must_change_password,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ResetCode is one live password-recovery entry, keyed by email in the
// reset-code store. At most one entry exists per email; issuing a new code
// overwrites the previous one.
type ResetCode struct {
	Email    string    `json:"email"`
	Code     string    `json:"code"`
	IssuedAt time.Time `json:"issued_at"`
}

// TokenPair is the credential set handed out at login and refresh: a
// short-lived access token and a longer-lived refresh token, both signed
// with the same shared secret.
type TokenPair struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}
