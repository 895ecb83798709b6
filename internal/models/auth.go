package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RegisterRequest holds the fields required to create a local account.
type RegisterRequest struct {
	Name     string   `json:"name" validate:"required,max=120"`
	Email    string   `json:"email" validate:"required,email,max=254"`
	Password string   `json:"password" validate:"required,max=72"`
	Role     UserRole `json:"role" validate:"required,oneof=user admin"`
}

// SignupRequest is the reduced registration payload used by /auth/signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is returned after a successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      UserInfo
}

// Session mirrors the session object handed out by hosted identity
// providers so existing clients can read either shape.
type Session struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   int64  `json:"expires_at"`
}

// Session returns the bearer session view of r.
func (r *LoginResult) Session() Session {
	return Session{
		AccessToken: r.Token,
		TokenType:   "bearer",
		ExpiresAt:   r.ExpiresAt.Unix(),
	}
}

// Identity is the verified caller attached to a request.
type Identity struct {
	SubjectID string    `json:"id"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	ExpiresAt time.Time `json:"exp"`
}

// IsAdmin reports whether the identity carries the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// JWTClaims is the payload of locally issued access tokens. The subject
// claim carries the user id.
type JWTClaims struct {
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
	jwt.RegisteredClaims
}
