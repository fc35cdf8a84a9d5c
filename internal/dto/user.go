package dto

import (
	"time"

	"github.com/Diarra45/projet-Nan/internal/auth"
	dom "github.com/Diarra45/projet-Nan/internal/domain"
)

// Envelope is the uniform response shape: {message, data} on success,
// {message, error} on failure.
type Envelope struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RegisterRequest is the JSON body for POST /register.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the JSON body for POST /login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest is the JSON body for POST /refresh-token. The token is
// checked by the handler, not by binding: a missing token is 401, not 400.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// UserResponse is the public shape of a user.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User   UserResponse   `json:"user"`
	Tokens auth.TokenPair `json:"tokens"`
}

// ProfileResponse is returned by GET /profile.
type ProfileResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserToResponse maps a domain user.
func UserToResponse(u dom.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}

// IdentityToProfile maps a resolved identity.
func IdentityToProfile(i dom.Identity) ProfileResponse {
	return ProfileResponse{
		ID:        i.ID(),
		Email:     i.Email(),
		Username:  i.Username(),
		Role:      string(i.Role),
		CreatedAt: i.CreatedAt(),
	}
}
