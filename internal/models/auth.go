package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Login statuses reported by the auth endpoint.
const (
	LoginStatusSuccess = "success"
	LoginStatusError   = "error"
)

// LoginRequest holds operator credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is the auth endpoint response.
type LoginResult struct {
	Status  string `json:"status"`
	User    *User  `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
}

// Succeeded reports whether the login carried a user.
func (r LoginResult) Succeeded() bool {
	return r.Status == LoginStatusSuccess && r.User != nil
}

// Session is the persisted operator session.
type Session struct {
	ID        string    `json:"id"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionClaims is the JWT payload handed to the operator UI.
type SessionClaims struct {
	SessionID string `json:"sid"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	jwt.RegisteredClaims
}
