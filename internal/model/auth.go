package model

import "github.com/golang-jwt/jwt/v5"

// UserClaims are the JWT claims carried by a session token.
type UserClaims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Username string `json:"username"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}
