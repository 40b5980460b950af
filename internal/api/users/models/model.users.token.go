// Package models - session token claims for the users domain.
package models

import "github.com/dgrijalva/jwt-go"

// SessionClaims is the payload encoded in a dashboard session JWT. Only the
// username is carried; role and factory access are looked up per request so
// a stale token cannot grant stale permissions.
type SessionClaims struct {
	Username string `json:"username"`
	jwt.StandardClaims
}
