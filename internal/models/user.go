package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// User is a stored credential record. HashPassword is the encoded KDF output,
// never the cleartext, and Salt is fixed at signup.
type User struct {
	ID           int64  `db:"user_id"`
	Username     string `db:"username"`
	Salt         string `db:"salt"`
	HashPassword string `db:"hash_password"`
}

// Claims defines the structure of the JWT claims carried in the session cookie.
type Claims struct {
	Username string `json:"username"`
	UserID   int64  `json:"user_id"`
	jwt.RegisteredClaims
}

// Principal is the identity recovered from a verified session token.
type Principal struct {
	UserID   int64
	Username string
}
