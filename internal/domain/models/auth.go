package models

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// ActorClaims represents the JWT claims issued by the platform identity provider.
type ActorClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	UserID               int    `json:"user_id"`
	Email                string `json:"email"`
	Role                 string `json:"role"`
}

// GetActorID returns the numeric actor id used to stamp created_by/updated_by.
// Falls back to the subject claim when the dedicated user_id claim is absent.
func (c *ActorClaims) GetActorID() (int, bool) {
	if c.UserID > 0 {
		return c.UserID, true
	}
	id, err := strconv.Atoi(c.Subject)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
