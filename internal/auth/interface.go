package auth

import "dms/internal/domain/models"

// JWTVerifier validates bearer tokens and returns the actor claims they carry.
type JWTVerifier interface {
	// VerifyToken validates a JWT token string and returns the parsed claims.
	// Returns an error if the token is invalid, expired, or has an invalid signature.
	VerifyToken(tokenString string) (*models.ActorClaims, error)

	// Close releases any resources held by the verifier.
	Close() error
}
