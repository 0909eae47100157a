package auth

import "journal/internal/domain/models"

// JWTVerifier validates access tokens issued by the authentication provider.
type JWTVerifier interface {
	// VerifyToken returns the token's claims, or domain.ErrUnauthorized when the
	// token is malformed, expired, badly signed or not an authenticated user token.
	VerifyToken(tokenString string) (*models.SupabaseClaims, error)

	// Close releases resources held by the verifier.
	Close() error
}
