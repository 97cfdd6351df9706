// Package auth provides the stateless pieces of authentication: the
// signed session token codec and the password hashing primitives.
// Nothing here touches storage; tokens are verified purely from their
// signature and embedded claims.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenService defines operations for issuing and verifying the signed
// bearer tokens that identify a user across requests.
type TokenService interface {
	// GenerateToken creates a signed token carrying the user's identity.
	// Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken verifies the provided token string and extracts the
	// claims. Returns ErrExpiredToken for a stale token and
	// ErrInvalidToken for everything else that is wrong with it.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the verified identity extracted from a valid token.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID

	// Standard registered JWT claims
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
