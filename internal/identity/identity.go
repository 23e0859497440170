package identity

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Claims is the subset of the identity provider's token this service acts
// on. Subject is the business ID.
type Claims struct {
	Subject   snowflake.ID
	Email     string
	ExpiresAt time.Time
}

// Verifier checks a bearer token issued by the external identity provider.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

var (
	ErrMissingToken = errors.New("missing_token")
	ErrInvalidToken = errors.New("invalid_token")
	ErrTokenExpired = errors.New("token_expired")
)
