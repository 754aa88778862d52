package primary

import (
	"context"
	"time"
)

// TokenService issues and checks the bearer tokens guarding the submission routes
type TokenService interface {
	GenerateTokenHMAC(ctx context.Context, subject string, ttl time.Duration) (string, error)
	VerifyTokenHMAC(ctx context.Context, token string) (subject string, err error)
}
