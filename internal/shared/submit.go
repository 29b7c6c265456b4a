package shared

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SubmitFormField carries the one-shot token in mutating forms.
const SubmitFormField = "submit_token"

// SubmitGuard hands out single-use tokens for mutating forms so a double
// click or a browser resubmit reaches the backend at most once.
type SubmitGuard struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewSubmitGuard constructs the guard.
func NewSubmitGuard(client redis.UniversalClient, ttl time.Duration) *SubmitGuard {
	return &SubmitGuard{client: client, ttl: ttl}
}

// Issue stores and returns a fresh token.
func (g *SubmitGuard) Issue(ctx context.Context) (string, error) {
	if g == nil {
		return "", errors.New("submit guard not initialised")
	}
	token := uuid.NewString()
	if err := g.client.Set(ctx, g.key(token), "1", g.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Consume spends token. It returns ErrAlreadySubmitted when the token is
// unknown, expired or already spent.
func (g *SubmitGuard) Consume(ctx context.Context, token string) error {
	if g == nil {
		return errors.New("submit guard not initialised")
	}
	if token == "" {
		return ErrAlreadySubmitted
	}
	removed, err := g.client.Del(ctx, g.key(token)).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrAlreadySubmitted
	}
	return nil
}

func (g *SubmitGuard) key(token string) string {
	return "hmc:submit:" + token
}
