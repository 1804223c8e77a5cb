// README: Redis-backed refresh-token allow-list so logout actually revokes.
package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/redis/go-redis/v9"

	"tripmaster/internal/types"
)

const refreshKeyPrefix = "auth:refresh:%s"

// SessionStore tracks issued refresh tokens. Only tokens present in the
// allow-list are accepted at refresh time; revoking deletes the entry.
// Tokens are stored hashed so a Redis dump never leaks usable credentials.
type SessionStore struct {
	redis *redis.Client
}

func NewSessionStore(redis *redis.Client) *SessionStore {
	return &SessionStore{redis: redis}
}

func (s *SessionStore) Save(ctx context.Context, userID types.ID, token string) error {
	return s.redis.Set(ctx, refreshKey(token), string(userID), RefreshTokenTTL).Err()
}

// Validate reports whether the token is still allow-listed for the user.
func (s *SessionStore) Validate(ctx context.Context, userID types.ID, token string) (bool, error) {
	val, err := s.redis.Get(ctx, refreshKey(token)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return val == string(userID), nil
}

func (s *SessionStore) Revoke(ctx context.Context, token string) error {
	return s.redis.Del(ctx, refreshKey(token)).Err()
}

func refreshKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return fmt.Sprintf(refreshKeyPrefix, hex.EncodeToString(sum[:]))
}
