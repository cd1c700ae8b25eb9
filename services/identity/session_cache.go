package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"ghtour/models"

	"github.com/go-redis/redis/v8"
)

// AuthPrincipalPrefix namespaces cached sessions in the auth redis DB.
const AuthPrincipalPrefix = "authPrincipal:"

// RedisSessionCache stores verified principals keyed by a hash of the ID token,
// so raw tokens never land in redis.
type RedisSessionCache struct {
	client *redis.Client
}

func NewRedisSessionCache(client *redis.Client) *RedisSessionCache {
	return &RedisSessionCache{client: client}
}

func (c *RedisSessionCache) Get(ctx context.Context, idToken string) (*models.Principal, bool) {
	raw, err := c.client.Get(ctx, CacheKey(idToken)).Bytes()
	if err != nil {
		return nil, false
	}
	var p models.Principal
	if err := json.Unmarshal(raw, &p); err != nil || p.ID == "" {
		return nil, false
	}
	return &p, true
}

func (c *RedisSessionCache) Put(ctx context.Context, idToken string, principal *models.Principal, ttl time.Duration) error {
	raw, err := json.Marshal(principal)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, CacheKey(idToken), raw, ttl).Err()
}

func (c *RedisSessionCache) Delete(ctx context.Context, idToken string) error {
	return c.client.Del(ctx, CacheKey(idToken)).Err()
}

// CacheKey hashes an ID token into its redis key.
func CacheKey(idToken string) string {
	sum := sha256.Sum256([]byte(idToken))
	return AuthPrincipalPrefix + hex.EncodeToString(sum[:])
}
