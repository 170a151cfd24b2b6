package cache

import (
	"context"
	"encoding/json"
	"time"

	"contacts/config"
	"contacts/internal/domain/entity"
	"contacts/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	userCacheKeyPrefix = "user:"

	defaultUserTTL   = time.Hour
	defaultOpTimeout = 250 * time.Millisecond
)

// redisUserCache implements repository.UserCache on Redis. Snapshots are JSON
// blobs written with SET+TTL; an entry is only ever replaced wholesale, never
// mutated, so concurrent readers need no locking.
type redisUserCache struct {
	client    *redis.Client
	ttl       time.Duration
	opTimeout time.Duration
}

// NewUserCache is the constructor for redisUserCache.
func NewUserCache(client *redis.Client, cfg *config.Config) repository.UserCache {
	ttl := defaultUserTTL
	opTimeout := defaultOpTimeout
	if cfg != nil && cfg.Redis != nil {
		if cfg.Redis.UserTTL > 0 {
			ttl = cfg.Redis.UserTTL
		}
		if cfg.Redis.OpTimeout > 0 {
			opTimeout = cfg.Redis.OpTimeout
		}
	}

	return &redisUserCache{
		client:    client,
		ttl:       ttl,
		opTimeout: opTimeout,
	}
}

// Get returns the cached snapshot for the email, or repository.ErrCacheMiss.
// Redis expiry makes absent and expired entries indistinguishable, which is
// exactly the semantics the directory wants.
func (c *redisUserCache) Get(ctx context.Context, email string) (*entity.User, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()

	payload, err := c.client.Get(ctx, userCacheKeyPrefix+email).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, repository.ErrCacheMiss
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read user snapshot from redis")
	}

	var snapshot cachedUser
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		// A corrupt snapshot is treated like a miss; the authoritative
		// record will repopulate it.
		return nil, repository.ErrCacheMiss
	}

	return snapshot.toEntity()
}

// Set stores a snapshot under the user's email with the configured TTL.
func (c *redisUserCache) Set(ctx context.Context, user *entity.User) error {
	payload, err := json.Marshal(snapshotOf(user))
	if err != nil {
		return errors.Wrap(err, "failed to marshal user snapshot")
	}

	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()

	if err := c.client.Set(ctx, userCacheKeyPrefix+user.Email, payload, c.ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to write user snapshot to redis")
	}

	return nil
}

// cachedUser mirrors entity.User for serialization. The entity hides
// PasswordHash and RefreshToken from JSON on purpose, but the snapshot must
// round-trip the full record, so the cache keeps its own wire shape.
type cachedUser struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	PasswordHash  string    `json:"password_hash"`
	Avatar        *string   `json:"avatar"`
	EmailVerified bool      `json:"email_verified"`
	RefreshToken  *string   `json:"refresh_token"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (c *cachedUser) toEntity() (*entity.User, error) {
	id, err := uuid.Parse(c.ID)
	if err != nil {
		return nil, repository.ErrCacheMiss
	}

	return &entity.User{
		ID:            id,
		Email:         c.Email,
		Name:          c.Name,
		PasswordHash:  c.PasswordHash,
		Avatar:        c.Avatar,
		EmailVerified: c.EmailVerified,
		RefreshToken:  c.RefreshToken,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}, nil
}

func snapshotOf(user *entity.User) *cachedUser {
	return &cachedUser{
		ID:            user.ID.String(),
		Email:         user.Email,
		Name:          user.Name,
		PasswordHash:  user.PasswordHash,
		Avatar:        user.Avatar,
		EmailVerified: user.EmailVerified,
		RefreshToken:  user.RefreshToken,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}
