package cache

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"contacts/internal/domain/entity"
	"contacts/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ttlUserCache is an in-memory repository.UserCache with real expiry
// semantics driven by an injectable clock.
type ttlUserCache struct {
	mu      sync.Mutex
	entries map[string]ttlCacheEntry
	ttl     time.Duration
	now     func() time.Time
}

type ttlCacheEntry struct {
	user      entity.User
	expiresAt time.Time
}

func newTTLUserCache(ttl time.Duration, now func() time.Time) *ttlUserCache {
	return &ttlUserCache{
		entries: make(map[string]ttlCacheEntry),
		ttl:     ttl,
		now:     now,
	}
}

func (c *ttlUserCache) Get(_ context.Context, email string) (*entity.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[email]
	if !ok || !c.now().Before(entry.expiresAt) {
		return nil, repository.ErrCacheMiss
	}

	snapshot := entry.user

	return &snapshot, nil
}

func (c *ttlUserCache) Set(_ context.Context, user *entity.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[user.Email] = ttlCacheEntry{
		user:      *user,
		expiresAt: c.now().Add(c.ttl),
	}

	return nil
}

// userStore is a minimal in-memory system of record keyed by email.
type userStore struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newUserStore() *userStore {
	return &userStore{users: make(map[string]*entity.User)}
}

func (s *userStore) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.ID == id {
			snapshot := *user

			return &snapshot, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (s *userStore) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	snapshot := *user

	return &snapshot, nil
}

func (s *userStore) Create(_ context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *user
	s.users[user.Email] = &stored

	return nil
}

func (s *userStore) UpdateRefreshToken(_ context.Context, userID uuid.UUID, token *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.ID == userID {
			user.RefreshToken = token

			return nil
		}
	}

	return repository.ErrUserNotFound
}

func (s *userStore) MarkEmailVerified(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[email]
	if !ok {
		return repository.ErrUserNotFound
	}

	user.EmailVerified = true

	return nil
}

func (s *userStore) UpdateAvatar(_ context.Context, userID uuid.UUID, avatarURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.ID == userID {
			user.Avatar = &avatarURL

			return nil
		}
	}

	return repository.ErrUserNotFound
}

// A write to the system of record does not invalidate the snapshot cache.
// Readers keep seeing the stale snapshot until the TTL runs out, then the
// next lookup falls through and repopulates with the fresh row.
func TestUserDirectory_Lookup_StaleUntilTTLExpiry(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	clock := start
	now := func() time.Time { return clock }

	const ttl = time.Hour

	store := newUserStore()
	ttlCache := newTTLUserCache(ttl, now)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	directory := NewUserDirectory(store, ttlCache, logger)

	original := testUser("stale@example.com")
	original.EmailVerified = false
	require.NoError(t, store.Create(ctx, original))

	// First lookup populates the cache from the system of record.
	user, err := directory.Lookup(ctx, "stale@example.com")
	require.NoError(t, err)
	assert.False(t, user.EmailVerified)

	// Unmirrored write straight to the system of record.
	require.NoError(t, store.MarkEmailVerified(ctx, "stale@example.com"))

	// Inside the TTL window the stale snapshot is still served.
	clock = start.Add(ttl - time.Minute)
	user, err = directory.Lookup(ctx, "stale@example.com")
	require.NoError(t, err)
	assert.False(t, user.EmailVerified, "lookup inside the TTL window must serve the cached snapshot")

	// Past expiry the lookup self-corrects from the system of record.
	clock = start.Add(ttl)
	user, err = directory.Lookup(ctx, "stale@example.com")
	require.NoError(t, err)
	assert.True(t, user.EmailVerified, "lookup past the TTL must reload the fresh row")

	// The reload also repopulated the cache with the fresh snapshot.
	cached, err := ttlCache.Get(ctx, "stale@example.com")
	require.NoError(t, err)
	assert.True(t, cached.EmailVerified)
}
