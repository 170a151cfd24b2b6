package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"contacts/internal/domain/entity"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/domain/repository"
	mockRepo "contacts/internal/mocks/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDirectory(t *testing.T) (repository.UserDirectory, *mockRepo.MockUserRepository, *mockRepo.MockUserCache) {
	userRepo := mockRepo.NewMockUserRepository(t)
	userCache := mockRepo.NewMockUserCache(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewUserDirectory(userRepo, userCache, logger), userRepo, userCache
}

func testUser(email string) *entity.User {
	return &entity.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Test User",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
	}
}

func TestUserDirectory_Lookup_CacheHit(t *testing.T) {
	directory, _, userCache := newTestDirectory(t)

	ctx := context.Background()
	cached := testUser("hit@example.com")

	userCache.EXPECT().Get(ctx, "hit@example.com").Return(cached, nil)

	user, err := directory.Lookup(ctx, "hit@example.com")

	require.NoError(t, err)
	assert.Equal(t, cached, user)
}

func TestUserDirectory_Lookup_CacheMissPopulatesCache(t *testing.T) {
	directory, userRepo, userCache := newTestDirectory(t)

	ctx := context.Background()
	stored := testUser("miss@example.com")

	userCache.EXPECT().Get(ctx, "miss@example.com").Return(nil, repository.ErrCacheMiss)
	userRepo.EXPECT().FindByEmail(ctx, "miss@example.com").Return(stored, nil)
	userCache.EXPECT().Set(ctx, stored).Return(nil)

	user, err := directory.Lookup(ctx, "miss@example.com")

	require.NoError(t, err)
	assert.Equal(t, stored, user)
}

func TestUserDirectory_Lookup_UnknownUserNotCached(t *testing.T) {
	directory, userRepo, userCache := newTestDirectory(t)

	ctx := context.Background()

	userCache.EXPECT().Get(ctx, "nobody@example.com").Return(nil, repository.ErrCacheMiss)
	userRepo.EXPECT().FindByEmail(ctx, "nobody@example.com").Return(nil, repository.ErrUserNotFound)

	user, err := directory.Lookup(ctx, "nobody@example.com")

	assert.Nil(t, user)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	userCache.AssertNotCalled(t, "Set")
}

func TestUserDirectory_Lookup_StoreFailureIsUnavailable(t *testing.T) {
	directory, userRepo, userCache := newTestDirectory(t)

	ctx := context.Background()

	userCache.EXPECT().Get(ctx, "down@example.com").Return(nil, repository.ErrCacheMiss)
	userRepo.EXPECT().FindByEmail(ctx, "down@example.com").Return(nil, errors.New("connection refused"))

	user, err := directory.Lookup(ctx, "down@example.com")

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domainerrors.ErrDirectoryUnavailable)
}

func TestUserDirectory_Lookup_BrokenCacheDegradesToRepo(t *testing.T) {
	directory, userRepo, userCache := newTestDirectory(t)

	ctx := context.Background()
	stored := testUser("degraded@example.com")

	userCache.EXPECT().Get(ctx, "degraded@example.com").Return(nil, errors.New("redis unreachable"))
	userRepo.EXPECT().FindByEmail(ctx, "degraded@example.com").Return(stored, nil)
	userCache.EXPECT().Set(ctx, stored).Return(errors.New("redis unreachable"))

	user, err := directory.Lookup(ctx, "degraded@example.com")

	// A broken cache must never fail a lookup the database can serve.
	require.NoError(t, err)
	assert.Equal(t, stored, user)
}
