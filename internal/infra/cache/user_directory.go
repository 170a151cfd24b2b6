package cache

import (
	"context"
	"log/slog"

	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/domain/repository"
	"contacts/internal/errors"

	"contacts/internal/domain/entity"
)

// cachedUserDirectory is the read-through lookup path for accounts: the cache
// is consulted first, a miss falls through to the system of record and the
// fresh row is written back. Writes never pass through here and never
// invalidate, so a lookup may observe a snapshot up to one TTL old.
type cachedUserDirectory struct {
	users  repository.UserRepository
	cache  repository.UserCache
	logger *slog.Logger
}

// NewUserDirectory is the constructor for cachedUserDirectory.
func NewUserDirectory(users repository.UserRepository, userCache repository.UserCache, logger *slog.Logger) repository.UserDirectory {
	return &cachedUserDirectory{
		users:  users,
		cache:  userCache,
		logger: logger,
	}
}

// Lookup resolves an account by email.
func (d *cachedUserDirectory) Lookup(ctx context.Context, email string) (*entity.User, error) {
	user, err := d.cache.Get(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrCacheMiss) {
		// A broken cache degrades to a plain database read.
		d.logger.WarnContext(ctx, "user snapshot cache read failed",
			slog.String("email", email),
			slog.Any("error", err),
		)
	}

	user, err = d.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		// Negative results are never cached.
		return nil, repository.ErrUserNotFound
	}
	if err != nil {
		d.logger.ErrorContext(ctx, "user lookup against system of record failed",
			slog.String("email", email),
			slog.Any("error", err),
		)

		return nil, domainerrors.ErrDirectoryUnavailable.WrapMessage("failed to load user from system of record")
	}

	// Best-effort write-back; a failure here only costs the next reader a
	// database round-trip.
	if err := d.cache.Set(ctx, user); err != nil {
		d.logger.WarnContext(ctx, "user snapshot cache write failed",
			slog.String("email", email),
			slog.Any("error", err),
		)
	}

	return user, nil
}
