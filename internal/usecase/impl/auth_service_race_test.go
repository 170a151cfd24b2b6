package impl

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"contacts/internal/domain/entity"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/domain/repository"
	"contacts/internal/domain/service"
	mockRepo "contacts/internal/mocks/repository"
	mockSvc "contacts/internal/mocks/service"
	"contacts/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memoryUserRepo is a minimal thread-safe single-user repository used to
// exercise real interleavings of the refresh-token slot.
type memoryUserRepo struct {
	mu   sync.Mutex
	user entity.User
}

func (r *memoryUserRepo) snapshot() *entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := r.user
	if r.user.RefreshToken != nil {
		token := *r.user.RefreshToken
		copied.RefreshToken = &token
	}

	return &copied
}

func (r *memoryUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if id != r.user.ID {
		return nil, repository.ErrUserNotFound
	}

	return r.snapshot(), nil
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if email != r.user.Email {
		return nil, repository.ErrUserNotFound
	}

	return r.snapshot(), nil
}

func (r *memoryUserRepo) Create(_ context.Context, _ *entity.User) error {
	return domainerrors.ErrAccountExists
}

func (r *memoryUserRepo) UpdateRefreshToken(_ context.Context, userID uuid.UUID, token *string) error {
	if userID != r.user.ID {
		return repository.ErrUserNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if token == nil {
		r.user.RefreshToken = nil
	} else {
		copied := *token
		r.user.RefreshToken = &copied
	}

	return nil
}

func (r *memoryUserRepo) MarkEmailVerified(_ context.Context, email string) error {
	if email != r.user.Email {
		return repository.ErrUserNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.user.EmailVerified = true

	return nil
}

func (r *memoryUserRepo) UpdateAvatar(_ context.Context, userID uuid.UUID, avatarURL string) error {
	if userID != r.user.ID {
		return repository.ErrUserNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.user.Avatar = &avatarURL

	return nil
}

// sequenceTokenService issues unique token strings and decodes any token it
// issued back to the fixed subject.
type sequenceTokenService struct {
	mu      sync.Mutex
	subject string
	counter int
	issued  map[string]bool
}

func newSequenceTokenService(subject string) *sequenceTokenService {
	return &sequenceTokenService{
		subject: subject,
		issued:  map[string]bool{},
	}
}

func (s *sequenceTokenService) GenerateTokenPair(subject string) (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counter++
	access := fmt.Sprintf("access-%d", s.counter)
	refresh := fmt.Sprintf("refresh-%d", s.counter)
	s.issued[access] = true
	s.issued[refresh] = true

	return access, refresh, nil
}

func (s *sequenceTokenService) Decode(token string, _ service.TokenScope) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.issued[token] {
		return "", domainerrors.ErrInvalidToken
	}

	return s.subject, nil
}

func (s *sequenceTokenService) RefreshTokenTTL() time.Duration {
	return 7 * 24 * time.Hour
}

func TestAuthService_ConcurrentLogins_SingleSlotLastWriterWins(t *testing.T) {
	const logins = 16

	repo := &memoryUserRepo{
		user: entity.User{
			ID:           uuid.New(),
			Email:        "race@example.com",
			Name:         "Race User",
			PasswordHash: "stored_hash",
		},
	}
	tokenService := newSequenceTokenService(repo.user.Email)

	hasher := mockSvc.NewMockPasswordHasher(t)
	hasher.EXPECT().Check("Password123!", "stored_hash").Return(true).Times(logins)

	directory := mockRepo.NewMockUserDirectory(t)
	directory.EXPECT().
		Lookup(mock.Anything, repo.user.Email).
		RunAndReturn(func(ctx context.Context, email string) (*entity.User, error) {
			return repo.FindByEmail(ctx, email)
		})

	svc := NewAuthService(AuthServiceParams{
		TxManager:    mockRepo.NewMockTransactionManager(t),
		UserRepo:     repo,
		Directory:    directory,
		Hasher:       hasher,
		TokenService: tokenService,
		Mailer:       mockSvc.NewMockMailer(t),
		Config:       newTestConfig(),
		Logger:       newDiscardLogger(),
	})

	ctx := context.Background()
	outputs := make([]*usecase.TokenPairOutput, logins)

	var wg sync.WaitGroup
	for i := range logins {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			output, err := svc.Login(ctx, &usecase.LoginInput{
				Email:    repo.user.Email,
				Password: "Password123!",
			})
			// require must not be used off the test goroutine.
			if assert.NoError(t, err) {
				outputs[idx] = output
			}
		}(i)
	}
	wg.Wait()

	for _, output := range outputs {
		require.NotNil(t, output)
	}

	// Exactly one login owns the slot afterwards.
	stored := repo.snapshot().RefreshToken
	require.NotNil(t, stored)

	var winner, loser, winnerAccess, loserAccess string
	for _, output := range outputs {
		if output.RefreshToken == *stored {
			winner = output.RefreshToken
			winnerAccess = output.AccessToken
		} else {
			loser = output.RefreshToken
			loserAccess = output.AccessToken
		}
	}
	require.NotEmpty(t, winner, "stored refresh token must come from one of the logins")
	require.NotEmpty(t, loser)

	// A superseded token is reuse and closes the session entirely.
	_, err := svc.RefreshTokenPair(ctx, &usecase.RefreshInput{RefreshToken: loser})
	assert.ErrorIs(t, err, domainerrors.ErrTokenReuse)
	assert.Nil(t, repo.snapshot().RefreshToken)

	// After the slot is cleared even the former winner is dead.
	_, err = svc.RefreshTokenPair(ctx, &usecase.RefreshInput{RefreshToken: winner})
	assert.ErrorIs(t, err, domainerrors.ErrTokenReuse)

	// Closing the session only kills the refresh slot. Access tokens live on
	// until their own expiry, so both sessions' access tokens still resolve.
	user, err := svc.ResolveCurrentUser(ctx, loserAccess)
	require.NoError(t, err)
	assert.Equal(t, repo.user.Email, user.Email)

	user, err = svc.ResolveCurrentUser(ctx, winnerAccess)
	require.NoError(t, err)
	assert.Equal(t, repo.user.Email, user.Email)
}
