// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"log/slog"
	"strings"
	"time"

	"contacts/config"
	deliverycontext "contacts/internal/delivery/context"
	"contacts/internal/domain/entity"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/domain/repository"
	"contacts/internal/domain/service"
	"contacts/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	tokenTypeBearer = "bearer"

	confirmMailSubject = "Confirm your email"
	confirmMailTimeout = 30 * time.Second
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager      repository.TransactionManager
	userRepo       repository.UserRepository
	directory      repository.UserDirectory
	hasher         service.PasswordHasher
	tokenService   service.TokenService
	mailer         service.Mailer
	confirmBaseURL string
	logger         *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Directory    repository.UserDirectory
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Mailer       service.Mailer
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	confirmBaseURL := ""
	if params.Config != nil && params.Config.Auth != nil {
		confirmBaseURL = strings.TrimRight(params.Config.Auth.ConfirmBaseURL, "/")
	}

	return &authService{
		txManager:      params.TxManager,
		userRepo:       params.UserRepo,
		directory:      params.Directory,
		hasher:         params.Hasher,
		tokenService:   params.TokenService,
		mailer:         params.Mailer,
		confirmBaseURL: confirmBaseURL,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup orchestrates the complete account registration process.
func (srv *authService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.SignupOutput, error) {
	srv.log(ctx).Info("Starting signup", slog.String("email", input.Email))

	// Hash the password outside the transaction (bcrypt is CPU-bound).
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during signup", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during signup")
	}

	avatar := gravatarURL(input.Email)
	newUser := &entity.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Avatar:       &avatar,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		_, findErr := userRepo.FindByEmail(ctx, input.Email)
		if findErr == nil {
			return domainerrors.ErrAccountExists.WrapMessage("signup rejected for registered email")
		}
		if !errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(findErr, "failed to check for existing account")
		}

		return userRepo.Create(ctx, newUser)
	})
	if err != nil {
		srv.log(ctx).Warn("Signup failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute signup transaction")
	}

	// Confirmation mail is fire-and-forget: delivery failure never fails the
	// signup, it only surfaces in the logs.
	go srv.sendConfirmationMail(newUser.Email, newUser.Name)

	srv.log(ctx).Debug("Signup completed", slog.Any("userID", newUser.ID))

	return &usecase.SignupOutput{User: newUser}, nil
}

func (srv *authService) sendConfirmationMail(email, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), confirmMailTimeout)
	defer cancel()

	link := srv.confirmBaseURL + "/api/auth/confirm_email/" + email
	body := "Hi " + name + ",\n\n" +
		"Please confirm your email address by opening the link below:\n\n" +
		link + "\n"

	if err := srv.mailer.Send(ctx, email, confirmMailSubject, body); err != nil {
		srv.logger.Error("Failed to send confirmation mail",
			slog.String("email", email),
			slog.Any("error", err),
		)
	}
}

// Login verifies credentials and opens the account's single session.
// The lookup goes straight to the system of record; a possibly stale cache
// snapshot must never decide a credential check.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.TokenPairOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", err))

			return nil, domainerrors.ErrUnknownAccount.WrapMessage("login failed")
		}

		return nil, errors.Wrap(err, "failed to load account during login")
	}

	// Check the password outside any transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrInvalidPassword))

		return nil, domainerrors.ErrInvalidPassword.WrapMessage("login failed")
	}

	return srv.issueSession(ctx, user)
}

// issueSession generates a fresh pair and overwrites the single refresh slot.
// Concurrent logins race on the slot; the last write wins and earlier refresh
// tokens die silently, which is the intended single-session behavior.
func (srv *authService) issueSession(ctx context.Context, user *entity.User) (*usecase.TokenPairOutput, error) {
	accessToken, refreshToken, err := srv.tokenService.GenerateTokenPair(user.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token pair")
	}

	if err := srv.userRepo.UpdateRefreshToken(ctx, user.ID, &refreshToken); err != nil {
		return nil, errors.Wrap(err, "failed to persist refresh token")
	}

	srv.log(ctx).Debug("Session issued", slog.Any("userID", user.ID))

	return &usecase.TokenPairOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    tokenTypeBearer,
	}, nil
}

// RefreshTokenPair rotates a valid refresh token into a fresh pair.
func (srv *authService) RefreshTokenPair(ctx context.Context, input *usecase.RefreshInput) (*usecase.TokenPairOutput, error) {
	subject, err := srv.tokenService.Decode(input.RefreshToken, service.ScopeRefresh)
	if err != nil {
		srv.log(ctx).Warn("Refresh rejected", slog.Any("error", err))

		return nil, err
	}

	// The stored slot is compared against the presented token, so the read
	// must come from the system of record, never the snapshot cache.
	user, err := srv.userRepo.FindByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidToken.WrapMessage("refresh token subject no longer exists")
		}

		return nil, errors.Wrap(err, "failed to load account during refresh")
	}

	if user.RefreshToken == nil || *user.RefreshToken != input.RefreshToken {
		// A cryptographically valid token that is not the stored one means it
		// was already rotated away. Treat this as reuse and close the session
		// so both the old and the stolen token are dead.
		if clearErr := srv.userRepo.UpdateRefreshToken(ctx, user.ID, nil); clearErr != nil {
			srv.log(ctx).Error("Failed to clear refresh slot after reuse",
				slog.Any("userID", user.ID),
				slog.Any("error", clearErr),
			)
		}

		srv.log(ctx).Warn("Refresh token reuse detected", slog.Any("userID", user.ID))

		return nil, domainerrors.ErrTokenReuse.WrapMessage("superseded refresh token presented")
	}

	return srv.issueSession(ctx, user)
}

// ResolveCurrentUser maps a bearer access token to the account it belongs to.
// This is the hot read path, so it goes through the snapshot cache and may
// observe account state up to one cache TTL old.
func (srv *authService) ResolveCurrentUser(ctx context.Context, accessToken string) (*entity.User, error) {
	subject, err := srv.tokenService.Decode(accessToken, service.ScopeAccess)
	if err != nil {
		return nil, err
	}

	user, err := srv.directory.Lookup(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// The account vanished after the token was minted.
			return nil, domainerrors.ErrInvalidToken.WrapMessage("access token subject no longer exists")
		}

		return nil, err
	}

	return user, nil
}

// ConfirmEmail marks the account named by the token as verified. The operation
// is idempotent; confirming twice only changes the message.
func (srv *authService) ConfirmEmail(ctx context.Context, input *usecase.ConfirmEmailInput) (*usecase.ConfirmEmailOutput, error) {
	email := input.Token

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrConfirmationNotFound.WrapMessage("confirmation for unknown account")
		}

		return nil, errors.Wrap(err, "failed to load account during confirmation")
	}

	if user.EmailVerified {
		return &usecase.ConfirmEmailOutput{Message: "Your email is already confirmed"}, nil
	}

	if err := srv.userRepo.MarkEmailVerified(ctx, email); err != nil {
		return nil, errors.Wrap(err, "failed to mark email verified")
	}

	srv.log(ctx).Info("Email confirmed", slog.Any("userID", user.ID))

	return &usecase.ConfirmEmailOutput{Message: "Email confirmed"}, nil
}

// gravatarURL derives the default avatar for an address. Gravatar hashes the
// trimmed, lowercased email with MD5.
func gravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))

	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?d=identicon"
}
