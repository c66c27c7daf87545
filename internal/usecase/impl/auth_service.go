// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"time"

	"corpgate/config"
	deliverycontext "corpgate/internal/delivery/context"
	"corpgate/internal/domain/entity"
	domainerrors "corpgate/internal/domain/errors"
	"corpgate/internal/domain/repository"
	"corpgate/internal/domain/service"
	"corpgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// authService implements the AuthUsecase interface.
type authService struct {
	cfg       *config.Config
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	tokens    service.TokenService
	logger    *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(
	cfg *config.Config,
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	tokens service.TokenService,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		cfg:       cfg,
		txManager: txManager,
		hasher:    hasher,
		tokens:    tokens,
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login authenticates with email and password.
//
// An Inactive account gets an access token and NeedsPasswordSetup=true
// but no session; it can only reach the password-setup route. Absent
// users and wrong passwords share one error so the login form cannot be
// used to probe for accounts.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	srv.log(ctx).Debug("Login attempt", slog.String("email", email))

	var output *usecase.LoginOutput

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		sessionRepo := repoFactory.SessionRepo()

		user, err := userRepo.FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.WithStack(domainerrors.ErrInvalidCredentials)
			}

			return errors.Wrap(err, "failed to find user")
		}

		if !srv.hasher.Check(input.Password, user.PasswordHash) {
			return errors.WithStack(domainerrors.ErrInvalidCredentials)
		}

		accessToken, err := srv.tokens.IssueAccessToken(user)
		if err != nil {
			return errors.Wrap(err, "failed to issue access token")
		}

		if user.Status == entity.StatusInactive {
			// No session yet; the account must pick its own password first.
			output = &usecase.LoginOutput{
				AccessToken:        accessToken,
				NeedsPasswordSetup: true,
				User:               user,
			}

			return nil
		}

		refreshToken, err := srv.tokens.NewRefreshToken()
		if err != nil {
			return errors.Wrap(err, "failed to mint refresh token")
		}

		session := &entity.Session{
			UserID:       user.ID,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().Add(srv.tokens.RefreshTokenTTL()),
			IPAddress:    input.IPAddress,
			UserAgent:    input.UserAgent,
		}
		if err := sessionRepo.Create(ctx, session); err != nil {
			return errors.Wrap(err, "failed to create session")
		}

		if err := userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
			return errors.Wrap(err, "failed to update last login")
		}

		output = &usecase.LoginOutput{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			User:         user,
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Info("Login failed", slog.String("email", email), slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Info("Login succeeded",
		slog.String("email", email),
		slog.Bool("needs_password_setup", output.NeedsPasswordSetup))

	return output, nil
}

// Logout deletes the session holding the token. Unknown tokens are
// treated as already logged out.
func (srv *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.SessionRepo().DeleteByToken(ctx, refreshToken)
	})
	if err != nil {
		srv.log(ctx).Error("Logout failed", slog.Any("error", err))

		return errors.Wrap(err, "failed to log out")
	}
	srv.log(ctx).Debug("Logout succeeded")

	return nil
}

// Refresh exchanges a live refresh token for a new access token.
// Expired sessions are deleted on sight; the token is not rotated.
func (srv *authService) Refresh(ctx context.Context, refreshToken string) (*usecase.RefreshOutput, error) {
	var output *usecase.RefreshOutput

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		sessionRepo := repoFactory.SessionRepo()

		session, user, err := sessionRepo.FindByToken(ctx, refreshToken)
		if err != nil {
			if errors.Is(err, repository.ErrSessionNotFound) {
				return errors.WithStack(domainerrors.ErrInvalidToken)
			}

			return errors.Wrap(err, "failed to find session")
		}

		if session.Expired(time.Now()) {
			if err := sessionRepo.DeleteByToken(ctx, refreshToken); err != nil {
				return errors.Wrap(err, "failed to delete expired session")
			}

			return errors.WithStack(domainerrors.ErrTokenExpired)
		}

		// The session stays; the account may be re-activated later.
		if user.Status != entity.StatusActive {
			return errors.WithStack(domainerrors.ErrAccountInactive)
		}

		accessToken, err := srv.tokens.IssueAccessToken(user)
		if err != nil {
			return errors.Wrap(err, "failed to issue access token")
		}

		output = &usecase.RefreshOutput{
			AccessToken: accessToken,
			User:        user,
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Debug("Refresh rejected", slog.Any("error", err))

		return nil, err
	}

	return output, nil
}

// SetInitialPassword stores the first self-chosen password of an account
// that is still Inactive. The status itself is flipped by an admin, not
// here.
func (srv *authService) SetInitialPassword(ctx context.Context, userID uuid.UUID, newPassword string) error {
	if err := srv.checkPasswordLength(newPassword); err != nil {
		return err
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.WithStack(domainerrors.ErrUserNotFound)
			}

			return errors.Wrap(err, "failed to find user")
		}

		if user.Status != entity.StatusInactive {
			return errors.WithStack(domainerrors.ErrNotEligible)
		}

		hash, err := srv.hasher.Hash(newPassword)
		if err != nil {
			return errors.Wrap(err, "failed to hash password")
		}

		return userRepo.UpdatePassword(ctx, userID, hash)
	})
	if err != nil {
		srv.log(ctx).Info("Initial password setup failed", slog.Any("user_id", userID), slog.Any("error", err))

		return err
	}
	srv.log(ctx).Info("Initial password stored", slog.Any("user_id", userID))

	return nil
}

// ChangePassword replaces the password after verifying the current one
// and revokes every session of the user.
func (srv *authService) ChangePassword(ctx context.Context, input usecase.ChangePasswordInput) error {
	if err := srv.checkPasswordLength(input.NewPassword); err != nil {
		return err
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		sessionRepo := repoFactory.SessionRepo()

		user, err := userRepo.FindByID(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.WithStack(domainerrors.ErrUserNotFound)
			}

			return errors.Wrap(err, "failed to find user")
		}

		if !srv.hasher.Check(input.CurrentPassword, user.PasswordHash) {
			return errors.WithStack(domainerrors.ErrCurrentPasswordMismatch)
		}

		hash, err := srv.hasher.Hash(input.NewPassword)
		if err != nil {
			return errors.Wrap(err, "failed to hash password")
		}

		if err := userRepo.UpdatePassword(ctx, input.UserID, hash); err != nil {
			return errors.Wrap(err, "failed to update password")
		}

		// Every open session dies with the old password.
		if err := sessionRepo.DeleteByUserID(ctx, input.UserID); err != nil {
			return errors.Wrap(err, "failed to revoke sessions")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Info("Password change failed", slog.Any("user_id", input.UserID), slog.Any("error", err))

		return err
	}
	srv.log(ctx).Info("Password changed, sessions revoked", slog.Any("user_id", input.UserID))

	return nil
}

// Me returns the caller's user record.
func (srv *authService) Me(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.UserRepo().FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.WithStack(domainerrors.ErrUserNotFound)
			}

			return errors.Wrap(err, "failed to find user")
		}
		user = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// CleanupExpiredSessions deletes all expired sessions and returns how
// many were removed.
func (srv *authService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	var deleted int64

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		count, err := repoFactory.SessionRepo().DeleteExpired(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to delete expired sessions")
		}
		deleted = count

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Session cleanup failed", slog.Any("error", err))

		return 0, err
	}
	if deleted > 0 {
		srv.log(ctx).Info("Expired sessions removed", slog.Int64("count", deleted))
	}

	return deleted, nil
}

func (srv *authService) checkPasswordLength(password string) error {
	minLen := 4
	if srv.cfg != nil && srv.cfg.Auth != nil && srv.cfg.Auth.MinPasswordLength > 0 {
		minLen = srv.cfg.Auth.MinPasswordLength
	}
	if len(password) < minLen {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("password too short"))
	}

	return nil
}
