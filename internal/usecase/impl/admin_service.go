package impl

import (
	"context"
	"crypto/rand"
	"log/slog"
	"math/big"
	"strings"

	deliverycontext "corpgate/internal/delivery/context"
	"corpgate/internal/domain/entity"
	domainerrors "corpgate/internal/domain/errors"
	"corpgate/internal/domain/repository"
	"corpgate/internal/domain/service"
	"corpgate/internal/usecase"

	"github.com/pkg/errors"
)

const (
	tempPasswordPrefix  = "TempPass"
	tempPasswordSuffix  = 6
	tempPasswordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// adminService implements the AdminUsecase interface.
type adminService struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	logger    *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	logger *slog.Logger,
) usecase.AdminUsecase {
	return &adminService{
		txManager: txManager,
		hasher:    hasher,
		logger:    logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListUsers returns every account.
func (srv *adminService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	var users []*entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.UserRepo().List(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list users")
		}
		users = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

// CreateUser provisions an Inactive account with a temporary password.
// The plaintext temp password is returned exactly once.
func (srv *adminService) CreateUser(ctx context.Context, input usecase.CreateUserInput) (*usecase.CreateUserOutput, error) {
	email := entity.NormalizeEmail(input.Email)

	tempPassword, err := newTempPassword()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate temp password")
	}

	hash, err := srv.hasher.Hash(tempPassword)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash temp password")
	}

	role := input.Role
	if role == "" {
		role = "user"
	}

	user := &entity.User{
		Email:        email,
		Username:     input.Username,
		PasswordHash: hash,
		Role:         role,
		Status:       entity.StatusInactive,
		AllowedPages: input.AllowedPages,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		_, err := userRepo.FindByEmail(ctx, email)
		if err == nil {
			return errors.WithStack(domainerrors.ErrUserAlreadyExists)
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check for existing user")
		}

		return userRepo.Create(ctx, user)
	})
	if err != nil {
		srv.log(ctx).Info("User creation failed", slog.String("email", email), slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Info("User created", slog.String("email", email), slog.String("role", role))

	return &usecase.CreateUserOutput{
		User:         user,
		TempPassword: tempPassword,
	}, nil
}

// SetAllowedPages replaces a user's page allowlist.
func (srv *adminService) SetAllowedPages(ctx context.Context, email string, pages []string) error {
	if pages == nil {
		pages = []string{}
	}

	return srv.updateUser(ctx, email, "set allowed pages", func(userRepo repository.UserRepository) error {
		return userRepo.UpdateAllowedPages(ctx, email, pages)
	})
}

// SetUserStatus switches an account between Active and Inactive.
func (srv *adminService) SetUserStatus(ctx context.Context, email string, status entity.Status) error {
	if !status.Valid() {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("unknown status"))
	}

	return srv.updateUser(ctx, email, "set status", func(userRepo repository.UserRepository) error {
		return userRepo.UpdateStatus(ctx, email, status)
	})
}

// SetUserRole replaces a user's role.
func (srv *adminService) SetUserRole(ctx context.Context, email string, role string) error {
	if strings.TrimSpace(role) == "" {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("empty role"))
	}

	return srv.updateUser(ctx, email, "set role", func(userRepo repository.UserRepository) error {
		return userRepo.UpdateRole(ctx, email, role)
	})
}

// DeleteUser removes an account. Admins cannot delete themselves.
func (srv *adminService) DeleteUser(ctx context.Context, actorEmail, email string) error {
	if entity.NormalizeEmail(actorEmail) == entity.NormalizeEmail(email) {
		return errors.WithStack(domainerrors.ErrSelfDelete)
	}

	return srv.updateUser(ctx, email, "delete user", func(userRepo repository.UserRepository) error {
		return userRepo.Delete(ctx, email)
	})
}

// ResetPassword issues a new temporary password and forces the account
// Inactive so the owner has to pick a new one on next login.
func (srv *adminService) ResetPassword(ctx context.Context, email string) (string, error) {
	tempPassword, err := newTempPassword()
	if err != nil {
		return "", errors.Wrap(err, "failed to generate temp password")
	}

	hash, err := srv.hasher.Hash(tempPassword)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash temp password")
	}

	err = srv.updateUser(ctx, email, "reset password", func(userRepo repository.UserRepository) error {
		return userRepo.ResetPassword(ctx, email, hash)
	})
	if err != nil {
		return "", err
	}

	return tempPassword, nil
}

// updateUser runs a single-user mutation inside a transaction, mapping
// the missing-user case to the shared domain error.
func (srv *adminService) updateUser(ctx context.Context, email, action string, fn func(userRepo repository.UserRepository) error) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := fn(repoFactory.UserRepo()); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.WithStack(domainerrors.ErrUserNotFound)
			}

			return err
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Info("Admin action failed",
			slog.String("action", action),
			slog.String("email", entity.NormalizeEmail(email)),
			slog.Any("error", err))

		return err
	}
	srv.log(ctx).Info("Admin action done",
		slog.String("action", action),
		slog.String("email", entity.NormalizeEmail(email)))

	return nil
}

func newTempPassword() (string, error) {
	var sb strings.Builder
	sb.WriteString(tempPasswordPrefix)

	charsetLen := big.NewInt(int64(len(tempPasswordCharset)))
	for range tempPasswordSuffix {
		idx, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			return "", errors.Wrap(err, "failed to read random bytes")
		}
		sb.WriteByte(tempPasswordCharset[idx.Int64()])
	}

	return sb.String(), nil
}
