package postgres

import (
	"context"
	"time"

	"corpgate/internal/domain/entity"
	"corpgate/internal/domain/repository"
	"corpgate/internal/errors"
	"corpgate/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// sessionRepository implements the domain.SessionRepository interface using GORM.
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// Create persists a new session row.
func (repo *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	sessionM := &model.SessionModel{
		ID:           session.ID,
		UserID:       session.UserID,
		RefreshToken: session.RefreshToken,
		ExpiresAt:    session.ExpiresAt,
		IPAddress:    session.IPAddress,
		UserAgent:    session.UserAgent,
	}
	if err := repo.db.WithContext(ctx).Create(sessionM).Error; err != nil {
		return errors.Wrap(err, "failed to create session")
	}

	session.ID = sessionM.ID
	session.CreatedAt = sessionM.CreatedAt

	return nil
}

// FindByToken looks up a session by its refresh-token value together with
// the owning user. Expired rows are returned as-is; expiry is the caller's
// concern.
func (repo *sessionRepository) FindByToken(ctx context.Context, refreshToken string) (*entity.Session, *entity.User, error) {
	var sessionM model.SessionModel
	err := repo.db.WithContext(ctx).
		Where("refresh_token = ?", refreshToken).
		First(&sessionM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, repository.ErrSessionNotFound
		}

		return nil, nil, errors.Wrap(err, "failed to find session by token")
	}

	var userM model.UserModel
	err = repo.db.WithContext(ctx).
		Where("id = ?", sessionM.UserID).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Orphaned session; treat the token as unknown.
			return nil, nil, repository.ErrSessionNotFound
		}

		return nil, nil, errors.Wrap(err, "failed to load session owner")
	}

	session := &entity.Session{
		ID:           sessionM.ID,
		UserID:       sessionM.UserID,
		RefreshToken: sessionM.RefreshToken,
		ExpiresAt:    sessionM.ExpiresAt,
		IPAddress:    sessionM.IPAddress,
		UserAgent:    sessionM.UserAgent,
		CreatedAt:    sessionM.CreatedAt,
	}

	return session, toUserEntity(&userM), nil
}

// DeleteByToken removes the session holding the given token.
// Deleting an absent token is not an error.
func (repo *sessionRepository) DeleteByToken(ctx context.Context, refreshToken string) error {
	err := repo.db.WithContext(ctx).
		Where("refresh_token = ?", refreshToken).
		Delete(&model.SessionModel{}).Error
	if err != nil {
		return errors.Wrap(err, "failed to delete session by token")
	}

	return nil
}

// DeleteByUserID removes every session belonging to the user.
func (repo *sessionRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.SessionModel{}).Error
	if err != nil {
		return errors.Wrap(err, "failed to delete sessions by user id")
	}

	return nil
}

// DeleteExpired removes all sessions past their expiry and reports how many.
func (repo *sessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&model.SessionModel{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to delete expired sessions")
	}

	return result.RowsAffected, nil
}
