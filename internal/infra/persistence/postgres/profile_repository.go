package postgres

import (
	"context"

	"corpgate/internal/domain/entity"
	"corpgate/internal/domain/repository"
	"corpgate/internal/errors"
	"corpgate/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// profileRepository implements the domain.ProfileRepository interface using GORM.
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository is the constructor for profileRepository.
func NewProfileRepository(db *gorm.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

// FindByUserID returns the user's profile, or ErrRecordNotFound.
func (repo *profileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	var profileM model.ProfileModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profileM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRecordNotFound
		}

		return nil, errors.Wrap(err, "failed to find profile")
	}

	return toProfileEntity(&profileM), nil
}

// Upsert inserts or updates the user's profile, keyed by user_id.
func (repo *profileRepository) Upsert(ctx context.Context, profile *entity.Profile) (*entity.Profile, error) {
	profileM := toProfileModel(profile)
	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(profileM).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to upsert profile")
	}

	// Reload so callers see DB-generated values after either branch.
	var stored model.ProfileModel
	err = repo.db.WithContext(ctx).
		Where("user_id = ?", profile.UserID).
		First(&stored).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload profile")
	}

	return toProfileEntity(&stored), nil
}

func toProfileEntity(profileM *model.ProfileModel) *entity.Profile {
	return &entity.Profile{
		ID:           profileM.ID,
		UserID:       profileM.UserID,
		EmployeeID:   profileM.EmployeeID,
		NationalID:   profileM.NationalID,
		SCFHSID:      profileM.SCFHSID,
		DOB:          profileM.DOB,
		Gender:       profileM.Gender,
		JobTitle:     profileM.JobTitle,
		Specialty:    profileM.Specialty,
		NetworkID:    profileM.NetworkID,
		SupervisorID: profileM.SupervisorID,
		FullNameAR:   profileM.FullNameAR,
		FullNameEN:   profileM.FullNameEN,
		FacilityID:   profileM.FacilityID,
		Phone:        profileM.Phone,
		Address:      profileM.Address,
		Comments:     profileM.Comments,
		UpdatedAt:    profileM.UpdatedAt,
	}
}

func toProfileModel(profile *entity.Profile) *model.ProfileModel {
	return &model.ProfileModel{
		ID:           profile.ID,
		UserID:       profile.UserID,
		EmployeeID:   profile.EmployeeID,
		NationalID:   profile.NationalID,
		SCFHSID:      profile.SCFHSID,
		DOB:          profile.DOB,
		Gender:       profile.Gender,
		JobTitle:     profile.JobTitle,
		Specialty:    profile.Specialty,
		NetworkID:    profile.NetworkID,
		SupervisorID: profile.SupervisorID,
		FullNameAR:   profile.FullNameAR,
		FullNameEN:   profile.FullNameEN,
		FacilityID:   profile.FacilityID,
		Phone:        profile.Phone,
		Address:      profile.Address,
		Comments:     profile.Comments,
	}
}
