package impl

import (
	"context"
	"log/slog"

	deliverycontext "corpgate/internal/delivery/context"
	"corpgate/internal/domain/entity"
	"corpgate/internal/domain/repository"
	"corpgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	profiles repository.ProfileRepository
	logger   *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(
	profiles repository.ProfileRepository,
	logger *slog.Logger,
) usecase.ProfileUsecase {
	return &profileService{
		profiles: profiles,
		logger:   logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile returns the user's profile. A user that never saved one
// gets an empty profile rather than an error.
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	profile, err := srv.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return &entity.Profile{UserID: userID}, nil
		}
		srv.log(ctx).Error("Profile lookup failed", slog.Any("user_id", userID), slog.Any("error", err))

		return nil, err
	}

	return profile, nil
}

// SaveProfile inserts or updates the user's profile.
func (srv *profileService) SaveProfile(ctx context.Context, userID uuid.UUID, input usecase.SaveProfileInput) (*entity.Profile, error) {
	profile := &entity.Profile{
		UserID:       userID,
		EmployeeID:   input.EmployeeID,
		NationalID:   input.NationalID,
		SCFHSID:      input.SCFHSID,
		DOB:          input.DOB,
		Gender:       input.Gender,
		JobTitle:     input.JobTitle,
		Specialty:    input.Specialty,
		NetworkID:    input.NetworkID,
		SupervisorID: input.SupervisorID,
		FullNameAR:   input.FullNameAR,
		FullNameEN:   input.FullNameEN,
		FacilityID:   input.FacilityID,
		Phone:        input.Phone,
		Address:      input.Address,
		Comments:     input.Comments,
	}

	stored, err := srv.profiles.Upsert(ctx, profile)
	if err != nil {
		srv.log(ctx).Error("Profile save failed", slog.Any("user_id", userID), slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Info("Profile saved", slog.Any("user_id", userID))

	return stored, nil
}
