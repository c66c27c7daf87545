package impl

import (
	"context"
	"testing"

	"corpgate/internal/domain/entity"
	"corpgate/internal/domain/repository"
	"corpgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfileRepo struct {
	byUser map[uuid.UUID]*entity.Profile
	nextID int64
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{byUser: make(map[uuid.UUID]*entity.Profile)}
}

func (r *fakeProfileRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.Profile, error) {
	if profile, ok := r.byUser[userID]; ok {
		return profile, nil
	}

	return nil, repository.ErrRecordNotFound
}

func (r *fakeProfileRepo) Upsert(_ context.Context, profile *entity.Profile) (*entity.Profile, error) {
	stored := *profile
	if existing, ok := r.byUser[profile.UserID]; ok {
		stored.ID = existing.ID
	} else {
		r.nextID++
		stored.ID = r.nextID
	}
	r.byUser[profile.UserID] = &stored

	return &stored, nil
}

func TestGetProfile_MissingIsEmpty(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := NewProfileService(repo, newDiscardLogger())
	userID := uuid.New()

	profile, err := svc.GetProfile(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, userID, profile.UserID)
	assert.Empty(t, profile.EmployeeID)
	assert.Zero(t, profile.ID)
}

func TestSaveProfile_UpsertKeepsIdentity(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := NewProfileService(repo, newDiscardLogger())
	userID := uuid.New()

	first, err := svc.SaveProfile(context.Background(), userID, usecase.SaveProfileInput{
		EmployeeID: "E-100",
		JobTitle:   "Nurse",
		FullNameEN: "Alice Smith",
	})
	require.NoError(t, err)
	assert.Equal(t, userID, first.UserID)
	assert.Equal(t, "E-100", first.EmployeeID)

	second, err := svc.SaveProfile(context.Background(), userID, usecase.SaveProfileInput{
		EmployeeID: "E-100",
		JobTitle:   "Head Nurse",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "saving twice updates the same row")
	assert.Equal(t, "Head Nurse", second.JobTitle)

	stored, err := svc.GetProfile(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "Head Nurse", stored.JobTitle)
}
