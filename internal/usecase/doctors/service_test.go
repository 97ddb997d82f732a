package doctors_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic/internal/apperr"
	"vet-clinic/internal/domain/actor"
	"vet-clinic/internal/usecase/doctors"
	"vet-clinic/internal/usecase/usecasetest"
)

func ptr[T any](v T) *T { return &v }

func TestCreateProfile_SelfWithoutProfile(t *testing.T) {
	env := usecasetest.New(t)
	svc := doctors.NewService(env.Deps)
	ctx := context.Background()

	doc := env.User(actor.RoleDoctor, "vet")

	d, err := svc.CreateProfile(ctx, doc, doc.ID, doctors.ProfileInput{Specialization: ptr("dermatology")})
	require.NoError(t, err)
	assert.Equal(t, doc.ID, d.UserID)

	_, err = svc.CreateProfile(ctx, doc, doc.ID, doctors.ProfileInput{})
	assert.Equal(t, "profile_exists", apperr.CodeOf(err))
}

func TestCreateProfile_Rejections(t *testing.T) {
	env := usecasetest.New(t)
	svc := doctors.NewService(env.Deps)
	ctx := context.Background()

	owner := env.Owner("ana")
	other := env.User(actor.RoleDoctor, "other")
	admin := env.Admin()

	_, err := svc.CreateProfile(ctx, owner, other.ID, doctors.ProfileInput{})
	assert.True(t, errors.Is(err, apperr.ErrNotAuthorized))

	_, err = svc.CreateProfile(ctx, admin, owner.ID, doctors.ProfileInput{})
	assert.Equal(t, "not_a_doctor", apperr.CodeOf(err))

	_, err = svc.CreateProfile(ctx, admin, other.ID, doctors.ProfileInput{ExperienceYears: ptr(-1)})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestUpdateAndVerify(t *testing.T) {
	env := usecasetest.New(t)
	svc := doctors.NewService(env.Deps)
	ctx := context.Background()

	d1, d1ID := env.Doctor("d1")
	d2, _ := env.Doctor("d2")
	admin := env.Admin()

	got, err := svc.Update(ctx, d1, d1ID, doctors.ProfileInput{Bio: ptr("cats only")})
	require.NoError(t, err)
	assert.Equal(t, "cats only", got.Bio)

	_, err = svc.Update(ctx, d2, d1ID, doctors.ProfileInput{Bio: ptr("hijack")})
	assert.True(t, errors.Is(err, apperr.ErrNotAuthorized))

	_, err = svc.SetVerified(ctx, d1, d1ID, true)
	assert.True(t, errors.Is(err, apperr.ErrNotAuthorized))

	got, err = svc.SetVerified(ctx, admin, d1ID, true)
	require.NoError(t, err)
	assert.True(t, got.Verified)

	all, err := svc.List(ctx, env.Owner("ana"), false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	verified, err := svc.List(ctx, d2, true)
	require.NoError(t, err)
	require.Len(t, verified, 1)
	assert.Equal(t, d1ID, verified[0].ID)
}

func TestDoctorWithoutProfileCannotBrowse(t *testing.T) {
	env := usecasetest.New(t)
	svc := doctors.NewService(env.Deps)

	doc := env.User(actor.RoleDoctor, "ghost")
	_, err := svc.List(context.Background(), doc, false)
	assert.True(t, errors.Is(err, apperr.ErrDoctorProfileNotFound))
}
