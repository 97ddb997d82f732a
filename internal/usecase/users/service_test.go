package users_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"vet-clinic/internal/apperr"
	"vet-clinic/internal/domain/actor"
	domainusers "vet-clinic/internal/domain/users"
	"vet-clinic/internal/ports/storage"
	"vet-clinic/internal/usecase/users"
	"vet-clinic/internal/usecase/usecasetest"
)

func newService(t *testing.T) (*users.Service, *usecasetest.Env) {
	env := usecasetest.New(t)
	return users.NewService(env.Deps).WithHashCost(bcrypt.MinCost), env
}

func TestRegister_OwnerAndLogin(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, users.RegisterInput{Name: "Ana", Email: " Ana@Example.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, actor.RolePetOwner, u.Role)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.NotEqual(t, "secret1", u.PasswordHash)

	got, err := svc.Authenticate(ctx, "ANA@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Authenticate(ctx, "ana@example.com", "wrong")
	assert.True(t, errors.Is(err, apperr.ErrNotAuthorized))

	_, err = svc.Authenticate(ctx, "nobody@example.com", "secret1")
	assert.True(t, errors.Is(err, apperr.ErrNotAuthorized))
}

func TestRegister_DoctorCreatesProfile(t *testing.T) {
	svc, env := newService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, users.RegisterInput{
		Name: "Dr. Vet", Email: "vet@example.com", Password: "secret1", Role: "doctor",
		Doctor: users.DoctorProfile{Specialization: "surgery", ExperienceYears: 5},
	})
	require.NoError(t, err)

	d, err := env.Store.Doctors().GetByUserID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "surgery", d.Specialization)
	assert.Equal(t, 5, d.ExperienceYears)
}

func TestRegister_Rejections(t *testing.T) {
	svc, env := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, users.RegisterInput{Name: "A", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	cases := []struct {
		name string
		in   users.RegisterInput
		code string
	}{
		{"duplicate email", users.RegisterInput{Name: "B", Email: "A@EXAMPLE.com", Password: "secret1"}, "email_taken"},
		{"admin role", users.RegisterInput{Name: "B", Email: "b@example.com", Password: "secret1", Role: "admin"}, "invalid_role"},
		{"bad email", users.RegisterInput{Name: "B", Email: "nope", Password: "secret1"}, "invalid_email"},
		{"short password", users.RegisterInput{Name: "B", Email: "b@example.com", Password: "123"}, "weak_password"},
		{"missing name", users.RegisterInput{Email: "b@example.com", Password: "secret1"}, "name_required"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := svc.Register(ctx, c.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperr.ErrValidation))
			assert.Equal(t, c.code, apperr.CodeOf(err))
		})
	}

	all, err := env.Store.Users().List(ctx, domainusers.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateByAdmin_RequiresAdmin(t *testing.T) {
	svc, env := newService(t)
	ctx := context.Background()
	owner := env.Owner("ana")
	admin := env.Admin()

	in := users.RegisterInput{Name: "Root", Email: "root@example.com", Password: "secret1", Role: "admin"}

	_, err := svc.CreateByAdmin(ctx, owner, in)
	assert.True(t, errors.Is(err, apperr.ErrNotAuthorized))

	u, err := svc.CreateByAdmin(ctx, admin, in)
	require.NoError(t, err)
	assert.Equal(t, actor.RoleAdmin, u.Role)
}

func TestGetAndList_Scope(t *testing.T) {
	svc, env := newService(t)
	ctx := context.Background()
	a := env.Owner("a")
	b := env.Owner("b")
	admin := env.Admin()

	_, err := svc.Get(ctx, a, a.ID)
	require.NoError(t, err)

	_, err = svc.Get(ctx, a, b.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotAuthorized))

	_, err = svc.Get(ctx, admin, "missing")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = svc.List(ctx, a, domainusers.ListFilter{})
	assert.True(t, errors.Is(err, apperr.ErrNotAuthorized))

	list, err := svc.List(ctx, admin, domainusers.ListFilter{Role: actor.RolePetOwner})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestUpdate_EmailUniqueness(t *testing.T) {
	svc, env := newService(t)
	ctx := context.Background()

	u1, err := svc.Register(ctx, users.RegisterInput{Name: "A", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, users.RegisterInput{Name: "B", Email: "b@example.com", Password: "secret1"})
	require.NoError(t, err)
	self := actor.New(u1.ID, actor.RolePetOwner)

	taken := "B@example.com"
	_, err = svc.Update(ctx, self, u1.ID, users.UpdateInput{Email: &taken})
	assert.Equal(t, "email_taken", apperr.CodeOf(err))

	name := "Ana"
	same := "a@example.com"
	got, err := svc.Update(ctx, self, u1.ID, users.UpdateInput{Name: &name, Email: &same})
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)

	stored, err := env.Store.Users().GetByID(ctx, u1.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", stored.Name)
}

func TestChangeRole_KeepsDoctorInvariant(t *testing.T) {
	svc, env := newService(t)
	ctx := context.Background()
	admin := env.Admin()
	owner := env.Owner("ana")

	_, err := svc.ChangeRole(ctx, owner, owner.ID, "doctor")
	assert.True(t, errors.Is(err, apperr.ErrNotAuthorized))

	u, err := svc.ChangeRole(ctx, admin, owner.ID, "doctor")
	require.NoError(t, err)
	assert.Equal(t, actor.RoleDoctor, u.Role)
	_, err = env.Store.Doctors().GetByUserID(ctx, owner.ID)
	require.NoError(t, err, "becoming doctor creates a profile")

	u, err = svc.ChangeRole(ctx, admin, owner.ID, "pet_owner")
	require.NoError(t, err)
	assert.Equal(t, actor.RolePetOwner, u.Role)
	_, err = env.Store.Doctors().GetByUserID(ctx, owner.ID)
	assert.True(t, errors.Is(err, storage.ErrNotFound), "leaving doctor removes the profile")

	_, err = svc.ChangeRole(ctx, admin, owner.ID, "superuser")
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestChangeRole_OwnerWithPetsKeepsRole(t *testing.T) {
	svc, env := newService(t)
	ctx := context.Background()
	admin := env.Admin()
	owner := env.Owner("ana")
	env.Pet(owner.ID, "Milo")

	for _, role := range []string{"doctor", "admin"} {
		_, err := svc.ChangeRole(ctx, admin, owner.ID, role)
		assert.Equal(t, "owner_has_pets", apperr.CodeOf(err), role)
	}

	stored, err := env.Store.Users().GetByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, actor.RolePetOwner, stored.Role)
	_, err = env.Store.Doctors().GetByUserID(ctx, owner.ID)
	assert.True(t, errors.Is(err, storage.ErrNotFound), "no profile left behind")
}

func TestEnsureAdmin_Idempotent(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	u, created, err := svc.EnsureAdmin(ctx, "", "root@clinic.test", "rootpass")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, actor.RoleAdmin, u.Role)
	assert.Equal(t, "admin", u.Name)

	again, created, err := svc.EnsureAdmin(ctx, "Other", "ROOT@clinic.test", "ignored")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, u.ID, again.ID)

	_, err = svc.Authenticate(ctx, "root@clinic.test", "rootpass")
	assert.NoError(t, err)
}
