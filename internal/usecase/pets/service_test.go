package pets_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic/internal/apperr"
	"vet-clinic/internal/domain/appointments"
	domainpets "vet-clinic/internal/domain/pets"
	"vet-clinic/internal/usecase/pets"
	"vet-clinic/internal/usecase/usecasetest"
)

func ptr[T any](v T) *T { return &v }

func TestCreate_OwnerForSelf(t *testing.T) {
	env := usecasetest.New(t)
	svc := pets.NewService(env.Deps)
	ctx := context.Background()
	owner := env.Owner("ana")
	other := env.Owner("bob")

	p, err := svc.Create(ctx, owner, pets.CreateInput{Name: "Milo", Species: "Dog", Allergies: []string{" pollen ", ""}})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, p.OwnerUserID)
	assert.Equal(t, domainpets.SpeciesDog, p.Species)
	assert.Equal(t, []string{"pollen"}, p.Allergies)

	_, err = svc.Create(ctx, owner, pets.CreateInput{OwnerUserID: other.ID, Name: "Rex", Species: "dog"})
	assert.True(t, errors.Is(err, apperr.ErrNotAuthorized), "owner cannot create for someone else")

	_, err = svc.Create(ctx, owner, pets.CreateInput{Name: "Rex", Species: "dragon"})
	assert.Equal(t, "invalid_species", apperr.CodeOf(err))
}

func TestCreate_OnBehalf(t *testing.T) {
	env := usecasetest.New(t)
	svc := pets.NewService(env.Deps)
	ctx := context.Background()
	owner := env.Owner("ana")
	doc, _ := env.Doctor("vet")
	admin := env.Admin()

	p, err := svc.Create(ctx, doc, pets.CreateInput{OwnerUserID: owner.ID, Name: "Luna", Species: "cat"})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, p.OwnerUserID)

	_, err = svc.Create(ctx, admin, pets.CreateInput{Name: "Luna", Species: "cat"})
	assert.Equal(t, "owner_required", apperr.CodeOf(err))

	_, err = svc.Create(ctx, admin, pets.CreateInput{OwnerUserID: doc.ID, Name: "Luna", Species: "cat"})
	assert.Equal(t, "invalid_owner", apperr.CodeOf(err))

	_, err = svc.Create(ctx, admin, pets.CreateInput{OwnerUserID: "ghost", Name: "Luna", Species: "cat"})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestGet_CrossOwnerIsNotAuthorized(t *testing.T) {
	env := usecasetest.New(t)
	svc := pets.NewService(env.Deps)
	ctx := context.Background()
	a := env.Owner("a")
	b := env.Owner("b")
	p := env.Pet(a.ID, "Milo")

	_, err := svc.Get(ctx, b, p.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotAuthorized))

	_, err = svc.Get(ctx, a, p.ID)
	assert.NoError(t, err)

	_, err = svc.Get(ctx, a, "missing")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestDoctorSeesOnlyAssociatedPets(t *testing.T) {
	env := usecasetest.New(t)
	svc := pets.NewService(env.Deps)
	ctx := context.Background()
	owner := env.Owner("ana")
	doc, docID := env.Doctor("vet")
	linked := env.Pet(owner.ID, "Milo")
	unlinked := env.Pet(owner.ID, "Luna")
	env.Appointment(linked, docID, appointments.StatusPending)

	list, err := svc.List(ctx, doc, domainpets.ListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, linked.ID, list[0].ID)

	_, err = svc.Get(ctx, doc, unlinked.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotAuthorized))

	got, err := svc.AddMedicalHistory(ctx, doc, linked.ID, "otitis")
	require.NoError(t, err)
	assert.Equal(t, []string{"otitis"}, got.MedicalHistory)

	_, err = svc.AddMedicalHistory(ctx, doc, unlinked.ID, "otitis")
	assert.True(t, errors.Is(err, apperr.ErrNotAuthorized))

	// El perfil lo edita el dueño, no el doctor.
	_, err = svc.UpdateProfile(ctx, doc, linked.ID, pets.UpdateInput{Name: ptr("Max")})
	assert.True(t, errors.Is(err, apperr.ErrNotAuthorized))
}

func TestOwnerListIgnoresForeignFilter(t *testing.T) {
	env := usecasetest.New(t)
	svc := pets.NewService(env.Deps)
	ctx := context.Background()
	a := env.Owner("a")
	b := env.Owner("b")
	env.Pet(a.ID, "Milo")
	env.Pet(b.ID, "Rex")

	list, err := svc.List(ctx, a, domainpets.ListFilter{OwnerUserID: b.ID})
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = svc.List(ctx, env.Admin(), domainpets.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestCreate_OwnerRemovedBeforeWrite(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	admin := env.Admin()
	owner := env.Owner("ana")

	deps := env.Deps
	deps.Store = usecasetest.RacingStore{Store: env.Store, Before: func(ctx context.Context) {
		require.NoError(t, env.Store.Users().Delete(ctx, owner.ID))
	}}
	svc := pets.NewService(deps)

	_, err := svc.Create(ctx, admin, pets.CreateInput{OwnerUserID: owner.ID, Name: "Milo", Species: "dog"})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	left, err := env.Store.Pets().ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, left, "no pet for a deleted owner")
}

func TestUpdateAndMedicalEntries(t *testing.T) {
	env := usecasetest.New(t)
	svc := pets.NewService(env.Deps)
	ctx := context.Background()
	owner := env.Owner("ana")
	p := env.Pet(owner.ID, "Milo")

	got, err := svc.UpdateProfile(ctx, owner, p.ID, pets.UpdateInput{Name: ptr("Max"), Weight: ptr(12.5)})
	require.NoError(t, err)
	assert.Equal(t, "Max", got.Name)
	assert.Equal(t, owner.ID, got.OwnerUserID)

	_, err = svc.UpdateProfile(ctx, owner, p.ID, pets.UpdateInput{Age: ptr(-2)})
	assert.Equal(t, "invalid_age", apperr.CodeOf(err))

	got, err = svc.AddVaccination(ctx, owner, p.ID, domainpets.Vaccination{Vaccine: "rabies"})
	require.NoError(t, err)
	require.Len(t, got.Vaccinations, 1)
	assert.Equal(t, env.Clock, got.Vaccinations[0].Date)

	got, err = svc.AddPrescription(ctx, owner, p.ID, domainpets.Prescription{Medicine: "amoxicillin", Dosage: "250mg"})
	require.NoError(t, err)
	require.Len(t, got.Prescriptions, 1)

	_, err = svc.AddPrescription(ctx, owner, p.ID, domainpets.Prescription{})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}
