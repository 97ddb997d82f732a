package reports_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic/internal/adapters/render/textreport"
	"vet-clinic/internal/apperr"
	"vet-clinic/internal/domain/actor"
	"vet-clinic/internal/domain/appointments"
	domain "vet-clinic/internal/domain/reports"
	"vet-clinic/internal/ports/notify"
	"vet-clinic/internal/ports/render"
	"vet-clinic/internal/ports/storage"
	"vet-clinic/internal/usecase/reports"
	"vet-clinic/internal/usecase/usecasetest"
)

func ptr[T any](v T) *T { return &v }

func TestCreate_LinksPetAndAppointment(t *testing.T) {
	env := usecasetest.New(t)
	svc := reports.NewService(env.Deps, nil)
	ctx := context.Background()
	owner := env.Owner("ana")
	doc, docID := env.Doctor("vet")
	p := env.Pet(owner.ID, "Milo")
	appt := env.Appointment(p, docID, appointments.StatusConfirmed)

	rep, err := svc.Create(ctx, doc, reports.CreateInput{PetID: p.ID, AppointmentID: appt.ID, Summary: "healthy"})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, rep.OwnerUserID)
	assert.Equal(t, docID, rep.DoctorID)
	assert.Equal(t, env.Clock, rep.Date)

	storedPet, err := env.Store.Pets().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{rep.ID}, storedPet.Reports)

	storedAppt, err := env.Store.Appointments().GetByID(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, rep.ID, storedAppt.ReportID)

	assert.Equal(t, []string{notify.KeyReportCreated}, env.Pub.Keys())
}

func TestCreate_OwnerlessPetIsDataIntegrityViolation(t *testing.T) {
	env := usecasetest.New(t)
	svc := reports.NewService(env.Deps, nil)
	ctx := context.Background()
	doc, _ := env.Doctor("vet")
	p := env.Pet("", "Stray")

	_, err := svc.Create(ctx, doc, reports.CreateInput{PetID: p.ID, Summary: "found"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrDataIntegrity))

	all, err := env.Store.Reports().List(ctx, domain.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, all, "nothing persisted")

	storedPet, err := env.Store.Pets().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, storedPet.Reports)
	assert.Empty(t, env.Pub.Keys())
}

func TestCreate_Rejections(t *testing.T) {
	env := usecasetest.New(t)
	svc := reports.NewService(env.Deps, nil)
	ctx := context.Background()
	owner := env.Owner("ana")
	doc, docID := env.Doctor("vet")
	p := env.Pet(owner.ID, "Milo")
	otherPet := env.Pet(owner.ID, "Luna")
	appt := env.Appointment(otherPet, docID, appointments.StatusConfirmed)

	_, err := svc.Create(ctx, owner, reports.CreateInput{PetID: p.ID, Summary: "x"})
	assert.True(t, errors.Is(err, apperr.ErrNotAuthorized), "owners never write reports")

	_, err = svc.Create(ctx, doc, reports.CreateInput{PetID: p.ID})
	assert.Equal(t, "summary_required", apperr.CodeOf(err))

	_, err = svc.Create(ctx, doc, reports.CreateInput{Summary: "x"})
	assert.Equal(t, "pet_required", apperr.CodeOf(err))

	_, err = svc.Create(ctx, doc, reports.CreateInput{PetID: "ghost", Summary: "x"})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = svc.Create(ctx, doc, reports.CreateInput{PetID: p.ID, AppointmentID: appt.ID, Summary: "x"})
	assert.Equal(t, "appointment_mismatch", apperr.CodeOf(err))

	ghostDoc := env.User(actor.RoleDoctor, "ghost")
	_, err = svc.Create(ctx, ghostDoc, reports.CreateInput{PetID: p.ID, Summary: "x"})
	assert.True(t, errors.Is(err, apperr.ErrDoctorProfileNotFound))

	storedPet, err := env.Store.Pets().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, storedPet.Reports)
}

func TestCreate_AppointmentOfAnotherDoctor(t *testing.T) {
	env := usecasetest.New(t)
	svc := reports.NewService(env.Deps, nil)
	ctx := context.Background()
	owner := env.Owner("ana")
	d1, _ := env.Doctor("d1")
	d2, d2ID := env.Doctor("d2")
	p := env.Pet(owner.ID, "Milo")
	appt := env.Appointment(p, d2ID, appointments.StatusConfirmed)

	_, err := svc.Create(ctx, d1, reports.CreateInput{PetID: p.ID, AppointmentID: appt.ID, Summary: "x"})
	assert.True(t, errors.Is(err, apperr.ErrNotAuthorized))

	_, d3ID := env.Doctor("d3")
	_, err = svc.Create(ctx, env.Admin(), reports.CreateInput{PetID: p.ID, AppointmentID: appt.ID, DoctorID: d3ID, Summary: "x"})
	assert.Equal(t, "appointment_mismatch", apperr.CodeOf(err))

	stored, err := env.Store.Appointments().GetByID(ctx, appt.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.ReportID)
	all, err := env.Store.Reports().List(ctx, domain.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)

	rep, err := svc.Create(ctx, d2, reports.CreateInput{PetID: p.ID, AppointmentID: appt.ID, Summary: "by d2"})
	require.NoError(t, err)
	assert.Equal(t, appt.ID, rep.AppointmentID)
}

func TestCreate_AdminNeedsDoctor(t *testing.T) {
	env := usecasetest.New(t)
	svc := reports.NewService(env.Deps, nil)
	ctx := context.Background()
	admin := env.Admin()
	owner := env.Owner("ana")
	_, docID := env.Doctor("vet")
	p := env.Pet(owner.ID, "Milo")

	_, err := svc.Create(ctx, admin, reports.CreateInput{PetID: p.ID, Summary: "x"})
	assert.Equal(t, "doctor_required", apperr.CodeOf(err))

	rep, err := svc.Create(ctx, admin, reports.CreateInput{PetID: p.ID, DoctorID: docID, Summary: "x"})
	require.NoError(t, err)
	assert.Equal(t, docID, rep.DoctorID)
}

func TestUpdate_OnlyAuthorDoctor(t *testing.T) {
	env := usecasetest.New(t)
	svc := reports.NewService(env.Deps, nil)
	ctx := context.Background()
	owner := env.Owner("ana")
	d1, _ := env.Doctor("d1")
	d2, _ := env.Doctor("d2")
	p := env.Pet(owner.ID, "Milo")

	rep, err := svc.Create(ctx, d2, reports.CreateInput{PetID: p.ID, Summary: "by d2"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, d1, rep.ID, reports.UpdateInput{Summary: ptr("hijacked")})
	assert.True(t, errors.Is(err, apperr.ErrNotAuthorized))

	got, err := svc.Update(ctx, d2, rep.ID, reports.UpdateInput{Diagnosis: ptr("otitis")})
	require.NoError(t, err)
	assert.Equal(t, "otitis", got.Diagnosis)
	assert.Equal(t, owner.ID, got.OwnerUserID)

	_, err = svc.Update(ctx, d2, rep.ID, reports.UpdateInput{Summary: ptr("  ")})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestReadScope(t *testing.T) {
	env := usecasetest.New(t)
	svc := reports.NewService(env.Deps, nil)
	ctx := context.Background()
	a := env.Owner("a")
	b := env.Owner("b")
	d1, _ := env.Doctor("d1")
	d2, _ := env.Doctor("d2")

	ra, err := svc.Create(ctx, d1, reports.CreateInput{PetID: env.Pet(a.ID, "Milo").ID, Summary: "a"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, d2, reports.CreateInput{PetID: env.Pet(b.ID, "Rex").ID, Summary: "b"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, b, ra.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotAuthorized))

	list, err := svc.List(ctx, a, domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, ra.ID, list[0].ID)

	list, err = svc.List(ctx, d2, domain.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = svc.List(ctx, env.Admin(), domain.ListFilter{OwnerUserID: b.ID})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestDelete_UnlinksEverything(t *testing.T) {
	env := usecasetest.New(t)
	svc := reports.NewService(env.Deps, nil)
	ctx := context.Background()
	owner := env.Owner("ana")
	doc, docID := env.Doctor("vet")
	other, _ := env.Doctor("other")
	p := env.Pet(owner.ID, "Milo")
	appt := env.Appointment(p, docID, appointments.StatusConfirmed)

	rep, err := svc.Create(ctx, doc, reports.CreateInput{PetID: p.ID, AppointmentID: appt.ID, Summary: "x"})
	require.NoError(t, err)

	err = svc.Delete(ctx, other, rep.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotAuthorized))

	err = svc.Delete(ctx, owner, rep.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotAuthorized))

	require.NoError(t, svc.Delete(ctx, doc, rep.ID))

	_, err = env.Store.Reports().GetByID(ctx, rep.ID)
	assert.True(t, errors.Is(err, storage.ErrNotFound))

	storedPet, err := env.Store.Pets().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, storedPet.Reports)

	storedAppt, err := env.Store.Appointments().GetByID(ctx, appt.ID)
	require.NoError(t, err)
	assert.Empty(t, storedAppt.ReportID)
}

func TestRender(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	owner := env.Owner("ana")
	doc, _ := env.Doctor("vet")
	p := env.Pet(owner.ID, "Milo")

	unconfigured := reports.NewService(env.Deps, nil)
	rep, err := unconfigured.Create(ctx, doc, reports.CreateInput{
		PetID:       p.ID,
		Summary:     "healthy",
		Medications: []domain.Medication{{Name: "vitamin", Dosage: "1 tab"}},
	})
	require.NoError(t, err)

	_, _, err = unconfigured.Render(ctx, owner, rep.ID)
	assert.True(t, errors.Is(err, render.ErrNotConfigured))

	svc := reports.NewService(env.Deps, textreport.New())
	body, ct, err := svc.Render(ctx, owner, rep.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ct, "text/plain"))
	assert.Contains(t, string(body), "Milo")
	assert.Contains(t, string(body), "healthy")
	assert.Contains(t, string(body), "vitamin")

	_, _, err = svc.Render(ctx, env.Owner("bob"), rep.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotAuthorized))
}
