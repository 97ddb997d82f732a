package policy

import (
	"context"
	"errors"
	"testing"

	"vet-clinic/internal/apperr"
	"vet-clinic/internal/domain/actor"
	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/doctors"
	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/domain/reports"
	"vet-clinic/internal/ports/storage"
)

type doctorsByUser map[string]doctors.Doctor

func (m doctorsByUser) GetByUserID(_ context.Context, userID string) (doctors.Doctor, error) {
	d, ok := m[userID]
	if !ok {
		return doctors.Doctor{}, storage.ErrNotFound
	}
	return d, nil
}

func newEvaluator() *Evaluator {
	return NewEvaluator(doctorsByUser{
		"doc-user-1": {ID: "doc-1", UserID: "doc-user-1"},
		"doc-user-2": {ID: "doc-2", UserID: "doc-user-2"},
	})
}

func resolve(t *testing.T, a actor.Actor) Subject {
	t.Helper()
	s, err := newEvaluator().Resolve(context.Background(), a)
	if err != nil {
		t.Fatalf("Resolve(%v): %v", a, err)
	}
	return s
}

func TestResolve_DoctorWithoutProfile(t *testing.T) {
	_, err := newEvaluator().Resolve(context.Background(), actor.New("doc-user-9", actor.RoleDoctor))
	if !errors.Is(err, apperr.ErrDoctorProfileNotFound) {
		t.Fatalf("expected DoctorProfileNotFound, got %v", err)
	}
}

func TestResolve_RejectsAnonymousAndUnknownRole(t *testing.T) {
	ev := newEvaluator()
	if _, err := ev.Resolve(context.Background(), actor.Actor{}); !errors.Is(err, apperr.ErrNotAuthorized) {
		t.Fatalf("expected NotAuthorized for zero actor, got %v", err)
	}
	if _, err := ev.Resolve(context.Background(), actor.New("u1", actor.Role("root"))); !errors.Is(err, apperr.ErrNotAuthorized) {
		t.Fatalf("expected NotAuthorized for unknown role, got %v", err)
	}
}

func TestScope_PerRole(t *testing.T) {
	owner := resolve(t, actor.New("owner-1", actor.RolePetOwner))
	doc := resolve(t, actor.New("doc-user-1", actor.RoleDoctor))
	admin := resolve(t, actor.New("admin-1", actor.RoleAdmin))

	if f := owner.Scope(EntityPet); f.OwnerID != "owner-1" || f.All {
		t.Fatalf("owner pet scope: %#v", f)
	}
	if f := owner.Scope(EntityReport); f.OwnerID != "owner-1" {
		t.Fatalf("owner report scope: %#v", f)
	}
	if f := doc.Scope(EntityAppointment); f.DoctorID != "doc-1" {
		t.Fatalf("doctor appointment scope: %#v", f)
	}
	if f := doc.Scope(EntityPet); f.ViaDoctorID != "doc-1" || f.OwnerID != "" {
		t.Fatalf("doctor pet scope: %#v", f)
	}
	if f := admin.Scope(EntityReport); !f.All {
		t.Fatalf("admin scope should be unrestricted: %#v", f)
	}
}

func TestScope_IntersectsQueryFilters(t *testing.T) {
	owner := resolve(t, actor.New("owner-1", actor.RolePetOwner))

	got, ok := owner.Scope(EntityAppointment).Appointments(appointments.ListFilter{})
	if !ok || got.OwnerUserID != "owner-1" {
		t.Fatalf("expected owner filter, got %#v ok=%v", got, ok)
	}

	if _, ok := owner.Scope(EntityReport).Reports(reports.ListFilter{OwnerUserID: "owner-2"}); ok {
		t.Fatalf("expected empty intersection for other owner")
	}

	doc := resolve(t, actor.New("doc-user-1", actor.RoleDoctor))
	got2, ok := doc.Scope(EntityReport).Reports(reports.ListFilter{PetID: "pet-1"})
	if !ok || got2.DoctorID != "doc-1" || got2.PetID != "pet-1" {
		t.Fatalf("expected doctor + pet filter, got %#v", got2)
	}

	if _, ok := doc.Scope(EntityAppointment).Appointments(appointments.ListFilter{DoctorID: "doc-2"}); ok {
		t.Fatalf("doctor must not browse another doctor's appointments")
	}
}

func TestCanAct_OwnerCannotTouchOthersRecords(t *testing.T) {
	owner := resolve(t, actor.New("owner-1", actor.RolePetOwner))

	other := pets.Pet{ID: "pet-2", OwnerUserID: "owner-2"}
	if err := owner.CanAct(OpRead, PetRecord(other)); !errors.Is(err, apperr.ErrNotAuthorized) {
		t.Fatalf("expected NotAuthorized reading other pet, got %v", err)
	}

	ap := appointments.Appointment{ID: "ap-1", OwnerUserID: "owner-2", DoctorID: "doc-1"}
	if err := owner.CanAct(OpRead, AppointmentRecord(ap)); !errors.Is(err, apperr.ErrNotAuthorized) {
		t.Fatalf("expected NotAuthorized reading other appointment, got %v", err)
	}

	rep := reports.Report{ID: "r-1", OwnerUserID: "owner-2", DoctorID: "doc-1"}
	if err := owner.CanAct(OpRead, ReportRecord(rep)); !errors.Is(err, apperr.ErrNotAuthorized) {
		t.Fatalf("expected NotAuthorized reading other report, got %v", err)
	}
}

func TestCanAct_OwnerOnOwnRecords(t *testing.T) {
	owner := resolve(t, actor.New("owner-1", actor.RolePetOwner))
	ap := AppointmentRecord(appointments.Appointment{ID: "ap-1", OwnerUserID: "owner-1", DoctorID: "doc-1"})

	for _, op := range []Operation{OpRead, OpCancel, OpReschedule, OpDelete} {
		if err := owner.CanAct(op, ap); err != nil {
			t.Fatalf("owner %s own appointment: %v", op, err)
		}
	}
	if err := owner.CanAct(OpConfirm, ap); !errors.Is(err, apperr.ErrNotAuthorized) {
		t.Fatalf("owner must not confirm, got %v", err)
	}

	rep := ReportRecord(reports.Report{ID: "r-1", OwnerUserID: "owner-1", DoctorID: "doc-1"})
	if err := owner.CanAct(OpRead, rep); err != nil {
		t.Fatalf("owner reads own report: %v", err)
	}
	if err := owner.CanAct(OpUpdate, rep); !errors.Is(err, apperr.ErrNotAuthorized) {
		t.Fatalf("owner must not update reports, got %v", err)
	}
}

func TestCanAct_DoctorOnlyAssigned(t *testing.T) {
	d1 := resolve(t, actor.New("doc-user-1", actor.RoleDoctor))

	mine := ReportRecord(reports.Report{ID: "r-1", DoctorID: "doc-1", OwnerUserID: "o"})
	theirs := ReportRecord(reports.Report{ID: "r-2", DoctorID: "doc-2", OwnerUserID: "o"})

	if err := d1.CanAct(OpUpdate, mine); err != nil {
		t.Fatalf("doctor updates own report: %v", err)
	}
	if err := d1.CanAct(OpUpdate, theirs); !errors.Is(err, apperr.ErrNotAuthorized) {
		t.Fatalf("expected NotAuthorized for other doctor's report, got %v", err)
	}
	if err := d1.CanAct(OpCreate, Record{Entity: EntityReport}); err != nil {
		t.Fatalf("doctor may create reports: %v", err)
	}

	ap := AppointmentRecord(appointments.Appointment{ID: "ap", DoctorID: "doc-2", OwnerUserID: "o"})
	if err := d1.CanAct(OpConfirm, ap); !errors.Is(err, apperr.ErrNotAuthorized) {
		t.Fatalf("doctor must not confirm unassigned appointment, got %v", err)
	}

	pet := pets.Pet{ID: "p", OwnerUserID: "o"}
	if err := d1.CanAct(OpRead, PetRecord(pet)); !errors.Is(err, apperr.ErrNotAuthorized) {
		t.Fatalf("doctor must not read unassociated pet, got %v", err)
	}
	if err := d1.CanAct(OpRead, PetRecord(pet, "doc-1")); err != nil {
		t.Fatalf("doctor reads associated pet: %v", err)
	}
	if err := d1.CanAct(OpDelete, PetRecord(pet, "doc-1")); !errors.Is(err, apperr.ErrNotAuthorized) {
		t.Fatalf("doctor must not delete pets, got %v", err)
	}
}

func TestCanAct_AdminOnlyOperations(t *testing.T) {
	admin := resolve(t, actor.New("admin-1", actor.RoleAdmin))
	owner := resolve(t, actor.New("owner-1", actor.RolePetOwner))
	doc := resolve(t, actor.New("doc-user-1", actor.RoleDoctor))

	for _, op := range []Operation{OpListUsers, OpDeleteUser, OpChangeRole, OpVerifyDoctor} {
		if err := admin.CanAct(op, Record{Entity: EntityUser}); err != nil {
			t.Fatalf("admin %s: %v", op, err)
		}
		for _, s := range []Subject{owner, doc} {
			if err := s.CanAct(op, Record{Entity: EntityUser, OwnerID: s.Actor.ID}); !errors.Is(err, apperr.ErrNotAuthorized) {
				t.Fatalf("%s must not %s, got %v", s.Actor.Role, op, err)
			}
		}
	}
}
