// Package lifecycle borra usuarios y mascotas junto con todo lo que cuelga de
// ellos, en una sola unidad de trabajo.
package lifecycle

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"vet-clinic/internal/domain/actor"
	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/domain/policy"
	"vet-clinic/internal/domain/users"
	"vet-clinic/internal/ports/notify"
	"vet-clinic/internal/ports/storage"
	"vet-clinic/internal/usecase"
)

var tracer = otel.Tracer("vet-clinic/usecase/lifecycle")

type Service struct {
	usecase.Deps
}

func NewService(d usecase.Deps) *Service {
	return &Service{Deps: d.Normalize()}
}

// CascadeSummary cuenta lo que se borró junto con la entidad principal.
type CascadeSummary struct {
	DoctorProfileDeleted bool `json:"doctor_profile_deleted"`
	PetsDeleted          int  `json:"pets_deleted"`
	ReportsDeleted       int  `json:"reports_deleted"`
	AppointmentsDeleted  int  `json:"appointments_deleted"`
}

func (c CascadeSummary) fields() map[string]any {
	return map[string]any{
		"doctor_profile_deleted": c.DoctorProfileDeleted,
		"pets_deleted":           c.PetsDeleted,
		"reports_deleted":        c.ReportsDeleted,
		"appointments_deleted":   c.AppointmentsDeleted,
	}
}

func (c CascadeSummary) attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Bool("cascade.doctor_profile", c.DoctorProfileDeleted),
		attribute.Int("cascade.pets", c.PetsDeleted),
		attribute.Int("cascade.reports", c.ReportsDeleted),
		attribute.Int("cascade.appointments", c.AppointmentsDeleted),
	}
}

// UserDeletedEvent es el payload de user.deleted.
type UserDeletedEvent struct {
	UserID    string         `json:"user_id"`
	Role      actor.Role     `json:"role"`
	DeletedBy string         `json:"deleted_by"`
	Summary   CascadeSummary `json:"summary"`
}

// PetDeletedEvent es el payload de pet.deleted.
type PetDeletedEvent struct {
	PetID       string         `json:"pet_id"`
	OwnerUserID string         `json:"owner_user_id"`
	DeletedBy   string         `json:"deleted_by"`
	Summary     CascadeSummary `json:"summary"`
}

// DeleteUser es solo para admin.
//   - perfil de doctor: se borra; sus citas y reportes quedan como historia.
//   - mascotas del usuario: se borran junto con sus reportes y las citas del
//     dueño y de esas mascotas.
//
// Si algo falla no queda nada borrado.
func (s *Service) DeleteUser(ctx context.Context, a actor.Actor, id string) (_ users.User, _ CascadeSummary, err error) {
	ctx, span := tracer.Start(ctx, "lifecycle.delete_user", trace.WithAttributes(attribute.String("user.id", id)))
	defer endSpan(span, &err)

	sub, err := s.Policy.Resolve(ctx, a)
	if err != nil {
		return users.User{}, CascadeSummary{}, err
	}

	var (
		target  users.User
		summary CascadeSummary
	)
	err = s.Store.WithinTx(ctx, func(ctx context.Context, tx storage.Repos) error {
		u, err := tx.Users().GetByID(ctx, id)
		if err != nil {
			return usecase.Lookup(err, policy.EntityUser, id)
		}
		if err := sub.CanAct(policy.OpDeleteUser, policy.UserRecord(u)); err != nil {
			return err
		}

		// La cascada va por OwnerUserID y no por el rol actual: un cambio de
		// rol no puede dejar mascotas colgando de un usuario borrado.
		owned, err := tx.Pets().ListByOwner(ctx, u.ID)
		if err != nil {
			return usecase.Persist(err, "list owner pets")
		}
		if summary, err = deletePets(ctx, tx, u.ID, petIDs(owned)); err != nil {
			return err
		}
		if summary.PetsDeleted, err = tx.Pets().DeleteByOwner(ctx, u.ID); err != nil {
			return usecase.Persist(err, "delete pets")
		}

		n, err := tx.Doctors().DeleteByUserID(ctx, u.ID)
		if err != nil {
			return usecase.Persist(err, "delete doctor profile")
		}
		summary.DoctorProfileDeleted = n > 0

		if err := tx.Users().Delete(ctx, u.ID); err != nil {
			return usecase.Persist(err, "delete user")
		}
		target = u
		return nil
	})
	if err != nil {
		return users.User{}, CascadeSummary{}, err
	}

	span.SetAttributes(summary.attributes()...)
	fields := summary.fields()
	fields["user_id"] = target.ID
	fields["role"] = string(target.Role)
	fields["deleted_by"] = a.ID
	s.Log.Info("user deleted", fields)
	s.Publish(ctx, notify.KeyUserDeleted, UserDeletedEvent{
		UserID:    target.ID,
		Role:      target.Role,
		DeletedBy: a.ID,
		Summary:   summary,
	})
	return target, summary, nil
}

// DeletePet: dueño o admin. Se lleva los reportes y citas de la mascota.
func (s *Service) DeletePet(ctx context.Context, a actor.Actor, petID string) (_ pets.Pet, _ CascadeSummary, err error) {
	ctx, span := tracer.Start(ctx, "lifecycle.delete_pet", trace.WithAttributes(attribute.String("pet.id", petID)))
	defer endSpan(span, &err)

	sub, err := s.Policy.Resolve(ctx, a)
	if err != nil {
		return pets.Pet{}, CascadeSummary{}, err
	}

	var (
		target  pets.Pet
		summary CascadeSummary
	)
	err = s.Store.WithinTx(ctx, func(ctx context.Context, tx storage.Repos) error {
		p, err := tx.Pets().GetByID(ctx, petID)
		if err != nil {
			return usecase.Lookup(err, policy.EntityPet, petID)
		}
		if err := sub.CanAct(policy.OpDelete, policy.PetRecord(p)); err != nil {
			return err
		}

		if summary, err = deletePets(ctx, tx, "", []string{p.ID}); err != nil {
			return err
		}
		if err := tx.Pets().Delete(ctx, p.ID); err != nil {
			return usecase.Persist(err, "delete pet")
		}
		summary.PetsDeleted = 1
		target = p
		return nil
	})
	if err != nil {
		return pets.Pet{}, CascadeSummary{}, err
	}

	span.SetAttributes(summary.attributes()...)
	fields := summary.fields()
	fields["pet_id"] = target.ID
	fields["owner_user_id"] = target.OwnerUserID
	fields["deleted_by"] = a.ID
	s.Log.Info("pet deleted", fields)
	s.Publish(ctx, notify.KeyPetDeleted, PetDeletedEvent{
		PetID:       target.ID,
		OwnerUserID: target.OwnerUserID,
		DeletedBy:   a.ID,
		Summary:     summary,
	})
	return target, summary, nil
}

// deletePets borra reportes y citas de las mascotas (y las citas del dueño,
// si ownerID no es vacío). Las mascotas en sí las borra el llamador.
func deletePets(ctx context.Context, tx storage.Repos, ownerID string, ids []string) (CascadeSummary, error) {
	var summary CascadeSummary

	n, err := tx.Reports().DeleteByPets(ctx, ids)
	if err != nil {
		return summary, usecase.Persist(err, "delete reports")
	}
	summary.ReportsDeleted = n

	if ownerID != "" {
		n, err = tx.Appointments().DeleteByOwner(ctx, ownerID)
		if err != nil {
			return summary, usecase.Persist(err, "delete owner appointments")
		}
		summary.AppointmentsDeleted += n
	}
	// Citas de esas mascotas que no tengan al dueño como owner (datos viejos).
	n, err = tx.Appointments().DeleteByPets(ctx, ids)
	if err != nil {
		return summary, usecase.Persist(err, "delete pet appointments")
	}
	summary.AppointmentsDeleted += n
	return summary, nil
}

func petIDs(ps []pets.Pet) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func endSpan(span trace.Span, err *error) {
	if err != nil && *err != nil {
		span.RecordError(*err)
		span.SetStatus(codes.Error, (*err).Error())
	}
	span.End()
}
