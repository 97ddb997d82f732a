package appointments

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"vet-clinic/internal/apperr"
	"vet-clinic/internal/domain/actor"
	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/policy"
	"vet-clinic/internal/ports/notify"
	"vet-clinic/internal/ports/storage"
	"vet-clinic/internal/usecase"
)

var tracer = otel.Tracer("vet-clinic/usecase/appointments")

type Service struct {
	usecase.Deps
}

func NewService(d usecase.Deps) *Service {
	return &Service{Deps: d.Normalize()}
}

type BookInput struct {
	PetID    string
	DoctorID string
	Date     string // YYYY-MM-DD
	Time     string // HH:MM
	Reason   string
	Notes    string
}

// Event es el payload publicado en cada transición.
type Event struct {
	AppointmentID string              `json:"appointment_id"`
	PetID         string              `json:"pet_id"`
	DoctorID      string              `json:"doctor_id"`
	OwnerUserID   string              `json:"owner_user_id"`
	Date          string              `json:"date"`
	Time          string              `json:"time"`
	Status        appointments.Status `json:"status"`
	ActorID       string              `json:"actor_id"`
}

// Book crea la cita en pending. El owner siempre es el dueño de la mascota.
func (s *Service) Book(ctx context.Context, a actor.Actor, in BookInput) (appointments.Appointment, error) {
	sub, err := s.Policy.Resolve(ctx, a)
	if err != nil {
		return appointments.Appointment{}, err
	}

	petID := strings.TrimSpace(in.PetID)
	doctorID := strings.TrimSpace(in.DoctorID)
	if petID == "" || doctorID == "" {
		return appointments.Appointment{}, apperr.Validation("missing_reference", "pet_id and doctor_id are required")
	}
	if err := validateDate(in.Date); err != nil {
		return appointments.Appointment{}, err
	}
	if err := validateTime(in.Time, true); err != nil {
		return appointments.Appointment{}, err
	}

	now := s.Now()
	appt := appointments.Appointment{
		ID:        s.NewID(),
		PetID:     petID,
		DoctorID:  doctorID,
		Date:      in.Date,
		Time:      in.Time,
		Reason:    strings.TrimSpace(in.Reason),
		Notes:     strings.TrimSpace(in.Notes),
		Status:    appointments.InitialStatus(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Mascota, doctor e inserción en una unidad de trabajo: una cascada no
	// puede colarse entre la lectura y el alta.
	err = s.Store.WithinTx(ctx, func(ctx context.Context, tx storage.Repos) error {
		p, err := tx.Pets().GetByID(ctx, petID)
		if err != nil {
			return usecase.Lookup(err, policy.EntityPet, petID)
		}
		rec := policy.Record{Entity: policy.EntityAppointment, OwnerID: p.OwnerUserID, DoctorIDs: []string{doctorID}}
		if err := sub.CanAct(policy.OpCreate, rec); err != nil {
			return err
		}
		if _, err := tx.Doctors().GetByID(ctx, doctorID); err != nil {
			return usecase.Lookup(err, policy.EntityDoctor, doctorID)
		}
		appt.OwnerUserID = p.OwnerUserID
		if err := tx.Appointments().Create(ctx, appt); err != nil {
			return usecase.Persist(err, "create appointment")
		}
		return nil
	})
	if err != nil {
		return appointments.Appointment{}, err
	}

	s.Publish(ctx, notify.KeyAppointmentBooked, eventFor(appt, a))
	return appt, nil
}

func (s *Service) Get(ctx context.Context, a actor.Actor, id string) (appointments.Appointment, error) {
	sub, err := s.Policy.Resolve(ctx, a)
	if err != nil {
		return appointments.Appointment{}, err
	}
	appt, err := s.Store.Appointments().GetByID(ctx, id)
	if err != nil {
		return appointments.Appointment{}, usecase.Lookup(err, policy.EntityAppointment, id)
	}
	if err := sub.CanAct(policy.OpRead, policy.AppointmentRecord(appt)); err != nil {
		return appointments.Appointment{}, err
	}
	return appt, nil
}

func (s *Service) List(ctx context.Context, a actor.Actor, filter appointments.ListFilter) ([]appointments.Appointment, error) {
	sub, err := s.Policy.Resolve(ctx, a)
	if err != nil {
		return nil, err
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperr.Validation("invalid_status", "unknown status "+string(filter.Status))
	}
	f, ok := sub.Scope(policy.EntityAppointment).Appointments(filter)
	if !ok {
		return []appointments.Appointment{}, nil
	}
	out, err := s.Store.Appointments().List(ctx, f)
	if err != nil {
		return nil, usecase.Persist(err, "list appointments")
	}
	return out, nil
}

func (s *Service) Confirm(ctx context.Context, a actor.Actor, id string) (appointments.Appointment, error) {
	return s.transition(ctx, a, id, policy.OpConfirm, notify.KeyAppointmentConfirmed, func(appt *appointments.Appointment, now time.Time) error {
		return appointments.Confirm(appt, now)
	})
}

func (s *Service) Cancel(ctx context.Context, a actor.Actor, id string) (appointments.Appointment, error) {
	return s.transition(ctx, a, id, policy.OpCancel, notify.KeyAppointmentCancelled, func(appt *appointments.Appointment, now time.Time) error {
		return appointments.Cancel(appt, now)
	})
}

type RescheduleInput struct {
	Date   string
	Time   string // opcional
	Reason string
}

// Reschedule guarda la fecha previa y vuelve la cita a pending.
func (s *Service) Reschedule(ctx context.Context, a actor.Actor, id string, in RescheduleInput) (appointments.Appointment, error) {
	if err := validateDate(in.Date); err != nil {
		return appointments.Appointment{}, err
	}
	if err := validateTime(in.Time, false); err != nil {
		return appointments.Appointment{}, err
	}
	return s.transition(ctx, a, id, policy.OpReschedule, notify.KeyAppointmentRescheduled, func(appt *appointments.Appointment, now time.Time) error {
		return appointments.Reschedule(appt, in.Date, in.Time, strings.TrimSpace(in.Reason), now)
	})
}

// transition: leer, autorizar, aplicar, escribir. Sin control de concurrencia;
// dos transiciones simultáneas sobre la misma cita: gana la última escritura.
func (s *Service) transition(
	ctx context.Context,
	a actor.Actor,
	id string,
	op policy.Operation,
	key string,
	apply func(appt *appointments.Appointment, now time.Time) error,
) (appointments.Appointment, error) {
	ctx, span := tracer.Start(ctx, "appointments."+string(op))
	defer span.End()
	span.SetAttributes(attribute.String("appointment.id", id), attribute.String("actor.id", a.ID))

	out, err := s.doTransition(ctx, a, id, op, apply)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return appointments.Appointment{}, err
	}

	s.Log.Info("appointment transition", map[string]any{
		"appointment_id": out.ID,
		"op":             string(op),
		"status":         string(out.Status),
		"actor_id":       a.ID,
	})
	s.Publish(ctx, key, eventFor(out, a))
	return out, nil
}

func (s *Service) doTransition(
	ctx context.Context,
	a actor.Actor,
	id string,
	op policy.Operation,
	apply func(appt *appointments.Appointment, now time.Time) error,
) (appointments.Appointment, error) {
	sub, err := s.Policy.Resolve(ctx, a)
	if err != nil {
		return appointments.Appointment{}, err
	}
	appt, err := s.Store.Appointments().GetByID(ctx, id)
	if err != nil {
		return appointments.Appointment{}, usecase.Lookup(err, policy.EntityAppointment, id)
	}
	if err := sub.CanAct(op, policy.AppointmentRecord(appt)); err != nil {
		return appointments.Appointment{}, err
	}
	if err := apply(&appt, s.Now()); err != nil {
		return appointments.Appointment{}, err
	}
	if err := s.Store.Appointments().Update(ctx, appt); err != nil {
		return appointments.Appointment{}, usecase.Persist(err, "update appointment")
	}
	return appt, nil
}

// Delete borra físicamente. Si la cita tenía reporte, el reporte pierde la referencia.
func (s *Service) Delete(ctx context.Context, a actor.Actor, id string) error {
	sub, err := s.Policy.Resolve(ctx, a)
	if err != nil {
		return err
	}

	var deleted appointments.Appointment
	err = s.Store.WithinTx(ctx, func(ctx context.Context, tx storage.Repos) error {
		appt, err := tx.Appointments().GetByID(ctx, id)
		if err != nil {
			return usecase.Lookup(err, policy.EntityAppointment, id)
		}
		if err := sub.CanAct(policy.OpDelete, policy.AppointmentRecord(appt)); err != nil {
			return err
		}

		if appt.ReportID != "" {
			rep, err := tx.Reports().GetByID(ctx, appt.ReportID)
			switch {
			case err == nil && rep.AppointmentID == appt.ID:
				rep.AppointmentID = ""
				rep.UpdatedAt = s.Now()
				if err := tx.Reports().Update(ctx, rep); err != nil {
					return usecase.Persist(err, "unlink report")
				}
			case err != nil && !errors.Is(err, storage.ErrNotFound):
				return usecase.Persist(err, "load report")
			}
		}

		if err := tx.Appointments().Delete(ctx, appt.ID); err != nil {
			return usecase.Persist(err, "delete appointment")
		}
		deleted = appt
		return nil
	})
	if err != nil {
		return err
	}

	s.Publish(ctx, notify.KeyAppointmentDeleted, eventFor(deleted, a))
	return nil
}

func eventFor(appt appointments.Appointment, a actor.Actor) Event {
	return Event{
		AppointmentID: appt.ID,
		PetID:         appt.PetID,
		DoctorID:      appt.DoctorID,
		OwnerUserID:   appt.OwnerUserID,
		Date:          appt.Date,
		Time:          appt.Time,
		Status:        appt.Status,
		ActorID:       a.ID,
	}
}

func validateDate(raw string) error {
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(raw)); err != nil || strings.TrimSpace(raw) != raw {
		return apperr.Validation("invalid_date", "date must be YYYY-MM-DD")
	}
	return nil
}

func validateTime(raw string, required bool) error {
	if raw == "" && !required {
		return nil
	}
	if _, err := time.Parse("15:04", raw); err != nil {
		return apperr.Validation("invalid_time", "time must be HH:MM")
	}
	return nil
}
