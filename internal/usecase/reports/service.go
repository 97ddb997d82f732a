package reports

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"vet-clinic/internal/apperr"
	"vet-clinic/internal/domain/actor"
	"vet-clinic/internal/domain/policy"
	"vet-clinic/internal/domain/reports"
	"vet-clinic/internal/ports/notify"
	"vet-clinic/internal/ports/render"
	"vet-clinic/internal/ports/storage"
	"vet-clinic/internal/usecase"
)

var tracer = otel.Tracer("vet-clinic/usecase/reports")

type Service struct {
	usecase.Deps
	renderer render.ReportRenderer
}

// NewService: renderer puede ser nil; Render devuelve render.ErrNotConfigured.
func NewService(d usecase.Deps, renderer render.ReportRenderer) *Service {
	return &Service{Deps: d.Normalize(), renderer: renderer}
}

type CreateInput struct {
	PetID         string
	AppointmentID string
	DoctorID      string // solo admin; para un doctor es su propio perfil

	Date            time.Time
	Summary         string
	Diagnosis       string
	Prescription    string
	Notes           string
	Medications     []reports.Medication
	Recommendations []string
}

// CreatedEvent es el payload de report.created.
type CreatedEvent struct {
	ReportID      string `json:"report_id"`
	PetID         string `json:"pet_id"`
	OwnerUserID   string `json:"owner_user_id"`
	DoctorID      string `json:"doctor_id"`
	AppointmentID string `json:"appointment_id,omitempty"`
}

// Create vincula el reporte con la mascota (y la cita, si se cita) en una sola
// unidad de trabajo. El owner sale siempre de la mascota.
func (s *Service) Create(ctx context.Context, a actor.Actor, in CreateInput) (_ reports.Report, err error) {
	ctx, span := tracer.Start(ctx, "reports.create")
	defer endSpan(span, &err)

	sub, err := s.Policy.Resolve(ctx, a)
	if err != nil {
		return reports.Report{}, err
	}

	doctorID := sub.DoctorID
	if doctorID == "" {
		doctorID = strings.TrimSpace(in.DoctorID)
	}
	if err := sub.CanAct(policy.OpCreate, policy.Record{Entity: policy.EntityReport, DoctorIDs: []string{doctorID}}); err != nil {
		return reports.Report{}, err
	}
	if doctorID == "" {
		return reports.Report{}, apperr.Validation("doctor_required", "doctor_id is required")
	}

	petID := strings.TrimSpace(in.PetID)
	if petID == "" {
		return reports.Report{}, apperr.Validation("pet_required", "pet_id is required")
	}
	summary := strings.TrimSpace(in.Summary)
	if summary == "" {
		return reports.Report{}, apperr.Validation("summary_required", "summary is required")
	}
	span.SetAttributes(attribute.String("pet.id", petID), attribute.String("doctor.id", doctorID))

	now := s.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	rep := reports.Report{
		ID:              s.NewID(),
		PetID:           petID,
		DoctorID:        doctorID,
		AppointmentID:   strings.TrimSpace(in.AppointmentID),
		Date:            date,
		Summary:         summary,
		Diagnosis:       strings.TrimSpace(in.Diagnosis),
		Prescription:    strings.TrimSpace(in.Prescription),
		Notes:           strings.TrimSpace(in.Notes),
		Medications:     append([]reports.Medication(nil), in.Medications...),
		Recommendations: append([]string(nil), in.Recommendations...),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = s.Store.WithinTx(ctx, func(ctx context.Context, tx storage.Repos) error {
		if sub.DoctorID == "" {
			if _, err := tx.Doctors().GetByID(ctx, doctorID); err != nil {
				return usecase.Lookup(err, policy.EntityDoctor, doctorID)
			}
		}

		p, err := tx.Pets().GetByID(ctx, petID)
		if err != nil {
			return usecase.Lookup(err, policy.EntityPet, petID)
		}
		if strings.TrimSpace(p.OwnerUserID) == "" {
			return apperr.DataIntegrity("pet_owner_not_found", "pet "+petID+" has no owner")
		}
		rep.OwnerUserID = p.OwnerUserID

		if rep.AppointmentID != "" {
			appt, err := tx.Appointments().GetByID(ctx, rep.AppointmentID)
			if err != nil {
				return usecase.Lookup(err, policy.EntityAppointment, rep.AppointmentID)
			}
			if appt.PetID != p.ID {
				return apperr.Validation("appointment_mismatch", "appointment "+appt.ID+" belongs to another pet")
			}
			// Vincular escribe en la cita: solo su doctor asignado (o admin).
			if err := sub.CanAct(policy.OpUpdate, policy.AppointmentRecord(appt)); err != nil {
				return err
			}
			if appt.DoctorID != doctorID {
				return apperr.Validation("appointment_mismatch", "appointment "+appt.ID+" belongs to another doctor")
			}
			if appt.ReportID != "" {
				return apperr.Validation("appointment_has_report", "appointment "+appt.ID+" already has a report")
			}
			appt.ReportID = rep.ID
			appt.UpdatedAt = now
			if err := tx.Appointments().Update(ctx, appt); err != nil {
				return usecase.Persist(err, "link appointment")
			}
		}

		if err := tx.Reports().Create(ctx, rep); err != nil {
			return usecase.Persist(err, "create report")
		}

		p.Reports = append(p.Reports, rep.ID)
		p.UpdatedAt = now
		if err := tx.Pets().Update(ctx, p); err != nil {
			return usecase.Persist(err, "link pet")
		}
		return nil
	})
	if err != nil {
		return reports.Report{}, err
	}

	s.Log.Info("report created", map[string]any{"report_id": rep.ID, "pet_id": rep.PetID, "doctor_id": rep.DoctorID})
	s.Publish(ctx, notify.KeyReportCreated, CreatedEvent{
		ReportID:      rep.ID,
		PetID:         rep.PetID,
		OwnerUserID:   rep.OwnerUserID,
		DoctorID:      rep.DoctorID,
		AppointmentID: rep.AppointmentID,
	})
	return rep, nil
}

func (s *Service) Get(ctx context.Context, a actor.Actor, id string) (reports.Report, error) {
	sub, err := s.Policy.Resolve(ctx, a)
	if err != nil {
		return reports.Report{}, err
	}
	return s.load(ctx, sub, id)
}

func (s *Service) load(ctx context.Context, sub policy.Subject, id string) (reports.Report, error) {
	rep, err := s.Store.Reports().GetByID(ctx, id)
	if err != nil {
		return reports.Report{}, usecase.Lookup(err, policy.EntityReport, id)
	}
	if err := sub.CanAct(policy.OpRead, policy.ReportRecord(rep)); err != nil {
		return reports.Report{}, err
	}
	return rep, nil
}

// List: scope del actor + filtros de consulta (pet, doctor, owner).
func (s *Service) List(ctx context.Context, a actor.Actor, filter reports.ListFilter) ([]reports.Report, error) {
	sub, err := s.Policy.Resolve(ctx, a)
	if err != nil {
		return nil, err
	}
	f, ok := sub.Scope(policy.EntityReport).Reports(filter)
	if !ok {
		return []reports.Report{}, nil
	}
	out, err := s.Store.Reports().List(ctx, f)
	if err != nil {
		return nil, usecase.Persist(err, "list reports")
	}
	return out, nil
}

type UpdateInput struct {
	Date            *time.Time
	Summary         *string
	Diagnosis       *string
	Prescription    *string
	Notes           *string
	Medications     *[]reports.Medication
	Recommendations *[]string
}

// Update: doctor autor o admin. Pet, owner y doctor no cambian.
func (s *Service) Update(ctx context.Context, a actor.Actor, id string, in UpdateInput) (reports.Report, error) {
	sub, err := s.Policy.Resolve(ctx, a)
	if err != nil {
		return reports.Report{}, err
	}

	rep, err := s.Store.Reports().GetByID(ctx, id)
	if err != nil {
		return reports.Report{}, usecase.Lookup(err, policy.EntityReport, id)
	}
	if err := sub.CanAct(policy.OpUpdate, policy.ReportRecord(rep)); err != nil {
		return reports.Report{}, err
	}

	if in.Date != nil && !in.Date.IsZero() {
		rep.Date = *in.Date
	}
	if in.Summary != nil {
		summary := strings.TrimSpace(*in.Summary)
		if summary == "" {
			return reports.Report{}, apperr.Validation("summary_required", "summary cannot be empty")
		}
		rep.Summary = summary
	}
	if in.Diagnosis != nil {
		rep.Diagnosis = strings.TrimSpace(*in.Diagnosis)
	}
	if in.Prescription != nil {
		rep.Prescription = strings.TrimSpace(*in.Prescription)
	}
	if in.Notes != nil {
		rep.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.Medications != nil {
		rep.Medications = append([]reports.Medication(nil), (*in.Medications)...)
	}
	if in.Recommendations != nil {
		rep.Recommendations = append([]string(nil), (*in.Recommendations)...)
	}
	rep.UpdatedAt = s.Now()

	if err := s.Store.Reports().Update(ctx, rep); err != nil {
		return reports.Report{}, usecase.Persist(err, "update report")
	}
	return rep, nil
}

// Delete quita el id de pet.Reports y limpia la referencia de la cita.
func (s *Service) Delete(ctx context.Context, a actor.Actor, id string) (err error) {
	ctx, span := tracer.Start(ctx, "reports.delete", trace.WithAttributes(attribute.String("report.id", id)))
	defer endSpan(span, &err)

	sub, err := s.Policy.Resolve(ctx, a)
	if err != nil {
		return err
	}

	return s.Store.WithinTx(ctx, func(ctx context.Context, tx storage.Repos) error {
		rep, err := tx.Reports().GetByID(ctx, id)
		if err != nil {
			return usecase.Lookup(err, policy.EntityReport, id)
		}
		if err := sub.CanAct(policy.OpDelete, policy.ReportRecord(rep)); err != nil {
			return err
		}
		now := s.Now()

		p, err := tx.Pets().GetByID(ctx, rep.PetID)
		switch {
		case err == nil:
			if p.HasReport(rep.ID) {
				p.Reports = p.WithoutReport(rep.ID)
				p.UpdatedAt = now
				if err := tx.Pets().Update(ctx, p); err != nil {
					return usecase.Persist(err, "unlink pet")
				}
			}
		case !errors.Is(err, storage.ErrNotFound):
			return usecase.Persist(err, "load pet")
		}

		if rep.AppointmentID != "" {
			appt, err := tx.Appointments().GetByID(ctx, rep.AppointmentID)
			switch {
			case err == nil:
				if appt.ReportID == rep.ID {
					appt.ReportID = ""
					appt.UpdatedAt = now
					if err := tx.Appointments().Update(ctx, appt); err != nil {
						return usecase.Persist(err, "unlink appointment")
					}
				}
			case !errors.Is(err, storage.ErrNotFound):
				return usecase.Persist(err, "load appointment")
			}
		}

		if err := tx.Reports().Delete(ctx, rep.ID); err != nil {
			return usecase.Persist(err, "delete report")
		}
		return nil
	})
}

// Resolve arma el reporte con mascota, dueño y doctor poblados.
// El doctor puede no existir (cuenta eliminada); el resto es obligatorio.
func (s *Service) Resolve(ctx context.Context, a actor.Actor, id string) (render.ResolvedReport, error) {
	sub, err := s.Policy.Resolve(ctx, a)
	if err != nil {
		return render.ResolvedReport{}, err
	}
	rep, err := s.load(ctx, sub, id)
	if err != nil {
		return render.ResolvedReport{}, err
	}

	out := render.ResolvedReport{Report: rep}
	if out.Pet, err = s.Store.Pets().GetByID(ctx, rep.PetID); err != nil {
		return render.ResolvedReport{}, usecase.Lookup(err, policy.EntityPet, rep.PetID)
	}
	if out.Owner, err = s.Store.Users().GetByID(ctx, rep.OwnerUserID); err != nil {
		return render.ResolvedReport{}, usecase.Lookup(err, policy.EntityUser, rep.OwnerUserID)
	}

	d, err := s.Store.Doctors().GetByID(ctx, rep.DoctorID)
	switch {
	case err == nil:
		out.Doctor = d
		if u, err := s.Store.Users().GetByID(ctx, d.UserID); err == nil {
			out.DoctorUser = u
		} else if !errors.Is(err, storage.ErrNotFound) {
			return render.ResolvedReport{}, usecase.Persist(err, "load doctor user")
		}
	case !errors.Is(err, storage.ErrNotFound):
		return render.ResolvedReport{}, usecase.Persist(err, "load doctor")
	}
	return out, nil
}

// Render aplica el mismo chequeo de lectura y delega en el renderer.
func (s *Service) Render(ctx context.Context, a actor.Actor, id string) (body []byte, contentType string, err error) {
	ctx, span := tracer.Start(ctx, "reports.render", trace.WithAttributes(attribute.String("report.id", id)))
	defer endSpan(span, &err)

	resolved, err := s.Resolve(ctx, a, id)
	if err != nil {
		return nil, "", err
	}
	if s.renderer == nil {
		return nil, "", render.ErrNotConfigured
	}
	body, err = s.renderer.Render(ctx, resolved)
	if err != nil {
		return nil, "", usecase.Persist(err, "render report")
	}
	return body, s.renderer.ContentType(), nil
}

func endSpan(span trace.Span, err *error) {
	if err != nil && *err != nil {
		span.RecordError(*err)
		span.SetStatus(codes.Error, (*err).Error())
	}
	span.End()
}
