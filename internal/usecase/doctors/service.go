package doctors

import (
	"context"
	"errors"
	"strings"

	"vet-clinic/internal/apperr"
	"vet-clinic/internal/domain/actor"
	"vet-clinic/internal/domain/doctors"
	"vet-clinic/internal/domain/policy"
	"vet-clinic/internal/ports/storage"
	"vet-clinic/internal/usecase"
)

type Service struct {
	usecase.Deps
}

func NewService(d usecase.Deps) *Service {
	return &Service{Deps: d.Normalize()}
}

type ProfileInput struct {
	Specialization  *string
	ExperienceYears *int
	ConsultationFee *float64
	AvailableDays   *[]string
	AvailableTimes  *[]string
	LeaveDays       *[]string
	Bio             *string
}

// CreateProfile crea el perfil de un usuario con rol doctor (uno por usuario).
func (s *Service) CreateProfile(ctx context.Context, a actor.Actor, userID string, in ProfileInput) (doctors.Doctor, error) {
	sub, err := s.Policy.Resolve(ctx, a)
	if errors.Is(err, apperr.ErrDoctorProfileNotFound) {
		// Es justamente lo que viene a crear.
		sub, err = policy.Subject{Actor: a, Caps: a.Capabilities()}, nil
	}
	if err != nil {
		return doctors.Doctor{}, err
	}
	if err := sub.CanAct(policy.OpCreate, policy.Record{Entity: policy.EntityDoctor, OwnerID: userID}); err != nil {
		return doctors.Doctor{}, err
	}

	var out doctors.Doctor
	err = s.Store.WithinTx(ctx, func(ctx context.Context, tx storage.Repos) error {
		u, err := tx.Users().GetByID(ctx, userID)
		if err != nil {
			return usecase.Lookup(err, policy.EntityUser, userID)
		}
		if u.Role != actor.RoleDoctor {
			return apperr.Validation("not_a_doctor", "user "+userID+" does not have the doctor role")
		}

		now := s.Now()
		d := doctors.Doctor{ID: s.NewID(), UserID: userID, CreatedAt: now, UpdatedAt: now}
		if err := apply(&d, in); err != nil {
			return err
		}
		if err := tx.Doctors().Create(ctx, d); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				return apperr.Validation("profile_exists", "user "+userID+" already has a doctor profile")
			}
			return usecase.Persist(err, "create doctor profile")
		}
		out = d
		return nil
	})
	if err != nil {
		return doctors.Doctor{}, err
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, a actor.Actor, id string) (doctors.Doctor, error) {
	sub, err := s.Policy.Resolve(ctx, a)
	if err != nil {
		return doctors.Doctor{}, err
	}
	d, err := s.Store.Doctors().GetByID(ctx, id)
	if err != nil {
		return doctors.Doctor{}, usecase.Lookup(err, policy.EntityDoctor, id)
	}
	if err := sub.CanAct(policy.OpRead, policy.DoctorRecord(d)); err != nil {
		return doctors.Doctor{}, err
	}
	return d, nil
}

// List es visible para cualquier actor autenticado (para reservar citas).
// onlyVerified filtra los no verificados.
func (s *Service) List(ctx context.Context, a actor.Actor, onlyVerified bool) ([]doctors.Doctor, error) {
	if _, err := s.Policy.Resolve(ctx, a); err != nil {
		return nil, err
	}
	items, err := s.Store.Doctors().List(ctx)
	if err != nil {
		return nil, usecase.Persist(err, "list doctors")
	}
	if !onlyVerified {
		return items, nil
	}
	out := make([]doctors.Doctor, 0, len(items))
	for _, d := range items {
		if d.Verified {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, a actor.Actor, id string, in ProfileInput) (doctors.Doctor, error) {
	sub, err := s.Policy.Resolve(ctx, a)
	if err != nil {
		return doctors.Doctor{}, err
	}
	return s.mutate(ctx, id, func(d *doctors.Doctor) error {
		if err := sub.CanAct(policy.OpUpdate, policy.DoctorRecord(*d)); err != nil {
			return err
		}
		return apply(d, in)
	})
}

// SetVerified es solo admin.
func (s *Service) SetVerified(ctx context.Context, a actor.Actor, id string, verified bool) (doctors.Doctor, error) {
	sub, err := s.Policy.Resolve(ctx, a)
	if err != nil {
		return doctors.Doctor{}, err
	}
	return s.mutate(ctx, id, func(d *doctors.Doctor) error {
		if err := sub.CanAct(policy.OpVerifyDoctor, policy.DoctorRecord(*d)); err != nil {
			return err
		}
		d.Verified = verified
		return nil
	})
}

func (s *Service) mutate(ctx context.Context, id string, fn func(d *doctors.Doctor) error) (doctors.Doctor, error) {
	var out doctors.Doctor
	err := s.Store.WithinTx(ctx, func(ctx context.Context, tx storage.Repos) error {
		d, err := tx.Doctors().GetByID(ctx, id)
		if err != nil {
			return usecase.Lookup(err, policy.EntityDoctor, id)
		}
		if err := fn(&d); err != nil {
			return err
		}
		d.UpdatedAt = s.Now()
		if err := tx.Doctors().Update(ctx, d); err != nil {
			return usecase.Persist(err, "update doctor")
		}
		out = d
		return nil
	})
	if err != nil {
		return doctors.Doctor{}, err
	}
	return out, nil
}

func apply(d *doctors.Doctor, in ProfileInput) error {
	if in.Specialization != nil {
		d.Specialization = strings.TrimSpace(*in.Specialization)
	}
	if in.ExperienceYears != nil {
		if *in.ExperienceYears < 0 {
			return apperr.Validation("invalid_experience", "experience_years cannot be negative")
		}
		d.ExperienceYears = *in.ExperienceYears
	}
	if in.ConsultationFee != nil {
		if *in.ConsultationFee < 0 {
			return apperr.Validation("invalid_fee", "consultation_fee cannot be negative")
		}
		d.ConsultationFee = *in.ConsultationFee
	}
	if in.AvailableDays != nil {
		d.AvailableDays = append([]string(nil), (*in.AvailableDays)...)
	}
	if in.AvailableTimes != nil {
		d.AvailableTimes = append([]string(nil), (*in.AvailableTimes)...)
	}
	if in.LeaveDays != nil {
		d.LeaveDays = append([]string(nil), (*in.LeaveDays)...)
	}
	if in.Bio != nil {
		d.Bio = strings.TrimSpace(*in.Bio)
	}
	return nil
}
