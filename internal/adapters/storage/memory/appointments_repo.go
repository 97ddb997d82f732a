package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/ports/storage"
)

type appointmentRepo struct {
	v view
}

func (r *appointmentRepo) Create(ctx context.Context, a appointments.Appointment) error {
	return r.v.write(func(st *state) error {
		if strings.TrimSpace(a.ID) == "" {
			return errors.New("appointment id required")
		}
		if _, exists := st.appointments[a.ID]; exists {
			return storage.ErrDuplicate
		}
		st.appointments[a.ID] = a.Clone()
		return nil
	})
}

func (r *appointmentRepo) Update(ctx context.Context, a appointments.Appointment) error {
	return r.v.write(func(st *state) error {
		if _, exists := st.appointments[a.ID]; !exists {
			return storage.ErrNotFound
		}
		st.appointments[a.ID] = a.Clone()
		return nil
	})
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	var out appointments.Appointment
	err := r.v.read(func(st *state) error {
		a, ok := st.appointments[id]
		if !ok {
			return storage.ErrNotFound
		}
		out = a.Clone()
		return nil
	})
	return out, err
}

func (r *appointmentRepo) List(ctx context.Context, filter appointments.ListFilter) ([]appointments.Appointment, error) {
	out := make([]appointments.Appointment, 0)
	err := r.v.read(func(st *state) error {
		for _, a := range st.appointments {
			if filter.OwnerUserID != "" && a.OwnerUserID != filter.OwnerUserID {
				continue
			}
			if filter.DoctorID != "" && a.DoctorID != filter.DoctorID {
				continue
			}
			if filter.PetID != "" && a.PetID != filter.PetID {
				continue
			}
			if filter.Status != "" && a.Status != filter.Status {
				continue
			}
			if filter.Date != "" && a.Date != filter.Date {
				continue
			}
			out = append(out, a.Clone())
		}
		return nil
	})

	// Orden por fecha/hora de la cita
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, err
}

func (r *appointmentRepo) Delete(ctx context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.appointments[id]; !ok {
			return storage.ErrNotFound
		}
		delete(st.appointments, id)
		return nil
	})
}

func (r *appointmentRepo) DeleteByOwner(ctx context.Context, ownerUserID string) (int, error) {
	n := 0
	err := r.v.write(func(st *state) error {
		for id, a := range st.appointments {
			if a.OwnerUserID == ownerUserID {
				delete(st.appointments, id)
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *appointmentRepo) DeleteByPets(ctx context.Context, petIDs []string) (int, error) {
	if len(petIDs) == 0 {
		return 0, nil
	}
	ids := idSet(petIDs)

	n := 0
	err := r.v.write(func(st *state) error {
		for id, a := range st.appointments {
			if _, ok := ids[a.PetID]; ok {
				delete(st.appointments, id)
				n++
			}
		}
		return nil
	})
	return n, err
}
