package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"vet-clinic/internal/domain/doctors"
	"vet-clinic/internal/ports/storage"
)

type doctorRepo struct {
	v view
}

func (r *doctorRepo) Create(ctx context.Context, d doctors.Doctor) error {
	return r.v.write(func(st *state) error {
		if strings.TrimSpace(d.ID) == "" {
			return errors.New("doctor id required")
		}
		if _, exists := st.doctors[d.ID]; exists {
			return storage.ErrDuplicate
		}
		for _, other := range st.doctors {
			if other.UserID == d.UserID {
				return storage.ErrDuplicate
			}
		}
		st.doctors[d.ID] = d.Clone()
		return nil
	})
}

func (r *doctorRepo) Update(ctx context.Context, d doctors.Doctor) error {
	return r.v.write(func(st *state) error {
		if _, exists := st.doctors[d.ID]; !exists {
			return storage.ErrNotFound
		}
		st.doctors[d.ID] = d.Clone()
		return nil
	})
}

func (r *doctorRepo) GetByID(ctx context.Context, id string) (doctors.Doctor, error) {
	var out doctors.Doctor
	err := r.v.read(func(st *state) error {
		d, ok := st.doctors[id]
		if !ok {
			return storage.ErrNotFound
		}
		out = d.Clone()
		return nil
	})
	return out, err
}

func (r *doctorRepo) GetByUserID(ctx context.Context, userID string) (doctors.Doctor, error) {
	var out doctors.Doctor
	err := r.v.read(func(st *state) error {
		for _, d := range st.doctors {
			if d.UserID == userID {
				out = d.Clone()
				return nil
			}
		}
		return storage.ErrNotFound
	})
	return out, err
}

func (r *doctorRepo) List(ctx context.Context) ([]doctors.Doctor, error) {
	out := make([]doctors.Doctor, 0)
	err := r.v.read(func(st *state) error {
		for _, d := range st.doctors {
			out = append(out, d.Clone())
		}
		return nil
	})

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, err
}

func (r *doctorRepo) DeleteByUserID(ctx context.Context, userID string) (int, error) {
	n := 0
	err := r.v.write(func(st *state) error {
		for id, d := range st.doctors {
			if d.UserID == userID {
				delete(st.doctors, id)
				n++
			}
		}
		return nil
	})
	return n, err
}
