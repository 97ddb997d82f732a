package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"vet-clinic/internal/domain/reports"
	"vet-clinic/internal/ports/storage"
)

type reportRepo struct {
	v view
}

func (r *reportRepo) Create(ctx context.Context, rep reports.Report) error {
	return r.v.write(func(st *state) error {
		if strings.TrimSpace(rep.ID) == "" {
			return errors.New("report id required")
		}
		if _, exists := st.reports[rep.ID]; exists {
			return storage.ErrDuplicate
		}
		st.reports[rep.ID] = rep.Clone()
		return nil
	})
}

func (r *reportRepo) Update(ctx context.Context, rep reports.Report) error {
	return r.v.write(func(st *state) error {
		if _, exists := st.reports[rep.ID]; !exists {
			return storage.ErrNotFound
		}
		st.reports[rep.ID] = rep.Clone()
		return nil
	})
}

func (r *reportRepo) GetByID(ctx context.Context, id string) (reports.Report, error) {
	var out reports.Report
	err := r.v.read(func(st *state) error {
		rep, ok := st.reports[id]
		if !ok {
			return storage.ErrNotFound
		}
		out = rep.Clone()
		return nil
	})
	return out, err
}

func (r *reportRepo) List(ctx context.Context, filter reports.ListFilter) ([]reports.Report, error) {
	out := make([]reports.Report, 0)
	err := r.v.read(func(st *state) error {
		for _, rep := range st.reports {
			if filter.PetID != "" && rep.PetID != filter.PetID {
				continue
			}
			if filter.DoctorID != "" && rep.DoctorID != filter.DoctorID {
				continue
			}
			if filter.OwnerUserID != "" && rep.OwnerUserID != filter.OwnerUserID {
				continue
			}
			out = append(out, rep.Clone())
		}
		return nil
	})

	// Más reciente primero
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, err
}

func (r *reportRepo) Delete(ctx context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.reports[id]; !ok {
			return storage.ErrNotFound
		}
		delete(st.reports, id)
		return nil
	})
}

func (r *reportRepo) DeleteByPets(ctx context.Context, petIDs []string) (int, error) {
	if len(petIDs) == 0 {
		return 0, nil
	}
	ids := idSet(petIDs)

	n := 0
	err := r.v.write(func(st *state) error {
		for id, rep := range st.reports {
			if _, ok := ids[rep.PetID]; ok {
				delete(st.reports, id)
				n++
			}
		}
		return nil
	})
	return n, err
}
