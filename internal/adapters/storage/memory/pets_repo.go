package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/ports/storage"
)

type petRepo struct {
	v view
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	return r.v.write(func(st *state) error {
		if strings.TrimSpace(p.ID) == "" {
			return errors.New("pet id required")
		}
		if _, exists := st.pets[p.ID]; exists {
			return storage.ErrDuplicate
		}
		st.pets[p.ID] = p.Clone()
		return nil
	})
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	return r.v.write(func(st *state) error {
		if strings.TrimSpace(p.ID) == "" {
			return errors.New("pet id required")
		}
		if _, exists := st.pets[p.ID]; !exists {
			return storage.ErrNotFound
		}
		st.pets[p.ID] = p.Clone()
		return nil
	})
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	var out pets.Pet
	err := r.v.read(func(st *state) error {
		p, ok := st.pets[id]
		if !ok {
			return storage.ErrNotFound
		}
		out = p.Clone()
		return nil
	})
	return out, err
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	return r.List(ctx, pets.ListFilter{OwnerUserID: ownerUserID})
}

func (r *petRepo) List(ctx context.Context, filter pets.ListFilter) ([]pets.Pet, error) {
	out := make([]pets.Pet, 0)
	if filter.IDs != nil && len(filter.IDs) == 0 {
		return out, nil
	}
	ids := idSet(filter.IDs)

	err := r.v.read(func(st *state) error {
		for _, p := range st.pets {
			if filter.OwnerUserID != "" && p.OwnerUserID != filter.OwnerUserID {
				continue
			}
			if filter.IDs != nil {
				if _, ok := ids[p.ID]; !ok {
					continue
				}
			}
			if filter.Species != "" && p.Species != filter.Species {
				continue
			}
			out = append(out, p.Clone())
		}
		return nil
	})

	// Orden estable por created_at asc
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, err
}

func (r *petRepo) Delete(ctx context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.pets[id]; !ok {
			return storage.ErrNotFound
		}
		delete(st.pets, id)
		return nil
	})
}

func (r *petRepo) DeleteByOwner(ctx context.Context, ownerUserID string) (int, error) {
	n := 0
	err := r.v.write(func(st *state) error {
		for id, p := range st.pets {
			if p.OwnerUserID == ownerUserID {
				delete(st.pets, id)
				n++
			}
		}
		return nil
	})
	return n, err
}
