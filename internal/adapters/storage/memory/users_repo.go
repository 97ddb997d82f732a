package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"vet-clinic/internal/domain/users"
	"vet-clinic/internal/ports/storage"
)

type userRepo struct {
	v view
}

func (r *userRepo) Create(ctx context.Context, u users.User) error {
	return r.v.write(func(st *state) error {
		if strings.TrimSpace(u.ID) == "" {
			return errors.New("user id required")
		}
		if _, exists := st.users[u.ID]; exists {
			return storage.ErrDuplicate
		}
		if emailTaken(st, u.Email, u.ID) {
			return storage.ErrDuplicate
		}
		st.users[u.ID] = u.Clone()
		return nil
	})
}

func (r *userRepo) Update(ctx context.Context, u users.User) error {
	return r.v.write(func(st *state) error {
		if _, exists := st.users[u.ID]; !exists {
			return storage.ErrNotFound
		}
		if emailTaken(st, u.Email, u.ID) {
			return storage.ErrDuplicate
		}
		st.users[u.ID] = u.Clone()
		return nil
	})
}

func (r *userRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	var out users.User
	err := r.v.read(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return storage.ErrNotFound
		}
		out = u.Clone()
		return nil
	})
	return out, err
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	email = users.NormalizeEmail(email)
	var out users.User
	err := r.v.read(func(st *state) error {
		for _, u := range st.users {
			if users.NormalizeEmail(u.Email) == email {
				out = u.Clone()
				return nil
			}
		}
		return storage.ErrNotFound
	})
	return out, err
}

func (r *userRepo) List(ctx context.Context, filter users.ListFilter) ([]users.User, error) {
	out := make([]users.User, 0)
	err := r.v.read(func(st *state) error {
		for _, u := range st.users {
			if filter.Role != "" && u.Role != filter.Role {
				continue
			}
			out = append(out, u.Clone())
		}
		return nil
	})

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, err
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.users[id]; !ok {
			return storage.ErrNotFound
		}
		delete(st.users, id)
		return nil
	})
}

func emailTaken(st *state, email, exceptID string) bool {
	email = users.NormalizeEmail(email)
	for id, u := range st.users {
		if id != exceptID && users.NormalizeEmail(u.Email) == email {
			return true
		}
	}
	return false
}
