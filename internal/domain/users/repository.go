package users

import (
	"context"

	"vet-clinic/internal/domain/actor"
)

// Repository persiste usuarios.
// Create/Update devuelven storage.ErrDuplicate si el email ya existe.
type Repository interface {
	Create(ctx context.Context, u User) error
	Update(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context, filter ListFilter) ([]User, error)
	Delete(ctx context.Context, id string) error
}

type ListFilter struct {
	Role actor.Role
}
