package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)
	List(ctx context.Context, filter ListFilter) ([]Pet, error)
	Delete(ctx context.Context, id string) error
	DeleteByOwner(ctx context.Context, ownerUserID string) (int, error)
}

// ListFilter: campos vacíos = sin filtro. IDs != nil restringe a ese conjunto (vacío => nada).
type ListFilter struct {
	OwnerUserID string
	IDs         []string
	Species     Species
}
