package reports

import "context"

type Repository interface {
	Create(ctx context.Context, r Report) error
	Update(ctx context.Context, r Report) error
	GetByID(ctx context.Context, id string) (Report, error)
	List(ctx context.Context, filter ListFilter) ([]Report, error)
	Delete(ctx context.Context, id string) error
	DeleteByPets(ctx context.Context, petIDs []string) (int, error)
}

// ListFilter: campos vacíos = sin filtro.
type ListFilter struct {
	PetID       string
	DoctorID    string
	OwnerUserID string
}
