package appointments

import "context"

type Repository interface {
	Create(ctx context.Context, a Appointment) error
	Update(ctx context.Context, a Appointment) error
	GetByID(ctx context.Context, id string) (Appointment, error)
	List(ctx context.Context, filter ListFilter) ([]Appointment, error)
	Delete(ctx context.Context, id string) error
	DeleteByOwner(ctx context.Context, ownerUserID string) (int, error)
	DeleteByPets(ctx context.Context, petIDs []string) (int, error)
}

// ListFilter: campos vacíos = sin filtro.
type ListFilter struct {
	OwnerUserID string
	DoctorID    string
	PetID       string
	Status      Status
	Date        string
}
