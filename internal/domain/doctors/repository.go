package doctors

import "context"

// Repository persiste perfiles de doctor.
// Create devuelve storage.ErrDuplicate si el usuario ya tiene perfil.
type Repository interface {
	Create(ctx context.Context, d Doctor) error
	Update(ctx context.Context, d Doctor) error
	GetByID(ctx context.Context, id string) (Doctor, error)
	GetByUserID(ctx context.Context, userID string) (Doctor, error)
	List(ctx context.Context) ([]Doctor, error)
	DeleteByUserID(ctx context.Context, userID string) (int, error)
}
