package storage

import (
	"context"
	"errors"

	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/doctors"
	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/domain/reports"
	"vet-clinic/internal/domain/users"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

// Repos agrupa los repositorios de todas las entidades.
type Repos interface {
	Users() users.Repository
	Doctors() doctors.Repository
	Pets() pets.Repository
	Appointments() appointments.Repository
	Reports() reports.Repository
}

// Store es el Entity Store. WithinTx corre fn como una sola unidad de trabajo:
// si fn devuelve error no queda ninguna escritura aplicada.
type Store interface {
	Repos
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Repos) error) error
}
