package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/doctors"
	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/domain/reports"
	"vet-clinic/internal/domain/users"
	"vet-clinic/internal/ports/storage"
)

// Store implementa storage.Store sobre database/sql + pgx.
type Store struct {
	db *sql.DB
}

var _ storage.Store = (*Store)(nil)

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Users() users.Repository               { return NewUsersRepo(s.db) }
func (s *Store) Doctors() doctors.Repository           { return NewDoctorsRepo(s.db) }
func (s *Store) Pets() pets.Repository                 { return NewPetsRepo(s.db) }
func (s *Store) Appointments() appointments.Repository { return NewAppointmentsRepo(s.db) }
func (s *Store) Reports() reports.Repository           { return NewReportsRepo(s.db) }

// WithinTx corre fn dentro de BEGIN/COMMIT; cualquier error hace ROLLBACK.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx storage.Repos) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(ctx, txRepos{q: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

type txRepos struct {
	q Querier
}

func (t txRepos) Users() users.Repository               { return NewUsersRepo(t.q) }
func (t txRepos) Doctors() doctors.Repository           { return NewDoctorsRepo(t.q) }
func (t txRepos) Pets() pets.Repository                 { return NewPetsRepo(t.q) }
func (t txRepos) Appointments() appointments.Repository { return NewAppointmentsRepo(t.q) }
func (t txRepos) Reports() reports.Repository           { return NewReportsRepo(t.q) }
