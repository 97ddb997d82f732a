package memory

import (
	"context"
	"sync"

	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/doctors"
	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/domain/reports"
	"vet-clinic/internal/domain/users"
	"vet-clinic/internal/ports/storage"
)

type state struct {
	users        map[string]users.User
	doctors      map[string]doctors.Doctor
	pets         map[string]pets.Pet
	appointments map[string]appointments.Appointment
	reports      map[string]reports.Report
}

func newState() *state {
	return &state{
		users:        make(map[string]users.User),
		doctors:      make(map[string]doctors.Doctor),
		pets:         make(map[string]pets.Pet),
		appointments: make(map[string]appointments.Appointment),
		reports:      make(map[string]reports.Report),
	}
}

// clone copia los mapas. Los valores se guardan ya clonados y nunca se mutan
// in-place, así que compartir sus slices entre copias es seguro.
func (s *state) clone() *state {
	out := newState()
	for k, v := range s.users {
		out.users[k] = v
	}
	for k, v := range s.doctors {
		out.doctors[k] = v
	}
	for k, v := range s.pets {
		out.pets[k] = v
	}
	for k, v := range s.appointments {
		out.appointments[k] = v
	}
	for k, v := range s.reports {
		out.reports[k] = v
	}
	return out
}

// Store es el Entity Store in-memory (modo dev y tests).
// WithinTx trabaja sobre una copia y la publica solo si fn termina sin error.
type Store struct {
	mu sync.RWMutex
	st *state
}

var _ storage.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{st: newState()}
}

func (s *Store) Users() users.Repository               { return view{s: s}.Users() }
func (s *Store) Doctors() doctors.Repository           { return view{s: s}.Doctors() }
func (s *Store) Pets() pets.Repository                 { return view{s: s}.Pets() }
func (s *Store) Appointments() appointments.Repository { return view{s: s}.Appointments() }
func (s *Store) Reports() reports.Repository           { return view{s: s}.Reports() }

// WithinTx serializa las unidades de trabajo. Dentro de fn hay que usar solo tx:
// los repos del Store toman el mismo lock.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx storage.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.st.clone()
	if err := fn(ctx, view{s: s, tx: draft}); err != nil {
		return err
	}
	s.st = draft
	return nil
}

// view apunta al estado publicado (tx == nil) o a un borrador de transacción.
type view struct {
	s  *Store
	tx *state
}

func (v view) Users() users.Repository               { return &userRepo{v: v} }
func (v view) Doctors() doctors.Repository           { return &doctorRepo{v: v} }
func (v view) Pets() pets.Repository                 { return &petRepo{v: v} }
func (v view) Appointments() appointments.Repository { return &appointmentRepo{v: v} }
func (v view) Reports() reports.Repository           { return &reportRepo{v: v} }

func (v view) read(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	return fn(v.s.st)
}

func (v view) write(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return fn(v.s.st)
}

func idSet(ids []string) map[string]struct{} {
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}
