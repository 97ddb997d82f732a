// Package usecasetest arma dependencias en memoria y fixtures para los tests
// de casos de uso.
package usecasetest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"vet-clinic/internal/adapters/storage/memory"
	"vet-clinic/internal/domain/actor"
	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/doctors"
	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/domain/users"
	"vet-clinic/internal/ports/storage"
	"vet-clinic/internal/usecase"
)

// Recorder es un notify.Publisher que guarda lo publicado.
type Recorder struct {
	mu     sync.Mutex
	Events []Published
	Err    error
}

type Published struct {
	Key     string
	Payload any
}

func (r *Recorder) Publish(_ context.Context, key string, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, Published{Key: key, Payload: payload})
	return r.Err
}

func (r *Recorder) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.Events))
	for _, e := range r.Events {
		out = append(out, e.Key)
	}
	return out
}

// Env es un entorno de test con store en memoria, reloj fijo e ids secuenciales.
type Env struct {
	T     *testing.T
	Store *memory.Store
	Pub   *Recorder
	Deps  usecase.Deps
	Clock time.Time

	seq int
}

func New(t *testing.T) *Env {
	t.Helper()
	e := &Env{
		T:     t,
		Store: memory.NewStore(),
		Pub:   &Recorder{},
		Clock: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
	e.Deps = usecase.Deps{
		Store:     e.Store,
		Publisher: e.Pub,
		Now:       func() time.Time { return e.Clock },
		NewID:     e.nextID,
	}.Normalize()
	return e
}

func (e *Env) nextID() string {
	e.seq++
	return fmt.Sprintf("id-%03d", e.seq)
}

func (e *Env) User(role actor.Role, name string) actor.Actor {
	e.T.Helper()
	u := users.User{
		ID:        e.nextID(),
		Name:      name,
		Email:     fmt.Sprintf("%s-%d@example.com", name, e.seq),
		Role:      role,
		CreatedAt: e.Clock,
		UpdatedAt: e.Clock,
	}
	if err := e.Store.Users().Create(context.Background(), u); err != nil {
		e.T.Fatalf("seed user: %v", err)
	}
	return actor.New(u.ID, role)
}

func (e *Env) Owner(name string) actor.Actor { return e.User(actor.RolePetOwner, name) }
func (e *Env) Admin() actor.Actor           { return e.User(actor.RoleAdmin, "admin") }

// Doctor crea usuario doctor + perfil. Devuelve el actor y el id del perfil.
func (e *Env) Doctor(name string) (actor.Actor, string) {
	e.T.Helper()
	a := e.User(actor.RoleDoctor, name)
	d := doctors.Doctor{ID: e.nextID(), UserID: a.ID, Specialization: "general", CreatedAt: e.Clock, UpdatedAt: e.Clock}
	if err := e.Store.Doctors().Create(context.Background(), d); err != nil {
		e.T.Fatalf("seed doctor: %v", err)
	}
	return a, d.ID
}

func (e *Env) Pet(ownerID, name string) pets.Pet {
	e.T.Helper()
	p := pets.Pet{
		ID:          e.nextID(),
		OwnerUserID: ownerID,
		Name:        name,
		Species:     pets.SpeciesDog,
		CreatedAt:   e.Clock,
		UpdatedAt:   e.Clock,
	}
	if err := e.Store.Pets().Create(context.Background(), p); err != nil {
		e.T.Fatalf("seed pet: %v", err)
	}
	return p
}

func (e *Env) Appointment(p pets.Pet, doctorID string, status appointments.Status) appointments.Appointment {
	e.T.Helper()
	a := appointments.Appointment{
		ID:          e.nextID(),
		PetID:       p.ID,
		DoctorID:    doctorID,
		OwnerUserID: p.OwnerUserID,
		Date:        "2025-03-20",
		Time:        "10:00",
		Reason:      "checkup",
		Status:      status,
		CreatedAt:   e.Clock,
		UpdatedAt:   e.Clock,
	}
	if err := e.Store.Appointments().Create(context.Background(), a); err != nil {
		e.T.Fatalf("seed appointment: %v", err)
	}
	return a
}

// RacingStore corre Before justo antes de cada unidad de trabajo. Sirve para
// simular una cascada que se confirma entre la validación y la escritura.
type RacingStore struct {
	storage.Store
	Before func(ctx context.Context)
}

func (s RacingStore) WithinTx(ctx context.Context, fn func(context.Context, storage.Repos) error) error {
	if s.Before != nil {
		s.Before(ctx)
	}
	return s.Store.WithinTx(ctx, fn)
}
