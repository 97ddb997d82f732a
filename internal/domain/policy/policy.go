package policy

import (
	"context"
	"errors"
	"fmt"

	"vet-clinic/internal/apperr"
	"vet-clinic/internal/domain/actor"
	"vet-clinic/internal/domain/doctors"
	"vet-clinic/internal/ports/storage"
)

// Entity es el tipo de registro sobre el que se decide.
type Entity string

const (
	EntityUser        Entity = "user"
	EntityDoctor      Entity = "doctor"
	EntityPet         Entity = "pet"
	EntityAppointment Entity = "appointment"
	EntityReport      Entity = "report"
)

// Operation es la acción solicitada.
type Operation string

const (
	OpRead       Operation = "read"
	OpCreate     Operation = "create"
	OpUpdate     Operation = "update"
	OpDelete     Operation = "delete"
	OpConfirm    Operation = "confirm"
	OpCancel     Operation = "cancel"
	OpReschedule Operation = "reschedule"

	// Solo admin.
	OpListUsers    Operation = "list_users"
	OpDeleteUser   Operation = "delete_user"
	OpChangeRole   Operation = "change_role"
	OpVerifyDoctor Operation = "verify_doctor"
)

// DoctorLookup resuelve el perfil de doctor de un usuario.
type DoctorLookup interface {
	GetByUserID(ctx context.Context, userID string) (doctors.Doctor, error)
}

// Evaluator decide scope y permisos. No escribe nada.
type Evaluator struct {
	doctors DoctorLookup
}

func NewEvaluator(doctors DoctorLookup) *Evaluator {
	return &Evaluator{doctors: doctors}
}

// Subject es el actor con sus capabilities ya resueltas.
type Subject struct {
	Actor    actor.Actor
	Caps     actor.Capabilities
	DoctorID string // solo para rol doctor
}

// Resolve valida el actor y, si es doctor, carga su perfil una sola vez.
func (e *Evaluator) Resolve(ctx context.Context, a actor.Actor) (Subject, error) {
	if a.IsZero() || !a.Role.Valid() {
		return Subject{}, apperr.NotAuthorized("unauthenticated", "authenticated actor required")
	}

	s := Subject{Actor: a, Caps: a.Capabilities()}

	if a.Role == actor.RoleDoctor {
		d, err := e.doctors.GetByUserID(ctx, a.ID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return Subject{}, apperr.DoctorProfileNotFound(a.ID)
			}
			return Subject{}, fmt.Errorf("resolve doctor profile: %w", err)
		}
		s.DoctorID = d.ID
	}

	return s, nil
}

// Record es la vista mínima de un registro que necesita CanAct.
type Record struct {
	Entity    Entity
	ID        string
	OwnerID   string
	DoctorIDs []string
}

// CanAct devuelve nil si el sujeto puede ejecutar op sobre rec, o NotAuthorized.
func (s Subject) CanAct(op Operation, rec Record) error {
	if s.Caps.MutateAll {
		return nil
	}

	switch op {
	case OpListUsers, OpDeleteUser, OpChangeRole, OpVerifyDoctor:
		if !s.Caps.ManageUsers {
			return s.deny(op, rec)
		}
		return nil
	}

	if s.allowed(op, rec) {
		return nil
	}
	return s.deny(op, rec)
}

func (s Subject) allowed(op Operation, rec Record) bool {
	own := rec.OwnerID != "" && rec.OwnerID == s.Actor.ID
	assigned := s.assigned(rec)

	switch rec.Entity {
	case EntityUser:
		return (op == OpRead || op == OpUpdate) && own

	case EntityDoctor:
		switch op {
		case OpRead:
			return true
		case OpCreate, OpUpdate:
			return own
		}
		return false

	case EntityPet:
		if s.Caps.MutateOwn {
			switch op {
			case OpRead, OpCreate, OpUpdate, OpDelete:
				return own
			}
			return false
		}
		if s.Caps.MutateAssigned {
			switch op {
			case OpCreate:
				return true
			case OpRead, OpUpdate:
				return assigned
			}
		}
		return false

	case EntityAppointment:
		if s.Caps.MutateOwn {
			switch op {
			case OpRead, OpCreate, OpCancel, OpReschedule, OpDelete:
				return own
			}
			return false
		}
		if s.Caps.MutateAssigned {
			switch op {
			case OpRead, OpUpdate, OpConfirm, OpCancel, OpReschedule, OpDelete:
				return assigned
			}
		}
		return false

	case EntityReport:
		if s.Caps.MutateOwn {
			return op == OpRead && own
		}
		if s.Caps.MutateAssigned {
			switch op {
			case OpCreate:
				return true
			case OpRead, OpUpdate, OpDelete:
				return assigned
			}
		}
		return false
	}

	return false
}

func (s Subject) assigned(rec Record) bool {
	if s.DoctorID == "" {
		return false
	}
	for _, id := range rec.DoctorIDs {
		if id == s.DoctorID {
			return true
		}
	}
	return false
}

func (s Subject) deny(op Operation, rec Record) error {
	return apperr.NotAuthorized(
		"not_authorized",
		fmt.Sprintf("%s %s may not %s %s %s", s.Actor.Role, s.Actor.ID, op, rec.Entity, rec.ID),
	)
}
