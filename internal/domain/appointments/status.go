package appointments

import (
	"fmt"
	"time"

	"vet-clinic/internal/apperr"
)

// Status del ciclo de vida de una cita.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Terminal: completed y cancelled no vuelven a pending/confirmed.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func InitialStatus() Status {
	return StatusPending
}

// CanConfirm: pending -> confirmed, confirmed es idempotente.
// Una cita cancelada no se puede volver a confirmar.
func CanConfirm(current Status) error {
	switch current {
	case StatusPending, StatusConfirmed:
		return nil
	default:
		return invalid(current, StatusConfirmed)
	}
}

// CanCancel: cualquier estado no terminal; cancelled es idempotente.
func CanCancel(current Status) error {
	switch current {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return nil
	default:
		return invalid(current, StatusCancelled)
	}
}

// CanReschedule: desde pending o confirmed; siempre vuelve a pending.
func CanReschedule(current Status) error {
	switch current {
	case StatusPending, StatusConfirmed:
		return nil
	default:
		return invalid(current, StatusPending)
	}
}

// Acciones de dominio: mutan la cita en memoria, el caso de uso persiste.

func Confirm(a *Appointment, now time.Time) error {
	if err := CanConfirm(a.Status); err != nil {
		return err
	}
	a.Status = StatusConfirmed
	a.UpdatedAt = now
	return nil
}

func Cancel(a *Appointment, now time.Time) error {
	if err := CanCancel(a.Status); err != nil {
		return err
	}
	a.Status = StatusCancelled
	a.UpdatedAt = now
	return nil
}

// Reschedule captura la fecha previa y reinicia la aprobación.
func Reschedule(a *Appointment, newDate, newTime, reason string, now time.Time) error {
	if err := CanReschedule(a.Status); err != nil {
		return err
	}
	a.Reschedule = &RescheduleInfo{
		OldDate: a.Date,
		NewDate: newDate,
		Reason:  reason,
	}
	a.Date = newDate
	if newTime != "" {
		a.Time = newTime
	}
	a.Status = StatusPending
	a.UpdatedAt = now
	return nil
}

func invalid(from, to Status) error {
	return apperr.InvalidTransition(
		"invalid_state",
		fmt.Sprintf("appointment cannot move from %s to %s", from, to),
	)
}
