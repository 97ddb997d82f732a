package notify

import "context"

// Routing keys publicadas por los casos de uso.
const (
	KeyAppointmentBooked      = "appointment.booked"
	KeyAppointmentConfirmed   = "appointment.confirmed"
	KeyAppointmentCancelled   = "appointment.cancelled"
	KeyAppointmentRescheduled = "appointment.rescheduled"
	KeyAppointmentDeleted     = "appointment.deleted"
	KeyReportCreated          = "report.created"
	KeyUserDeleted            = "user.deleted"
	KeyPetDeleted             = "pet.deleted"
)

// Publisher publica eventos de dominio. Best-effort: los casos de uso solo loguean el error.
type Publisher interface {
	Publish(ctx context.Context, key string, payload any) error
}

// Noop descarta todo; se usa cuando no hay broker configurado.
type Noop struct{}

func (Noop) Publish(context.Context, string, any) error { return nil }
