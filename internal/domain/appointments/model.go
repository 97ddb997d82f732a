package appointments

import "time"

// RescheduleInfo guarda el último cambio de fecha.
type RescheduleInfo struct {
	OldDate string `json:"old_date"`
	NewDate string `json:"new_date"`
	Reason  string `json:"reason"`
}

// Appointment es una cita de una mascota con un doctor.
// PetID, DoctorID y OwnerUserID son inmutables; OwnerUserID siempre es el owner de la mascota.
type Appointment struct {
	ID          string
	PetID       string
	DoctorID    string
	OwnerUserID string

	Date   string // YYYY-MM-DD
	Time   string // HH:MM
	Reason string
	Notes  string

	Status Status

	ReportID   string
	Reschedule *RescheduleInfo

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a Appointment) Clone() Appointment {
	if a.Reschedule != nil {
		r := *a.Reschedule
		a.Reschedule = &r
	}
	return a
}
