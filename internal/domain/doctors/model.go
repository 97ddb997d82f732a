package doctors

import "time"

// Doctor es el perfil profesional 1:1 de un usuario con rol doctor.
type Doctor struct {
	ID     string
	UserID string

	Specialization  string
	ExperienceYears int
	ConsultationFee float64

	AvailableDays  []string
	AvailableTimes []string
	LeaveDays      []string

	Bio      string
	Verified bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (d Doctor) Clone() Doctor {
	d.AvailableDays = append([]string(nil), d.AvailableDays...)
	d.AvailableTimes = append([]string(nil), d.AvailableTimes...)
	d.LeaveDays = append([]string(nil), d.LeaveDays...)
	return d
}
