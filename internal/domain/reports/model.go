package reports

import "time"

type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
}

// Report es el informe médico que un doctor escribe sobre una mascota.
// PetID, OwnerUserID y DoctorID no cambian después de crearlo.
type Report struct {
	ID            string
	PetID         string
	OwnerUserID   string
	DoctorID      string
	AppointmentID string

	Date         time.Time
	Summary      string
	Diagnosis    string
	Prescription string
	Notes        string

	Medications     []Medication
	Recommendations []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r Report) Clone() Report {
	r.Medications = append([]Medication(nil), r.Medications...)
	r.Recommendations = append([]string(nil), r.Recommendations...)
	return r
}
