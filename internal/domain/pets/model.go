package pets

import "time"

// Species define las especies más comunes; se acepta texto libre normalizado.
type Species string

const (
	SpeciesDog    Species = "dog"
	SpeciesCat    Species = "cat"
	SpeciesBird   Species = "bird"
	SpeciesRabbit Species = "rabbit"
	SpeciesOther  Species = "other"
)

// Vaccination es una entrada de vacunación.
type Vaccination struct {
	Date    time.Time `json:"date"`
	Vaccine string    `json:"vaccine"`
	Notes   string    `json:"notes,omitempty"`
}

// Prescription es una entrada de receta.
type Prescription struct {
	Date     time.Time `json:"date"`
	Medicine string    `json:"medicine"`
	Dosage   string    `json:"dosage"`
	Notes    string    `json:"notes,omitempty"`
}

// Pet representa la ficha de una mascota registrada en la clínica.
// OwnerUserID es obligatorio e inmutable después de crearla.
type Pet struct {
	ID          string
	OwnerUserID string

	Name    string
	Species Species
	Breed   string
	Age     int
	Weight  float64

	MedicalHistory []string
	Vaccinations   []Vaccination
	Prescriptions  []Prescription
	Allergies      []string

	// Reports guarda los ids de reportes en orden de creación.
	Reports []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Pet) Clone() Pet {
	p.MedicalHistory = append([]string(nil), p.MedicalHistory...)
	p.Vaccinations = append([]Vaccination(nil), p.Vaccinations...)
	p.Prescriptions = append([]Prescription(nil), p.Prescriptions...)
	p.Allergies = append([]string(nil), p.Allergies...)
	p.Reports = append([]string(nil), p.Reports...)
	return p
}

// HasReport indica si el id ya está enlazado.
func (p Pet) HasReport(reportID string) bool {
	for _, id := range p.Reports {
		if id == reportID {
			return true
		}
	}
	return false
}

// WithoutReport devuelve la lista de reportes sin reportID (sin mutar p).
func (p Pet) WithoutReport(reportID string) []string {
	out := make([]string, 0, len(p.Reports))
	for _, id := range p.Reports {
		if id != reportID {
			out = append(out, id)
		}
	}
	return out
}
