package policy

import (
	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/domain/reports"
)

// Filter es el predicado de scope para lecturas.
type Filter struct {
	All         bool
	OwnerID     string
	DoctorID    string
	ViaDoctorID string // mascotas: visibles a través de citas/reportes del doctor
	None        bool
}

// Scope calcula qué filas del tipo entity puede ver el sujeto.
func (s Subject) Scope(entity Entity) Filter {
	if s.Caps.ReadAll {
		return Filter{All: true}
	}

	switch entity {
	case EntityDoctor:
		return Filter{All: true}
	case EntityUser:
		return Filter{OwnerID: s.Actor.ID}
	}

	if s.Caps.MutateOwn {
		return Filter{OwnerID: s.Actor.ID}
	}

	if s.Caps.MutateAssigned {
		switch entity {
		case EntityAppointment, EntityReport:
			return Filter{DoctorID: s.DoctorID}
		case EntityPet:
			return Filter{ViaDoctorID: s.DoctorID}
		}
	}

	return Filter{None: true}
}

// Appointments intersecta el scope con un filtro de consulta.
// ok=false significa que la intersección es vacía.
func (f Filter) Appointments(in appointments.ListFilter) (appointments.ListFilter, bool) {
	if f.None {
		return in, false
	}
	if f.OwnerID != "" {
		if in.OwnerUserID != "" && in.OwnerUserID != f.OwnerID {
			return in, false
		}
		in.OwnerUserID = f.OwnerID
	}
	if f.DoctorID != "" {
		if in.DoctorID != "" && in.DoctorID != f.DoctorID {
			return in, false
		}
		in.DoctorID = f.DoctorID
	}
	return in, true
}

// Reports intersecta el scope con un filtro de consulta.
func (f Filter) Reports(in reports.ListFilter) (reports.ListFilter, bool) {
	if f.None {
		return in, false
	}
	if f.OwnerID != "" {
		if in.OwnerUserID != "" && in.OwnerUserID != f.OwnerID {
			return in, false
		}
		in.OwnerUserID = f.OwnerID
	}
	if f.DoctorID != "" {
		if in.DoctorID != "" && in.DoctorID != f.DoctorID {
			return in, false
		}
		in.DoctorID = f.DoctorID
	}
	return in, true
}

// Pets intersecta el scope con un filtro de consulta. El caso ViaDoctorID lo
// resuelve el caso de uso (necesita leer citas y reportes).
func (f Filter) Pets(in pets.ListFilter) (pets.ListFilter, bool) {
	if f.None {
		return in, false
	}
	if f.OwnerID != "" {
		if in.OwnerUserID != "" && in.OwnerUserID != f.OwnerID {
			return in, false
		}
		in.OwnerUserID = f.OwnerID
	}
	return in, true
}
