package policy

import (
	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/doctors"
	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/domain/reports"
	"vet-clinic/internal/domain/users"
)

func UserRecord(u users.User) Record {
	return Record{Entity: EntityUser, ID: u.ID, OwnerID: u.ID}
}

func DoctorRecord(d doctors.Doctor) Record {
	return Record{Entity: EntityDoctor, ID: d.ID, OwnerID: d.UserID, DoctorIDs: []string{d.ID}}
}

// PetRecord: los doctores no tienen scope directo sobre mascotas; se pasan los
// doctores asociados vía citas o reportes.
func PetRecord(p pets.Pet, associatedDoctorIDs ...string) Record {
	return Record{Entity: EntityPet, ID: p.ID, OwnerID: p.OwnerUserID, DoctorIDs: associatedDoctorIDs}
}

func AppointmentRecord(a appointments.Appointment) Record {
	return Record{Entity: EntityAppointment, ID: a.ID, OwnerID: a.OwnerUserID, DoctorIDs: []string{a.DoctorID}}
}

func ReportRecord(r reports.Report) Record {
	return Record{Entity: EntityReport, ID: r.ID, OwnerID: r.OwnerUserID, DoctorIDs: []string{r.DoctorID}}
}
