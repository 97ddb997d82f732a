package render

import (
	"context"
	"errors"

	"vet-clinic/internal/domain/doctors"
	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/domain/reports"
	"vet-clinic/internal/domain/users"
)

var ErrNotConfigured = errors.New("report renderer not configured")

// ResolvedReport es un reporte con todas sus referencias pobladas.
// Doctor/DoctorUser pueden venir vacíos si el doctor ya fue eliminado.
type ResolvedReport struct {
	Report     reports.Report
	Pet        pets.Pet
	Owner      users.User
	Doctor     doctors.Doctor
	DoctorUser users.User
}

// ReportRenderer produce el documento (PDF) de un reporte.
type ReportRenderer interface {
	Render(ctx context.Context, in ResolvedReport) ([]byte, error)
	ContentType() string
}
