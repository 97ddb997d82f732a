package reports

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"vet-clinic/internal/apperr"
	"vet-clinic/internal/domain/reports"
	"vet-clinic/internal/httpresp"
	"vet-clinic/internal/middleware"
	"vet-clinic/internal/ports/render"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/reports", func(rr chi.Router) {
		rr.Post("/", createReportHandler(svc))
		rr.Get("/", listReportsHandler(svc))
		rr.Get("/{reportID}", getReportHandler(svc))
		rr.Patch("/{reportID}", updateReportHandler(svc))
		rr.Delete("/{reportID}", deleteReportHandler(svc))
		rr.Get("/{reportID}/document", renderReportHandler(svc))
	})
}

type createReportRequest struct {
	PetID         string `json:"pet_id"`
	AppointmentID string `json:"appointment_id"`
	DoctorID      string `json:"doctor_id"` // solo admin

	Date            string               `json:"date"` // RFC3339 o YYYY-MM-DD, opcional
	Summary         string               `json:"summary"`
	Diagnosis       string               `json:"diagnosis"`
	Prescription    string               `json:"prescription"`
	Notes           string               `json:"notes"`
	Medications     []reports.Medication `json:"medications"`
	Recommendations []string             `json:"recommendations"`
}

type updateReportRequest struct {
	Date            *string               `json:"date"`
	Summary         *string               `json:"summary"`
	Diagnosis       *string               `json:"diagnosis"`
	Prescription    *string               `json:"prescription"`
	Notes           *string               `json:"notes"`
	Medications     *[]reports.Medication `json:"medications"`
	Recommendations *[]string             `json:"recommendations"`
}

type reportResponse struct {
	ID              string               `json:"id"`
	PetID           string               `json:"pet_id"`
	OwnerUserID     string               `json:"owner_user_id"`
	DoctorID        string               `json:"doctor_id"`
	AppointmentID   string               `json:"appointment_id,omitempty"`
	Date            time.Time            `json:"date"`
	Summary         string               `json:"summary"`
	Diagnosis       string               `json:"diagnosis"`
	Prescription    string               `json:"prescription"`
	Notes           string               `json:"notes"`
	Medications     []reports.Medication `json:"medications"`
	Recommendations []string             `json:"recommendations"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// createReportHandler godoc
// @Summary Crear reporte médico
// @Description Doctor (o admin con doctor_id). El dueño del reporte es siempre el dueño de la mascota.
// @Tags reports
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-Role header string false "Solo en modo dev, rol (pet_owner, doctor, admin)"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createReportRequest true "Datos del reporte"
// @Success 201 {object} reportResponse
// @Failure 400 {object} httpresp.ErrorBody "summary/pet faltante, cita de otra mascota"
// @Failure 403 {object} httpresp.ErrorBody
// @Failure 404 {object} httpresp.ErrorBody "mascota/cita inexistente o doctor sin perfil"
// @Failure 422 {object} httpresp.ErrorBody "mascota sin dueño"
// @Router /reports [post]
func createReportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createReportRequest
		if err := httpresp.Decode(r, &req); err != nil {
			httpresp.Error(w, err)
			return
		}
		date, err := parseDate(req.Date)
		if err != nil {
			httpresp.Error(w, err)
			return
		}

		rep, err := svc.Create(r.Context(), middleware.Actor(r), CreateInput{
			PetID:           req.PetID,
			AppointmentID:   req.AppointmentID,
			DoctorID:        req.DoctorID,
			Date:            date,
			Summary:         req.Summary,
			Diagnosis:       req.Diagnosis,
			Prescription:    req.Prescription,
			Notes:           req.Notes,
			Medications:     req.Medications,
			Recommendations: req.Recommendations,
		})
		if err != nil {
			httpresp.Error(w, err)
			return
		}
		httpresp.JSON(w, http.StatusCreated, toReportResponse(rep))
	}
}

// listReportsHandler godoc
// @Summary Listar reportes
// @Description Dueño: los suyos. Doctor: los que escribió. Admin: todos. Filtros opcionales encima del scope.
// @Tags reports
// @Produce json
// @Param pet_id query string false "Filtro por mascota"
// @Param doctor_id query string false "Filtro por doctor"
// @Param owner_user_id query string false "Filtro por dueño"
// @Success 200 {array} reportResponse
// @Router /reports [get]
func listReportsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, err := svc.List(r.Context(), middleware.Actor(r), reports.ListFilter{
			PetID:       strings.TrimSpace(q.Get("pet_id")),
			DoctorID:    strings.TrimSpace(q.Get("doctor_id")),
			OwnerUserID: strings.TrimSpace(q.Get("owner_user_id")),
		})
		if err != nil {
			httpresp.Error(w, err)
			return
		}
		out := make([]reportResponse, 0, len(items))
		for _, rep := range items {
			out = append(out, toReportResponse(rep))
		}
		httpresp.JSON(w, http.StatusOK, out)
	}
}

// getReportHandler godoc
// @Summary Ver reporte
// @Tags reports
// @Produce json
// @Param reportID path string true "ID del reporte"
// @Success 200 {object} reportResponse
// @Failure 403 {object} httpresp.ErrorBody
// @Failure 404 {object} httpresp.ErrorBody
// @Router /reports/{reportID} [get]
func getReportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep, err := svc.Get(r.Context(), middleware.Actor(r), chi.URLParam(r, "reportID"))
		if err != nil {
			httpresp.Error(w, err)
			return
		}
		httpresp.JSON(w, http.StatusOK, toReportResponse(rep))
	}
}

// updateReportHandler godoc
// @Summary Actualizar reporte
// @Description Doctor autor o admin. Mascota, dueño y doctor no se modifican.
// @Tags reports
// @Accept json
// @Produce json
// @Param reportID path string true "ID del reporte"
// @Param payload body updateReportRequest true "Campos a modificar"
// @Success 200 {object} reportResponse
// @Failure 400 {object} httpresp.ErrorBody
// @Failure 403 {object} httpresp.ErrorBody
// @Failure 404 {object} httpresp.ErrorBody
// @Router /reports/{reportID} [patch]
func updateReportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateReportRequest
		if err := httpresp.Decode(r, &req); err != nil {
			httpresp.Error(w, err)
			return
		}

		in := UpdateInput{
			Summary:         req.Summary,
			Diagnosis:       req.Diagnosis,
			Prescription:    req.Prescription,
			Notes:           req.Notes,
			Medications:     req.Medications,
			Recommendations: req.Recommendations,
		}
		if req.Date != nil {
			d, err := parseDate(*req.Date)
			if err != nil {
				httpresp.Error(w, err)
				return
			}
			in.Date = &d
		}

		rep, err := svc.Update(r.Context(), middleware.Actor(r), chi.URLParam(r, "reportID"), in)
		if err != nil {
			httpresp.Error(w, err)
			return
		}
		httpresp.JSON(w, http.StatusOK, toReportResponse(rep))
	}
}

// deleteReportHandler godoc
// @Summary Eliminar reporte
// @Description Doctor autor o admin. Se desvincula de la mascota y de la cita.
// @Tags reports
// @Param reportID path string true "ID del reporte"
// @Success 204
// @Failure 403 {object} httpresp.ErrorBody
// @Failure 404 {object} httpresp.ErrorBody
// @Router /reports/{reportID} [delete]
func deleteReportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), middleware.Actor(r), chi.URLParam(r, "reportID")); err != nil {
			httpresp.Error(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// renderReportHandler godoc
// @Summary Documento del reporte
// @Description Mismo permiso que leer el reporte. Devuelve el documento generado por el renderer.
// @Tags reports
// @Produce octet-stream
// @Param reportID path string true "ID del reporte"
// @Success 200 {file} file
// @Failure 403 {object} httpresp.ErrorBody
// @Failure 404 {object} httpresp.ErrorBody
// @Failure 501 {object} httpresp.ErrorBody "renderer no configurado"
// @Router /reports/{reportID}/document [get]
func renderReportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, contentType, err := svc.Render(r.Context(), middleware.Actor(r), chi.URLParam(r, "reportID"))
		if err != nil {
			if errors.Is(err, render.ErrNotConfigured) {
				httpresp.JSON(w, http.StatusNotImplemented, httpresp.ErrorBody{Error: "not_implemented", Message: err.Error()})
				return
			}
			httpresp.Error(w, err)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, apperr.Validation("invalid_date", "date must be RFC3339 or YYYY-MM-DD")
	}
	return t, nil
}

func toReportResponse(rep reports.Report) reportResponse {
	meds := rep.Medications
	if meds == nil {
		meds = []reports.Medication{}
	}
	recs := rep.Recommendations
	if recs == nil {
		recs = []string{}
	}
	return reportResponse{
		ID:              rep.ID,
		PetID:           rep.PetID,
		OwnerUserID:     rep.OwnerUserID,
		DoctorID:        rep.DoctorID,
		AppointmentID:   rep.AppointmentID,
		Date:            rep.Date,
		Summary:         rep.Summary,
		Diagnosis:       rep.Diagnosis,
		Prescription:    rep.Prescription,
		Notes:           rep.Notes,
		Medications:     meds,
		Recommendations: recs,
		CreatedAt:       rep.CreatedAt,
		UpdatedAt:       rep.UpdatedAt,
	}
}
