package appointments

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/httpresp"
	"vet-clinic/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.Post("/", bookHandler(svc))
		ar.Get("/", listAppointmentsHandler(svc))
		ar.Get("/{appointmentID}", getAppointmentHandler(svc))
		ar.Delete("/{appointmentID}", deleteAppointmentHandler(svc))

		// Transiciones
		ar.Post("/{appointmentID}/confirm", confirmHandler(svc))
		ar.Post("/{appointmentID}/cancel", cancelHandler(svc))
		ar.Post("/{appointmentID}/reschedule", rescheduleHandler(svc))
	})
}

type bookRequest struct {
	PetID    string `json:"pet_id"`
	DoctorID string `json:"doctor_id"`
	Date     string `json:"date"` // YYYY-MM-DD
	Time     string `json:"time"` // HH:MM
	Reason   string `json:"reason"`
	Notes    string `json:"notes"`
}

type rescheduleRequest struct {
	Date   string `json:"date"`
	Time   string `json:"time"` // opcional
	Reason string `json:"reason"`
}

type appointmentResponse struct {
	ID          string                       `json:"id"`
	PetID       string                       `json:"pet_id"`
	DoctorID    string                       `json:"doctor_id"`
	OwnerUserID string                       `json:"owner_user_id"`
	Date        string                       `json:"date"`
	Time        string                       `json:"time"`
	Reason      string                       `json:"reason"`
	Notes       string                       `json:"notes"`
	Status      appointments.Status          `json:"status"`
	ReportID    string                       `json:"report_id,omitempty"`
	Reschedule  *appointments.RescheduleInfo `json:"reschedule,omitempty"`
	CreatedAt   time.Time                    `json:"created_at"`
	UpdatedAt   time.Time                    `json:"updated_at"`
}

// bookHandler godoc
// @Summary Reservar cita
// @Description El dueño reserva para su mascota; la cita queda en pending.
// @Tags appointments
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-Role header string false "Solo en modo dev, rol (pet_owner, doctor, admin)"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body bookRequest true "Datos de la cita"
// @Success 201 {object} appointmentResponse
// @Failure 400 {object} httpresp.ErrorBody
// @Failure 403 {object} httpresp.ErrorBody
// @Failure 404 {object} httpresp.ErrorBody "mascota o doctor inexistente"
// @Router /appointments [post]
func bookHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bookRequest
		if err := httpresp.Decode(r, &req); err != nil {
			httpresp.Error(w, err)
			return
		}

		appt, err := svc.Book(r.Context(), middleware.Actor(r), BookInput{
			PetID:    req.PetID,
			DoctorID: req.DoctorID,
			Date:     req.Date,
			Time:     req.Time,
			Reason:   req.Reason,
			Notes:    req.Notes,
		})
		if err != nil {
			httpresp.Error(w, err)
			return
		}
		httpresp.JSON(w, http.StatusCreated, toAppointmentResponse(appt))
	}
}

// listAppointmentsHandler godoc
// @Summary Listar citas
// @Description Dueño: las suyas. Doctor: las asignadas. Admin: todas. Filtros opcionales.
// @Tags appointments
// @Produce json
// @Param pet_id query string false "Filtro por mascota"
// @Param doctor_id query string false "Filtro por doctor"
// @Param owner_user_id query string false "Filtro por dueño"
// @Param status query string false "pending | confirmed | cancelled | completed"
// @Param date query string false "YYYY-MM-DD"
// @Success 200 {array} appointmentResponse
// @Failure 400 {object} httpresp.ErrorBody
// @Router /appointments [get]
func listAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := appointments.ListFilter{
			PetID:       strings.TrimSpace(q.Get("pet_id")),
			DoctorID:    strings.TrimSpace(q.Get("doctor_id")),
			OwnerUserID: strings.TrimSpace(q.Get("owner_user_id")),
			Status:      appointments.Status(strings.TrimSpace(q.Get("status"))),
			Date:        strings.TrimSpace(q.Get("date")),
		}

		items, err := svc.List(r.Context(), middleware.Actor(r), filter)
		if err != nil {
			httpresp.Error(w, err)
			return
		}
		out := make([]appointmentResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAppointmentResponse(a))
		}
		httpresp.JSON(w, http.StatusOK, out)
	}
}

// getAppointmentHandler godoc
// @Summary Ver cita
// @Tags appointments
// @Produce json
// @Param appointmentID path string true "ID de la cita"
// @Success 200 {object} appointmentResponse
// @Failure 403 {object} httpresp.ErrorBody
// @Failure 404 {object} httpresp.ErrorBody
// @Router /appointments/{appointmentID} [get]
func getAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appt, err := svc.Get(r.Context(), middleware.Actor(r), chi.URLParam(r, "appointmentID"))
		if err != nil {
			httpresp.Error(w, err)
			return
		}
		httpresp.JSON(w, http.StatusOK, toAppointmentResponse(appt))
	}
}

// confirmHandler godoc
// @Summary Confirmar cita
// @Description Doctor asignado o admin. Una cita cancelada no se puede confirmar.
// @Tags appointments
// @Produce json
// @Param appointmentID path string true "ID de la cita"
// @Success 200 {object} appointmentResponse
// @Failure 403 {object} httpresp.ErrorBody
// @Failure 404 {object} httpresp.ErrorBody
// @Failure 409 {object} httpresp.ErrorBody "transición inválida"
// @Router /appointments/{appointmentID}/confirm [post]
func confirmHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appt, err := svc.Confirm(r.Context(), middleware.Actor(r), chi.URLParam(r, "appointmentID"))
		if err != nil {
			httpresp.Error(w, err)
			return
		}
		httpresp.JSON(w, http.StatusOK, toAppointmentResponse(appt))
	}
}

// cancelHandler godoc
// @Summary Cancelar cita
// @Description Dueño, doctor asignado o admin.
// @Tags appointments
// @Produce json
// @Param appointmentID path string true "ID de la cita"
// @Success 200 {object} appointmentResponse
// @Failure 403 {object} httpresp.ErrorBody
// @Failure 409 {object} httpresp.ErrorBody "transición inválida"
// @Router /appointments/{appointmentID}/cancel [post]
func cancelHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appt, err := svc.Cancel(r.Context(), middleware.Actor(r), chi.URLParam(r, "appointmentID"))
		if err != nil {
			httpresp.Error(w, err)
			return
		}
		httpresp.JSON(w, http.StatusOK, toAppointmentResponse(appt))
	}
}

// rescheduleHandler godoc
// @Summary Reprogramar cita
// @Description Guarda la fecha anterior y vuelve la cita a pending.
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointmentID path string true "ID de la cita"
// @Param payload body rescheduleRequest true "Nueva fecha"
// @Success 200 {object} appointmentResponse
// @Failure 400 {object} httpresp.ErrorBody
// @Failure 403 {object} httpresp.ErrorBody
// @Failure 409 {object} httpresp.ErrorBody "transición inválida"
// @Router /appointments/{appointmentID}/reschedule [post]
func rescheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req rescheduleRequest
		if err := httpresp.Decode(r, &req); err != nil {
			httpresp.Error(w, err)
			return
		}
		appt, err := svc.Reschedule(r.Context(), middleware.Actor(r), chi.URLParam(r, "appointmentID"), RescheduleInput{
			Date:   req.Date,
			Time:   req.Time,
			Reason: req.Reason,
		})
		if err != nil {
			httpresp.Error(w, err)
			return
		}
		httpresp.JSON(w, http.StatusOK, toAppointmentResponse(appt))
	}
}

// deleteAppointmentHandler godoc
// @Summary Eliminar cita
// @Description Dueño, doctor asignado o admin. Borrado físico.
// @Tags appointments
// @Param appointmentID path string true "ID de la cita"
// @Success 204
// @Failure 403 {object} httpresp.ErrorBody
// @Failure 404 {object} httpresp.ErrorBody
// @Router /appointments/{appointmentID} [delete]
func deleteAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), middleware.Actor(r), chi.URLParam(r, "appointmentID")); err != nil {
			httpresp.Error(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toAppointmentResponse(a appointments.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:          a.ID,
		PetID:       a.PetID,
		DoctorID:    a.DoctorID,
		OwnerUserID: a.OwnerUserID,
		Date:        a.Date,
		Time:        a.Time,
		Reason:      a.Reason,
		Notes:       a.Notes,
		Status:      a.Status,
		ReportID:    a.ReportID,
		Reschedule:  a.Reschedule,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
