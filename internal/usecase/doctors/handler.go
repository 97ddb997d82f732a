package doctors

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"vet-clinic/internal/domain/doctors"
	"vet-clinic/internal/httpresp"
	"vet-clinic/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/doctors", func(dr chi.Router) {
		dr.Get("/", listDoctorsHandler(svc))
		dr.Post("/", createProfileHandler(svc))
		dr.Get("/{doctorID}", getDoctorHandler(svc))
		dr.Patch("/{doctorID}", updateDoctorHandler(svc))
		dr.Put("/{doctorID}/verified", verifyDoctorHandler(svc))
	})
}

type profileRequest struct {
	UserID          string    `json:"user_id"` // opcional; default = usuario autenticado
	Specialization  *string   `json:"specialization"`
	ExperienceYears *int      `json:"experience_years"`
	ConsultationFee *float64  `json:"consultation_fee"`
	AvailableDays   *[]string `json:"available_days"`
	AvailableTimes  *[]string `json:"available_times"`
	LeaveDays       *[]string `json:"leave_days"`
	Bio             *string   `json:"bio"`
}

func (r profileRequest) input() ProfileInput {
	return ProfileInput{
		Specialization:  r.Specialization,
		ExperienceYears: r.ExperienceYears,
		ConsultationFee: r.ConsultationFee,
		AvailableDays:   r.AvailableDays,
		AvailableTimes:  r.AvailableTimes,
		LeaveDays:       r.LeaveDays,
		Bio:             r.Bio,
	}
}

type verifyRequest struct {
	Verified bool `json:"verified"`
}

type doctorResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Specialization  string    `json:"specialization"`
	ExperienceYears int       `json:"experience_years"`
	ConsultationFee float64   `json:"consultation_fee"`
	AvailableDays   []string  `json:"available_days"`
	AvailableTimes  []string  `json:"available_times"`
	LeaveDays       []string  `json:"leave_days"`
	Bio             string    `json:"bio"`
	Verified        bool      `json:"verified"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// listDoctorsHandler godoc
// @Summary Listar doctores
// @Description Cualquier usuario autenticado. verified=true filtra los verificados.
// @Tags doctors
// @Produce json
// @Param verified query bool false "Solo verificados"
// @Success 200 {array} doctorResponse
// @Failure 401 {object} httpresp.ErrorBody
// @Router /doctors [get]
func listDoctorsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), middleware.Actor(r), r.URL.Query().Get("verified") == "true")
		if err != nil {
			httpresp.Error(w, err)
			return
		}
		out := make([]doctorResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDoctorResponse(d))
		}
		httpresp.JSON(w, http.StatusOK, out)
	}
}

// createProfileHandler godoc
// @Summary Crear perfil de doctor
// @Description El propio doctor o admin. El usuario debe tener rol doctor.
// @Tags doctors
// @Accept json
// @Produce json
// @Param payload body profileRequest true "Perfil"
// @Success 201 {object} doctorResponse
// @Failure 400 {object} httpresp.ErrorBody "usuario sin rol doctor / perfil existente"
// @Failure 403 {object} httpresp.ErrorBody
// @Router /doctors [post]
func createProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req profileRequest
		if err := httpresp.Decode(r, &req); err != nil {
			httpresp.Error(w, err)
			return
		}

		a := middleware.Actor(r)
		userID := req.UserID
		if userID == "" {
			userID = a.ID
		}

		d, err := svc.CreateProfile(r.Context(), a, userID, req.input())
		if err != nil {
			httpresp.Error(w, err)
			return
		}
		httpresp.JSON(w, http.StatusCreated, toDoctorResponse(d))
	}
}

// getDoctorHandler godoc
// @Summary Ver doctor
// @Tags doctors
// @Produce json
// @Param doctorID path string true "ID del perfil de doctor"
// @Success 200 {object} doctorResponse
// @Failure 404 {object} httpresp.ErrorBody
// @Router /doctors/{doctorID} [get]
func getDoctorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.Get(r.Context(), middleware.Actor(r), chi.URLParam(r, "doctorID"))
		if err != nil {
			httpresp.Error(w, err)
			return
		}
		httpresp.JSON(w, http.StatusOK, toDoctorResponse(d))
	}
}

// updateDoctorHandler godoc
// @Summary Actualizar perfil de doctor
// @Description El propio doctor o admin.
// @Tags doctors
// @Accept json
// @Produce json
// @Param doctorID path string true "ID del perfil de doctor"
// @Param payload body profileRequest true "Campos a modificar"
// @Success 200 {object} doctorResponse
// @Failure 403 {object} httpresp.ErrorBody
// @Failure 404 {object} httpresp.ErrorBody
// @Router /doctors/{doctorID} [patch]
func updateDoctorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req profileRequest
		if err := httpresp.Decode(r, &req); err != nil {
			httpresp.Error(w, err)
			return
		}
		d, err := svc.Update(r.Context(), middleware.Actor(r), chi.URLParam(r, "doctorID"), req.input())
		if err != nil {
			httpresp.Error(w, err)
			return
		}
		httpresp.JSON(w, http.StatusOK, toDoctorResponse(d))
	}
}

// verifyDoctorHandler godoc
// @Summary Verificar doctor
// @Description Solo admin.
// @Tags doctors
// @Accept json
// @Produce json
// @Param doctorID path string true "ID del perfil de doctor"
// @Param payload body verifyRequest true "Estado de verificación"
// @Success 200 {object} doctorResponse
// @Failure 403 {object} httpresp.ErrorBody
// @Router /doctors/{doctorID}/verified [put]
func verifyDoctorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verifyRequest
		if err := httpresp.Decode(r, &req); err != nil {
			httpresp.Error(w, err)
			return
		}
		d, err := svc.SetVerified(r.Context(), middleware.Actor(r), chi.URLParam(r, "doctorID"), req.Verified)
		if err != nil {
			httpresp.Error(w, err)
			return
		}
		httpresp.JSON(w, http.StatusOK, toDoctorResponse(d))
	}
}

func toDoctorResponse(d doctors.Doctor) doctorResponse {
	return doctorResponse{
		ID:              d.ID,
		UserID:          d.UserID,
		Specialization:  d.Specialization,
		ExperienceYears: d.ExperienceYears,
		ConsultationFee: d.ConsultationFee,
		AvailableDays:   nonNil(d.AvailableDays),
		AvailableTimes:  nonNil(d.AvailableTimes),
		LeaveDays:       nonNil(d.LeaveDays),
		Bio:             d.Bio,
		Verified:        d.Verified,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
