package pets

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"vet-clinic/internal/apperr"
	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/httpresp"
	"vet-clinic/internal/middleware"
)

// RegisterRoutes monta /pets. DELETE /pets/{petID} lo monta lifecycle.
// RegisterRoutes monta /pets. extra agrega rutas de otros casos de uso bajo el
// mismo subrouter (el borrado con cascada vive en lifecycle).
func RegisterRoutes(r chi.Router, svc *Service, extra ...func(chi.Router)) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))

		// Entradas médicas (dueño, admin o doctor asociado)
		pr.Post("/{petID}/medical-history", addMedicalHistoryHandler(svc))
		pr.Post("/{petID}/vaccinations", addVaccinationHandler(svc))
		pr.Post("/{petID}/prescriptions", addPrescriptionHandler(svc))

		for _, fn := range extra {
			fn(pr)
		}
	})
}

type createPetRequest struct {
	OwnerUserID string   `json:"owner_user_id"` // solo admin/doctor
	Name        string   `json:"name"`
	Species     string   `json:"species"`
	Breed       string   `json:"breed"`
	Age         int      `json:"age"`
	Weight      float64  `json:"weight"`
	Allergies   []string `json:"allergies"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name      *string   `json:"name"`
	Species   *string   `json:"species"`
	Breed     *string   `json:"breed"`
	Age       *int      `json:"age"`
	Weight    *float64  `json:"weight"`
	Allergies *[]string `json:"allergies"`
}

type medicalHistoryRequest struct {
	Entry string `json:"entry"`
}

type vaccinationRequest struct {
	Date    string `json:"date"` // YYYY-MM-DD opcional, default hoy
	Vaccine string `json:"vaccine"`
	Notes   string `json:"notes"`
}

type prescriptionRequest struct {
	Date     string `json:"date"` // YYYY-MM-DD opcional, default hoy
	Medicine string `json:"medicine"`
	Dosage   string `json:"dosage"`
	Notes    string `json:"notes"`
}

type petResponse struct {
	ID             string              `json:"id"`
	OwnerUserID    string              `json:"owner_user_id"`
	Name           string              `json:"name"`
	Species        pets.Species        `json:"species"`
	Breed          string              `json:"breed"`
	Age            int                 `json:"age"`
	Weight         float64             `json:"weight"`
	MedicalHistory []string            `json:"medical_history"`
	Vaccinations   []pets.Vaccination  `json:"vaccinations"`
	Prescriptions  []pets.Prescription `json:"prescriptions"`
	Allergies      []string            `json:"allergies"`
	Reports        []string            `json:"reports"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// createPetHandler godoc
// @Summary Crear mascota
// @Description El dueño crea para sí mismo. Admin o doctor crean en nombre de un dueño (owner_user_id).
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-Role header string false "Solo en modo dev, rol (pet_owner, doctor, admin)"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createPetRequest true "Datos de la mascota"
// @Success 201 {object} petResponse
// @Failure 400 {object} httpresp.ErrorBody
// @Failure 401 {object} httpresp.ErrorBody
// @Failure 403 {object} httpresp.ErrorBody
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := httpresp.Decode(r, &req); err != nil {
			httpresp.Error(w, err)
			return
		}

		p, err := svc.Create(r.Context(), middleware.Actor(r), CreateInput{
			OwnerUserID: req.OwnerUserID,
			Name:        req.Name,
			Species:     req.Species,
			Breed:       req.Breed,
			Age:         req.Age,
			Weight:      req.Weight,
			Allergies:   req.Allergies,
		})
		if err != nil {
			httpresp.Error(w, err)
			return
		}

		httpresp.JSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// listPetsHandler godoc
// @Summary Listar mascotas
// @Description Dueño: las suyas. Doctor: las que tienen citas o reportes con él. Admin: todas.
// @Tags pets
// @Produce json
// @Param owner_user_id query string false "Filtro por dueño"
// @Param species query string false "Filtro por especie"
// @Success 200 {array} petResponse
// @Failure 401 {object} httpresp.ErrorBody
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := pets.ListFilter{
			OwnerUserID: strings.TrimSpace(q.Get("owner_user_id")),
			Species:     pets.Species(strings.ToLower(strings.TrimSpace(q.Get("species")))),
		}

		items, err := svc.List(r.Context(), middleware.Actor(r), filter)
		if err != nil {
			httpresp.Error(w, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		httpresp.JSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
// @Summary Ver mascota
// @Tags pets
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 403 {object} httpresp.ErrorBody
// @Failure 404 {object} httpresp.ErrorBody
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Get(r.Context(), middleware.Actor(r), chi.URLParam(r, "petID"))
		if err != nil {
			httpresp.Error(w, err)
			return
		}
		httpresp.JSON(w, http.StatusOK, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota
// @Description Dueño o admin. El dueño de la mascota no se puede cambiar.
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body updatePetRequest true "Campos a modificar"
// @Success 200 {object} petResponse
// @Failure 400 {object} httpresp.ErrorBody
// @Failure 403 {object} httpresp.ErrorBody
// @Failure 404 {object} httpresp.ErrorBody
// @Router /pets/{petID} [patch]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updatePetRequest
		if err := httpresp.Decode(r, &req); err != nil {
			httpresp.Error(w, err)
			return
		}

		p, err := svc.UpdateProfile(r.Context(), middleware.Actor(r), chi.URLParam(r, "petID"), UpdateInput{
			Name:      req.Name,
			Species:   req.Species,
			Breed:     req.Breed,
			Age:       req.Age,
			Weight:    req.Weight,
			Allergies: req.Allergies,
		})
		if err != nil {
			httpresp.Error(w, err)
			return
		}
		httpresp.JSON(w, http.StatusOK, toPetResponse(p))
	}
}

// addMedicalHistoryHandler godoc
// @Summary Agregar entrada de historia clínica
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body medicalHistoryRequest true "Entrada"
// @Success 200 {object} petResponse
// @Failure 403 {object} httpresp.ErrorBody
// @Router /pets/{petID}/medical-history [post]
func addMedicalHistoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req medicalHistoryRequest
		if err := httpresp.Decode(r, &req); err != nil {
			httpresp.Error(w, err)
			return
		}
		p, err := svc.AddMedicalHistory(r.Context(), middleware.Actor(r), chi.URLParam(r, "petID"), req.Entry)
		if err != nil {
			httpresp.Error(w, err)
			return
		}
		httpresp.JSON(w, http.StatusOK, toPetResponse(p))
	}
}

// addVaccinationHandler godoc
// @Summary Registrar vacuna
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body vaccinationRequest true "Vacuna"
// @Success 200 {object} petResponse
// @Failure 400 {object} httpresp.ErrorBody
// @Failure 403 {object} httpresp.ErrorBody
// @Router /pets/{petID}/vaccinations [post]
func addVaccinationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req vaccinationRequest
		if err := httpresp.Decode(r, &req); err != nil {
			httpresp.Error(w, err)
			return
		}
		date, err := parseOptionalDate(req.Date)
		if err != nil {
			httpresp.Error(w, err)
			return
		}
		p, err := svc.AddVaccination(r.Context(), middleware.Actor(r), chi.URLParam(r, "petID"), pets.Vaccination{
			Date:    date,
			Vaccine: req.Vaccine,
			Notes:   strings.TrimSpace(req.Notes),
		})
		if err != nil {
			httpresp.Error(w, err)
			return
		}
		httpresp.JSON(w, http.StatusOK, toPetResponse(p))
	}
}

// addPrescriptionHandler godoc
// @Summary Registrar prescripción
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body prescriptionRequest true "Prescripción"
// @Success 200 {object} petResponse
// @Failure 400 {object} httpresp.ErrorBody
// @Failure 403 {object} httpresp.ErrorBody
// @Router /pets/{petID}/prescriptions [post]
func addPrescriptionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req prescriptionRequest
		if err := httpresp.Decode(r, &req); err != nil {
			httpresp.Error(w, err)
			return
		}
		date, err := parseOptionalDate(req.Date)
		if err != nil {
			httpresp.Error(w, err)
			return
		}
		p, err := svc.AddPrescription(r.Context(), middleware.Actor(r), chi.URLParam(r, "petID"), pets.Prescription{
			Date:     date,
			Medicine: req.Medicine,
			Dosage:   strings.TrimSpace(req.Dosage),
			Notes:    strings.TrimSpace(req.Notes),
		})
		if err != nil {
			httpresp.Error(w, err)
			return
		}
		httpresp.JSON(w, http.StatusOK, toPetResponse(p))
	}
}

func parseOptionalDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, apperr.Validation("invalid_date", "date must be YYYY-MM-DD")
	}
	return t, nil
}

func toPetResponse(p pets.Pet) petResponse {
	resp := petResponse{
		ID:             p.ID,
		OwnerUserID:    p.OwnerUserID,
		Name:           p.Name,
		Species:        p.Species,
		Breed:          p.Breed,
		Age:            p.Age,
		Weight:         p.Weight,
		MedicalHistory: p.MedicalHistory,
		Vaccinations:   p.Vaccinations,
		Prescriptions:  p.Prescriptions,
		Allergies:      p.Allergies,
		Reports:        p.Reports,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	// Arrays vacíos en vez de null para el front.
	if resp.MedicalHistory == nil {
		resp.MedicalHistory = []string{}
	}
	if resp.Vaccinations == nil {
		resp.Vaccinations = []pets.Vaccination{}
	}
	if resp.Prescriptions == nil {
		resp.Prescriptions = []pets.Prescription{}
	}
	if resp.Allergies == nil {
		resp.Allergies = []string{}
	}
	if resp.Reports == nil {
		resp.Reports = []string{}
	}
	return resp
}
