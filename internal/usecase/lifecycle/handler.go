package lifecycle

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"vet-clinic/internal/domain/actor"
	"vet-clinic/internal/httpresp"
	"vet-clinic/internal/middleware"
)

// UserRoutes se monta dentro del subrouter /users.
func UserRoutes(svc *Service) func(chi.Router) {
	return func(r chi.Router) {
		r.Delete("/{userID}", deleteUserHandler(svc))
	}
}

// PetRoutes se monta dentro del subrouter /pets.
func PetRoutes(svc *Service) func(chi.Router) {
	return func(r chi.Router) {
		r.Delete("/{petID}", deletePetHandler(svc))
	}
}

type deletedUserResponse struct {
	ID      string         `json:"id"`
	Email   string         `json:"email"`
	Role    actor.Role     `json:"role"`
	Summary CascadeSummary `json:"cascade"`
}

type deletedPetResponse struct {
	ID          string         `json:"id"`
	OwnerUserID string         `json:"owner_user_id"`
	Name        string         `json:"name"`
	Summary     CascadeSummary `json:"cascade"`
}

// deleteUserHandler godoc
// @Summary Eliminar usuario
// @Description Solo admin. Si es doctor se borra su perfil; si es dueño se borran sus mascotas, reportes y citas. Todo o nada.
// @Tags users
// @Produce json
// @Param userID path string true "ID del usuario"
// @Success 200 {object} deletedUserResponse
// @Failure 403 {object} httpresp.ErrorBody
// @Failure 404 {object} httpresp.ErrorBody
// @Router /users/{userID} [delete]
func deleteUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, summary, err := svc.DeleteUser(r.Context(), middleware.Actor(r), chi.URLParam(r, "userID"))
		if err != nil {
			httpresp.Error(w, err)
			return
		}
		httpresp.JSON(w, http.StatusOK, deletedUserResponse{ID: u.ID, Email: u.Email, Role: u.Role, Summary: summary})
	}
}

// deletePetHandler godoc
// @Summary Eliminar mascota
// @Description Dueño o admin. Borra también los reportes y citas de la mascota.
// @Tags pets
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} deletedPetResponse
// @Failure 403 {object} httpresp.ErrorBody
// @Failure 404 {object} httpresp.ErrorBody
// @Router /pets/{petID} [delete]
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, summary, err := svc.DeletePet(r.Context(), middleware.Actor(r), chi.URLParam(r, "petID"))
		if err != nil {
			httpresp.Error(w, err)
			return
		}
		httpresp.JSON(w, http.StatusOK, deletedPetResponse{ID: p.ID, OwnerUserID: p.OwnerUserID, Name: p.Name, Summary: summary})
	}
}
