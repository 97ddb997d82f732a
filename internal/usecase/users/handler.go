package users

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"vet-clinic/internal/apperr"
	"vet-clinic/internal/domain/actor"
	"vet-clinic/internal/domain/users"
	"vet-clinic/internal/httpresp"
	"vet-clinic/internal/middleware"
	"vet-clinic/internal/ports/auth"
)

// RegisterRoutes monta auth y usuarios. issuer puede ser nil (modo dev: login sin token).
// DELETE /users/{userID} lo monta lifecycle.
func RegisterRoutes(r chi.Router, svc *Service, issuer auth.TokenIssuer, extra ...func(chi.Router)) {
	r.Post("/auth/register", registerHandler(svc))
	r.Post("/auth/login", loginHandler(svc, issuer))

	r.Route("/users", func(ur chi.Router) {
		ur.Get("/", listUsersHandler(svc))
		ur.Post("/", createUserHandler(svc))
		ur.Get("/me", meHandler(svc))
		ur.Get("/{userID}", getUserHandler(svc))
		ur.Patch("/{userID}", updateUserHandler(svc))
		ur.Put("/{userID}/role", changeRoleHandler(svc))

		for _, fn := range extra {
			fn(ur)
		}
	})
}

type registerRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Phone        string `json:"phone"`
	Role         string `json:"role"` // pet_owner | doctor
	Occupation   string `json:"occupation"`
	Availability string `json:"availability"`
	ProfileImage string `json:"profile_image"`

	// Solo si role = doctor.
	Specialization  string   `json:"specialization"`
	ExperienceYears int      `json:"experience_years"`
	ConsultationFee float64  `json:"consultation_fee"`
	AvailableDays   []string `json:"available_days"`
	AvailableTimes  []string `json:"available_times"`
	Bio             string   `json:"bio"`
}

func (r registerRequest) input() RegisterInput {
	return RegisterInput{
		Name:         r.Name,
		Email:        r.Email,
		Password:     r.Password,
		Phone:        r.Phone,
		Role:         r.Role,
		Occupation:   r.Occupation,
		Availability: r.Availability,
		ProfileImage: r.ProfileImage,
		Doctor: DoctorProfile{
			Specialization:  r.Specialization,
			ExperienceYears: r.ExperienceYears,
			ConsultationFee: r.ConsultationFee,
			AvailableDays:   r.AvailableDays,
			AvailableTimes:  r.AvailableTimes,
			Bio:             r.Bio,
		},
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string       `json:"token,omitempty"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
	User      userResponse `json:"user"`
}

type userResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Role         actor.Role `json:"role"`
	Occupation   string     `json:"occupation,omitempty"`
	Availability string     `json:"availability,omitempty"`
	LeaveDays    []string   `json:"leave_days"`
	ProfileImage string     `json:"profile_image,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type updateUserRequest struct {
	Name         *string   `json:"name"`
	Email        *string   `json:"email"`
	Password     *string   `json:"password"`
	Phone        *string   `json:"phone"`
	Occupation   *string   `json:"occupation"`
	Availability *string   `json:"availability"`
	LeaveDays    *[]string `json:"leave_days"`
	ProfileImage *string   `json:"profile_image"`
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

// registerHandler godoc
// @Summary Registrar usuario
// @Description Alta pública de dueño de mascota o doctor. Un doctor recibe su perfil en la misma operación.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body registerRequest true "Datos del usuario"
// @Success 201 {object} userResponse
// @Failure 400 {object} httpresp.ErrorBody "validación / email ya registrado"
// @Router /auth/register [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := httpresp.Decode(r, &req); err != nil {
			httpresp.Error(w, err)
			return
		}

		u, err := svc.Register(r.Context(), req.input())
		if err != nil {
			httpresp.Error(w, err)
			return
		}

		httpresp.JSON(w, http.StatusCreated, toUserResponse(u))
	}
}

// loginHandler godoc
// @Summary Login
// @Description Valida credenciales y emite un token (si hay emisor configurado).
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} loginResponse
// @Failure 401 {object} httpresp.ErrorBody "credenciales inválidas"
// @Router /auth/login [post]
func loginHandler(svc *Service, issuer auth.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := httpresp.Decode(r, &req); err != nil {
			httpresp.Error(w, err)
			return
		}

		u, err := svc.Authenticate(r.Context(), req.Email, req.Password)
		if err != nil {
			// 401 y no 403: no hay sesión todavía.
			httpresp.JSON(w, http.StatusUnauthorized, httpresp.ErrorBody{
				Error: string(apperr.KindNotAuthorized),
				Code:  apperr.CodeOf(err),
			})
			return
		}

		resp := loginResponse{User: toUserResponse(u)}
		if issuer != nil {
			token, exp, err := issuer.Issue(auth.Claims{UserID: u.ID, Email: u.Email, Role: string(u.Role)})
			if err != nil {
				httpresp.Error(w, err)
				return
			}
			resp.Token = token
			resp.ExpiresAt = &exp
		}

		httpresp.JSON(w, http.StatusOK, resp)
	}
}

// meHandler godoc
// @Summary Mi usuario
// @Tags users
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-Role header string false "Solo en modo dev, rol (pet_owner, doctor, admin)"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} userResponse
// @Failure 401 {object} httpresp.ErrorBody
// @Router /users/me [get]
func meHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a := middleware.Actor(r)
		u, err := svc.Get(r.Context(), a, a.ID)
		if err != nil {
			httpresp.Error(w, err)
			return
		}
		httpresp.JSON(w, http.StatusOK, toUserResponse(u))
	}
}

// listUsersHandler godoc
// @Summary Listar usuarios
// @Description Solo admin. Filtro opcional por rol.
// @Tags users
// @Produce json
// @Param role query string false "pet_owner | doctor | admin"
// @Success 200 {array} userResponse
// @Failure 403 {object} httpresp.ErrorBody
// @Router /users [get]
func listUsersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter users.ListFilter
		if raw := r.URL.Query().Get("role"); raw != "" {
			role, ok := actor.ParseRole(raw)
			if !ok {
				httpresp.Error(w, apperr.Validation("invalid_role", "unknown role "+raw))
				return
			}
			filter.Role = role
		}

		items, err := svc.List(r.Context(), middleware.Actor(r), filter)
		if err != nil {
			httpresp.Error(w, err)
			return
		}

		out := make([]userResponse, 0, len(items))
		for _, u := range items {
			out = append(out, toUserResponse(u))
		}
		httpresp.JSON(w, http.StatusOK, out)
	}
}

// createUserHandler godoc
// @Summary Crear usuario (admin)
// @Description Solo admin. Permite cualquier rol, incluido admin.
// @Tags users
// @Accept json
// @Produce json
// @Param payload body registerRequest true "Datos del usuario"
// @Success 201 {object} userResponse
// @Failure 400 {object} httpresp.ErrorBody
// @Failure 403 {object} httpresp.ErrorBody
// @Router /users [post]
func createUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := httpresp.Decode(r, &req); err != nil {
			httpresp.Error(w, err)
			return
		}

		u, err := svc.CreateByAdmin(r.Context(), middleware.Actor(r), req.input())
		if err != nil {
			httpresp.Error(w, err)
			return
		}
		httpresp.JSON(w, http.StatusCreated, toUserResponse(u))
	}
}

// getUserHandler godoc
// @Summary Ver usuario
// @Description El propio usuario o admin.
// @Tags users
// @Produce json
// @Param userID path string true "ID del usuario"
// @Success 200 {object} userResponse
// @Failure 403 {object} httpresp.ErrorBody
// @Failure 404 {object} httpresp.ErrorBody
// @Router /users/{userID} [get]
func getUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.Get(r.Context(), middleware.Actor(r), chi.URLParam(r, "userID"))
		if err != nil {
			httpresp.Error(w, err)
			return
		}
		httpresp.JSON(w, http.StatusOK, toUserResponse(u))
	}
}

// updateUserHandler godoc
// @Summary Actualizar usuario
// @Description El propio usuario o admin. El rol se cambia con PUT /users/{userID}/role.
// @Tags users
// @Accept json
// @Produce json
// @Param userID path string true "ID del usuario"
// @Param payload body updateUserRequest true "Campos a modificar"
// @Success 200 {object} userResponse
// @Failure 400 {object} httpresp.ErrorBody
// @Failure 403 {object} httpresp.ErrorBody
// @Failure 404 {object} httpresp.ErrorBody
// @Router /users/{userID} [patch]
func updateUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateUserRequest
		if err := httpresp.Decode(r, &req); err != nil {
			httpresp.Error(w, err)
			return
		}

		u, err := svc.Update(r.Context(), middleware.Actor(r), chi.URLParam(r, "userID"), UpdateInput{
			Name:         req.Name,
			Email:        req.Email,
			Password:     req.Password,
			Phone:        req.Phone,
			Occupation:   req.Occupation,
			Availability: req.Availability,
			LeaveDays:    req.LeaveDays,
			ProfileImage: req.ProfileImage,
		})
		if err != nil {
			httpresp.Error(w, err)
			return
		}
		httpresp.JSON(w, http.StatusOK, toUserResponse(u))
	}
}

// changeRoleHandler godoc
// @Summary Cambiar rol
// @Description Solo admin. Crea o elimina el perfil de doctor según corresponda.
// @Tags users
// @Accept json
// @Produce json
// @Param userID path string true "ID del usuario"
// @Param payload body changeRoleRequest true "Nuevo rol"
// @Success 200 {object} userResponse
// @Failure 400 {object} httpresp.ErrorBody
// @Failure 403 {object} httpresp.ErrorBody
// @Router /users/{userID}/role [put]
func changeRoleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req changeRoleRequest
		if err := httpresp.Decode(r, &req); err != nil {
			httpresp.Error(w, err)
			return
		}

		u, err := svc.ChangeRole(r.Context(), middleware.Actor(r), chi.URLParam(r, "userID"), req.Role)
		if err != nil {
			httpresp.Error(w, err)
			return
		}
		httpresp.JSON(w, http.StatusOK, toUserResponse(u))
	}
}

func toUserResponse(u users.User) userResponse {
	leave := u.LeaveDays
	if leave == nil {
		leave = []string{}
	}
	return userResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		Role:         u.Role,
		Occupation:   u.Occupation,
		Availability: u.Availability,
		LeaveDays:    leave,
		ProfileImage: u.ProfileImage,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
