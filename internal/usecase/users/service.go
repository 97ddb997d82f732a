package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"vet-clinic/internal/apperr"
	"vet-clinic/internal/domain/actor"
	"vet-clinic/internal/domain/doctors"
	"vet-clinic/internal/domain/policy"
	"vet-clinic/internal/domain/users"
	"vet-clinic/internal/ports/storage"
	"vet-clinic/internal/usecase"
)

const minPasswordLen = 6

type Service struct {
	usecase.Deps
	hashCost int
}

func NewService(d usecase.Deps) *Service {
	return &Service{Deps: d.Normalize(), hashCost: bcrypt.DefaultCost}
}

// WithHashCost baja el costo de bcrypt (tests).
func (s *Service) WithHashCost(cost int) *Service {
	s.hashCost = cost
	return s
}

// DoctorProfile son los datos opcionales del perfil al registrar un doctor.
type DoctorProfile struct {
	Specialization  string
	ExperienceYears int
	ConsultationFee float64
	AvailableDays   []string
	AvailableTimes  []string
	Bio             string
}

type RegisterInput struct {
	Name         string
	Email        string
	Password     string
	Phone        string
	Role         string
	Occupation   string
	Availability string
	ProfileImage string

	Doctor DoctorProfile
}

// Register es el alta pública: solo pet_owner o doctor.
func (s *Service) Register(ctx context.Context, in RegisterInput) (users.User, error) {
	role, ok := actor.ParseRole(in.Role)
	if strings.TrimSpace(in.Role) == "" {
		role, ok = actor.RolePetOwner, true
	}
	if !ok || role == actor.RoleAdmin {
		return users.User{}, apperr.Validation("invalid_role", "role must be pet_owner or doctor")
	}
	return s.create(ctx, role, in)
}

// CreateByAdmin permite cualquier rol.
func (s *Service) CreateByAdmin(ctx context.Context, a actor.Actor, in RegisterInput) (users.User, error) {
	sub, err := s.Policy.Resolve(ctx, a)
	if err != nil {
		return users.User{}, err
	}
	if err := sub.CanAct(policy.OpCreate, policy.Record{Entity: policy.EntityUser}); err != nil {
		return users.User{}, err
	}

	role, ok := actor.ParseRole(in.Role)
	if !ok {
		return users.User{}, apperr.Validation("invalid_role", "unknown role "+in.Role)
	}
	return s.create(ctx, role, in)
}

// EnsureAdmin crea el admin inicial si no existe un usuario con ese email.
// Es la única alta de admin que no pasa por otro admin.
func (s *Service) EnsureAdmin(ctx context.Context, name, email, password string) (users.User, bool, error) {
	existing, err := s.Store.Users().GetByEmail(ctx, users.NormalizeEmail(email))
	switch {
	case err == nil:
		return existing, false, nil
	case !errors.Is(err, storage.ErrNotFound):
		return users.User{}, false, usecase.Persist(err, "check admin")
	}
	if strings.TrimSpace(name) == "" {
		name = "admin"
	}
	u, err := s.create(ctx, actor.RoleAdmin, RegisterInput{Name: name, Email: email, Password: password})
	if err != nil {
		return users.User{}, false, err
	}
	return u, true, nil
}

func (s *Service) create(ctx context.Context, role actor.Role, in RegisterInput) (users.User, error) {
	name := strings.TrimSpace(in.Name)
	email := users.NormalizeEmail(in.Email)
	if name == "" {
		return users.User{}, apperr.Validation("name_required", "name is required")
	}
	if err := validateEmail(email); err != nil {
		return users.User{}, err
	}
	hash, err := s.hash(in.Password)
	if err != nil {
		return users.User{}, err
	}

	now := s.Now()
	u := users.User{
		ID:           s.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(in.Phone),
		Role:         role,
		Occupation:   strings.TrimSpace(in.Occupation),
		Availability: strings.TrimSpace(in.Availability),
		ProfileImage: strings.TrimSpace(in.ProfileImage),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.WithinTx(ctx, func(ctx context.Context, tx storage.Repos) error {
		if _, err := tx.Users().GetByEmail(ctx, email); err == nil {
			return emailTaken(email)
		} else if !errors.Is(err, storage.ErrNotFound) {
			return usecase.Persist(err, "check email")
		}

		if err := tx.Users().Create(ctx, u); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				return emailTaken(email)
			}
			return usecase.Persist(err, "create user")
		}

		if role == actor.RoleDoctor {
			d := newDoctor(s.NewID(), u.ID, in.Doctor, now)
			if err := tx.Doctors().Create(ctx, d); err != nil {
				return usecase.Persist(err, "create doctor profile")
			}
		}
		return nil
	})
	if err != nil {
		return users.User{}, err
	}

	s.Log.Info("user created", map[string]any{"user_id": u.ID, "role": string(u.Role)})
	return u, nil
}

// Authenticate valida credenciales. Email inexistente y password incorrecto
// devuelven el mismo error.
func (s *Service) Authenticate(ctx context.Context, email, password string) (users.User, error) {
	bad := apperr.NotAuthorized("invalid_credentials", "invalid email or password")

	u, err := s.Store.Users().GetByEmail(ctx, users.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return users.User{}, bad
		}
		return users.User{}, usecase.Persist(err, "load user")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return users.User{}, bad
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, a actor.Actor, id string) (users.User, error) {
	sub, err := s.Policy.Resolve(ctx, a)
	if err != nil {
		return users.User{}, err
	}
	u, err := s.Store.Users().GetByID(ctx, id)
	if err != nil {
		return users.User{}, usecase.Lookup(err, policy.EntityUser, id)
	}
	if err := sub.CanAct(policy.OpRead, policy.UserRecord(u)); err != nil {
		return users.User{}, err
	}
	return u, nil
}

func (s *Service) List(ctx context.Context, a actor.Actor, filter users.ListFilter) ([]users.User, error) {
	sub, err := s.Policy.Resolve(ctx, a)
	if err != nil {
		return nil, err
	}
	if err := sub.CanAct(policy.OpListUsers, policy.Record{Entity: policy.EntityUser}); err != nil {
		return nil, err
	}
	out, err := s.Store.Users().List(ctx, filter)
	if err != nil {
		return nil, usecase.Persist(err, "list users")
	}
	return out, nil
}

// UpdateInput: punteros para PATCH real, nil = no tocar. El rol no se edita aquí.
type UpdateInput struct {
	Name         *string
	Email        *string
	Password     *string
	Phone        *string
	Occupation   *string
	Availability *string
	LeaveDays    *[]string
	ProfileImage *string
}

func (s *Service) Update(ctx context.Context, a actor.Actor, id string, in UpdateInput) (users.User, error) {
	sub, err := s.Policy.Resolve(ctx, a)
	if err != nil {
		return users.User{}, err
	}

	var out users.User
	err = s.Store.WithinTx(ctx, func(ctx context.Context, tx storage.Repos) error {
		u, err := tx.Users().GetByID(ctx, id)
		if err != nil {
			return usecase.Lookup(err, policy.EntityUser, id)
		}
		if err := sub.CanAct(policy.OpUpdate, policy.UserRecord(u)); err != nil {
			return err
		}

		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return apperr.Validation("name_required", "name cannot be empty")
			}
			u.Name = name
		}
		if in.Email != nil {
			email := users.NormalizeEmail(*in.Email)
			if err := validateEmail(email); err != nil {
				return err
			}
			if email != users.NormalizeEmail(u.Email) {
				if other, err := tx.Users().GetByEmail(ctx, email); err == nil && other.ID != u.ID {
					return emailTaken(email)
				} else if err != nil && !errors.Is(err, storage.ErrNotFound) {
					return usecase.Persist(err, "check email")
				}
			}
			u.Email = email
		}
		if in.Password != nil {
			hash, err := s.hash(*in.Password)
			if err != nil {
				return err
			}
			u.PasswordHash = hash
		}
		if in.Phone != nil {
			u.Phone = strings.TrimSpace(*in.Phone)
		}
		if in.Occupation != nil {
			u.Occupation = strings.TrimSpace(*in.Occupation)
		}
		if in.Availability != nil {
			u.Availability = strings.TrimSpace(*in.Availability)
		}
		if in.LeaveDays != nil {
			u.LeaveDays = append([]string(nil), (*in.LeaveDays)...)
		}
		if in.ProfileImage != nil {
			u.ProfileImage = strings.TrimSpace(*in.ProfileImage)
		}
		u.UpdatedAt = s.Now()

		if err := tx.Users().Update(ctx, u); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				return emailTaken(u.Email)
			}
			return usecase.Persist(err, "update user")
		}
		out = u
		return nil
	})
	if err != nil {
		return users.User{}, err
	}
	return out, nil
}

// ChangeRole mantiene el invariante: hay fila Doctor si y solo si role = doctor.
// Un dueño con mascotas no puede dejar de ser pet_owner.
func (s *Service) ChangeRole(ctx context.Context, a actor.Actor, id, role string) (users.User, error) {
	sub, err := s.Policy.Resolve(ctx, a)
	if err != nil {
		return users.User{}, err
	}
	if err := sub.CanAct(policy.OpChangeRole, policy.Record{Entity: policy.EntityUser, ID: id}); err != nil {
		return users.User{}, err
	}
	newRole, ok := actor.ParseRole(role)
	if !ok {
		return users.User{}, apperr.Validation("invalid_role", "unknown role "+role)
	}

	var out users.User
	err = s.Store.WithinTx(ctx, func(ctx context.Context, tx storage.Repos) error {
		u, err := tx.Users().GetByID(ctx, id)
		if err != nil {
			return usecase.Lookup(err, policy.EntityUser, id)
		}
		if u.Role == newRole {
			out = u
			return nil
		}

		if u.Role == actor.RolePetOwner {
			owned, err := tx.Pets().ListByOwner(ctx, u.ID)
			if err != nil {
				return usecase.Persist(err, "list owner pets")
			}
			if len(owned) > 0 {
				return apperr.Validation("owner_has_pets", "user "+u.ID+" still owns pets")
			}
		}

		now := s.Now()
		if u.Role == actor.RoleDoctor {
			if _, err := tx.Doctors().DeleteByUserID(ctx, u.ID); err != nil {
				return usecase.Persist(err, "delete doctor profile")
			}
		}
		if newRole == actor.RoleDoctor {
			if err := tx.Doctors().Create(ctx, newDoctor(s.NewID(), u.ID, DoctorProfile{}, now)); err != nil &&
				!errors.Is(err, storage.ErrDuplicate) {
				return usecase.Persist(err, "create doctor profile")
			}
		}

		u.Role = newRole
		u.UpdatedAt = now
		if err := tx.Users().Update(ctx, u); err != nil {
			return usecase.Persist(err, "update user")
		}
		out = u
		return nil
	})
	if err != nil {
		return users.User{}, err
	}

	s.Log.Info("user role changed", map[string]any{"user_id": out.ID, "role": string(out.Role), "by": a.ID})
	return out, nil
}

func (s *Service) hash(password string) (string, error) {
	if len(password) < minPasswordLen {
		return "", apperr.Validation("weak_password", "password must have at least 6 characters")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperr.Validation("weak_password", "password is too long")
		}
		return "", err
	}
	return string(b), nil
}

func newDoctor(id, userID string, p DoctorProfile, now time.Time) doctors.Doctor {
	return doctors.Doctor{
		ID:              id,
		UserID:          userID,
		Specialization:  strings.TrimSpace(p.Specialization),
		ExperienceYears: p.ExperienceYears,
		ConsultationFee: p.ConsultationFee,
		AvailableDays:   append([]string(nil), p.AvailableDays...),
		AvailableTimes:  append([]string(nil), p.AvailableTimes...),
		Bio:             strings.TrimSpace(p.Bio),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func validateEmail(email string) error {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || strings.ContainsAny(email, " \t") {
		return apperr.Validation("invalid_email", "email is invalid")
	}
	return nil
}

func emailTaken(email string) error {
	return apperr.Validation("email_taken", "email "+email+" is already registered")
}
