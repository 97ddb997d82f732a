package users

import (
	"strings"
	"time"

	"vet-clinic/internal/domain/actor"
)

// User es la cuenta de la clínica (dueño, doctor o admin).
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Role         actor.Role

	// Campos solo relevantes para doctores.
	Occupation   string
	Availability string
	LeaveDays    []string

	ProfileImage string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeEmail es la forma canónica usada para la unicidad.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u User) Clone() User {
	u.LeaveDays = append([]string(nil), u.LeaveDays...)
	return u
}
