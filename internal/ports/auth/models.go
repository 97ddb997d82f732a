package auth

import "vet-clinic/internal/domain/actor"

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// Actor convierte los claims en el valor explícito que reciben los casos de uso.
// Un rol desconocido deja Role vacío y el evaluador lo rechaza.
func (c Claims) Actor() actor.Actor {
	role, _ := actor.ParseRole(c.Role)
	return actor.New(c.UserID, role)
}
