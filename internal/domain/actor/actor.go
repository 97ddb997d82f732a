package actor

import "strings"

// Role del usuario autenticado.
type Role string

const (
	RolePetOwner Role = "pet_owner"
	RoleDoctor   Role = "doctor"
	RoleAdmin    Role = "admin"
)

// ParseRole normaliza el rol recibido del proveedor de identidad.
// Acepta también las variantes "petowner" / "pet-owner" / "user".
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pet_owner", "petowner", "pet-owner", "owner", "user":
		return RolePetOwner, true
	case "doctor":
		return RoleDoctor, true
	case "admin":
		return RoleAdmin, true
	default:
		return "", false
	}
}

// Valid solo acepta los valores canónicos que se persisten.
func (r Role) Valid() bool {
	switch r {
	case RolePetOwner, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

// Actor es la identidad autenticada sobre la que corre cada operación.
// Se pasa explícito a cada caso de uso; nunca se lee de estado global.
type Actor struct {
	ID   string
	Role Role
}

func New(id string, role Role) Actor {
	return Actor{ID: strings.TrimSpace(id), Role: role}
}

func (a Actor) IsZero() bool {
	return a.ID == "" || a.Role == ""
}

// Capabilities son los permisos con nombre que resuelve cada rol.
type Capabilities struct {
	ReadAll        bool // ve todo sin scope
	MutateAll      bool // muta cualquier registro
	MutateOwn      bool // muta registros donde es owner
	MutateAssigned bool // muta registros asignados a su perfil de doctor
	ManageUsers    bool // listar/borrar usuarios, cambiar roles
}

// CapabilitiesFor resuelve una sola vez los permisos del rol.
func CapabilitiesFor(r Role) Capabilities {
	switch r {
	case RoleAdmin:
		return Capabilities{ReadAll: true, MutateAll: true, ManageUsers: true}
	case RoleDoctor:
		return Capabilities{MutateAssigned: true}
	case RolePetOwner:
		return Capabilities{MutateOwn: true}
	default:
		return Capabilities{}
	}
}

func (a Actor) Capabilities() Capabilities {
	return CapabilitiesFor(a.Role)
}
