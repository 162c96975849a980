package entity

import "time"

// Estados válidos para User.
const (
	UserStatusActive    = "active"
	UserStatusInactive  = "inactive"
	UserStatusSuspended = "suspended"
)

// User representa un usuario interno. Role guarda el nombre de cable del rol
// ("ES", "RC", "FIN", "Manager", "ADMIN", "Dist User", "Data Entry").
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano
	Name         string
	Role         string
	DistrictID   string // distrito asignado (ES / Dist User); vacío para roles centrales
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive informa si el usuario puede iniciar sesión.
func (u *User) IsActive() bool {
	return u != nil && u.Status == UserStatusActive
}
