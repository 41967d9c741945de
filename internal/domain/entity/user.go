package entity

import "time"

// Roles de usuario.
const (
	RoleSuperAdmin = "superadmin" // operador de plataforma: ve todos los tenants
	RoleAdmin      = "admin"      // administrador del tenant
	RoleStaff      = "staff"      // personal operativo del tenant
)

// User representa un usuario operador del sistema, siempre asociado a un tenant
// (los superadmin usan el tenant de plataforma).
type User struct {
	ID           string
	TenantID     string
	Email        string
	PasswordHash string
	Name         string
	Role         string // ver constantes Role*
	Status       string // active, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
