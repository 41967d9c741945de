package authz

import (
	"github.com/jhoicas/Rentario-api/internal/domain"
	"github.com/jhoicas/Rentario-api/internal/domain/entity"
)

// Principal identidad autenticada que acompaña toda mutación. El valor cero es un
// caller anónimo (caso del widget público de reservas).
type Principal struct {
	UserID   string
	TenantID string
	Role     string // entity.RoleSuperAdmin | RoleAdmin | RoleStaff
}

// Anonymous indica si el caller no presentó credenciales.
func (p Principal) Anonymous() bool {
	return p.UserID == ""
}

// IsPlatformOperator indica si el principal es un super-operador de plataforma
// (ve y administra todos los tenants).
func (p Principal) IsPlatformOperator() bool {
	return p.Role == entity.RoleSuperAdmin
}

// TenantScope resuelve el tenant efectivo de una operación. El tenant id de una
// fila nueva SIEMPRE sale del contexto autenticado del caller, nunca del body de
// la petición: un tenant id ajeno en el request jamás cambia qué datos se tocan
// (previene inyección cross-tenant). Solo el super-operador puede actuar sobre un
// tenant explícito.
func TenantScope(p Principal, requested string) (string, error) {
	if p.Anonymous() {
		return "", domain.ErrUnauthorized
	}
	if p.IsPlatformOperator() {
		if requested == "" {
			return "", domain.ErrInvalidInput
		}
		return requested, nil
	}
	// El requested del body se ignora deliberadamente (no se rechaza).
	if p.TenantID == "" {
		return "", domain.ErrUnauthorized
	}
	return p.TenantID, nil
}

// CanAccessTenant indica si el principal puede leer/escribir datos del tenant dado.
func CanAccessTenant(p Principal, tenantID string) bool {
	if p.Anonymous() {
		return false
	}
	if p.IsPlatformOperator() {
		return true
	}
	return p.TenantID == tenantID
}

// CanManagePlatform indica si el principal puede ejecutar operaciones de
// plataforma (crear tenants, barridos de sync/aprovisionamiento).
func CanManagePlatform(p Principal) bool {
	return p.IsPlatformOperator()
}
