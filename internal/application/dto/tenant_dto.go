package dto

import "time"

// CreateTenantRequest alta de un tenant (solo operadores de plataforma).
// Si Slug está vacío se deriva del nombre. Los campos Admin* son opcionales:
// cuando vienen, el usuario administrador se crea en la misma transacción.
type CreateTenantRequest struct {
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Plan          string `json:"plan"`
	AdminEmail    string `json:"admin_email"`
	AdminPassword string `json:"admin_password"`
	AdminName     string `json:"admin_name"`
}

// UpdateTenantRequest cambios de negocio sobre un tenant. Nunca re-dispara el
// aprovisionamiento ni toca los campos booking_*.
type UpdateTenantRequest struct {
	Name   string `json:"name"`
	Plan   string `json:"plan"`
	Status string `json:"status"`
}

// TenantResponse representación de un tenant, incluyendo el estado de
// aprovisionamiento que consumen los operadores.
type TenantResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Plan            string    `json:"plan"`
	Status          string    `json:"status"`
	APIKey          string    `json:"api_key,omitempty"`
	BookingTenantID *int64    `json:"booking_tenant_id,omitempty"`
	BookingAPIKey   *string   `json:"booking_api_key,omitempty"`
	ProvisionStatus string    `json:"provision_status"`
	ProvisionError  *string   `json:"provision_error,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TenantListResponse listado paginado de tenants.
type TenantListResponse struct {
	Items []TenantResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
