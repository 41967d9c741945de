package dto

import "time"

// CreateCustomerRequest alta de un cliente. TenantID solo lo consume un operador
// de plataforma; para principales de tenant se ignora.
type CreateCustomerRequest struct {
	TenantID string   `json:"tenant_id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Address  string   `json:"address"`
	Notes    string   `json:"notes"`
	Tags     []string `json:"tags"`
}

// UpdateCustomerRequest cambios sobre un cliente (tenant_id inmutable).
type UpdateCustomerRequest struct {
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Address string   `json:"address"`
	Notes   string   `json:"notes"`
	Tags    []string `json:"tags"`
}

// CustomerResponse representación de un cliente con su estado de sincronización.
type CustomerResponse struct {
	ID       string   `json:"id"`
	TenantID string   `json:"tenant_id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Address  string   `json:"address"`
	Notes    string   `json:"notes"`
	Tags     []string `json:"tags"`
	SyncStatusResponse
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerListResponse listado paginado de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
