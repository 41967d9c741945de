package entity

import "time"

// Estados de aprovisionamiento del tenant en el motor de reservas.
const (
	ProvisionPending     = "pending"
	ProvisionProvisioned = "provisioned"
	ProvisionFailed      = "failed"
)

// Planes disponibles.
const (
	PlanBasico  = "basico"
	PlanPro     = "pro"
	PlanPremium = "premium"
)

// Tenant representa una empresa de alquiler de artículos para fiestas (multi-tenant).
// Los campos Booking* enlazan al tenant con su identidad en el motor externo de
// reservas: BookingTenantID es no-nulo si y solo si el aprovisionamiento llegó a
// crear el tenant remoto (aunque el paso de credencial haya fallado después).
type Tenant struct {
	ID     string
	Name   string
	Slug   string // URL-safe; derivado del nombre si no se especifica
	Plan   string // ver constantes Plan*
	Status string // active, suspended, deleted
	APIKey string // API key de plataforma emitida para el tenant

	BookingTenantID *int64  // ID del tenant en el motor de reservas (nil = sin aprovisionar)
	BookingAPIKey   *string // credencial emitida por el motor de reservas
	ProvisionStatus string  // ver constantes Provision*
	ProvisionError  *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Provisioned indica si el tenant ya tiene identidad completa en el motor de reservas.
func (t *Tenant) Provisioned() bool {
	return t.ProvisionStatus == ProvisionProvisioned && t.BookingTenantID != nil
}
