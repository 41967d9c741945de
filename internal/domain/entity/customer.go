package entity

import "time"

// Customer representa un cliente final de la empresa de alquiler.
type Customer struct {
	ID       string
	TenantID string
	Name     string
	Email    string
	Phone    string
	Address  string
	Notes    string
	Tags     []string

	BookingCustomerID *int64 // ID del cliente en el motor de reservas
	SyncState

	CreatedAt time.Time
	UpdatedAt time.Time
}
