package dto

import "time"

// SyncStatusResponse campos de seguimiento de sincronización que consumen los
// operadores (se embebe en las respuestas de artículos y clientes).
type SyncStatusResponse struct {
	ExternalID   *int64     `json:"external_id,omitempty"`
	SyncStatus   string     `json:"sync_status"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`
	SyncError    *string    `json:"sync_error,omitempty"`
}

// SyncResultResponse resultado de sincronizar una entidad individual.
type SyncResultResponse struct {
	Success    bool   `json:"success"`
	Skipped    bool   `json:"skipped,omitempty"`
	ExternalID *int64 `json:"external_id,omitempty"`
	Error      string `json:"error,omitempty"`
}

// ProvisionResultResponse resultado de aprovisionar un tenant.
type ProvisionResultResponse struct {
	Success         bool   `json:"success"`
	Skipped         bool   `json:"skipped,omitempty"`
	BookingTenantID *int64 `json:"booking_tenant_id,omitempty"`
	Error           string `json:"error,omitempty"`
}
