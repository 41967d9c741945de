package entity

import "time"

// Estados de sincronización con el motor de reservas.
// Las transiciones las realiza únicamente el orquestador:
//
//	pending -> synced | failed
//	synced  -> out_of_sync (un cambio local relevante invalida la copia remota)
//	failed / out_of_sync -> se reintentan por el mismo camino que un sync nuevo
const (
	SyncPending   = "pending"
	SyncSynced    = "synced"
	SyncFailed    = "failed"
	SyncOutOfSync = "out_of_sync"
)

// SyncState campos de seguimiento de sincronización compartidos por RentalItem y Customer.
// Estos campos solo los escribe el orquestador (UpdateSyncState en los repos); las
// actualizaciones de negocio no los tocan, lo que evita suplantar estados y bucles de sync.
type SyncState struct {
	SyncStatus   string
	LastSyncedAt *time.Time
	SyncError    *string
}

// NeedsSync indica si el estado actual amerita un intento de sincronización
// (usado por los barridos SyncAllPending).
func (s SyncState) NeedsSync() bool {
	return s.SyncStatus == SyncPending || s.SyncStatus == SyncFailed || s.SyncStatus == SyncOutOfSync
}
