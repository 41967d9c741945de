package repository

import "github.com/jhoicas/Rentario-api/internal/domain/entity"

// RentalItemRepository define el puerto de persistencia para RentalItem.
//
// Update nunca toca las columnas de sincronización; UpdateSyncState escribe
// únicamente esas columnas. Ver entity.SyncState.
type RentalItemRepository interface {
	Create(item *entity.RentalItem) error
	GetByID(id string) (*entity.RentalItem, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.RentalItem, error)
	ListActiveByTenant(tenantID string, limit, offset int) ([]*entity.RentalItem, error)
	ListNeedingSync(limit int) ([]*entity.RentalItem, error)
	ListIDsByTenant(tenantID string) ([]string, error)
	Update(item *entity.RentalItem) error
	UpdateSyncState(item *entity.RentalItem) error
	Delete(id string) error
}
