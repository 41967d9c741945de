package repository

import "github.com/jhoicas/Rentario-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByTenantAndEmail(tenantID, email string) (*entity.Customer, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Customer, error)
	ListNeedingSync(limit int) ([]*entity.Customer, error)
	ListIDsByTenant(tenantID string) ([]string, error)
	Update(customer *entity.Customer) error
	UpdateSyncState(customer *entity.Customer) error
	Delete(id string) error
}
