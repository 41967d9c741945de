package repository

import "github.com/jhoicas/Rentario-api/internal/domain/entity"

// TenantRepository define el puerto de persistencia para Tenant (DIP).
// La implementación vive en infrastructure.
//
// Update escribe solo campos de negocio; UpdateProvisionState escribe solo los
// campos de enlace con el motor de reservas. Mantenerlos separados impide que una
// actualización de negocio pise el estado de aprovisionamiento (y viceversa).
type TenantRepository interface {
	Create(tenant *entity.Tenant) error
	GetByID(id string) (*entity.Tenant, error)
	GetBySlug(slug string) (*entity.Tenant, error)
	List(limit, offset int) ([]*entity.Tenant, error)
	ListByProvisionStatus(statuses []string) ([]*entity.Tenant, error)
	Update(tenant *entity.Tenant) error
	UpdateProvisionState(tenant *entity.Tenant) error
	// Delete es soft: marca status = deleted conservando la fila y su enlace
	// con el motor de reservas.
	Delete(id string) error
}
