package usecase

import (
	"context"

	"github.com/jhoicas/Rentario-api/internal/domain/entity"
	"github.com/jhoicas/Rentario-api/internal/domain/repository"
)

// TenantTxRunner ejecuta un callback con repos transaccionales de tenant y
// usuario. Cuando retorna sin error el commit ya ocurrió.
type TenantTxRunner interface {
	RunTenant(ctx context.Context, fn func(
		tenantRepo repository.TenantRepository,
		userRepo repository.UserRepository,
	) error) error
}

// SyncDispatcher punto de entrada de los casos de uso hacia el orquestador de
// sincronización. Los métodos Note* se invocan después de persistir un cambio
// de negocio: el orquestador decide si el cambio es relevante y despacha en
// background sin bloquear la respuesta HTTP.
type SyncDispatcher interface {
	SyncRentalItemAsync(itemID string)
	SyncCustomerAsync(customerID string)
	NoteRentalItemChanged(prev, next *entity.RentalItem)
	NoteCustomerChanged(prev, next *entity.Customer)
}

// ProvisionDispatcher despacho en background del aprovisionamiento de tenants.
type ProvisionDispatcher interface {
	ProvisionTenantAsync(tenantID string)
}
