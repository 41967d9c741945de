package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Rentario-api/internal/application/dto"
	"github.com/jhoicas/Rentario-api/internal/domain"
	"github.com/jhoicas/Rentario-api/internal/domain/entity"
	"github.com/jhoicas/Rentario-api/pkg/logger"
)

func newCustomerUC(customers *memCustomerRepo, tenants *memTenantRepo, sync *fakeSync) *CustomerUseCase {
	return NewCustomerUseCase(customers, tenants, sync, logger.Nop())
}

func TestCustomerCreate_DespachaSync(t *testing.T) {
	tenants := newMemTenantRepo(activeTenant("t-1", "acme"))
	customers := newMemCustomerRepo()
	sync := &fakeSync{}
	uc := newCustomerUC(customers, tenants, sync)

	resp, err := uc.Create(context.Background(), adminOf("t-1"), dto.CreateCustomerRequest{
		Name:  "Ana Gómez",
		Email: "Ana@Example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "ana@example.com", resp.Email, "el email se normaliza a minúsculas")
	assert.Equal(t, entity.SyncPending, resp.SyncStatus)
	require.Len(t, sync.customerSyncs, 1)
	assert.Equal(t, resp.ID, sync.customerSyncs[0])
}

func TestCustomerCreate_EmailDuplicadoEnElTenant(t *testing.T) {
	tenants := newMemTenantRepo(activeTenant("t-1", "acme"))
	customers := newMemCustomerRepo(&entity.Customer{
		ID: "c-1", TenantID: "t-1", Name: "Ana", Email: "ana@example.com",
	})
	uc := newCustomerUC(customers, tenants, &fakeSync{})

	_, err := uc.Create(context.Background(), adminOf("t-1"), dto.CreateCustomerRequest{
		Name:  "Otra Ana",
		Email: "ana@example.com",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCustomerCreate_MismoEmailEnOtroTenant_Permitido(t *testing.T) {
	tenants := newMemTenantRepo(activeTenant("t-1", "acme"), activeTenant("t-2", "otra"))
	customers := newMemCustomerRepo(&entity.Customer{
		ID: "c-1", TenantID: "t-2", Name: "Ana", Email: "ana@example.com",
	})
	uc := newCustomerUC(customers, tenants, &fakeSync{})

	_, err := uc.Create(context.Background(), adminOf("t-1"), dto.CreateCustomerRequest{
		Name:  "Ana",
		Email: "ana@example.com",
	})
	assert.NoError(t, err, "la unicidad del email es por tenant, no global")
}

func TestCustomerUpdate_NotificaAlOrquestador(t *testing.T) {
	tenants := newMemTenantRepo(activeTenant("t-1", "acme"))
	customers := newMemCustomerRepo(&entity.Customer{
		ID: "c-1", TenantID: "t-1", Name: "Ana", Email: "ana@example.com",
		SyncState: entity.SyncState{SyncStatus: entity.SyncSynced},
	})
	sync := &fakeSync{}
	uc := newCustomerUC(customers, tenants, sync)

	_, err := uc.Update(context.Background(), adminOf("t-1"), "c-1", dto.UpdateCustomerRequest{
		Name:  "Ana",
		Phone: "300 123 4567",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, sync.customerNotes)
}

func TestCustomerGetByID_CrossTenant_NotFound(t *testing.T) {
	tenants := newMemTenantRepo(activeTenant("t-1", "acme"))
	customers := newMemCustomerRepo(&entity.Customer{ID: "c-1", TenantID: "t-1", Name: "Ana"})
	uc := newCustomerUC(customers, tenants, &fakeSync{})

	_, err := uc.GetByID(context.Background(), adminOf("t-otro"), "c-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
