package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Rentario-api/internal/application/authz"
	"github.com/jhoicas/Rentario-api/internal/application/dto"
	"github.com/jhoicas/Rentario-api/internal/domain"
	"github.com/jhoicas/Rentario-api/internal/domain/entity"
	"github.com/jhoicas/Rentario-api/pkg/logger"
)

func platformOperator() authz.Principal {
	return authz.Principal{UserID: "u-root", TenantID: "t-plataforma", Role: entity.RoleSuperAdmin}
}

func newTenantUC(tenants *memTenantRepo, users *memUserRepo, provision *fakeProvision) *TenantUseCase {
	return NewTenantUseCase(tenants, &fakeTx{tenantRepo: tenants, userRepo: users}, provision, logger.Nop())
}

func TestTenantCreate_DespachaAprovisionamientoTrasCommit(t *testing.T) {
	tenants := newMemTenantRepo()
	provision := &fakeProvision{}
	uc := newTenantUC(tenants, newMemUserRepo(), provision)

	resp, err := uc.Create(context.Background(), platformOperator(), dto.CreateTenantRequest{
		Name: "Alquileres El Cañón",
		Plan: entity.PlanPro,
	})
	require.NoError(t, err)

	assert.Equal(t, "alquileres-el-canon", resp.Slug, "el slug se deriva del nombre")
	assert.Equal(t, entity.ProvisionPending, resp.ProvisionStatus)
	assert.NotEmpty(t, resp.APIKey, "el alta emite la API key de plataforma del tenant")
	require.Len(t, provision.dispatched, 1)
	assert.Equal(t, resp.ID, provision.dispatched[0])
}

func TestTenantCreate_NoEsOperadorDePlataforma(t *testing.T) {
	uc := newTenantUC(newMemTenantRepo(), newMemUserRepo(), &fakeProvision{})

	_, err := uc.Create(context.Background(), adminOf("t-1"), dto.CreateTenantRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrForbidden,
		"solo el operador de plataforma crea tenants")
}

func TestTenantCreate_SlugDuplicado(t *testing.T) {
	tenants := newMemTenantRepo(activeTenant("t-1", "fiestas-acme"))
	provision := &fakeProvision{}
	uc := newTenantUC(tenants, newMemUserRepo(), provision)

	_, err := uc.Create(context.Background(), platformOperator(), dto.CreateTenantRequest{
		Name: "Fiestas Acme",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Empty(t, provision.dispatched, "un alta rechazada no aprovisiona nada")
}

func TestTenantCreate_PlanDesconocido(t *testing.T) {
	uc := newTenantUC(newMemTenantRepo(), newMemUserRepo(), &fakeProvision{})

	_, err := uc.Create(context.Background(), platformOperator(), dto.CreateTenantRequest{
		Name: "Fiestas Acme",
		Plan: "platino",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTenantCreate_ConAdministradorEnLaMismaTransaccion(t *testing.T) {
	tenants := newMemTenantRepo()
	users := newMemUserRepo()
	uc := newTenantUC(tenants, users, &fakeProvision{})

	resp, err := uc.Create(context.Background(), platformOperator(), dto.CreateTenantRequest{
		Name:          "Fiestas Acme",
		AdminEmail:    "admin@acme.com",
		AdminPassword: "clave-segura-123",
		AdminName:     "Ana",
	})
	require.NoError(t, err)

	admin, err := users.GetByEmailAndTenant("admin@acme.com", resp.ID)
	require.NoError(t, err)
	require.NotNil(t, admin, "el administrador debe quedar creado junto con el tenant")
	assert.Equal(t, entity.RoleAdmin, admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("clave-segura-123")),
		"el password se almacena como hash bcrypt")
}

func TestTenantUpdate_NuncaReaprovisiona(t *testing.T) {
	tenant := activeTenant("t-1", "acme")
	tenant.ProvisionStatus = entity.ProvisionProvisioned
	tenants := newMemTenantRepo(tenant)
	provision := &fakeProvision{}
	uc := newTenantUC(tenants, newMemUserRepo(), provision)

	_, err := uc.Update(context.Background(), platformOperator(), "t-1", dto.UpdateTenantRequest{
		Name: "Fiestas Acme Renovada",
		Plan: entity.PlanPremium,
	})
	require.NoError(t, err)
	assert.Empty(t, provision.dispatched,
		"las actualizaciones de negocio jamás re-disparan el aprovisionamiento")
}

func TestTenantGetByID_PrincipalDeTenantSinCredenciales(t *testing.T) {
	tenant := activeTenant("t-1", "acme")
	tenant.APIKey = "clave-plataforma"
	bookingKey := "clave-booking"
	tenant.BookingAPIKey = &bookingKey
	tenants := newMemTenantRepo(tenant)
	uc := newTenantUC(tenants, newMemUserRepo(), &fakeProvision{})

	own, err := uc.GetByID(context.Background(), adminOf("t-1"), "t-1")
	require.NoError(t, err)
	assert.Empty(t, own.APIKey, "las credenciales no viajan a principales de tenant")
	assert.Nil(t, own.BookingAPIKey)

	asPlatform, err := uc.GetByID(context.Background(), platformOperator(), "t-1")
	require.NoError(t, err)
	assert.Equal(t, "clave-plataforma", asPlatform.APIKey)
}

func TestTenantGetByID_CrossTenantProhibido(t *testing.T) {
	tenants := newMemTenantRepo(activeTenant("t-1", "acme"))
	uc := newTenantUC(tenants, newMemUserRepo(), &fakeProvision{})

	_, err := uc.GetByID(context.Background(), adminOf("t-otro"), "t-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestTenantDelete_EsSoftYConservaElEnlaceBooking(t *testing.T) {
	tenant := activeTenant("t-1", "acme")
	bookingID := int64(55)
	tenant.BookingTenantID = &bookingID
	tenant.ProvisionStatus = entity.ProvisionProvisioned
	tenants := newMemTenantRepo(tenant)
	uc := newTenantUC(tenants, newMemUserRepo(), &fakeProvision{})

	require.NoError(t, uc.Delete(context.Background(), platformOperator(), "t-1"))

	stored, err := tenants.GetByID("t-1")
	require.NoError(t, err)
	require.NotNil(t, stored, "la fila sobrevive al delete")
	assert.Equal(t, "deleted", stored.Status)
	require.NotNil(t, stored.BookingTenantID, "el enlace remoto se conserva para reconciliación")
	assert.Equal(t, int64(55), *stored.BookingTenantID)

	err = uc.Delete(context.Background(), platformOperator(), "t-1")
	assert.ErrorIs(t, err, domain.ErrNotFound, "un tenant eliminado no se elimina dos veces")

	_, err = uc.Update(context.Background(), platformOperator(), "t-1", dto.UpdateTenantRequest{
		Status: "active",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "deleted es terminal: Update no lo revive")
}

func TestTenantList_SoloPlataforma(t *testing.T) {
	tenants := newMemTenantRepo(activeTenant("t-1", "acme"))
	uc := newTenantUC(tenants, newMemUserRepo(), &fakeProvision{})

	_, err := uc.List(context.Background(), adminOf("t-1"), dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	list, err := uc.List(context.Background(), platformOperator(), dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}
