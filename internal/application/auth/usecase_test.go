package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Rentario-api/internal/application/dto"
	"github.com/jhoicas/Rentario-api/internal/domain"
	"github.com/jhoicas/Rentario-api/internal/domain/entity"
	"github.com/jhoicas/Rentario-api/pkg/config"
	pkgjwt "github.com/jhoicas/Rentario-api/pkg/jwt"
	"github.com/jhoicas/Rentario-api/pkg/logger"
)

// Fakes mínimos en memoria.

type memUsers struct {
	users map[string]*entity.User
}

func (r *memUsers) Create(u *entity.User) error {
	copied := *u
	r.users[u.ID] = &copied
	return nil
}

func (r *memUsers) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *memUsers) ListByEmail(email string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memUsers) GetByEmailAndTenant(email, tenantID string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.TenantID == tenantID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

type memTenants struct {
	tenants map[string]*entity.Tenant
}

func (r *memTenants) Create(t *entity.Tenant) error             { r.tenants[t.ID] = t; return nil }
func (r *memTenants) GetByID(id string) (*entity.Tenant, error) { return r.tenants[id], nil }
func (r *memTenants) GetBySlug(slug string) (*entity.Tenant, error) {
	for _, t := range r.tenants {
		if t.Slug == slug {
			return t, nil
		}
	}
	return nil, nil
}
func (r *memTenants) List(limit, offset int) ([]*entity.Tenant, error) {
	return nil, nil
}
func (r *memTenants) ListByProvisionStatus(statuses []string) ([]*entity.Tenant, error) {
	return nil, nil
}
func (r *memTenants) Update(t *entity.Tenant) error               { return nil }
func (r *memTenants) UpdateProvisionState(t *entity.Tenant) error { return nil }
func (r *memTenants) Delete(id string) error                      { return nil }

var testJWT = config.JWTConfig{Secret: "secret-de-tests", Expiration: 60, Issuer: "rental-pro-test"}

func newTestUC() (*UseCase, *memUsers) {
	users := &memUsers{users: map[string]*entity.User{}}
	tenants := &memTenants{tenants: map[string]*entity.Tenant{
		"t-1": {ID: "t-1", Name: "Fiestas Acme", Slug: "acme", Status: "active"},
		"t-2": {ID: "t-2", Name: "Fiestas Globo", Slug: "globo", Status: "active"},
	}}
	return NewUseCase(users, tenants, testJWT, logger.Nop()), users
}

func TestRegister_Y_Login(t *testing.T) {
	uc, _ := newTestUC()

	user, err := uc.Register(context.Background(), dto.RegisterRequest{
		TenantID: "t-1",
		Email:    "Ana@Acme.com",
		Password: "clave-segura-123",
		Name:     "Ana",
		Role:     entity.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@acme.com", user.Email, "el email se normaliza")
	assert.Equal(t, entity.RoleAdmin, user.Role)

	res, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@acme.com",
		Password: "clave-segura-123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)

	userID, tenantID, role, err := pkgjwt.Parse(testJWT.Secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, "t-1", tenantID, "el token lleva el tenant para el scoping")
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestRegister_RolPorDefectoStaff(t *testing.T) {
	uc, _ := newTestUC()
	user, err := uc.Register(context.Background(), dto.RegisterRequest{
		TenantID: "t-1",
		Email:    "staff@acme.com",
		Password: "clave-segura-123",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStaff, user.Role)
}

func TestRegister_SuperAdminNoAutoasignable(t *testing.T) {
	uc, _ := newTestUC()
	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		TenantID: "t-1",
		Email:    "malicioso@acme.com",
		Password: "clave-segura-123",
		Role:     entity.RoleSuperAdmin,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"el rol superadmin solo existe por seed, nunca por registro")
}

func TestRegister_TenantInexistente(t *testing.T) {
	uc, _ := newTestUC()
	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		TenantID: "t-fantasma",
		Email:    "x@acme.com",
		Password: "clave-segura-123",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegister_EmailDuplicadoEnTenant(t *testing.T) {
	uc, _ := newTestUC()
	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		TenantID: "t-1", Email: "ana@acme.com", Password: "clave-segura-123",
	})
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), dto.RegisterRequest{
		TenantID: "t-1", Email: "ana@acme.com", Password: "otra-clave-456",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc, _ := newTestUC()
	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		TenantID: "t-1", Email: "ana@acme.com", Password: "clave-segura-123",
	})
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@acme.com", Password: "clave-equivocada",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente_MismoError(t *testing.T) {
	uc, _ := newTestUC()
	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "nadie@acme.com", Password: "lo-que-sea",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized,
		"usuario inexistente y password incorrecto responden igual")
}

func TestLogin_MismoEmailEnDosTenants_SlugDecideElTenant(t *testing.T) {
	uc, _ := newTestUC()
	for _, tenantID := range []string{"t-1", "t-2"} {
		_, err := uc.Register(context.Background(), dto.RegisterRequest{
			TenantID: tenantID, Email: "ana@example.com", Password: "clave-segura-123",
		})
		require.NoError(t, err, "el mismo email es legal en tenants distintos")
	}

	for tenantSlug, want := range map[string]string{"acme": "t-1", "globo": "t-2"} {
		res, err := uc.Login(context.Background(), dto.LoginRequest{
			TenantSlug: tenantSlug,
			Email:      "ana@example.com",
			Password:   "clave-segura-123",
		})
		require.NoError(t, err)

		_, tenantID, _, err := pkgjwt.Parse(testJWT.Secret, res.Token)
		require.NoError(t, err)
		assert.Equal(t, want, tenantID,
			"el claim de tenant del token corresponde exactamente al slug indicado")
	}
}

func TestLogin_MismoEmailEnDosTenants_SinSlugEsAmbiguo(t *testing.T) {
	uc, _ := newTestUC()
	for _, tenantID := range []string{"t-1", "t-2"} {
		_, err := uc.Register(context.Background(), dto.RegisterRequest{
			TenantID: tenantID, Email: "ana@example.com", Password: "clave-segura-123",
		})
		require.NoError(t, err)
	}

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@example.com", Password: "clave-segura-123",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"un login que calza en varios tenants nunca elige uno al azar")
}

func TestLogin_SlugInexistente_MismoError(t *testing.T) {
	uc, _ := newTestUC()
	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		TenantID: "t-1", Email: "ana@acme.com", Password: "clave-segura-123",
	})
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		TenantSlug: "fantasma", Email: "ana@acme.com", Password: "clave-segura-123",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized,
		"slug desconocido responde igual que credenciales inválidas")
}

func TestLogin_UsuarioSuspendido(t *testing.T) {
	uc, users := newTestUC()
	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		TenantID: "t-1", Email: "ana@acme.com", Password: "clave-segura-123",
	})
	require.NoError(t, err)

	for _, u := range users.users {
		u.Status = "suspended"
	}

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@acme.com", Password: "clave-segura-123",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
