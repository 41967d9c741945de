package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Rentario-api/internal/application/authz"
	"github.com/jhoicas/Rentario-api/internal/application/dto"
	"github.com/jhoicas/Rentario-api/internal/domain"
	"github.com/jhoicas/Rentario-api/internal/domain/entity"
	"github.com/jhoicas/Rentario-api/internal/domain/repository"
	"github.com/jhoicas/Rentario-api/pkg/logger"
	"github.com/jhoicas/Rentario-api/pkg/slug"
)

// TenantUseCase administra el ciclo de vida de los tenants. El alta crea el
// tenant (y su administrador, si viene en el request) en una sola transacción y
// despacha el aprovisionamiento en background solo después del commit.
type TenantUseCase struct {
	tenantRepo  repository.TenantRepository
	tx          TenantTxRunner
	provisioner ProvisionDispatcher
	log         *logger.Logger
}

// NewTenantUseCase construye el caso de uso de tenants.
func NewTenantUseCase(
	tenantRepo repository.TenantRepository,
	tx TenantTxRunner,
	provisioner ProvisionDispatcher,
	log *logger.Logger,
) *TenantUseCase {
	return &TenantUseCase{tenantRepo: tenantRepo, tx: tx, provisioner: provisioner, log: log}
}

func validPlan(plan string) bool {
	switch plan {
	case entity.PlanBasico, entity.PlanPro, entity.PlanPremium:
		return true
	}
	return false
}

// Create da de alta un tenant (solo operadores de plataforma). El slug se deriva
// del nombre si no viene; el aprovisionamiento en el motor de reservas se dispara
// exactamente una vez, aquí, nunca en Update.
func (uc *TenantUseCase) Create(ctx context.Context, p authz.Principal, req dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	if !authz.CanManagePlatform(p) {
		return nil, domain.ErrForbidden
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if req.Plan == "" {
		req.Plan = entity.PlanBasico
	}
	if !validPlan(req.Plan) {
		return nil, fmt.Errorf("%w: plan desconocido %q", domain.ErrInvalidInput, req.Plan)
	}

	tenantSlug := req.Slug
	if tenantSlug == "" {
		tenantSlug = slug.Make(req.Name)
	}
	if tenantSlug == "" {
		return nil, fmt.Errorf("%w: el nombre no produce un slug válido", domain.ErrInvalidInput)
	}
	if existing, err := uc.tenantRepo.GetBySlug(tenantSlug); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("%w: slug %q en uso", domain.ErrDuplicate, tenantSlug)
	}

	now := time.Now()
	tenant := &entity.Tenant{
		ID:              uuid.NewString(),
		Name:            req.Name,
		Slug:            tenantSlug,
		Plan:            req.Plan,
		Status:          "active",
		APIKey:          uuid.NewString(),
		ProvisionStatus: entity.ProvisionPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err := uc.tx.RunTenant(ctx, func(tenantRepo repository.TenantRepository, userRepo repository.UserRepository) error {
		if err := tenantRepo.Create(tenant); err != nil {
			return err
		}
		if req.AdminEmail == "" {
			return nil
		}
		if req.AdminPassword == "" {
			return fmt.Errorf("%w: admin_password es obligatorio cuando viene admin_email", domain.ErrInvalidInput)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		admin := &entity.User{
			ID:           uuid.NewString(),
			TenantID:     tenant.ID,
			Email:        req.AdminEmail,
			PasswordHash: string(hash),
			Name:         req.AdminName,
			Role:         entity.RoleAdmin,
			Status:       "active",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return userRepo.Create(admin)
	})
	if err != nil {
		return nil, err
	}

	// El commit ya ocurrió: el goroutine de aprovisionamiento verá la fila.
	uc.provisioner.ProvisionTenantAsync(tenant.ID)
	uc.log.Info().Str("tenant_id", tenant.ID).Str("slug", tenant.Slug).Msg("tenant creado")

	resp := tenantToResponse(tenant, true)
	return &resp, nil
}

// GetByID devuelve un tenant. Los principales de tenant solo ven el propio, y sin
// credenciales (API keys reservadas a operadores de plataforma).
func (uc *TenantUseCase) GetByID(ctx context.Context, p authz.Principal, id string) (*dto.TenantResponse, error) {
	if !authz.CanAccessTenant(p, id) {
		return nil, domain.ErrForbidden
	}
	tenant, err := uc.tenantRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}
	resp := tenantToResponse(tenant, p.IsPlatformOperator())
	return &resp, nil
}

// List pagina todos los tenants (solo operadores de plataforma).
func (uc *TenantUseCase) List(ctx context.Context, p authz.Principal, page dto.PageRequest) (*dto.TenantListResponse, error) {
	if !authz.CanManagePlatform(p) {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	tenants, err := uc.tenantRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TenantResponse, 0, len(tenants))
	for _, t := range tenants {
		items = append(items, tenantToResponse(t, true))
	}
	return &dto.TenantListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update aplica cambios de negocio. Nunca re-dispara el aprovisionamiento ni
// escribe los campos booking_* (Update del repo los excluye).
func (uc *TenantUseCase) Update(ctx context.Context, p authz.Principal, id string, req dto.UpdateTenantRequest) (*dto.TenantResponse, error) {
	if !authz.CanManagePlatform(p) {
		return nil, domain.ErrForbidden
	}
	tenant, err := uc.tenantRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tenant == nil || tenant.Status == "deleted" {
		return nil, domain.ErrNotFound
	}

	if req.Name != "" {
		tenant.Name = req.Name
	}
	if req.Plan != "" {
		if !validPlan(req.Plan) {
			return nil, fmt.Errorf("%w: plan desconocido %q", domain.ErrInvalidInput, req.Plan)
		}
		tenant.Plan = req.Plan
	}
	if req.Status != "" {
		switch req.Status {
		case "active", "suspended":
		default:
			return nil, fmt.Errorf("%w: status desconocido %q", domain.ErrInvalidInput, req.Status)
		}
		tenant.Status = req.Status
	}
	tenant.UpdatedAt = time.Now()

	if err := uc.tenantRepo.Update(tenant); err != nil {
		return nil, err
	}
	resp := tenantToResponse(tenant, true)
	return &resp, nil
}

// Delete marca un tenant como eliminado (solo operadores de plataforma). Es un
// soft delete: la fila y su enlace booking_* se conservan para reconciliación, y
// el gate de sync deja de publicar sus entidades porque el status ya no es active.
func (uc *TenantUseCase) Delete(ctx context.Context, p authz.Principal, id string) error {
	if !authz.CanManagePlatform(p) {
		return domain.ErrForbidden
	}
	tenant, err := uc.tenantRepo.GetByID(id)
	if err != nil {
		return err
	}
	if tenant == nil || tenant.Status == "deleted" {
		return domain.ErrNotFound
	}
	return uc.tenantRepo.Delete(id)
}

// tenantToResponse mapea la entidad al DTO. withSecrets controla si las
// credenciales (api_key propia y del motor de reservas) viajan en la respuesta.
func tenantToResponse(t *entity.Tenant, withSecrets bool) dto.TenantResponse {
	resp := dto.TenantResponse{
		ID:              t.ID,
		Name:            t.Name,
		Slug:            t.Slug,
		Plan:            t.Plan,
		Status:          t.Status,
		BookingTenantID: t.BookingTenantID,
		ProvisionStatus: t.ProvisionStatus,
		ProvisionError:  t.ProvisionError,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
	if withSecrets {
		resp.APIKey = t.APIKey
		resp.BookingAPIKey = t.BookingAPIKey
	}
	return resp
}
