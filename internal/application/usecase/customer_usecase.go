package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Rentario-api/internal/application/authz"
	"github.com/jhoicas/Rentario-api/internal/application/dto"
	"github.com/jhoicas/Rentario-api/internal/domain"
	"github.com/jhoicas/Rentario-api/internal/domain/entity"
	"github.com/jhoicas/Rentario-api/internal/domain/repository"
	"github.com/jhoicas/Rentario-api/pkg/logger"
)

// CustomerUseCase administra los clientes finales de cada tenant. El email es
// único por tenant (no global: dos empresas pueden compartir cliente).
type CustomerUseCase struct {
	customerRepo repository.CustomerRepository
	tenantRepo   repository.TenantRepository
	sync         SyncDispatcher
	log          *logger.Logger
}

// NewCustomerUseCase construye el caso de uso de clientes.
func NewCustomerUseCase(
	customerRepo repository.CustomerRepository,
	tenantRepo repository.TenantRepository,
	sync SyncDispatcher,
	log *logger.Logger,
) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo, tenantRepo: tenantRepo, sync: sync, log: log}
}

// Create da de alta un cliente en el tenant del caller y despacha su
// sincronización en background.
func (uc *CustomerUseCase) Create(ctx context.Context, p authz.Principal, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	tenantID, err := authz.TenantScope(p, req.TenantID)
	if err != nil {
		return nil, err
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email != "" {
		existing, err := uc.customerRepo.GetByTenantAndEmail(tenantID, email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: ya existe un cliente con ese email", domain.ErrDuplicate)
		}
	}

	tenant, err := uc.tenantRepo.GetByID(tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, fmt.Errorf("%w: tenant %s", domain.ErrNotFound, tenantID)
	}

	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		Name:      req.Name,
		Email:     email,
		Phone:     req.Phone,
		Address:   req.Address,
		Notes:     req.Notes,
		Tags:      req.Tags,
		SyncState: entity.SyncState{SyncStatus: entity.SyncPending},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		return nil, err
	}

	uc.sync.SyncCustomerAsync(customer.ID)

	resp := customerToResponse(customer)
	return &resp, nil
}

// GetByID devuelve un cliente del tenant del caller.
func (uc *CustomerUseCase) GetByID(ctx context.Context, p authz.Principal, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if !authz.CanAccessTenant(p, customer.TenantID) {
		return nil, domain.ErrNotFound
	}
	resp := customerToResponse(customer)
	return &resp, nil
}

// List pagina los clientes del tenant del caller.
func (uc *CustomerUseCase) List(ctx context.Context, p authz.Principal, requestedTenant string, page dto.PageRequest) (*dto.CustomerListResponse, error) {
	tenantID, err := authz.TenantScope(p, requestedTenant)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	customers, err := uc.customerRepo.ListByTenant(tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, customerToResponse(c))
	}
	return &dto.CustomerListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update aplica cambios sobre un cliente; el orquestador decide si el cambio
// invalida la copia remota y reenvía en background.
func (uc *CustomerUseCase) Update(ctx context.Context, p authz.Principal, id string, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if !authz.CanAccessTenant(p, customer.TenantID) {
		return nil, domain.ErrNotFound
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}

	prev := *customer

	customer.Name = req.Name
	customer.Email = strings.TrimSpace(strings.ToLower(req.Email))
	customer.Phone = req.Phone
	customer.Address = req.Address
	customer.Notes = req.Notes
	if req.Tags != nil {
		customer.Tags = req.Tags
	}
	customer.UpdatedAt = time.Now()

	if err := uc.customerRepo.Update(customer); err != nil {
		return nil, err
	}

	uc.sync.NoteCustomerChanged(&prev, customer)

	resp := customerToResponse(customer)
	return &resp, nil
}

// Delete elimina un cliente del tenant del caller.
func (uc *CustomerUseCase) Delete(ctx context.Context, p authz.Principal, id string) error {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	if !authz.CanAccessTenant(p, customer.TenantID) {
		return domain.ErrNotFound
	}
	return uc.customerRepo.Delete(id)
}

func customerToResponse(c *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:       c.ID,
		TenantID: c.TenantID,
		Name:     c.Name,
		Email:    c.Email,
		Phone:    c.Phone,
		Address:  c.Address,
		Notes:    c.Notes,
		Tags:     c.Tags,
		SyncStatusResponse: dto.SyncStatusResponse{
			ExternalID:   c.BookingCustomerID,
			SyncStatus:   c.SyncStatus,
			LastSyncedAt: c.LastSyncedAt,
			SyncError:    c.SyncError,
		},
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
