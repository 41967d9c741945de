package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Rentario-api/internal/application/authz"
	"github.com/jhoicas/Rentario-api/internal/application/dto"
	"github.com/jhoicas/Rentario-api/internal/domain"
	"github.com/jhoicas/Rentario-api/internal/domain/entity"
	"github.com/jhoicas/Rentario-api/internal/domain/repository"
	"github.com/jhoicas/Rentario-api/pkg/logger"
)

// RentalItemUseCase administra el catálogo de artículos alquilables de cada
// tenant. Toda mutación persiste primero en la DB local y recién después
// notifica al orquestador de sync: el motor de reservas nunca es la fuente de
// verdad ni bloquea la respuesta HTTP.
type RentalItemUseCase struct {
	itemRepo   repository.RentalItemRepository
	tenantRepo repository.TenantRepository
	sync       SyncDispatcher
	log        *logger.Logger
}

// NewRentalItemUseCase construye el caso de uso de artículos.
func NewRentalItemUseCase(
	itemRepo repository.RentalItemRepository,
	tenantRepo repository.TenantRepository,
	sync SyncDispatcher,
	log *logger.Logger,
) *RentalItemUseCase {
	return &RentalItemUseCase{itemRepo: itemRepo, tenantRepo: tenantRepo, sync: sync, log: log}
}

// validateRates rechaza tarifas no finitas o negativas, y exige tarifa diaria
// positiva. Corre ANTES de cualquier conversión a decimal: decimal.NewFromFloat
// entra en pánico con NaN/Inf, así que aquí es la única línea de defensa.
func validateRates(priceHour, priceDay, priceWeekend, priceWeek float64) error {
	for _, v := range []float64{priceHour, priceDay, priceWeekend, priceWeek} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: las tarifas deben ser números finitos", domain.ErrInvalidInput)
		}
		if v < 0 {
			return fmt.Errorf("%w: las tarifas no pueden ser negativas", domain.ErrInvalidInput)
		}
	}
	if priceDay <= 0 {
		return fmt.Errorf("%w: la tarifa diaria debe ser mayor que cero", domain.ErrInvalidInput)
	}
	return nil
}

func validateDimensions(widthM, lengthM, heightM float64, capacity int) error {
	for _, v := range []float64{widthM, lengthM, heightM} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: dimensiones inválidas", domain.ErrInvalidInput)
		}
	}
	if capacity < 0 {
		return fmt.Errorf("%w: la capacidad no puede ser negativa", domain.ErrInvalidInput)
	}
	return nil
}

// Create da de alta un artículo. El tenant efectivo sale SIEMPRE del principal
// autenticado (authz.TenantScope); el tenant_id del body solo cuenta para
// operadores de plataforma. Tras el insert se despacha el sync en background.
func (uc *RentalItemUseCase) Create(ctx context.Context, p authz.Principal, req dto.CreateRentalItemRequest) (*dto.RentalItemResponse, error) {
	tenantID, err := authz.TenantScope(p, req.TenantID)
	if err != nil {
		return nil, err
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if err := validateRates(req.PriceHour, req.PriceDay, req.PriceWeekend, req.PriceWeek); err != nil {
		return nil, err
	}
	if err := validateDimensions(req.WidthM, req.LengthM, req.HeightM, req.Capacity); err != nil {
		return nil, err
	}

	tenant, err := uc.tenantRepo.GetByID(tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, fmt.Errorf("%w: tenant %s", domain.ErrNotFound, tenantID)
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	quantity := 1
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidInput)
		}
		quantity = *req.Quantity
	}

	now := time.Now()
	item := &entity.RentalItem{
		ID:           uuid.NewString(),
		TenantID:     tenantID,
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		PriceHour:    decimal.NewFromFloat(req.PriceHour),
		PriceDay:     decimal.NewFromFloat(req.PriceDay),
		PriceWeekend: decimal.NewFromFloat(req.PriceWeekend),
		PriceWeek:    decimal.NewFromFloat(req.PriceWeek),
		WidthM:       decimal.NewFromFloat(req.WidthM),
		LengthM:      decimal.NewFromFloat(req.LengthM),
		HeightM:      decimal.NewFromFloat(req.HeightM),
		Capacity:     req.Capacity,
		Active:       active,
		Quantity:     quantity,
		Images:       req.Images,
		SyncState:    entity.SyncState{SyncStatus: entity.SyncPending},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}

	uc.sync.SyncRentalItemAsync(item.ID)

	resp := rentalItemToResponse(item)
	return &resp, nil
}

// GetByID devuelve un artículo del tenant del caller.
func (uc *RentalItemUseCase) GetByID(ctx context.Context, p authz.Principal, id string) (*dto.RentalItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if !authz.CanAccessTenant(p, item.TenantID) {
		// Mismo código que inexistente: no filtrar qué IDs existen en otros tenants.
		return nil, domain.ErrNotFound
	}
	resp := rentalItemToResponse(item)
	return &resp, nil
}

// List pagina los artículos del tenant del caller (operadores de plataforma
// indican el tenant con el parámetro tenant_id).
func (uc *RentalItemUseCase) List(ctx context.Context, p authz.Principal, requestedTenant string, page dto.PageRequest) (*dto.RentalItemListResponse, error) {
	tenantID, err := authz.TenantScope(p, requestedTenant)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	items, err := uc.itemRepo.ListByTenant(tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RentalItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, rentalItemToResponse(it))
	}
	return &dto.RentalItemListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update aplica cambios de negocio sobre un artículo. El tenant_id es inmutable.
// Tras persistir, el orquestador decide si el cambio invalida la copia remota
// (diff sobre campos sync-relevantes) y despacha el reenvío en background.
func (uc *RentalItemUseCase) Update(ctx context.Context, p authz.Principal, id string, req dto.UpdateRentalItemRequest) (*dto.RentalItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if !authz.CanAccessTenant(p, item.TenantID) {
		return nil, domain.ErrNotFound
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if err := validateRates(req.PriceHour, req.PriceDay, req.PriceWeekend, req.PriceWeek); err != nil {
		return nil, err
	}
	if err := validateDimensions(req.WidthM, req.LengthM, req.HeightM, req.Capacity); err != nil {
		return nil, err
	}

	prev := *item // snapshot para el diff del orquestador

	item.Name = req.Name
	item.Description = req.Description
	item.Category = req.Category
	item.PriceHour = decimal.NewFromFloat(req.PriceHour)
	item.PriceDay = decimal.NewFromFloat(req.PriceDay)
	item.PriceWeekend = decimal.NewFromFloat(req.PriceWeekend)
	item.PriceWeek = decimal.NewFromFloat(req.PriceWeek)
	item.WidthM = decimal.NewFromFloat(req.WidthM)
	item.LengthM = decimal.NewFromFloat(req.LengthM)
	item.HeightM = decimal.NewFromFloat(req.HeightM)
	item.Capacity = req.Capacity
	if req.Active != nil {
		item.Active = *req.Active
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidInput)
		}
		item.Quantity = *req.Quantity
	}
	if req.Images != nil {
		item.Images = req.Images
	}
	item.UpdatedAt = time.Now()

	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}

	uc.sync.NoteRentalItemChanged(&prev, item)

	resp := rentalItemToResponse(item)
	return &resp, nil
}

// Delete elimina un artículo del tenant del caller.
func (uc *RentalItemUseCase) Delete(ctx context.Context, p authz.Principal, id string) error {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	if !authz.CanAccessTenant(p, item.TenantID) {
		return domain.ErrNotFound
	}
	return uc.itemRepo.Delete(id)
}

// ListPublicBySlug catálogo público del widget de reservas: solo artículos
// activos de un tenant activo, sin autenticación y sin campos internos.
func (uc *RentalItemUseCase) ListPublicBySlug(ctx context.Context, tenantSlug string, page dto.PageRequest) ([]dto.PublicRentalItemResponse, error) {
	tenant, err := uc.tenantRepo.GetBySlug(tenantSlug)
	if err != nil {
		return nil, err
	}
	if tenant == nil || tenant.Status != "active" {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage()
	items, err := uc.itemRepo.ListActiveByTenant(tenant.ID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PublicRentalItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.PublicRentalItemResponse{
			ID:           it.ID,
			Name:         it.Name,
			Description:  it.Description,
			Category:     it.Category,
			PriceDay:     it.PriceDay,
			PriceWeekend: it.PriceWeekend,
			Capacity:     it.Capacity,
			Images:       it.Images,
		})
	}
	return out, nil
}

func rentalItemToResponse(it *entity.RentalItem) dto.RentalItemResponse {
	return dto.RentalItemResponse{
		ID:           it.ID,
		TenantID:     it.TenantID,
		Name:         it.Name,
		Description:  it.Description,
		Category:     it.Category,
		PriceHour:    it.PriceHour,
		PriceDay:     it.PriceDay,
		PriceWeekend: it.PriceWeekend,
		PriceWeek:    it.PriceWeek,
		WidthM:       it.WidthM,
		LengthM:      it.LengthM,
		HeightM:      it.HeightM,
		Capacity:     it.Capacity,
		Active:       it.Active,
		Quantity:     it.Quantity,
		Images:       it.Images,
		SyncStatusResponse: dto.SyncStatusResponse{
			ExternalID:   it.BookingServiceID,
			SyncStatus:   it.SyncStatus,
			LastSyncedAt: it.LastSyncedAt,
			SyncError:    it.SyncError,
		},
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}
