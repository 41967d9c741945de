package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Rentario-api/internal/application/authz"
	"github.com/jhoicas/Rentario-api/internal/application/booking"
	"github.com/jhoicas/Rentario-api/internal/application/dto"
	"github.com/jhoicas/Rentario-api/internal/application/usecase"
	"github.com/jhoicas/Rentario-api/internal/domain"
)

// SyncHandler expone las operaciones de sincronización y aprovisionamiento para
// operadores. Los reintentos individuales corren síncronos (el operador quiere
// ver el resultado); los barridos también, pero son idempotentes y re-lanzables.
type SyncHandler struct {
	orchestrator *booking.SyncOrchestrator
	provisioner  *booking.TenantProvisioner
	itemUC       *usecase.RentalItemUseCase
	customerUC   *usecase.CustomerUseCase
}

// NewSyncHandler construye el handler.
func NewSyncHandler(
	orchestrator *booking.SyncOrchestrator,
	provisioner *booking.TenantProvisioner,
	itemUC *usecase.RentalItemUseCase,
	customerUC *usecase.CustomerUseCase,
) *SyncHandler {
	return &SyncHandler{orchestrator: orchestrator, provisioner: provisioner, itemUC: itemUC, customerUC: customerUC}
}

// SyncItem POST /api/items/:id/sync
// Reintento manual de un artículo. La carga previa vía usecase aplica el
// scoping de tenant antes de tocar el orquestador.
func (h *SyncHandler) SyncItem(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := h.itemUC.GetByID(c.UserContext(), GetPrincipal(c), id); err != nil {
		return writeError(c, err)
	}
	res := h.orchestrator.SyncRentalItem(c.UserContext(), id)
	return c.JSON(syncResultToResponse(res))
}

// SyncCustomer POST /api/customers/:id/sync
func (h *SyncHandler) SyncCustomer(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := h.customerUC.GetByID(c.UserContext(), GetPrincipal(c), id); err != nil {
		return writeError(c, err)
	}
	res := h.orchestrator.SyncCustomer(c.UserContext(), id)
	return c.JSON(syncResultToResponse(res))
}

// SyncAllPending POST /api/sync/pending
// Barrido de plataforma sobre todo lo pendiente/fallido/desactualizado.
func (h *SyncHandler) SyncAllPending(c *fiber.Ctx) error {
	if !authz.CanManagePlatform(GetPrincipal(c)) {
		return writeError(c, domain.ErrForbidden)
	}
	batch := h.orchestrator.SyncAllPending(c.UserContext())
	return c.JSON(batchToResponse(batch))
}

// ResyncTenant POST /api/tenants/:id/resync
// Reenvío forzado de todo el catálogo y los clientes de un tenant.
func (h *SyncHandler) ResyncTenant(c *fiber.Ctx) error {
	if !authz.CanManagePlatform(GetPrincipal(c)) {
		return writeError(c, domain.ErrForbidden)
	}
	batch := h.orchestrator.ForceResyncAllForTenant(c.UserContext(), c.Params("id"))
	return c.JSON(batchToResponse(batch))
}

// ProvisionTenant POST /api/tenants/:id/provision
// Reintento manual del aprovisionamiento (idempotente: solo repara lo faltante).
func (h *SyncHandler) ProvisionTenant(c *fiber.Ctx) error {
	if !authz.CanManagePlatform(GetPrincipal(c)) {
		return writeError(c, domain.ErrForbidden)
	}
	res := h.provisioner.ProvisionTenant(c.UserContext(), c.Params("id"))
	return c.JSON(dto.ProvisionResultResponse{
		Success:         res.Success,
		Skipped:         res.Skipped,
		BookingTenantID: res.BookingTenantID,
		Error:           res.Error,
	})
}

// ReconcileProvisioning POST /api/provision/reconcile
// Barrido sobre tenants en estado pending o failed.
func (h *SyncHandler) ReconcileProvisioning(c *fiber.Ctx) error {
	if !authz.CanManagePlatform(GetPrincipal(c)) {
		return writeError(c, domain.ErrForbidden)
	}
	batch := h.provisioner.ReconcileProvisioning(c.UserContext())
	return c.JSON(batchToResponse(batch))
}

func syncResultToResponse(r booking.SyncResult) dto.SyncResultResponse {
	return dto.SyncResultResponse{
		Success:    r.Success,
		Skipped:    r.Skipped,
		ExternalID: r.ExternalID,
		Error:      r.Error,
	}
}

func batchToResponse(b booking.BatchResult) dto.BatchCountsResponse {
	return dto.BatchCountsResponse{Synced: b.Synced, Failed: b.Failed, Skipped: b.Skipped}
}
