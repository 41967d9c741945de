package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/jhoicas/Rentario-api/internal/domain/entity"
	"github.com/jhoicas/Rentario-api/internal/domain/repository"
	"github.com/jhoicas/Rentario-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Rentario-api/pkg/logger"
)

// provisionTimeout presupuesto del aprovisionamiento en background.
const provisionTimeout = 30 * time.Second

// TenantProvisioner ejecuta el bootstrap único de un tenant en el motor de reservas:
//
//	1. POST /api/tenants   (nombre/slug/plan + paquete de políticas del dominio)
//	2. POST /api/api-keys  (credencial read/write/delete nombrada por la integración)
//	3. write-back de ID y credencial sobre la fila local del tenant
//
// Se dispara solo al crear el tenant, nunca en updates. El write-back ocurre en el
// goroutine de ProvisionTenantAsync, estrictamente después de que la transacción
// creadora ya hizo commit, así la fila es visible para el UPDATE.
type TenantProvisioner struct {
	gateway    Gateway
	tenantRepo repository.TenantRepository
	log        *logger.Logger
	metrics    *metrics.BookingMetrics
}

// NewTenantProvisioner construye el aprovisionador. metrics puede ser nil.
func NewTenantProvisioner(gateway Gateway, tenantRepo repository.TenantRepository, log *logger.Logger, m *metrics.BookingMetrics) *TenantProvisioner {
	return &TenantProvisioner{gateway: gateway, tenantRepo: tenantRepo, log: log, metrics: m}
}

// ProvisionTenantAsync dispara el aprovisionamiento en goroutine independiente.
func (p *TenantProvisioner) ProvisionTenantAsync(tenantID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), provisionTimeout)
		defer cancel()
		p.ProvisionTenant(ctx, tenantID)
	}()
}

// ProvisionTenant aprovisiona el tenant de forma idempotente. El guard por
// BookingTenantID evita crear un segundo tenant remoto: un reintento tras falla
// parcial (tenant creado, credencial fallida) solo repara la credencial.
func (p *TenantProvisioner) ProvisionTenant(ctx context.Context, tenantID string) ProvisionResult {
	tenant, err := p.tenantRepo.GetByID(tenantID)
	if err != nil || tenant == nil {
		p.log.Warn().Str("tenant_id", tenantID).Err(err).Msg("provision: tenant no encontrado")
		return ProvisionResult{Error: "tenant no encontrado"}
	}

	if !p.gateway.Enabled() {
		p.metrics.RecordProvision("skipped")
		return ProvisionResult{Success: true, Skipped: true}
	}
	if tenant.Provisioned() {
		p.metrics.RecordProvision("skipped")
		return ProvisionResult{Success: true, Skipped: true, BookingTenantID: tenant.BookingTenantID}
	}
	// Un tenant eliminado puede seguir en pending/failed y caer en el barrido
	// de reconciliación: jamás se le crea identidad remota.
	if tenant.Status == "deleted" {
		p.metrics.RecordProvision("skipped")
		return ProvisionResult{Success: true, Skipped: true, BookingTenantID: tenant.BookingTenantID}
	}

	// ═══════════════════════════════════════════════════════════════════════
	// Paso 1: tenant remoto (omitido si ya existe de un intento parcial)
	// ═══════════════════════════════════════════════════════════════════════
	if tenant.BookingTenantID == nil {
		remoteID, stepErr := p.ensureRemoteTenant(ctx, tenant)
		if stepErr != nil {
			return p.markFailed(tenant, fmt.Sprintf("creación del tenant falló: %v", stepErr))
		}
		tenant.BookingTenantID = &remoteID
	}

	// ═══════════════════════════════════════════════════════════════════════
	// Paso 2: credencial del tenant remoto
	// ═══════════════════════════════════════════════════════════════════════
	res := p.gateway.Call(ctx, "POST", "/api/api-keys", APIKeyPayloadFor(*tenant.BookingTenantID))
	if !res.OK {
		// Éxito parcial: el ID remoto se persiste junto con la nota de falla,
		// un reintento salta el paso 1 y solo repara la credencial.
		return p.markFailed(tenant, fmt.Sprintf("creación de la credencial falló: %s", res.Error))
	}
	var apiKey remoteAPIKey
	if err := json.Unmarshal(res.Data, &apiKey); err != nil || apiKey.Key == "" {
		return p.markFailed(tenant, fmt.Sprintf("creación de la credencial falló: respuesta sin key: %s", string(res.Data)))
	}

	// ═══════════════════════════════════════════════════════════════════════
	// Paso 3: write-back
	// ═══════════════════════════════════════════════════════════════════════
	tenant.BookingAPIKey = &apiKey.Key
	tenant.ProvisionStatus = entity.ProvisionProvisioned
	tenant.ProvisionError = nil
	tenant.UpdatedAt = time.Now()
	if err := p.tenantRepo.UpdateProvisionState(tenant); err != nil {
		// Gap conocido: el tenant remoto ya existe y no quedó enlazado; el barrido
		// ReconcileProvisioning lo re-adopta por slug en el siguiente intento.
		p.log.Error().Str("tenant_id", tenantID).Err(err).Msg("provision: write-back falló")
		p.metrics.RecordProvision("failed")
		return ProvisionResult{BookingTenantID: tenant.BookingTenantID, Error: err.Error()}
	}

	p.metrics.RecordProvision("provisioned")
	p.log.Info().Str("tenant_id", tenantID).Int64("booking_tenant_id", *tenant.BookingTenantID).
		Msg("provision: tenant aprovisionado")
	return ProvisionResult{Success: true, BookingTenantID: tenant.BookingTenantID}
}

// ensureRemoteTenant busca primero por slug (re-adopta tenants remotos huérfanos de
// un write-back fallido) y crea solo si no existe.
func (p *TenantProvisioner) ensureRemoteTenant(ctx context.Context, tenant *entity.Tenant) (int64, error) {
	res := p.gateway.Call(ctx, "GET", "/api/tenants?slug="+url.QueryEscape(tenant.Slug), nil)
	if res.OK {
		var list remoteList
		if err := json.Unmarshal(res.Data, &list); err == nil && len(list.Items) > 0 {
			p.log.Info().Str("tenant_id", tenant.ID).Int64("booking_tenant_id", list.Items[0].ID).
				Msg("provision: tenant remoto existente re-adoptado por slug")
			return list.Items[0].ID, nil
		}
	}

	res = p.gateway.Call(ctx, "POST", "/api/tenants", TenantPayloadFrom(tenant))
	if !res.OK {
		return 0, fmt.Errorf("%s", res.Error)
	}
	var record remoteRecord
	if err := json.Unmarshal(res.Data, &record); err != nil || record.ID == 0 {
		return 0, fmt.Errorf("respuesta sin id: %s", string(res.Data))
	}
	return record.ID, nil
}

// markFailed persiste el estado failed con el mensaje del paso que falló,
// conservando el BookingTenantID si el paso 1 alcanzó a crear el tenant remoto.
func (p *TenantProvisioner) markFailed(tenant *entity.Tenant, msg string) ProvisionResult {
	tenant.ProvisionStatus = entity.ProvisionFailed
	tenant.ProvisionError = &msg
	tenant.UpdatedAt = time.Now()
	if err := p.tenantRepo.UpdateProvisionState(tenant); err != nil {
		p.log.Error().Str("tenant_id", tenant.ID).Err(err).Msg("provision: no se pudo persistir estado failed")
	}
	p.metrics.RecordProvision("failed")
	p.log.Warn().Str("tenant_id", tenant.ID).Str("error", msg).Msg("provision: falló")
	return ProvisionResult{BookingTenantID: tenant.BookingTenantID, Error: msg}
}

// ReconcileProvisioning re-intenta el aprovisionamiento de todos los tenants en
// estado pending o failed (barrido de operador). Gracias al guard y a la
// re-adopción por slug, ningún reintento duplica tenants remotos.
func (p *TenantProvisioner) ReconcileProvisioning(ctx context.Context) BatchResult {
	var batch BatchResult
	tenants, err := p.tenantRepo.ListByProvisionStatus([]string{entity.ProvisionPending, entity.ProvisionFailed})
	if err != nil {
		p.log.Error().Err(err).Msg("reconcile: listar tenants sin aprovisionar")
		return batch
	}
	for _, t := range tenants {
		r := p.ProvisionTenant(ctx, t.ID)
		switch {
		case r.Skipped:
			batch.Skipped++
		case r.Success:
			batch.Synced++
		default:
			batch.Failed++
		}
	}
	p.log.Info().Int("provisioned", batch.Synced).Int("failed", batch.Failed).Int("skipped", batch.Skipped).
		Msg("reconcile: barrido de aprovisionamiento completado")
	return batch
}
