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

const (
	// syncTimeout presupuesto por intento de sincronización desacoplado del ciclo HTTP.
	syncTimeout = 30 * time.Second
	// sweepBatchSize máximo de filas por entidad en un barrido SyncAllPending.
	sweepBatchSize = 200
)

// SyncOrchestrator mantiene artículos y clientes eventualmente consistentes con el
// motor de reservas mediante upsert idempotente:
//
//	gate → (lookup por clave de correlación | ID remoto conocido) → create/update → write-back
//
// Los métodos *Async corren en goroutine independiente con su propio
// context.Background() + timeout, desacoplados del request que los disparó: el
// caller nunca ve una falla de sync de forma síncrona, solo en los campos de
// estado de la fila en la siguiente lectura.
type SyncOrchestrator struct {
	gateway      Gateway
	tenantRepo   repository.TenantRepository
	itemRepo     repository.RentalItemRepository
	customerRepo repository.CustomerRepository
	log          *logger.Logger
	metrics      *metrics.BookingMetrics
}

// NewSyncOrchestrator construye el orquestador. metrics puede ser nil.
func NewSyncOrchestrator(
	gateway Gateway,
	tenantRepo repository.TenantRepository,
	itemRepo repository.RentalItemRepository,
	customerRepo repository.CustomerRepository,
	log *logger.Logger,
	m *metrics.BookingMetrics,
) *SyncOrchestrator {
	return &SyncOrchestrator{
		gateway:      gateway,
		tenantRepo:   tenantRepo,
		itemRepo:     itemRepo,
		customerRepo: customerRepo,
		log:          log,
		metrics:      m,
	}
}

// SyncRentalItemAsync dispara la sincronización de un artículo en goroutine independiente.
func (o *SyncOrchestrator) SyncRentalItemAsync(itemID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()
		o.SyncRentalItem(ctx, itemID)
	}()
}

// SyncCustomerAsync dispara la sincronización de un cliente en goroutine independiente.
func (o *SyncOrchestrator) SyncCustomerAsync(customerID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()
		o.SyncCustomer(ctx, customerID)
	}()
}

// SyncRentalItem sincroniza un artículo con el motor de reservas y persiste el
// resultado en las columnas de sync de la fila. Siempre re-lee datos frescos de la
// DB (evita data races con el goroutine HTTP que disparó el sync).
func (o *SyncOrchestrator) SyncRentalItem(ctx context.Context, itemID string) SyncResult {
	item, err := o.itemRepo.GetByID(itemID)
	if err != nil || item == nil {
		o.log.Warn().Str("item_id", itemID).Err(err).Msg("sync: artículo no encontrado")
		return SyncResult{Error: "artículo no encontrado"}
	}

	// Gate: inventario inactivo jamás se publica; sin tenant aprovisionado o sin
	// integración configurada el sync es un no-op exitoso.
	tenant, skip := o.gate(itemID, item.TenantID, item.Active)
	if skip {
		o.metrics.RecordSync("rental_item", "skipped")
		return SyncResult{Success: true, Skipped: true, ExternalID: item.BookingServiceID}
	}

	payload := ServicePayloadFrom(item, *tenant.BookingTenantID)
	externalID, upErr := o.upsert(ctx, "/api/services", item.BookingServiceID, CorrelationKey(item.ID), payload)

	now := time.Now()
	if upErr != nil {
		// La falla conserva el ID remoto previamente conocido: un reintento
		// posterior sigue sabiendo dónde actualizar.
		msg := upErr.Error()
		item.SyncStatus = entity.SyncFailed
		item.SyncError = &msg
		item.UpdatedAt = now
		if dbErr := o.itemRepo.UpdateSyncState(item); dbErr != nil {
			o.log.Error().Str("item_id", itemID).Err(dbErr).Msg("sync: no se pudo persistir estado failed")
		}
		o.metrics.RecordSync("rental_item", "failed")
		o.log.Warn().Str("item_id", itemID).Str("error", msg).Msg("sync: artículo falló")
		return SyncResult{ExternalID: item.BookingServiceID, Error: msg}
	}

	item.BookingServiceID = &externalID
	item.SyncStatus = entity.SyncSynced
	item.LastSyncedAt = &now
	item.SyncError = nil
	item.UpdatedAt = now
	if dbErr := o.itemRepo.UpdateSyncState(item); dbErr != nil {
		o.log.Error().Str("item_id", itemID).Err(dbErr).Msg("sync: no se pudo persistir estado synced")
		return SyncResult{ExternalID: &externalID, Error: dbErr.Error()}
	}
	o.metrics.RecordSync("rental_item", "synced")
	o.log.Info().Str("item_id", itemID).Int64("booking_service_id", externalID).Msg("sync: artículo sincronizado")
	return SyncResult{Success: true, ExternalID: &externalID}
}

// SyncCustomer sincroniza un cliente con el motor de reservas.
func (o *SyncOrchestrator) SyncCustomer(ctx context.Context, customerID string) SyncResult {
	customer, err := o.customerRepo.GetByID(customerID)
	if err != nil || customer == nil {
		o.log.Warn().Str("customer_id", customerID).Err(err).Msg("sync: cliente no encontrado")
		return SyncResult{Error: "cliente no encontrado"}
	}

	tenant, skip := o.gate(customerID, customer.TenantID, true)
	if skip {
		o.metrics.RecordSync("customer", "skipped")
		return SyncResult{Success: true, Skipped: true, ExternalID: customer.BookingCustomerID}
	}

	payload := CustomerPayloadFrom(customer, *tenant.BookingTenantID)
	externalID, upErr := o.upsert(ctx, "/api/customers", customer.BookingCustomerID, CorrelationKey(customer.ID), payload)

	now := time.Now()
	if upErr != nil {
		msg := upErr.Error()
		customer.SyncStatus = entity.SyncFailed
		customer.SyncError = &msg
		customer.UpdatedAt = now
		if dbErr := o.customerRepo.UpdateSyncState(customer); dbErr != nil {
			o.log.Error().Str("customer_id", customerID).Err(dbErr).Msg("sync: no se pudo persistir estado failed")
		}
		o.metrics.RecordSync("customer", "failed")
		o.log.Warn().Str("customer_id", customerID).Str("error", msg).Msg("sync: cliente falló")
		return SyncResult{ExternalID: customer.BookingCustomerID, Error: msg}
	}

	customer.BookingCustomerID = &externalID
	customer.SyncStatus = entity.SyncSynced
	customer.LastSyncedAt = &now
	customer.SyncError = nil
	customer.UpdatedAt = now
	if dbErr := o.customerRepo.UpdateSyncState(customer); dbErr != nil {
		o.log.Error().Str("customer_id", customerID).Err(dbErr).Msg("sync: no se pudo persistir estado synced")
		return SyncResult{ExternalID: &externalID, Error: dbErr.Error()}
	}
	o.metrics.RecordSync("customer", "synced")
	o.log.Info().Str("customer_id", customerID).Int64("booking_customer_id", externalID).Msg("sync: cliente sincronizado")
	return SyncResult{Success: true, ExternalID: &externalID}
}

// NoteRentalItemChanged se invoca tras persistir una actualización de artículo.
// Aplica el filtro de relevancia: si ningún campo sync-relevante cambió no pasa
// nada (en particular, los write-backs de estado del propio orquestador nunca
// re-disparan otro sync). Si la copia remota quedó invalidada, transiciona
// synced -> out_of_sync y despacha el reintento en background.
func (o *SyncOrchestrator) NoteRentalItemChanged(prev, next *entity.RentalItem) {
	if !RentalItemNeedsSync(prev, next) {
		return
	}
	if next.SyncStatus == entity.SyncSynced {
		next.SyncStatus = entity.SyncOutOfSync
		next.UpdatedAt = time.Now()
		if err := o.itemRepo.UpdateSyncState(next); err != nil {
			o.log.Error().Str("item_id", next.ID).Err(err).Msg("sync: no se pudo marcar out_of_sync")
		}
	}
	o.SyncRentalItemAsync(next.ID)
}

// NoteCustomerChanged equivalente de NoteRentalItemChanged para clientes.
func (o *SyncOrchestrator) NoteCustomerChanged(prev, next *entity.Customer) {
	if !CustomerNeedsSync(prev, next) {
		return
	}
	if next.SyncStatus == entity.SyncSynced {
		next.SyncStatus = entity.SyncOutOfSync
		next.UpdatedAt = time.Now()
		if err := o.customerRepo.UpdateSyncState(next); err != nil {
			o.log.Error().Str("customer_id", next.ID).Err(err).Msg("sync: no se pudo marcar out_of_sync")
		}
	}
	o.SyncCustomerAsync(next.ID)
}

// gate evalúa las condiciones de salto previas a todo sync. Devuelve el tenant
// (con identidad remota garantizada) o skip=true.
func (o *SyncOrchestrator) gate(entityID, tenantID string, active bool) (*entity.Tenant, bool) {
	if !o.gateway.Enabled() {
		return nil, true
	}
	if !active {
		o.log.Debug().Str("entity_id", entityID).Msg("sync: entidad inactiva, omitida")
		return nil, true
	}
	tenant, err := o.tenantRepo.GetByID(tenantID)
	if err != nil || tenant == nil {
		o.log.Warn().Str("tenant_id", tenantID).Err(err).Msg("sync: tenant no encontrado, omitido")
		return nil, true
	}
	if tenant.Status != "active" || !tenant.Provisioned() {
		o.log.Debug().Str("tenant_id", tenantID).Str("provision_status", tenant.ProvisionStatus).
			Msg("sync: tenant sin identidad remota, omitido")
		return nil, true
	}
	return tenant, false
}

// upsert resuelve el ID remoto y crea o actualiza el registro:
//
//  1. ID remoto conocido → PATCH directo.
//  2. Sin ID → búsqueda por clave de correlación; si existe, se adopta ese ID y se
//     actualiza; si no, se crea. Dos intentos concurrentes convergen sobre la misma
//     fila remota gracias a la clave determinista.
func (o *SyncOrchestrator) upsert(ctx context.Context, basePath string, knownID *int64, correlationKey string, payload interface{}) (int64, error) {
	externalID := knownID

	if externalID == nil {
		res := o.gateway.Call(ctx, "GET", basePath+"?correlation_key="+url.QueryEscape(correlationKey), nil)
		if res.OK {
			var list remoteList
			if err := json.Unmarshal(res.Data, &list); err == nil && len(list.Items) > 0 {
				externalID = &list.Items[0].ID
			}
		}
		// Una búsqueda fallida no aborta: se degrada a create, que el motor
		// deduplica por correlation_key.
	}

	var res Result
	if externalID != nil {
		res = o.gateway.Call(ctx, "PATCH", fmt.Sprintf("%s/%d", basePath, *externalID), payload)
	} else {
		res = o.gateway.Call(ctx, "POST", basePath, payload)
	}
	if !res.OK {
		return 0, fmt.Errorf("motor de reservas: %s", res.Error)
	}

	var record remoteRecord
	if err := json.Unmarshal(res.Data, &record); err != nil || record.ID == 0 {
		if externalID != nil {
			// PATCH sin ID en la respuesta: conservamos el conocido.
			return *externalID, nil
		}
		return 0, fmt.Errorf("motor de reservas: respuesta sin id: %s", string(res.Data))
	}
	return record.ID, nil
}

// SyncAllPending barre artículos y clientes en estado pending/failed/out_of_sync.
// Lo invoca el operador o un job periódico; cubre las filas que quedaron sin
// sincronizar por un crash entre el commit local y el intento en background.
func (o *SyncOrchestrator) SyncAllPending(ctx context.Context) BatchResult {
	var batch BatchResult

	items, err := o.itemRepo.ListNeedingSync(sweepBatchSize)
	if err != nil {
		o.log.Error().Err(err).Msg("sweep: listar artículos pendientes")
	}
	for _, it := range items {
		batch.tally(o.SyncRentalItem(ctx, it.ID))
	}

	customers, err := o.customerRepo.ListNeedingSync(sweepBatchSize)
	if err != nil {
		o.log.Error().Err(err).Msg("sweep: listar clientes pendientes")
	}
	for _, c := range customers {
		batch.tally(o.SyncCustomer(ctx, c.ID))
	}

	o.log.Info().Int("synced", batch.Synced).Int("failed", batch.Failed).Int("skipped", batch.Skipped).
		Msg("sweep: barrido de pendientes completado")
	return batch
}

// ForceResyncAllForTenant reenvía todos los artículos y clientes de un tenant,
// ignorando su estado de sync actual.
func (o *SyncOrchestrator) ForceResyncAllForTenant(ctx context.Context, tenantID string) BatchResult {
	var batch BatchResult

	itemIDs, err := o.itemRepo.ListIDsByTenant(tenantID)
	if err != nil {
		o.log.Error().Str("tenant_id", tenantID).Err(err).Msg("resync: listar artículos del tenant")
	}
	for _, id := range itemIDs {
		batch.tally(o.SyncRentalItem(ctx, id))
	}

	customerIDs, err := o.customerRepo.ListIDsByTenant(tenantID)
	if err != nil {
		o.log.Error().Str("tenant_id", tenantID).Err(err).Msg("resync: listar clientes del tenant")
	}
	for _, id := range customerIDs {
		batch.tally(o.SyncCustomer(ctx, id))
	}

	o.log.Info().Str("tenant_id", tenantID).Int("synced", batch.Synced).Int("failed", batch.Failed).
		Int("skipped", batch.Skipped).Msg("resync: tenant completo reenviado")
	return batch
}

func (b *BatchResult) tally(r SyncResult) {
	switch {
	case r.Skipped:
		b.Skipped++
	case r.Success:
		b.Synced++
	default:
		b.Failed++
	}
}
