package booking

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/Rentario-api/internal/domain/entity"
	"github.com/jhoicas/Rentario-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes compartidos por los tests del orquestador y el aprovisionador
// ──────────────────────────────────────────────────────────────────────────────

type gatewayCall struct {
	Method string
	Path   string
	Body   interface{}
}

// fakeGateway registra cada llamada y delega la respuesta a handle.
type fakeGateway struct {
	enabled bool
	calls   []gatewayCall
	handle  func(method, path string, body interface{}) Result
}

func (g *fakeGateway) Enabled() bool { return g.enabled }

func (g *fakeGateway) Call(_ context.Context, method, path string, body interface{}) Result {
	g.calls = append(g.calls, gatewayCall{Method: method, Path: path, Body: body})
	if g.handle == nil {
		return Result{Error: "sin handler"}
	}
	return g.handle(method, path, body)
}

func okJSON(v interface{}) Result {
	raw, _ := json.Marshal(v)
	return Result{OK: true, Status: 200, Data: raw}
}

func failHTTP(status int, msg string) Result {
	return Result{Status: status, Error: fmt.Sprintf("HTTP %d: %s", status, msg)}
}

func emptyList() Result {
	return okJSON(remoteList{})
}

// fakeTenantRepo repo en memoria de tenants.
type fakeTenantRepo struct {
	tenants      map[string]*entity.Tenant
	provisionErr error // si no es nil, UpdateProvisionState falla
	provisions   int   // conteo de write-backs de aprovisionamiento
}

var _ repository.TenantRepository = (*fakeTenantRepo)(nil)

func newFakeTenantRepo(tenants ...*entity.Tenant) *fakeTenantRepo {
	m := make(map[string]*entity.Tenant)
	for _, t := range tenants {
		m[t.ID] = t
	}
	return &fakeTenantRepo{tenants: m}
}

func (r *fakeTenantRepo) Create(t *entity.Tenant) error { r.tenants[t.ID] = t; return nil }

func (r *fakeTenantRepo) GetByID(id string) (*entity.Tenant, error) {
	t, ok := r.tenants[id]
	if !ok {
		return nil, nil
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTenantRepo) GetBySlug(slug string) (*entity.Tenant, error) {
	for _, t := range r.tenants {
		if t.Slug == slug {
			copied := *t
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeTenantRepo) List(limit, offset int) ([]*entity.Tenant, error) { return nil, nil }

func (r *fakeTenantRepo) ListByProvisionStatus(statuses []string) ([]*entity.Tenant, error) {
	var out []*entity.Tenant
	for _, t := range r.tenants {
		for _, s := range statuses {
			if t.ProvisionStatus == s {
				copied := *t
				out = append(out, &copied)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeTenantRepo) Update(t *entity.Tenant) error {
	stored, ok := r.tenants[t.ID]
	if !ok {
		return fmt.Errorf("tenant %s no existe", t.ID)
	}
	// Update de negocio: los campos booking_* y provision_* no se tocan.
	stored.Name = t.Name
	stored.Plan = t.Plan
	stored.Status = t.Status
	stored.UpdatedAt = t.UpdatedAt
	return nil
}

func (r *fakeTenantRepo) UpdateProvisionState(t *entity.Tenant) error {
	if r.provisionErr != nil {
		return r.provisionErr
	}
	stored, ok := r.tenants[t.ID]
	if !ok {
		return fmt.Errorf("tenant %s no existe", t.ID)
	}
	stored.BookingTenantID = t.BookingTenantID
	stored.BookingAPIKey = t.BookingAPIKey
	stored.ProvisionStatus = t.ProvisionStatus
	stored.ProvisionError = t.ProvisionError
	stored.UpdatedAt = t.UpdatedAt
	r.provisions++
	return nil
}

func (r *fakeTenantRepo) Delete(id string) error {
	if t, ok := r.tenants[id]; ok {
		t.Status = "deleted"
	}
	return nil
}

// fakeItemRepo repo en memoria de artículos.
type fakeItemRepo struct {
	items map[string]*entity.RentalItem
}

var _ repository.RentalItemRepository = (*fakeItemRepo)(nil)

func newFakeItemRepo(items ...*entity.RentalItem) *fakeItemRepo {
	m := make(map[string]*entity.RentalItem)
	for _, it := range items {
		m[it.ID] = it
	}
	return &fakeItemRepo{items: m}
}

func (r *fakeItemRepo) Create(it *entity.RentalItem) error { r.items[it.ID] = it; return nil }

func (r *fakeItemRepo) GetByID(id string) (*entity.RentalItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	copied := *it
	return &copied, nil
}

func (r *fakeItemRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.RentalItem, error) {
	return nil, nil
}

func (r *fakeItemRepo) ListActiveByTenant(tenantID string, limit, offset int) ([]*entity.RentalItem, error) {
	return nil, nil
}

func (r *fakeItemRepo) ListNeedingSync(limit int) ([]*entity.RentalItem, error) {
	var out []*entity.RentalItem
	for _, it := range r.items {
		if it.NeedsSync() {
			copied := *it
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) ListIDsByTenant(tenantID string) ([]string, error) {
	var out []string
	for _, it := range r.items {
		if it.TenantID == tenantID {
			out = append(out, it.ID)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) Update(it *entity.RentalItem) error {
	stored, ok := r.items[it.ID]
	if !ok {
		return fmt.Errorf("item %s no existe", it.ID)
	}
	sync := stored.SyncState
	external := stored.BookingServiceID
	*stored = *it
	// Update de negocio nunca toca columnas de sync.
	stored.SyncState = sync
	stored.BookingServiceID = external
	return nil
}

func (r *fakeItemRepo) UpdateSyncState(it *entity.RentalItem) error {
	stored, ok := r.items[it.ID]
	if !ok {
		return fmt.Errorf("item %s no existe", it.ID)
	}
	stored.BookingServiceID = it.BookingServiceID
	stored.SyncState = it.SyncState
	stored.UpdatedAt = it.UpdatedAt
	return nil
}

func (r *fakeItemRepo) Delete(id string) error { delete(r.items, id); return nil }

// fakeCustomerRepo repo en memoria de clientes.
type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

var _ repository.CustomerRepository = (*fakeCustomerRepo)(nil)

func newFakeCustomerRepo(customers ...*entity.Customer) *fakeCustomerRepo {
	m := make(map[string]*entity.Customer)
	for _, c := range customers {
		m[c.ID] = c
	}
	return &fakeCustomerRepo{customers: m}
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error { r.customers[c.ID] = c; return nil }

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCustomerRepo) GetByTenantAndEmail(tenantID, email string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.TenantID == tenantID && c.Email == email {
			copied := *c
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Customer, error) {
	return nil, nil
}

func (r *fakeCustomerRepo) ListNeedingSync(limit int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.customers {
		if c.NeedsSync() {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) ListIDsByTenant(tenantID string) ([]string, error) {
	var out []string
	for _, c := range r.customers {
		if c.TenantID == tenantID {
			out = append(out, c.ID)
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) Update(c *entity.Customer) error {
	stored, ok := r.customers[c.ID]
	if !ok {
		return fmt.Errorf("customer %s no existe", c.ID)
	}
	sync := stored.SyncState
	external := stored.BookingCustomerID
	*stored = *c
	stored.SyncState = sync
	stored.BookingCustomerID = external
	return nil
}

func (r *fakeCustomerRepo) UpdateSyncState(c *entity.Customer) error {
	stored, ok := r.customers[c.ID]
	if !ok {
		return fmt.Errorf("customer %s no existe", c.ID)
	}
	stored.BookingCustomerID = c.BookingCustomerID
	stored.SyncState = c.SyncState
	stored.UpdatedAt = c.UpdatedAt
	return nil
}

func (r *fakeCustomerRepo) Delete(id string) error { delete(r.customers, id); return nil }
