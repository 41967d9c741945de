package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Rentario-api/internal/domain/entity"
	"github.com/jhoicas/Rentario-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de repos y despachadores para los tests de casos de uso
// ──────────────────────────────────────────────────────────────────────────────

// fakeSync registra qué despachos pidió el caso de uso; no sincroniza nada.
type fakeSync struct {
	itemSyncs     []string
	customerSyncs []string
	itemNotes     int
	customerNotes int
}

var _ SyncDispatcher = (*fakeSync)(nil)

func (f *fakeSync) SyncRentalItemAsync(itemID string) { f.itemSyncs = append(f.itemSyncs, itemID) }
func (f *fakeSync) SyncCustomerAsync(customerID string) {
	f.customerSyncs = append(f.customerSyncs, customerID)
}
func (f *fakeSync) NoteRentalItemChanged(prev, next *entity.RentalItem) { f.itemNotes++ }
func (f *fakeSync) NoteCustomerChanged(prev, next *entity.Customer)     { f.customerNotes++ }

type fakeProvision struct {
	dispatched []string
}

var _ ProvisionDispatcher = (*fakeProvision)(nil)

func (f *fakeProvision) ProvisionTenantAsync(tenantID string) {
	f.dispatched = append(f.dispatched, tenantID)
}

// fakeTx ejecuta el callback directamente sobre los repos dados (sin transacción).
type fakeTx struct {
	tenantRepo repository.TenantRepository
	userRepo   repository.UserRepository
}

var _ TenantTxRunner = (*fakeTx)(nil)

func (f *fakeTx) RunTenant(ctx context.Context, fn func(
	tenantRepo repository.TenantRepository,
	userRepo repository.UserRepository,
) error) error {
	return fn(f.tenantRepo, f.userRepo)
}

// memTenantRepo repo en memoria de tenants.
type memTenantRepo struct {
	tenants map[string]*entity.Tenant
}

var _ repository.TenantRepository = (*memTenantRepo)(nil)

func newMemTenantRepo(tenants ...*entity.Tenant) *memTenantRepo {
	m := make(map[string]*entity.Tenant)
	for _, t := range tenants {
		m[t.ID] = t
	}
	return &memTenantRepo{tenants: m}
}

func (r *memTenantRepo) Create(t *entity.Tenant) error {
	copied := *t
	r.tenants[t.ID] = &copied
	return nil
}

func (r *memTenantRepo) GetByID(id string) (*entity.Tenant, error) {
	t, ok := r.tenants[id]
	if !ok {
		return nil, nil
	}
	copied := *t
	return &copied, nil
}

func (r *memTenantRepo) GetBySlug(slug string) (*entity.Tenant, error) {
	for _, t := range r.tenants {
		if t.Slug == slug {
			copied := *t
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memTenantRepo) List(limit, offset int) ([]*entity.Tenant, error) {
	var out []*entity.Tenant
	for _, t := range r.tenants {
		copied := *t
		out = append(out, &copied)
	}
	return out, nil
}

func (r *memTenantRepo) ListByProvisionStatus(statuses []string) ([]*entity.Tenant, error) {
	return nil, nil
}

func (r *memTenantRepo) Update(t *entity.Tenant) error {
	stored, ok := r.tenants[t.ID]
	if !ok {
		return fmt.Errorf("tenant %s no existe", t.ID)
	}
	stored.Name = t.Name
	stored.Plan = t.Plan
	stored.Status = t.Status
	stored.UpdatedAt = t.UpdatedAt
	return nil
}

func (r *memTenantRepo) UpdateProvisionState(t *entity.Tenant) error {
	stored, ok := r.tenants[t.ID]
	if !ok {
		return fmt.Errorf("tenant %s no existe", t.ID)
	}
	stored.BookingTenantID = t.BookingTenantID
	stored.BookingAPIKey = t.BookingAPIKey
	stored.ProvisionStatus = t.ProvisionStatus
	stored.ProvisionError = t.ProvisionError
	return nil
}

func (r *memTenantRepo) Delete(id string) error {
	if t, ok := r.tenants[id]; ok {
		t.Status = "deleted"
	}
	return nil
}

// memItemRepo repo en memoria de artículos.
type memItemRepo struct {
	items map[string]*entity.RentalItem
}

var _ repository.RentalItemRepository = (*memItemRepo)(nil)

func newMemItemRepo(items ...*entity.RentalItem) *memItemRepo {
	m := make(map[string]*entity.RentalItem)
	for _, it := range items {
		m[it.ID] = it
	}
	return &memItemRepo{items: m}
}

func (r *memItemRepo) Create(it *entity.RentalItem) error {
	copied := *it
	r.items[it.ID] = &copied
	return nil
}

func (r *memItemRepo) GetByID(id string) (*entity.RentalItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	copied := *it
	return &copied, nil
}

func (r *memItemRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.RentalItem, error) {
	var out []*entity.RentalItem
	for _, it := range r.items {
		if it.TenantID == tenantID {
			copied := *it
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memItemRepo) ListActiveByTenant(tenantID string, limit, offset int) ([]*entity.RentalItem, error) {
	var out []*entity.RentalItem
	for _, it := range r.items {
		if it.TenantID == tenantID && it.Active {
			copied := *it
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memItemRepo) ListNeedingSync(limit int) ([]*entity.RentalItem, error) { return nil, nil }

func (r *memItemRepo) ListIDsByTenant(tenantID string) ([]string, error) { return nil, nil }

func (r *memItemRepo) Update(it *entity.RentalItem) error {
	stored, ok := r.items[it.ID]
	if !ok {
		return fmt.Errorf("item %s no existe", it.ID)
	}
	sync := stored.SyncState
	external := stored.BookingServiceID
	*stored = *it
	stored.SyncState = sync
	stored.BookingServiceID = external
	return nil
}

func (r *memItemRepo) UpdateSyncState(it *entity.RentalItem) error {
	stored, ok := r.items[it.ID]
	if !ok {
		return fmt.Errorf("item %s no existe", it.ID)
	}
	stored.BookingServiceID = it.BookingServiceID
	stored.SyncState = it.SyncState
	return nil
}

func (r *memItemRepo) Delete(id string) error { delete(r.items, id); return nil }

// memCustomerRepo repo en memoria de clientes.
type memCustomerRepo struct {
	customers map[string]*entity.Customer
}

var _ repository.CustomerRepository = (*memCustomerRepo)(nil)

func newMemCustomerRepo(customers ...*entity.Customer) *memCustomerRepo {
	m := make(map[string]*entity.Customer)
	for _, c := range customers {
		m[c.ID] = c
	}
	return &memCustomerRepo{customers: m}
}

func (r *memCustomerRepo) Create(c *entity.Customer) error {
	copied := *c
	r.customers[c.ID] = &copied
	return nil
}

func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (r *memCustomerRepo) GetByTenantAndEmail(tenantID, email string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.TenantID == tenantID && c.Email == email {
			copied := *c
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memCustomerRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.customers {
		if c.TenantID == tenantID {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memCustomerRepo) ListNeedingSync(limit int) ([]*entity.Customer, error) { return nil, nil }

func (r *memCustomerRepo) ListIDsByTenant(tenantID string) ([]string, error) { return nil, nil }

func (r *memCustomerRepo) Update(c *entity.Customer) error {
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

func (r *memCustomerRepo) UpdateSyncState(c *entity.Customer) error {
	stored, ok := r.customers[c.ID]
	if !ok {
		return fmt.Errorf("customer %s no existe", c.ID)
	}
	stored.BookingCustomerID = c.BookingCustomerID
	stored.SyncState = c.SyncState
	return nil
}

func (r *memCustomerRepo) Delete(id string) error { delete(r.customers, id); return nil }

// memUserRepo repo en memoria de usuarios.
type memUserRepo struct {
	users map[string]*entity.User
}

var _ repository.UserRepository = (*memUserRepo)(nil)

func newMemUserRepo(users ...*entity.User) *memUserRepo {
	m := make(map[string]*entity.User)
	for _, u := range users {
		m[u.ID] = u
	}
	return &memUserRepo{users: m}
}

func (r *memUserRepo) Create(u *entity.User) error {
	copied := *u
	r.users[u.ID] = &copied
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *memUserRepo) ListByEmail(email string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memUserRepo) GetByEmailAndTenant(email, tenantID string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.TenantID == tenantID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}
