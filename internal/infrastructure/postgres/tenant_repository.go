package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Rentario-api/internal/domain"
	"github.com/jhoicas/Rentario-api/internal/domain/entity"
	"github.com/jhoicas/Rentario-api/internal/domain/repository"
)

var _ repository.TenantRepository = (*TenantRepo)(nil)

const tenantColumns = `id, name, slug, plan, status, api_key, booking_tenant_id, booking_api_key,
		provision_status, provision_error, created_at, updated_at`

// TenantRepo implementación de TenantRepository (usable con pool o tx).
type TenantRepo struct {
	q Querier
}

// NewTenantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTenantRepository(q Querier) *TenantRepo {
	return &TenantRepo{q: q}
}

func scanTenant(row pgx.Row) (*entity.Tenant, error) {
	var t entity.Tenant
	err := row.Scan(
		&t.ID, &t.Name, &t.Slug, &t.Plan, &t.Status, &t.APIKey,
		&t.BookingTenantID, &t.BookingAPIKey, &t.ProvisionStatus, &t.ProvisionError,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// Create persiste un nuevo tenant.
func (r *TenantRepo) Create(tenant *entity.Tenant) error {
	query := `
		INSERT INTO tenants (id, name, slug, plan, status, api_key, booking_tenant_id, booking_api_key,
			provision_status, provision_error, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		tenant.ID, tenant.Name, tenant.Slug, tenant.Plan, tenant.Status, tenant.APIKey,
		tenant.BookingTenantID, tenant.BookingAPIKey, tenant.ProvisionStatus, tenant.ProvisionError,
		tenant.CreatedAt, tenant.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

// GetByID obtiene un tenant por ID.
func (r *TenantRepo) GetByID(id string) (*entity.Tenant, error) {
	t, err := scanTenant(r.q.QueryRow(context.Background(),
		`SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return t, nil
}

// GetBySlug obtiene un tenant por slug.
func (r *TenantRepo) GetBySlug(slug string) (*entity.Tenant, error) {
	t, err := scanTenant(r.q.QueryRow(context.Background(),
		`SELECT `+tenantColumns+` FROM tenants WHERE slug = $1`, slug))
	if err != nil {
		return nil, fmt.Errorf("get tenant by slug: %w", err)
	}
	return t, nil
}

// List lista tenants con paginación.
func (r *TenantRepo) List(limit, offset int) ([]*entity.Tenant, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+tenantColumns+` FROM tenants ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()
	return collectTenants(rows)
}

// ListByProvisionStatus lista tenants cuyo provision_status está en statuses.
func (r *TenantRepo) ListByProvisionStatus(statuses []string) ([]*entity.Tenant, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+tenantColumns+` FROM tenants WHERE provision_status = ANY($1) ORDER BY created_at`, statuses)
	if err != nil {
		return nil, fmt.Errorf("list tenants by provision_status: %w", err)
	}
	defer rows.Close()
	return collectTenants(rows)
}

func collectTenants(rows pgx.Rows) ([]*entity.Tenant, error) {
	var list []*entity.Tenant
	for rows.Next() {
		var t entity.Tenant
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Slug, &t.Plan, &t.Status, &t.APIKey,
			&t.BookingTenantID, &t.BookingAPIKey, &t.ProvisionStatus, &t.ProvisionError,
			&t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Update actualiza los campos de negocio del tenant. No toca las columnas
// booking_* ni provision_*: eso es territorio exclusivo de UpdateProvisionState.
func (r *TenantRepo) Update(tenant *entity.Tenant) error {
	query := `
		UPDATE tenants SET name = $2, slug = $3, plan = $4, status = $5, api_key = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		tenant.ID, tenant.Name, tenant.Slug, tenant.Plan, tenant.Status, tenant.APIKey, tenant.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update tenant: %w", err)
	}
	return nil
}

// UpdateProvisionState actualiza únicamente el enlace con el motor de reservas.
func (r *TenantRepo) UpdateProvisionState(tenant *entity.Tenant) error {
	query := `
		UPDATE tenants SET booking_tenant_id = $2, booking_api_key = $3,
			provision_status = $4, provision_error = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		tenant.ID, tenant.BookingTenantID, tenant.BookingAPIKey,
		tenant.ProvisionStatus, tenant.ProvisionError, tenant.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update tenant provision state: %w", err)
	}
	return nil
}

// Delete marca el tenant como eliminado. La fila se conserva: usuarios,
// artículos y clientes la referencian por FK, y el enlace booking_* sigue
// disponible para reconciliación con el motor de reservas.
func (r *TenantRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE tenants SET status = 'deleted', updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tenant: %w", err)
	}
	return nil
}
