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

var _ repository.RentalItemRepository = (*RentalItemRepo)(nil)

const rentalItemColumns = `id, tenant_id, name, description, category,
		price_hour, price_day, price_weekend, price_week,
		width_m, length_m, height_m, capacity, active, quantity, images,
		booking_service_id, sync_status, last_synced_at, sync_error, created_at, updated_at`

// RentalItemRepo implementación de RentalItemRepository (usable con pool o tx).
type RentalItemRepo struct {
	q Querier
}

// NewRentalItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRentalItemRepository(q Querier) *RentalItemRepo {
	return &RentalItemRepo{q: q}
}

func scanRentalItem(row pgx.Row) (*entity.RentalItem, error) {
	var it entity.RentalItem
	err := row.Scan(
		&it.ID, &it.TenantID, &it.Name, &it.Description, &it.Category,
		&it.PriceHour, &it.PriceDay, &it.PriceWeekend, &it.PriceWeek,
		&it.WidthM, &it.LengthM, &it.HeightM, &it.Capacity, &it.Active, &it.Quantity, &it.Images,
		&it.BookingServiceID, &it.SyncStatus, &it.LastSyncedAt, &it.SyncError,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &it, nil
}

func collectRentalItems(rows pgx.Rows) ([]*entity.RentalItem, error) {
	var list []*entity.RentalItem
	for rows.Next() {
		var it entity.RentalItem
		if err := rows.Scan(
			&it.ID, &it.TenantID, &it.Name, &it.Description, &it.Category,
			&it.PriceHour, &it.PriceDay, &it.PriceWeekend, &it.PriceWeek,
			&it.WidthM, &it.LengthM, &it.HeightM, &it.Capacity, &it.Active, &it.Quantity, &it.Images,
			&it.BookingServiceID, &it.SyncStatus, &it.LastSyncedAt, &it.SyncError,
			&it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan rental item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Create persiste un nuevo artículo.
func (r *RentalItemRepo) Create(item *entity.RentalItem) error {
	query := `
		INSERT INTO rental_items (id, tenant_id, name, description, category,
			price_hour, price_day, price_weekend, price_week,
			width_m, length_m, height_m, capacity, active, quantity, images,
			booking_service_id, sync_status, last_synced_at, sync_error, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.TenantID, item.Name, item.Description, item.Category,
		item.PriceHour, item.PriceDay, item.PriceWeekend, item.PriceWeek,
		item.WidthM, item.LengthM, item.HeightM, item.Capacity, item.Active, item.Quantity, item.Images,
		item.BookingServiceID, item.SyncStatus, item.LastSyncedAt, item.SyncError,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert rental item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID.
func (r *RentalItemRepo) GetByID(id string) (*entity.RentalItem, error) {
	it, err := scanRentalItem(r.q.QueryRow(context.Background(),
		`SELECT `+rentalItemColumns+` FROM rental_items WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get rental item: %w", err)
	}
	return it, nil
}

// ListByTenant lista artículos del tenant con paginación.
func (r *RentalItemRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.RentalItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+rentalItemColumns+` FROM rental_items WHERE tenant_id = $1 ORDER BY name LIMIT $2 OFFSET $3`,
		tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list rental items: %w", err)
	}
	defer rows.Close()
	return collectRentalItems(rows)
}

// ListActiveByTenant lista solo artículos activos (catálogo público del widget).
func (r *RentalItemRepo) ListActiveByTenant(tenantID string, limit, offset int) ([]*entity.RentalItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+rentalItemColumns+` FROM rental_items
		 WHERE tenant_id = $1 AND active ORDER BY name LIMIT $2 OFFSET $3`,
		tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list active rental items: %w", err)
	}
	defer rows.Close()
	return collectRentalItems(rows)
}

// ListNeedingSync lista artículos en estado pending/failed/out_of_sync.
func (r *RentalItemRepo) ListNeedingSync(limit int) ([]*entity.RentalItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+rentalItemColumns+` FROM rental_items
		 WHERE sync_status = ANY($1) ORDER BY updated_at LIMIT $2`,
		[]string{entity.SyncPending, entity.SyncFailed, entity.SyncOutOfSync}, limit)
	if err != nil {
		return nil, fmt.Errorf("list rental items needing sync: %w", err)
	}
	defer rows.Close()
	return collectRentalItems(rows)
}

// ListIDsByTenant devuelve los IDs de todos los artículos del tenant (resync forzado).
func (r *RentalItemRepo) ListIDsByTenant(tenantID string) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id FROM rental_items WHERE tenant_id = $1 ORDER BY created_at`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list rental item ids: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan rental item id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Update actualiza los campos de negocio del artículo. tenant_id es inmutable y
// las columnas de sync no se tocan aquí (solo UpdateSyncState puede escribirlas).
func (r *RentalItemRepo) Update(item *entity.RentalItem) error {
	query := `
		UPDATE rental_items SET name = $2, description = $3, category = $4,
			price_hour = $5, price_day = $6, price_weekend = $7, price_week = $8,
			width_m = $9, length_m = $10, height_m = $11, capacity = $12,
			active = $13, quantity = $14, images = $15, updated_at = $16
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Description, item.Category,
		item.PriceHour, item.PriceDay, item.PriceWeekend, item.PriceWeek,
		item.WidthM, item.LengthM, item.HeightM, item.Capacity,
		item.Active, item.Quantity, item.Images, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update rental item: %w", err)
	}
	return nil
}

// UpdateSyncState actualiza únicamente las columnas de sincronización.
func (r *RentalItemRepo) UpdateSyncState(item *entity.RentalItem) error {
	query := `
		UPDATE rental_items SET booking_service_id = $2, sync_status = $3,
			last_synced_at = $4, sync_error = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.BookingServiceID, item.SyncStatus, item.LastSyncedAt, item.SyncError, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update rental item sync state: %w", err)
	}
	return nil
}

// Delete elimina un artículo por ID.
func (r *RentalItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM rental_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete rental item: %w", err)
	}
	return nil
}
