package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Rentario-api/internal/application/usecase"
	"github.com/jhoicas/Rentario-api/internal/domain/repository"
)

// Ensure TxRunner implements usecase.TenantTxRunner.
var _ usecase.TenantTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunTenant inicia una transacción con repos de tenant y usuario (alta atómica de
// tenant + usuario administrador) y hace Commit o Rollback. Cuando RunTenant
// retorna sin error el commit ya ocurrió: cualquier despacho posterior del caller
// (aprovisionamiento en background) ve la fila del tenant garantizada.
func (r *TxRunner) RunTenant(ctx context.Context, fn func(
	tenantRepo repository.TenantRepository,
	userRepo repository.UserRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tenantRepo := NewTenantRepository(tx)
	userRepo := NewUserRepository(tx)

	if err := fn(tenantRepo, userRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
