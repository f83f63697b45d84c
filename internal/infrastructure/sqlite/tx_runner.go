package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Mnpaulon/final-pd-acn4bv-paulon/internal/application/usecase"
	"github.com/Mnpaulon/final-pd-acn4bv-paulon/internal/domain/repository"
)

// TxRunner satisface los puertos de transacción de la capa de aplicación.
var _ usecase.CatalogTxRunner = (*TxRunner)(nil)
var _ usecase.UserTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SQLite.
type TxRunner struct {
	db *sql.DB
}

// NewTxRunner construye el runner con la conexión.
func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia una transacción, ejecuta fn con repos de catálogo atados a la tx
// y hace Commit o Rollback. La resolución de categoría y la escritura del
// producto quedan dentro de la misma transacción.
func (r *TxRunner) Run(ctx context.Context, fn func(
	catRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	catRepo := NewCategoryRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(catRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunUsers inicia una transacción con el repo de usuarios (chequeo de último
// admin + delete en una sola unidad atómica).
func (r *TxRunner) RunUsers(ctx context.Context, fn func(
	userRepo repository.UserRepository,
) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewUserRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
