package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Mnpaulon/final-pd-acn4bv-paulon/internal/domain/entity"
	"github.com/Mnpaulon/final-pd-acn4bv-paulon/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre SQLite.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// ResolveOrCreate devuelve el id de la categoría con ese nombre exacto,
// creándola si no existe. El insert condicional (ON CONFLICT DO NOTHING)
// hace que dos requests concurrentes con el mismo nombre no dupliquen ni fallen.
func (r *CategoryRepo) ResolveOrCreate(ctx context.Context, nombre string) (int64, error) {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO categorias (nombre) VALUES (?) ON CONFLICT(nombre) DO NOTHING`, nombre)
	if err != nil {
		return 0, fmt.Errorf("insert categoria: %w", err)
	}
	var id int64
	err = r.q.QueryRowContext(ctx, `SELECT id FROM categorias WHERE nombre = ?`, nombre).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("get categoria por nombre: %w", err)
	}
	return id, nil
}

// GetByName obtiene una categoría por nombre exacto. Devuelve (nil, nil) si no existe.
func (r *CategoryRepo) GetByName(ctx context.Context, nombre string) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRowContext(ctx,
		`SELECT id, nombre FROM categorias WHERE nombre = ?`, nombre).Scan(&c.ID, &c.Nombre)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get categoria: %w", err)
	}
	return &c, nil
}

// List devuelve todas las categorías ordenadas por id.
func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, nombre FROM categorias ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categorias: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Nombre); err != nil {
			return nil, fmt.Errorf("scan categoria: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
