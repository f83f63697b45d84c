package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Mnpaulon/final-pd-acn4bv-paulon/internal/domain/entity"
	"github.com/Mnpaulon/final-pd-acn4bv-paulon/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre SQLite.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// List devuelve todos los productos con el nombre de su categoría,
// ordenados por id ascendente. Join interno: un producto cuya categoría
// fue anulada no aparece en el listado.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	query := `
		SELECT p.id, p.nombre, p.precio, p.stock, p.categoria_id, c.nombre AS categoria
		FROM productos p
		JOIN categorias c ON c.id = p.categoria_id
		ORDER BY p.id ASC`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Nombre, &p.Precio, &p.Stock, &p.CategoriaID, &p.Categoria); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// GetByID obtiene un producto por id con su categoría resuelta. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	query := `
		SELECT p.id, p.nombre, p.precio, p.stock, p.categoria_id, c.nombre AS categoria
		FROM productos p
		JOIN categorias c ON c.id = p.categoria_id
		WHERE p.id = ?`
	var p entity.Product
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Nombre, &p.Precio, &p.Stock, &p.CategoriaID, &p.Categoria,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto por id: %w", err)
	}
	return &p, nil
}

// Create inserta el producto y asigna el id generado.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO productos (nombre, precio, stock, categoria_id) VALUES (?, ?, ?, ?)`,
		product.Nombre, product.Precio, product.Stock, product.CategoriaID,
	)
	if err != nil {
		return fmt.Errorf("insert producto: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id producto: %w", err)
	}
	product.ID = id
	return nil
}

// Update sobrescribe todos los campos del producto. Devuelve false si el id no existe:
// la verificación de existencia es la misma sentencia condicional que escribe.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) (bool, error) {
	res, err := r.q.ExecContext(ctx,
		`UPDATE productos SET nombre = ?, precio = ?, stock = ?, categoria_id = ? WHERE id = ?`,
		product.Nombre, product.Precio, product.Stock, product.CategoriaID, product.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update producto: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected producto: %w", err)
	}
	return n > 0, nil
}

// Delete elimina el producto por id. Devuelve false si no afectó filas.
func (r *ProductRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM productos WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete producto: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected producto: %w", err)
	}
	return n > 0, nil
}
