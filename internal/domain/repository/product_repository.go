package repository

import (
	"context"

	"github.com/Mnpaulon/final-pd-acn4bv-paulon/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// List y GetByID devuelven productos con el nombre de categoría resuelto
// (join interno: un producto con categoría nula queda fuera del listado).
type ProductRepository interface {
	List(ctx context.Context) ([]*entity.Product, error)
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
