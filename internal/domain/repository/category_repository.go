package repository

import (
	"context"

	"github.com/Mnpaulon/final-pd-acn4bv-paulon/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	// ResolveOrCreate busca la categoría por nombre exacto y devuelve su id;
	// si no existe la inserta. La implementación debe ser segura ante
	// concurrencia (insert condicional, no check-then-act).
	ResolveOrCreate(ctx context.Context, nombre string) (int64, error)
	GetByName(ctx context.Context, nombre string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
}
