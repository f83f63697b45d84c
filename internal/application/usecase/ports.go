package usecase

import (
	"context"

	"github.com/Mnpaulon/final-pd-acn4bv-paulon/internal/domain/repository"
)

// CatalogTxRunner ejecuta fn con repos de catálogo atados a una transacción.
// La resolución de categoría y la escritura del producto comparten la misma
// transacción: la secuencia check-then-act queda atómica en el storage.
type CatalogTxRunner interface {
	Run(ctx context.Context, fn func(
		catRepo repository.CategoryRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// UserTxRunner ejecuta fn con el repo de usuarios atado a una transacción
// (chequeo de último admin + delete sin carrera entre requests).
type UserTxRunner interface {
	RunUsers(ctx context.Context, fn func(
		userRepo repository.UserRepository,
	) error) error
}
