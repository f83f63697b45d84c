package usecase

import (
	"context"
	"strings"

	"github.com/Mnpaulon/final-pd-acn4bv-paulon/internal/application/dto"
	"github.com/Mnpaulon/final-pd-acn4bv-paulon/internal/domain"
	"github.com/Mnpaulon/final-pd-acn4bv-paulon/internal/domain/entity"
	"github.com/Mnpaulon/final-pd-acn4bv-paulon/internal/domain/repository"
)

// ProductUseCase aplica reglas de negocio para productos: validación,
// resolución de categoría (con auto-alta) y persistencia.
type ProductUseCase struct {
	repo repository.ProductRepository
	tx   CatalogTxRunner
}

// NewProductUseCase construye el caso de uso con el puerto de persistencia y el tx runner.
func NewProductUseCase(repo repository.ProductRepository, tx CatalogTxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, tx: tx}
}

// List devuelve todos los productos con su categoría, ordenados por id ascendente.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return toProductResponse(p), nil
}

// Create valida, resuelve la categoría (creándola si no existe) e inserta el
// producto, todo dentro de una transacción. Devuelve *domain.ValidationError
// si la entrada es inválida.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductPayload) (*dto.ProductResponse, error) {
	if msgs := domain.ValidateProduct(in.Nombre, in.Precio.Valor, in.Categoria, in.Stock.Valor); len(msgs) > 0 {
		return nil, &domain.ValidationError{Messages: msgs}
	}

	var created *entity.Product
	err := uc.tx.Run(ctx, func(catRepo repository.CategoryRepository, productRepo repository.ProductRepository) error {
		categoriaID, err := catRepo.ResolveOrCreate(ctx, in.Categoria)
		if err != nil {
			return err
		}
		p := &entity.Product{
			Nombre:      strings.TrimSpace(in.Nombre),
			Precio:      *in.Precio.Valor,
			Stock:       int64(*in.Stock.Valor),
			CategoriaID: categoriaID,
			Categoria:   in.Categoria, // eco del nombre recibido, no se reconsulta
		}
		if err := productRepo.Create(ctx, p); err != nil {
			return err
		}
		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(created), nil
}

// Update valida y sobrescribe todos los campos del producto. La verificación
// de existencia y la escritura son una sola sentencia condicional dentro de
// la transacción. Devuelve domain.ErrProductNotFound si el id no existe.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.ProductPayload) (*dto.ProductResponse, error) {
	if msgs := domain.ValidateProduct(in.Nombre, in.Precio.Valor, in.Categoria, in.Stock.Valor); len(msgs) > 0 {
		return nil, &domain.ValidationError{Messages: msgs}
	}

	var updated *entity.Product
	err := uc.tx.Run(ctx, func(catRepo repository.CategoryRepository, productRepo repository.ProductRepository) error {
		categoriaID, err := catRepo.ResolveOrCreate(ctx, in.Categoria)
		if err != nil {
			return err
		}
		p := &entity.Product{
			ID:          id,
			Nombre:      strings.TrimSpace(in.Nombre),
			Precio:      *in.Precio.Valor,
			Stock:       int64(*in.Stock.Valor),
			CategoriaID: categoriaID,
			Categoria:   in.Categoria,
		}
		ok, err := productRepo.Update(ctx, p)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrProductNotFound
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(updated), nil
}

// Delete elimina el producto. Devuelve domain.ErrProductNotFound si no afectó filas.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrProductNotFound
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:        p.ID,
		Nombre:    p.Nombre,
		Precio:    p.Precio,
		Stock:     p.Stock,
		Categoria: p.Categoria,
	}
}
