package entity

// Product representa un producto del inventario. Categoria es el nombre
// resuelto de la categoría (todo producto devuelto al cliente la lleva).
type Product struct {
	ID          int64
	Nombre      string
	Precio      float64 // >= 0
	Stock       int64   // entero >= 0
	CategoriaID int64
	Categoria   string
}
