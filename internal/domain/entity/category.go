package entity

// Category representa una categoría de productos. El nombre es único;
// se crea explícitamente (seed inicial) o implícitamente cuando un producto
// referencia un nombre que todavía no existe.
type Category struct {
	ID     int64
	Nombre string
}
