package domain

import (
	"math"
	"strings"
)

// Mensajes de validación de producto (se devuelven verbatim al cliente).
const (
	MsgNombreObligatorio    = "Nombre es obligatorio"
	MsgCategoriaObligatoria = "Categoría es obligatoria"
	MsgPrecioInvalido       = "El precio debe ser un número válido (>= 0)"
	MsgStockInvalido        = "El stock debe ser un número entero >= 0"
)

// ValidateProduct aplica las reglas de producto, idénticas para alta y
// actualización. Acumula todas las violaciones en orden fijo. precio y stock
// llegan como punteros: nil significa campo ausente en el body y es inválido.
func ValidateProduct(nombre string, precio *float64, categoria string, stock *float64) []string {
	var msgs []string

	if strings.TrimSpace(nombre) == "" {
		msgs = append(msgs, MsgNombreObligatorio)
	}

	if strings.TrimSpace(categoria) == "" {
		msgs = append(msgs, MsgCategoriaObligatoria)
	}

	if precio == nil || math.IsNaN(*precio) || math.IsInf(*precio, 0) || *precio < 0 {
		msgs = append(msgs, MsgPrecioInvalido)
	}

	if stock == nil || math.IsNaN(*stock) || math.IsInf(*stock, 0) || math.Trunc(*stock) != *stock || *stock < 0 {
		msgs = append(msgs, MsgStockInvalido)
	}

	return msgs
}
