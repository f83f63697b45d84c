package dto

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Numero acepta el campo tanto como número JSON ("precio": 10) como string
// numérico ("precio": "10"), que es lo que mandan algunos clientes de
// formularios. Valor nil significa campo ausente o null; un valor no
// numérico queda como NaN para que la validación lo rechace con su mensaje
// en lugar de cortar el parseo del body.
type Numero struct {
	Valor *float64
}

func (n *Numero) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		n.Valor = nil
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		n.Valor = &f
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			f = v
		} else {
			f = math.NaN()
		}
		n.Valor = &f
		return nil
	}
	f = math.NaN()
	n.Valor = &f
	return nil
}

// ProductPayload entrada para crear o actualizar un producto.
// Precio y Stock distinguen "campo ausente" de cero: un body sin precio
// debe fallar la validación, no pasar como 0.
type ProductPayload struct {
	Nombre    string `json:"nombre"`
	Precio    Numero `json:"precio"`
	Categoria string `json:"categoria"`
	Stock     Numero `json:"stock"`
}

// ProductResponse salida de un producto con el nombre de categoría resuelto.
type ProductResponse struct {
	ID        int64   `json:"id"`
	Nombre    string  `json:"nombre"`
	Precio    float64 `json:"precio"`
	Stock     int64   `json:"stock"`
	Categoria string  `json:"categoria"`
}
