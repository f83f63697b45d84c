package dto

// ErrorResponse cuerpo de error HTTP: {error: "..."}.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MensajeResponse respuesta de operaciones sin entidad (delete).
// ID se incluye solo cuando aplica (eliminación de producto).
type MensajeResponse struct {
	Mensaje string `json:"mensaje"`
	ID      int64  `json:"id,omitempty"`
}
