package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrDuplicateUsername  = errors.New("el usuario ya existe")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrSelfDeletion       = errors.New("no podés eliminar tu propia cuenta")
	ErrLastAdmin          = errors.New("no se puede eliminar el único usuario administrador")
)

// ValidationError agrupa todos los mensajes de validación violados de una entrada.
// Se acumulan todos, no solo el primero, y se unen con ". " hacia el cliente.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ". ")
}

// IsValidation indica si err es un error de validación.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
