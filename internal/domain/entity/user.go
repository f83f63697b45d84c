package entity

import "strings"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleUsuario = "usuario"
)

// User representa un usuario del sistema.
type User struct {
	ID           int64
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, usuario
}

// NormalizeRole normaliza el rol de entrada: solo "admin" se respeta,
// cualquier otro valor (incluido vacío) cae al default "usuario".
func NormalizeRole(role string) string {
	if strings.ToLower(strings.TrimSpace(role)) == RoleAdmin {
		return RoleAdmin
	}
	return RoleUsuario
}
