package dto

// LoginRequest entrada para login: username + password en texto plano.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse salida de un usuario (nunca incluye password_hash).
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginResponse salida de login con token JWT y el payload del usuario.
type LoginResponse struct {
	Mensaje string       `json:"mensaje"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
// Role distinto de "admin" se normaliza a "usuario".
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
