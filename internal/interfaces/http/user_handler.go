package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/Mnpaulon/final-pd-acn4bv-paulon/internal/application/dto"
	"github.com/Mnpaulon/final-pd-acn4bv-paulon/internal/application/usecase"
	"github.com/Mnpaulon/final-pd-acn4bv-paulon/internal/domain"
)

// UserHandler maneja la gestión de usuarios (protegido, solo admin).
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/usuarios [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("error cargando usuarios")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "No se pudieron cargar los usuarios"})
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear usuario
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "username, password, role"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/usuarios [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Cuerpo inválido"})
	}
	if in.Username == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Usuario y contraseña son obligatorios"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "El usuario ya existe"})
		}
		log.Error().Err(err).Msg("error creando usuario")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "No se pudo crear el usuario"})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar usuario
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {object}  dto.MensajeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "ID inválido"})
	}
	if err := h.uc.Delete(c.Context(), id, GetUserID(c)); err != nil {
		switch {
		case errors.Is(err, domain.ErrSelfDeletion):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "No podés eliminar tu propia cuenta"})
		case errors.Is(err, domain.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Usuario no encontrado"})
		case errors.Is(err, domain.ErrLastAdmin):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "No se puede eliminar el único usuario administrador"})
		}
		log.Error().Err(err).Int64("id", id).Msg("error eliminando usuario")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "No se pudo eliminar el usuario"})
	}
	return c.JSON(dto.MensajeResponse{Mensaje: "Usuario eliminado"})
}
