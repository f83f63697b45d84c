package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Mnpaulon/final-pd-acn4bv-paulon/internal/application/auth"
	"github.com/Mnpaulon/final-pd-acn4bv-paulon/internal/application/dto"
	"github.com/Mnpaulon/final-pd-acn4bv-paulon/internal/application/usecase"
	"github.com/Mnpaulon/final-pd-acn4bv-paulon/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	ProductUC *usecase.ProductUseCase
	UserUC    *usecase.UserUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Login (público, devuelve token JWT)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/login", authHandler.Login)

	// Productos (protegido: requiere Bearer Token)
	productos := api.Group("/productos", AuthMiddleware(deps.JWTSecret))
	productHandler := NewProductHandler(deps.ProductUC)
	productos.Get("/", productHandler.List)
	productos.Get("/:id", productHandler.GetByID)
	productos.Post("/", productHandler.Create)
	productos.Put("/:id", productHandler.Update)
	productos.Delete("/:id", productHandler.Delete)

	// Usuarios (protegido: gestión solo para admin)
	usuarios := api.Group("/usuarios", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	usuarios.Get("/", userHandler.List)
	usuarios.Post("/", userHandler.Create)
	usuarios.Delete("/:id", userHandler.Delete)

	// 404 para cualquier ruta no registrada
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Ruta no encontrada"})
	})
}
