package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mnpaulon/final-pd-acn4bv-paulon/internal/application/auth"
	"github.com/Mnpaulon/final-pd-acn4bv-paulon/internal/application/usecase"
	"github.com/Mnpaulon/final-pd-acn4bv-paulon/internal/infrastructure/sqlite"
	apphttp "github.com/Mnpaulon/final-pd-acn4bv-paulon/internal/interfaces/http"
	"github.com/Mnpaulon/final-pd-acn4bv-paulon/internal/testutil"
)

// buildAPIApp arma la aplicación completa contra una base en memoria,
// con el admin inicial sembrado (admin / admin123).
func buildAPIApp(t *testing.T, dbName string) *fiber.App {
	t.Helper()
	db := testutil.OpenInMemoryDB(t, dbName)
	require.NoError(t, sqlite.SeedAdmin(context.Background(), db, "admin", "admin123"))

	userRepo := sqlite.NewUserRepository(db)
	productRepo := sqlite.NewProductRepository(db)
	txRunner := sqlite.NewTxRunner(db)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(userRepo, auth.JWTConfig{
			Secret:     testJWTSecret,
			ExpMinutes: testExpMin,
			Issuer:     testIssuer,
		}),
		ProductUC: usecase.NewProductUseCase(productRepo, txRunner),
		UserUC:    usecase.NewUserUseCase(userRepo, txRunner),
		JWTSecret: testJWTSecret,
	})
	return app
}

// doJSON lanza una petición con body JSON opcional y token opcional.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// loginAs hace login y devuelve el token.
func loginAs(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "login de %s debe ser exitoso", username)
	var body struct {
		Mensaje string `json:"mensaje"`
		Token   string `json:"token"`
	}
	decodeJSON(t, resp, &body)
	require.Equal(t, "Login exitoso", body.Mensaje)
	require.NotEmpty(t, body.Token)
	return body.Token
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_Login(t *testing.T) {
	app := buildAPIApp(t, "apilogin")

	t.Run("credenciales válidas", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/login", "", map[string]string{
			"username": "admin", "password": "admin123",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body struct {
			Mensaje string `json:"mensaje"`
			Token   string `json:"token"`
			User    struct {
				ID       int64  `json:"id"`
				Username string `json:"username"`
				Role     string `json:"role"`
			} `json:"user"`
		}
		decodeJSON(t, resp, &body)
		assert.Equal(t, "admin", body.User.Username)
		assert.Equal(t, "admin", body.User.Role)
		assert.NotZero(t, body.User.ID)
	})

	t.Run("password incorrecto", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/login", "", map[string]string{
			"username": "admin", "password": "incorrecta",
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("campos faltantes", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/login", "", map[string]string{
			"username": "admin",
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Protección de rutas
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_RutasProtegidas_SinToken(t *testing.T) {
	app := buildAPIApp(t, "apiprotegido")

	rutas := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/productos"},
		{http.MethodGet, "/api/productos/1"},
		{http.MethodPost, "/api/productos"},
		{http.MethodPut, "/api/productos/1"},
		{http.MethodDelete, "/api/productos/1"},
		{http.MethodGet, "/api/usuarios"},
		{http.MethodPost, "/api/usuarios"},
		{http.MethodDelete, "/api/usuarios/1"},
	}
	for _, r := range rutas {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			resp := doJSON(t, app, r.method, r.path, "", nil)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}

	// Un intento de escritura sin token no debe haber mutado nada
	token := loginAs(t, app, "admin", "admin123")
	resp := doJSON(t, app, http.MethodGet, "/api/productos", token, nil)
	var list []map[string]any
	decodeJSON(t, resp, &list)
	assert.Empty(t, list, "los intentos sin token no mutan el storage")
}

func TestAPI_TokenInvalido(t *testing.T) {
	app := buildAPIApp(t, "apitokenmalo")

	resp := doJSON(t, app, http.MethodGet, "/api/productos", "token.falso.aqui", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_Productos_CRUD(t *testing.T) {
	app := buildAPIApp(t, "apiprodcrud")
	token := loginAs(t, app, "admin", "admin123")

	// Crear
	resp := doJSON(t, app, http.MethodPost, "/api/productos", token, map[string]any{
		"nombre": "Notebook", "precio": 850000.5, "categoria": "Electrónica", "stock": 4,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID        int64   `json:"id"`
		Nombre    string  `json:"nombre"`
		Precio    float64 `json:"precio"`
		Stock     int64   `json:"stock"`
		Categoria string  `json:"categoria"`
	}
	decodeJSON(t, resp, &created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Notebook", created.Nombre)
	assert.Equal(t, "Electrónica", created.Categoria)

	// Round-trip por id: mismos campos que en el alta
	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/productos/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got struct {
		Nombre    string  `json:"nombre"`
		Precio    float64 `json:"precio"`
		Stock     int64   `json:"stock"`
		Categoria string  `json:"categoria"`
	}
	decodeJSON(t, resp, &got)
	assert.Equal(t, "Notebook", got.Nombre)
	assert.Equal(t, 850000.5, got.Precio)
	assert.Equal(t, int64(4), got.Stock)
	assert.Equal(t, "Electrónica", got.Categoria)

	// Actualizar
	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/productos/%d", created.ID), token, map[string]any{
		"nombre": "Notebook Pro", "precio": 999999, "categoria": "Computación", "stock": 2,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated struct {
		Categoria string `json:"categoria"`
	}
	decodeJSON(t, resp, &updated)
	assert.Equal(t, "Computación", updated.Categoria)

	// Listar
	resp = doJSON(t, app, http.MethodGet, "/api/productos", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]any
	decodeJSON(t, resp, &list)
	assert.Len(t, list, 1)

	// Eliminar
	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/productos/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var deleted struct {
		Mensaje string `json:"mensaje"`
		ID      int64  `json:"id"`
	}
	decodeJSON(t, resp, &deleted)
	assert.Equal(t, "Producto eliminado correctamente", deleted.Mensaje)
	assert.Equal(t, created.ID, deleted.ID)

	// Ya no existe
	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/productos/%d", created.ID), token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_Productos_Validacion(t *testing.T) {
	app := buildAPIApp(t, "apiprodval")
	token := loginAs(t, app, "admin", "admin123")

	resp := doJSON(t, app, http.MethodPost, "/api/productos", token, map[string]any{
		"nombre": "", "precio": -1, "categoria": "X", "stock": 1.5,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body struct {
		Error string `json:"error"`
	}
	decodeJSON(t, resp, &body)
	assert.Contains(t, body.Error, "Nombre es obligatorio")
	assert.Contains(t, body.Error, "precio")
	assert.Contains(t, body.Error, "stock")
}

func TestAPI_Productos_NumerosComoString(t *testing.T) {
	app := buildAPIApp(t, "apiprodstrnum")
	token := loginAs(t, app, "admin", "admin123")

	// precio y stock enviados como string numérico se aceptan igual
	resp := doJSON(t, app, http.MethodPost, "/api/productos", token, map[string]any{
		"nombre": "Mouse", "precio": "12500.50", "categoria": "Electrónica", "stock": "9",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		Precio float64 `json:"precio"`
		Stock  int64   `json:"stock"`
	}
	decodeJSON(t, resp, &created)
	assert.Equal(t, 12500.50, created.Precio)
	assert.Equal(t, int64(9), created.Stock)

	// Un string no numérico cae en la validación, no en un error de parseo
	resp = doJSON(t, app, http.MethodPost, "/api/productos", token, map[string]any{
		"nombre": "Teclado", "precio": "gratis", "categoria": "Electrónica", "stock": 1,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body struct {
		Error string `json:"error"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, "El precio debe ser un número válido (>= 0)", body.Error)
}

func TestAPI_Productos_IDInvalido(t *testing.T) {
	app := buildAPIApp(t, "apiprodid")
	token := loginAs(t, app, "admin", "admin123")

	resp := doJSON(t, app, http.MethodGet, "/api/productos/abc", token, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body struct {
		Error string `json:"error"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, "ID inválido", body.Error)
}

func TestAPI_Productos_NotFound(t *testing.T) {
	app := buildAPIApp(t, "apiprodnf")
	token := loginAs(t, app, "admin", "admin123")

	resp := doJSON(t, app, http.MethodGet, "/api/productos/9999", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_Usuarios_GestionAdmin(t *testing.T) {
	app := buildAPIApp(t, "apiusers")
	adminToken := loginAs(t, app, "admin", "admin123")

	// Crear usuario común
	resp := doJSON(t, app, http.MethodPost, "/api/usuarios", adminToken, map[string]string{
		"username": "beto", "password": "secreta123", "role": "vendedor",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var beto struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	decodeJSON(t, resp, &beto)
	assert.Equal(t, "usuario", beto.Role, "rol desconocido se normaliza a usuario")

	// Username duplicado → 400
	resp = doJSON(t, app, http.MethodPost, "/api/usuarios", adminToken, map[string]string{
		"username": "beto", "password": "otra456",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Un usuario común no puede gestionar usuarios
	betoToken := loginAs(t, app, "beto", "secreta123")
	resp = doJSON(t, app, http.MethodGet, "/api/usuarios", betoToken, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Listado sin password_hash
	resp = doJSON(t, app, http.MethodGet, "/api/usuarios", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]any
	decodeJSON(t, resp, &list)
	require.Len(t, list, 2)
	for _, u := range list {
		assert.NotContains(t, u, "password_hash", "el hash nunca sale del credential store")
	}

	// Eliminar al usuario común
	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/usuarios/%d", beto.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var deleted struct {
		Mensaje string `json:"mensaje"`
	}
	decodeJSON(t, resp, &deleted)
	assert.Equal(t, "Usuario eliminado", deleted.Mensaje)
}

func TestAPI_Usuarios_Invariantes(t *testing.T) {
	app := buildAPIApp(t, "apiuserinv")
	adminToken := loginAs(t, app, "admin", "admin123")

	// El admin no puede eliminar su propia cuenta
	resp := doJSON(t, app, http.MethodGet, "/api/usuarios", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}
	decodeJSON(t, resp, &list)
	require.Len(t, list, 1)
	adminID := list[0].ID

	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/usuarios/%d", adminID), adminToken, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode,
		"auto-eliminación rechazada")

	// Con dos admins, uno sí puede eliminar al otro
	resp = doJSON(t, app, http.MethodPost, "/api/usuarios", adminToken, map[string]string{
		"username": "ana", "password": "secreta123", "role": "admin",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var ana struct {
		ID int64 `json:"id"`
	}
	decodeJSON(t, resp, &ana)

	anaToken := loginAs(t, app, "ana", "secreta123")
	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/usuarios/%d", adminID), anaToken, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "un admin no-último sí se elimina")

	// ana quedó como única admin: nadie la puede eliminar
	resp = doJSON(t, app, http.MethodPost, "/api/usuarios", anaToken, map[string]string{
		"username": "otroadmin", "password": "secreta123", "role": "admin",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	otroToken := loginAs(t, app, "otroadmin", "secreta123")

	// otroadmin borra a ana: quedan 2 admins, se permite
	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/usuarios/%d", ana.ID), otroToken, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// otroadmin quedó como único usuario
	resp = doJSON(t, app, http.MethodGet, "/api/usuarios", otroToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var usuarios []struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	decodeJSON(t, resp, &usuarios)
	require.Len(t, usuarios, 1)
	require.Equal(t, "otroadmin", usuarios[0].Username)

	// Eliminar usuario inexistente → 404
	resp = doJSON(t, app, http.MethodDelete, "/api/usuarios/9999", otroToken, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Contratos generales
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_RutaNoEncontrada(t *testing.T) {
	app := buildAPIApp(t, "api404")

	resp := doJSON(t, app, http.MethodGet, "/api/inexistente", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body struct {
		Error string `json:"error"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, "Ruta no encontrada", body.Error)
}

func TestAPI_BodyMalformado(t *testing.T) {
	app := buildAPIApp(t, "apibadbody")
	token := loginAs(t, app, "admin", "admin123")

	req := httptest.NewRequest(http.MethodPost, "/api/productos", bytes.NewReader([]byte("{esto no es json")))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
