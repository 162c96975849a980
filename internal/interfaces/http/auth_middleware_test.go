package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rentalops/internal/application/auth"
	"github.com/jhoicas/rentalops/internal/domain/access"
	apphttp "github.com/jhoicas/rentalops/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/rentalops/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "rentalops-test"
	testExpMin    = 60
	testCookie    = "session"
)

// tokenProvider valida tokens reales firmados con testJWTSecret.
func tokenProvider() apphttp.SessionProvider {
	return auth.NewAuthUseCase(nil, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para validar el token y cargar la sesión
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(allowed ...access.Role) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(tokenProvider(), testCookie),
		apphttp.RequireRole(allowed...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true, "role": apphttp.GetRole(c)})
		},
	)
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, "Usuario de prueba", testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_FINAccedeRutaFIN(t *testing.T) {
	app := buildTestApp(access.RoleFIN)
	resp := doRequest(t, app, "Bearer "+tokenForRole(t, "FIN"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "FIN", body["role"])
}

func TestRequireRole_MultiRolConNombreConEspacio(t *testing.T) {
	app := buildTestApp(access.RoleRC, access.RoleDataEntry)
	resp := doRequest(t, app, "Bearer "+tokenForRole(t, "Data Entry"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_RolDistintoRetorna403(t *testing.T) {
	app := buildTestApp(access.RoleFIN)
	resp := doRequest(t, app, "Bearer "+tokenForRole(t, "ES"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

// Un rol fuera del catálogo ("fin" en minúscula) no es un rol válido.
func TestRequireRole_RolDesconocidoRetorna401(t *testing.T) {
	app := buildTestApp(access.RoleFIN)
	resp := doRequest(t, app, "Bearer "+tokenForRole(t, "fin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

func TestRequireRole_SinAuthHeaderRetorna401(t *testing.T) {
	app := buildTestApp(access.RoleFIN)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestRequireRole_TokenInvalidoRetorna401(t *testing.T) {
	app := buildTestApp(access.RoleFIN)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestRequireRole_EsquemaDistintoDeBearer(t *testing.T) {
	app := buildTestApp(access.RoleFIN)
	resp := doRequest(t, app, "Basic "+tokenForRole(t, "FIN"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware: cookie y locals
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_AceptaCookieDeSesion(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(tokenProvider(), testCookie), func(c *fiber.Ctx) error {
		s := apphttp.GetSession(c)
		return c.JSON(fiber.Map{
			"user_id": apphttp.GetUserID(c),
			"role":    apphttp.GetRole(c),
			"name":    s.Name,
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: tokenForRole(t, "Dist User")})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "Dist User", body["role"])
	assert.Equal(t, "Usuario de prueba", body["name"])
}

func TestLoadSession_NuncaRechaza(t *testing.T) {
	app := fiber.New()
	app.Get("/x", apphttp.LoadSession(tokenProvider(), testCookie), func(c *fiber.Ctx) error {
		if apphttp.GetSession(c) == nil {
			return c.SendString("anónimo")
		}
		return c.SendString(apphttp.GetRole(c))
	})

	for cookie, want := range map[string]string{
		"":                    "anónimo",
		"basura":              "anónimo",
		tokenForRole(t, "RC"): "RC",
	} {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		if cookie != "" {
			req.AddCookie(&http.Cookie{Name: testCookie, Value: cookie})
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, want, string(body))
	}
}
