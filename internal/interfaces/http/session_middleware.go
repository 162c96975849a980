package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rentalops/internal/domain/access"
)

// Locals keys de la sesión en Fiber.
const (
	LocalSession = "session"
	LocalUserID  = "user_id"
	LocalRole    = "role"
)

// SessionProvider valida el token de sesión y devuelve la identidad que transporta.
type SessionProvider interface {
	SessionFromToken(token string) (*access.Session, error)
}

// CookieSettings configuración de la cookie de sesión.
type CookieSettings struct {
	Name   string
	Secure bool
	Domain string
}

// LoadSession lee la cookie de sesión y, si el token es válido, deja la sesión
// en c.Locals. Nunca rechaza: decidir es tarea del guard de cada sección.
func LoadSession(provider SessionProvider, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(cookieName)
		if token == "" {
			return c.Next()
		}
		session, err := provider.SessionFromToken(token)
		if err == nil && session.Present() {
			setSession(c, session)
		}
		return c.Next()
	}
}

func setSession(c *fiber.Ctx, s *access.Session) {
	c.Locals(LocalSession, s)
	c.Locals(LocalUserID, s.UserID)
	c.Locals(LocalRole, s.Role.String())
}

// GetSession devuelve la sesión cargada o nil.
func GetSession(c *fiber.Ctx) *access.Session {
	s, _ := c.Locals(LocalSession).(*access.Session)
	return s
}

// GetUserID devuelve el UserID del contexto (después de LoadSession o AuthMiddleware).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el nombre de cable del rol del contexto.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

func writeSessionCookie(c *fiber.Ctx, cfg CookieSettings, token string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     cfg.Name,
		Value:    token,
		Path:     "/",
		Domain:   cfg.Domain,
		Expires:  time.Now().Add(ttl),
		Secure:   cfg.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func deleteSessionCookie(c *fiber.Ctx, cfg CookieSettings) {
	c.Cookie(&fiber.Cookie{
		Name:     cfg.Name,
		Value:    "",
		Path:     "/",
		Domain:   cfg.Domain,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Secure:   cfg.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
