package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rentalops/internal/application/dto"
	"github.com/jhoicas/rentalops/internal/domain/access"
)

// AuthMiddleware protege la API JSON: acepta Bearer Token o la cookie de sesión
// y deja la sesión en c.Locals. Responde 401 en JSON si no hay token válido.
func AuthMiddleware(provider SessionProvider, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(cookieName)
		if authHeader := c.Get("Authorization"); authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
			}
			token = strings.TrimSpace(parts[1])
		}
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token de sesión requerido"})
		}
		session, err := provider.SessionFromToken(token)
		if err != nil || !session.Present() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		setSession(c, session)
		return c.Next()
	}
}

// RequireRole autoriza por rol después de AuthMiddleware.
// Sin rol reconocible → 401 MISSING_ROLE; rol fuera del conjunto → 403 FORBIDDEN.
func RequireRole(roles ...access.Role) fiber.Handler {
	allowed := access.NewRoleSet(roles...)
	return func(c *fiber.Ctx) error {
		session := GetSession(c)
		if session == nil || !session.Role.Known() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye un rol válido"})
		}
		if !allowed.Contains(session.Role) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para este recurso"})
		}
		return c.Next()
	}
}
