package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rentalops/internal/domain/access"
	"github.com/jhoicas/rentalops/pkg/metrics"
)

// RequireSection protege un grupo de páginas con access.Guard. Una decisión de
// redirección se responde con 303 antes de ejecutar el handler, así la página
// nunca se renderiza a medias.
//
// El grupo decide qué peticiones llegan aquí. Fiber monta el grupo por prefijo
// de texto, así que solo se deja pasar sin guard lo que no cae en el límite de
// segmento ("/estimates" bajo "/es"); esas rutas no existen y terminan en 404.
// La comparación ignora mayúsculas para que "/FIN/..." nunca evite el guard.
func RequireSection(section access.Section, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !withinSection(c.Path(), section.Prefix) {
			return c.Next()
		}
		d := access.Guard(GetSession(c), section.Allowed)
		if d.Allowed() {
			m.GuardDecision(section.Key, metrics.OutcomeAllow)
			return c.Next()
		}
		m.GuardDecision(section.Key, outcomeFor(d.Path))
		return c.Redirect(d.Path, fiber.StatusSeeOther)
	}
}

func withinSection(path, prefix string) bool {
	p := strings.ToLower(path)
	return p == prefix || strings.HasPrefix(p, prefix+"/")
}

func outcomeFor(path string) string {
	switch path {
	case access.LoginPath:
		return metrics.OutcomeLogin
	case access.HomePath:
		return metrics.OutcomeHome
	default:
		return metrics.OutcomeRedirect
	}
}
