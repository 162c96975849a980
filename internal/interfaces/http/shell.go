package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rentalops/internal/domain/access"
)

// MenuItem entrada del menú lateral.
type MenuItem struct {
	Label  string
	Href   string
	Active bool
}

// Shell es el marco común de las páginas de sección: título, sección,
// usuario, menú según el rol y un aviso opcional. layouts/main lo pinta
// alrededor del contenido de cada página.
type Shell struct {
	Title        string
	SectionKey   string
	SectionTitle string
	UserName     string
	Role         string
	Menu         []MenuItem
	Flash        string
	FlashError   bool
}

var sectionMenus = map[string][]MenuItem{
	access.SectionES: {
		{Label: "Inicio", Href: "/es/dashboard"},
		{Label: "Mis solicitudes", Href: "/es/rentals"},
		{Label: "Nueva solicitud", Href: "/es/rentals/new"},
	},
	access.SectionRC: {
		{Label: "Inicio", Href: "/rc/dashboard"},
		{Label: "Solicitudes de renta", Href: "/rc/rentals"},
		{Label: "Órdenes de compra", Href: "/rc/purchase-orders"},
		{Label: "Nueva orden de compra", Href: "/rc/purchase-orders/new"},
	},
	access.SectionFIN: {
		{Label: "Inicio", Href: "/fin/dashboard"},
		{Label: "Órdenes de compra", Href: "/fin/purchase-orders"},
	},
	access.SectionManager: {
		{Label: "Inicio", Href: "/manager/dashboard"},
		{Label: "Reportes", Href: "/manager/reports"},
		{Label: "Configuración", Href: "/manager/config"},
	},
}

// MenuFor devuelve el menú de la sección del rol, marcando como activa la
// entrada que mejor coincide con currentPath. Roles sin sección: menú vacío.
func MenuFor(role access.Role, currentPath string) []MenuItem {
	section, ok := access.Default().SectionForRole(role)
	if !ok {
		return nil
	}
	items := make([]MenuItem, len(sectionMenus[section.Key]))
	copy(items, sectionMenus[section.Key])

	best := -1
	for i, it := range items {
		if currentPath == it.Href || strings.HasPrefix(currentPath, it.Href+"/") {
			if best < 0 || len(it.Href) > len(items[best].Href) {
				best = i
			}
		}
	}
	if best >= 0 {
		items[best].Active = true
	}
	return items
}

// newShell arma el Shell de la petición actual.
func newShell(c *fiber.Ctx, title string) Shell {
	sh := Shell{Title: title}
	if s, ok := access.SectionFor(c.Path()); ok {
		sh.SectionKey = s.Key
		sh.SectionTitle = s.Title
	}
	if session := GetSession(c); session.Present() {
		sh.UserName = session.Name
		sh.Role = session.Role.String()
		sh.Menu = MenuFor(session.Role, c.Path())
	}
	return sh
}

// render pinta una página de sección dentro de layouts/main.
func render(c *fiber.Ctx, name string, shell Shell, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Shell"] = shell
	return c.Render(name, data)
}
