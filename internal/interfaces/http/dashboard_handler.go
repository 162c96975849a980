package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rentalops/internal/application/actions"
	"github.com/jhoicas/rentalops/internal/domain/access"
	"github.com/jhoicas/rentalops/internal/domain/entity"
	"github.com/jhoicas/rentalops/internal/domain/repository"
)

const dashboardRecent = 5

// DashboardHandler páginas de inicio de cada sección.
type DashboardHandler struct {
	actions *actions.Actions
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(a *actions.Actions) *DashboardHandler {
	return &DashboardHandler{actions: a}
}

// ES últimas solicitudes propias.
func (h *DashboardHandler) ES(c *fiber.Ctx) error {
	session := GetSession(c)
	r := h.actions.ListRentals(c.UserContext(), repository.RentalFilter{RequestedBy: session.UserID, Limit: dashboardRecent})
	data := fiber.Map{
		"Intro":     "Registre solicitudes de renta de equipo y siga su estado.",
		"Shortcuts": sectionMenus[access.SectionES][1:],
		"Mine":      true,
	}
	if r.OK() {
		data["Rentals"] = r.Data().Items
	} else {
		data["Error"] = r.Message()
	}
	return render(c, "dashboard", newShell(c, "Inicio"), data)
}

// RC solicitudes enviadas que esperan orden de compra.
func (h *DashboardHandler) RC(c *fiber.Ctx) error {
	r := h.actions.ListRentals(c.UserContext(), repository.RentalFilter{Status: entity.RentalStatusSubmitted, Limit: dashboardRecent})
	data := fiber.Map{
		"Intro":     "Solicitudes pendientes de orden de compra.",
		"Shortcuts": sectionMenus[access.SectionRC][1:],
	}
	if r.OK() {
		data["Rentals"] = r.Data().Items
	} else {
		data["Error"] = r.Message()
	}
	return render(c, "dashboard", newShell(c, "Inicio"), data)
}

// FIN órdenes pendientes de aprobación.
func (h *DashboardHandler) FIN(c *fiber.Ctx) error {
	r := h.actions.ListPurchaseOrders(c.UserContext(), repository.PurchaseOrderFilter{Status: entity.PurchaseOrderPending, Limit: dashboardRecent})
	data := fiber.Map{
		"Intro":     "Órdenes de compra pendientes de aprobación.",
		"Shortcuts": sectionMenus[access.SectionFIN][1:],
	}
	if r.OK() {
		data["Orders"] = r.Data().Items
	} else {
		data["Error"] = r.Message()
	}
	return render(c, "dashboard", newShell(c, "Inicio"), data)
}

// Manager inicio de gerencia.
func (h *DashboardHandler) Manager(c *fiber.Ctx) error {
	return render(c, "dashboard", newShell(c, "Inicio"), fiber.Map{
		"Intro":     "Reportes y configuración de la operación de rentas.",
		"Shortcuts": sectionMenus[access.SectionManager][1:],
	})
}

// ManagerReports y ManagerConfig son páginas de la sección gerencia sin
// contenido propio todavía; existen para que el guard tenga qué proteger.
func (h *DashboardHandler) ManagerReports(c *fiber.Ctx) error {
	return render(c, "manager/placeholder", newShell(c, "Reportes"), fiber.Map{
		"Text": "Los reportes de gerencia estarán disponibles próximamente.",
	})
}

func (h *DashboardHandler) ManagerConfig(c *fiber.Ctx) error {
	return render(c, "manager/placeholder", newShell(c, "Configuración"), fiber.Map{
		"Text": "La configuración de la operación estará disponible próximamente.",
	})
}
