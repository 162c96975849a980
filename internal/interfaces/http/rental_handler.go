package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rentalops/internal/application/actions"
	"github.com/jhoicas/rentalops/internal/application/dto"
	"github.com/jhoicas/rentalops/internal/domain/entity"
	"github.com/jhoicas/rentalops/internal/domain/repository"
)

// Avisos que viajan en ?notice= después de un POST exitoso.
var notices = map[string]string{
	"rental_created":   "Solicitud registrada.",
	"rental_cancelled": "Solicitud cancelada.",
	"po_created":       "Orden de compra registrada.",
	"po_approved":      "Orden de compra aprobada.",
	"po_rejected":      "Orden de compra rechazada.",
}

func shellWithNotice(c *fiber.Ctx, title string) Shell {
	sh := newShell(c, title)
	if msg, ok := notices[c.Query("notice")]; ok {
		sh.Flash = msg
		if ref := c.Query("ref"); ref != "" {
			sh.Flash = msg + " " + ref
		}
	}
	return sh
}

// RentalHandler páginas de solicitudes de renta (ES y RC).
type RentalHandler struct {
	actions *actions.Actions
}

// NewRentalHandler construye el handler.
func NewRentalHandler(a *actions.Actions) *RentalHandler {
	return &RentalHandler{actions: a}
}

// MyRentals GET /es/rentals: solicitudes propias.
func (h *RentalHandler) MyRentals(c *fiber.Ctx) error {
	return h.renderList(c, shellWithNotice(c, "Mis solicitudes"), repository.RentalFilter{
		RequestedBy: GetSession(c).UserID,
		Status:      c.Query("status"),
		Limit:       c.QueryInt("limit"),
		Offset:      c.QueryInt("offset"),
	}, true, fiber.StatusOK)
}

// Queue GET /rc/rentals: solicitudes de todos los distritos, por defecto las enviadas.
func (h *RentalHandler) Queue(c *fiber.Ctx) error {
	return h.renderList(c, shellWithNotice(c, "Solicitudes de renta"), repository.RentalFilter{
		Status: c.Query("status", entity.RentalStatusSubmitted),
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	}, false, fiber.StatusOK)
}

func (h *RentalHandler) renderList(c *fiber.Ctx, sh Shell, filter repository.RentalFilter, mine bool, status int) error {
	r := h.actions.ListRentals(c.UserContext(), filter)
	data := fiber.Map{"Mine": mine, "Status": filter.Status}
	if r.OK() {
		data["Rentals"] = r.Data().Items
		data["Page"] = r.Data().Page
	} else {
		data["Error"] = r.Message()
	}
	c.Status(status)
	return render(c, "rentals/list", sh, data)
}

// NewForm GET /es/rentals/new. Si falla la carga de distritos o códigos
// se muestra el mensaje en lugar del formulario.
func (h *RentalHandler) NewForm(c *fiber.Ctx) error {
	return h.renderForm(c, fiber.StatusOK, dto.CreateRentalRequest{Quantity: 1}, "", nil)
}

// Create POST /es/rentals.
func (h *RentalHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRentalRequest
	if err := c.BodyParser(&in); err != nil {
		return h.renderForm(c, fiber.StatusBadRequest, in, "No se pudo leer el formulario.", nil)
	}
	r := h.actions.SubmitRental(c.UserContext(), GetSession(c), in)
	if !r.OK() {
		return h.renderForm(c, fiber.StatusUnprocessableEntity, in, r.Message(), r.FieldErrors())
	}
	return c.Redirect("/es/rentals?notice=rental_created&ref="+r.Data().Number, fiber.StatusSeeOther)
}

// Cancel POST /es/rentals/:id/cancel.
func (h *RentalHandler) Cancel(c *fiber.Ctx) error {
	r := h.actions.CancelRental(c.UserContext(), GetSession(c), c.Params("id"))
	if !r.OK() {
		sh := newShell(c, "Mis solicitudes")
		sh.Flash, sh.FlashError = r.Message(), true
		return h.renderList(c, sh, repository.RentalFilter{RequestedBy: GetSession(c).UserID}, true, fiber.StatusConflict)
	}
	return c.Redirect("/es/rentals?notice=rental_cancelled", fiber.StatusSeeOther)
}

func (h *RentalHandler) renderForm(c *fiber.Ctx, status int, form dto.CreateRentalRequest, msg string, fields map[string]string) error {
	data := fiber.Map{"Form": form, "Fields": fields}
	refs := h.actions.LoadFormReferences(c.UserContext())
	if refs.OK() {
		data["Refs"] = refs.Data()
		data["Error"] = msg
	} else {
		data["LoadError"] = refs.Message()
	}
	c.Status(status)
	return render(c, "rentals/new", newShell(c, "Nueva solicitud"), data)
}

// MyRentalDetail GET /es/rentals/:id. Solo muestra solicitudes propias; las
// ajenas responden igual que una inexistente.
func (h *RentalHandler) MyRentalDetail(c *fiber.Ctx) error {
	return h.renderDetail(c, true)
}

// QueueDetail GET /rc/rentals/:id.
func (h *RentalHandler) QueueDetail(c *fiber.Ctx) error {
	return h.renderDetail(c, false)
}

func (h *RentalHandler) renderDetail(c *fiber.Ctx, mine bool) error {
	r := h.actions.GetRental(c.UserContext(), c.Params("id"))
	data := fiber.Map{"Mine": mine}
	switch {
	case !r.OK():
		data["Error"] = r.Message()
		c.Status(fiber.StatusNotFound)
	case mine && r.Data().RequestedBy != GetSession(c).UserID:
		data["Error"] = actions.MsgNotFound
		c.Status(fiber.StatusNotFound)
	default:
		data["Rental"] = r.Data()
	}
	return render(c, "rentals/detail", newShell(c, "Solicitud de renta"), data)
}
