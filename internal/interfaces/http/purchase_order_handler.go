package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rentalops/internal/application/actions"
	"github.com/jhoicas/rentalops/internal/application/dto"
	"github.com/jhoicas/rentalops/internal/domain/entity"
	"github.com/jhoicas/rentalops/internal/domain/repository"
)

// formLines filas que ofrece el formulario de orden de compra.
const formLines = 5

// PurchaseOrderHandler páginas de órdenes de compra (RC crea, FIN decide).
type PurchaseOrderHandler struct {
	actions *actions.Actions
}

// NewPurchaseOrderHandler construye el handler.
func NewPurchaseOrderHandler(a *actions.Actions) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{actions: a}
}

// NewForm GET /rc/purchase-orders/new[?rental_id=].
func (h *PurchaseOrderHandler) NewForm(c *fiber.Ctx) error {
	form := dto.CreatePurchaseOrderRequest{
		RentalID:   c.Query("rental_id"),
		DistrictID: c.Query("district_id"),
	}
	return h.renderForm(c, fiber.StatusOK, form, "", nil)
}

// Create POST /rc/purchase-orders.
func (h *PurchaseOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return h.renderForm(c, fiber.StatusBadRequest, in, "No se pudo leer el formulario.", nil)
	}
	r := h.actions.SubmitPurchaseOrder(c.UserContext(), GetSession(c), in)
	if !r.OK() {
		return h.renderForm(c, fiber.StatusUnprocessableEntity, in, r.Message(), r.FieldErrors())
	}
	return c.Redirect("/rc/purchase-orders?notice=po_created&ref="+r.Data().Number, fiber.StatusSeeOther)
}

// RCList GET /rc/purchase-orders: todas las órdenes.
func (h *PurchaseOrderHandler) RCList(c *fiber.Ctx) error {
	return h.renderList(c, "rc", c.Query("status"))
}

// FINList GET /fin/purchase-orders: por defecto las pendientes.
func (h *PurchaseOrderHandler) FINList(c *fiber.Ctx) error {
	return h.renderList(c, "fin", c.Query("status", entity.PurchaseOrderPending))
}

func (h *PurchaseOrderHandler) renderList(c *fiber.Ctx, section, status string) error {
	r := h.actions.ListPurchaseOrders(c.UserContext(), repository.PurchaseOrderFilter{
		Status: status,
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	})
	data := fiber.Map{"Status": status, "Section": section}
	if r.OK() {
		data["Orders"] = r.Data().Items
		data["Page"] = r.Data().Page
	} else {
		data["Error"] = r.Message()
	}
	return render(c, "purchase_orders/list", shellWithNotice(c, "Órdenes de compra"), data)
}

// Detail GET /fin/purchase-orders/:id.
func (h *PurchaseOrderHandler) Detail(c *fiber.Ctx) error {
	return h.renderDetail(c, shellWithNotice(c, "Orden de compra"), fiber.StatusOK)
}

// Approve POST /fin/purchase-orders/:id/approve.
func (h *PurchaseOrderHandler) Approve(c *fiber.Ctx) error {
	return h.decide(c, true)
}

// Reject POST /fin/purchase-orders/:id/reject.
func (h *PurchaseOrderHandler) Reject(c *fiber.Ctx) error {
	return h.decide(c, false)
}

func (h *PurchaseOrderHandler) decide(c *fiber.Ctx, approve bool) error {
	id := c.Params("id")
	r := h.actions.DecidePurchaseOrder(c.UserContext(), GetSession(c), id, approve)
	if !r.OK() {
		sh := newShell(c, "Orden de compra")
		sh.Flash, sh.FlashError = r.Message(), true
		return h.renderDetail(c, sh, fiber.StatusConflict)
	}
	notice := "po_rejected"
	if approve {
		notice = "po_approved"
	}
	return c.Redirect(fmt.Sprintf("/fin/purchase-orders/%s?notice=%s", id, notice), fiber.StatusSeeOther)
}

// PDF GET /fin/purchase-orders/:id/pdf.
func (h *PurchaseOrderHandler) PDF(c *fiber.Ctx) error {
	r := h.actions.PurchaseOrderPDF(c.UserContext(), c.Params("id"))
	if !r.OK() {
		sh := newShell(c, "Orden de compra")
		sh.Flash, sh.FlashError = r.Message(), true
		return h.renderDetail(c, sh, fiber.StatusNotFound)
	}
	file := r.Data()
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	return c.Send(file.Content)
}

func (h *PurchaseOrderHandler) renderDetail(c *fiber.Ctx, sh Shell, status int) error {
	r := h.actions.GetPurchaseOrder(c.UserContext(), c.Params("id"))
	data := fiber.Map{}
	if r.OK() {
		data["Order"] = r.Data()
	} else {
		data["Error"] = r.Message()
		status = fiber.StatusNotFound
	}
	c.Status(status)
	return render(c, "purchase_orders/detail", sh, data)
}

func (h *PurchaseOrderHandler) renderForm(c *fiber.Ctx, status int, form dto.CreatePurchaseOrderRequest, msg string, fields map[string]string) error {
	for len(form.Lines) < formLines {
		form.Lines = append(form.Lines, dto.PurchaseOrderLineRequest{})
	}
	data := fiber.Map{"Form": form, "Fields": fields}
	refs := h.actions.LoadFormReferences(c.UserContext())
	if refs.OK() {
		data["Refs"] = refs.Data()
		data["Error"] = msg
	} else {
		data["LoadError"] = refs.Message()
	}
	c.Status(status)
	return render(c, "purchase_orders/new", newShell(c, "Nueva orden de compra"), data)
}
