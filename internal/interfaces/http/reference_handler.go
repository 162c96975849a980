package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rentalops/internal/application/actions"
	"github.com/jhoicas/rentalops/internal/application/dto"
)

// ReferenceHandler API JSON de datos de referencia.
type ReferenceHandler struct {
	actions *actions.Actions
}

// NewReferenceHandler construye el handler.
func NewReferenceHandler(a *actions.Actions) *ReferenceHandler {
	return &ReferenceHandler{actions: a}
}

// Districts godoc
// @Summary      Listar distritos activos
// @Tags         reference
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.DistrictResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reference/districts [get]
func (h *ReferenceHandler) Districts(c *fiber.Ctx) error {
	r := h.actions.FetchDistricts(c.UserContext())
	if !r.OK() {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: r.Message()})
	}
	return c.JSON(r.Data())
}

// CommodityCodes godoc
// @Summary      Listar códigos de commodity activos
// @Tags         reference
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.CommodityCodeResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reference/commodity-codes [get]
func (h *ReferenceHandler) CommodityCodes(c *fiber.Ctx) error {
	r := h.actions.FetchCommodityCodes(c.UserContext())
	if !r.OK() {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: r.Message()})
	}
	return c.JSON(r.Data())
}
