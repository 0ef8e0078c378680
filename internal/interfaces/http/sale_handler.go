package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/confeccion-api/internal/application/dto"
	"github.com/jhoicas/confeccion-api/internal/application/workflow"
)

// SaleHandler maneja las ventas en tienda.
type SaleHandler struct {
	uc *workflow.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *workflow.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Commit godoc
// @Summary      Confirmar venta
// @Description  Crea la venta en COMPLETED y descuenta el stock de la tienda.
//               Si algún renglón no tiene disponibilidad, responde 409 sin
//               descontar nada.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaleCreateRequest  true  "tienda, renglones y pagos"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Commit(c *fiber.Ctx) error {
	var in dto.SaleCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	sale, err := h.uc.Commit(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// GetByID obtiene una venta con renglones y pagos.
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sale)
}

// List lista ventas, opcionalmente filtradas por tienda.
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "parámetros inválidos")
	}
	page.DefaultPage()
	sales, err := h.uc.List(c.Context(), c.Query("shop_id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sales)
}
