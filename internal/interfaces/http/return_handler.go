package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/confeccion-api/internal/application/dto"
	"github.com/jhoicas/confeccion-api/internal/application/workflow"
)

// ReturnHandler maneja las devoluciones.
type ReturnHandler struct {
	uc *workflow.ReturnUseCase
}

// NewReturnHandler construye el handler.
func NewReturnHandler(uc *workflow.ReturnUseCase) *ReturnHandler {
	return &ReturnHandler{uc: uc}
}

// Process godoc
// @Summary      Registrar devolución
// @Description  Reingresa el producto en la tienda de la venta original, o en
//               la bodega central si no referencia una venta.
// @Tags         returns
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReturnCreateRequest  true  "producto, cantidad y motivo"
// @Success      201   {object}  dto.ReturnResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/returns [post]
func (h *ReturnHandler) Process(c *fiber.Ctx) error {
	var in dto.ReturnCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	ret, err := h.uc.Process(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ret)
}

// GetByID obtiene una devolución.
func (h *ReturnHandler) GetByID(c *fiber.Ctx) error {
	ret, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ret)
}

// List lista devoluciones paginadas.
func (h *ReturnHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "parámetros inválidos")
	}
	page.DefaultPage()
	returns, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(returns)
}
