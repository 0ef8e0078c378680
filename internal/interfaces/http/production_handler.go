package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/confeccion-api/internal/application/dto"
	"github.com/jhoicas/confeccion-api/internal/application/workflow"
)

// ProductionHandler maneja las órdenes de producción.
type ProductionHandler struct {
	uc *workflow.ProductionUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *workflow.ProductionUseCase) *ProductionHandler {
	return &ProductionHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de producción
// @Description  Crea la orden en PLANNED sin efecto en el inventario. Si no se
//               envían consumos, se derivan de las reglas de consumo de tela.
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductionRunCreateRequest  true  "renglones y consumos planeados"
// @Success      201   {object}  dto.ProductionRunResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/production [post]
func (h *ProductionHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductionRunCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	run, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(run)
}

// Complete godoc
// @Summary      Completar orden de producción
// @Description  Consume las materias primas, ingresa los productos terminados
//               y calcula el costo total. Solo válido sobre órdenes PLANNED.
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.ProductionCompleteRequest  false  "cantidades reales (por defecto las planeadas)"
// @Success      200   {object}  dto.ProductionRunResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/production/{id}/complete [post]
func (h *ProductionHandler) Complete(c *fiber.Ctx) error {
	var in dto.ProductionCompleteRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "cuerpo inválido")
		}
	}
	run, err := h.uc.Complete(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(run)
}

// GetByID obtiene una orden con renglones y consumos.
func (h *ProductionHandler) GetByID(c *fiber.Ctx) error {
	run, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(run)
}

// List lista órdenes paginadas.
func (h *ProductionHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "parámetros inválidos")
	}
	page.DefaultPage()
	runs, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(runs)
}
