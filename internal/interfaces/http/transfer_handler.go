package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/confeccion-api/internal/application/dto"
	"github.com/jhoicas/confeccion-api/internal/application/workflow"
)

// TransferHandler maneja los traslados entre tiendas.
type TransferHandler struct {
	uc *workflow.TransferUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *workflow.TransferUseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create godoc
// @Summary      Crear traslado
// @Description  Crea el traslado en PENDING y reserva el stock en la tienda
//               origen. La cantidad sigue en origen pero no se puede vender.
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferCreateRequest  true  "origen, destino y renglones"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.TransferCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	transfer, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(transfer)
}

// Receive godoc
// @Summary      Recibir traslado
// @Description  Descuenta el stock reservado en origen e ingresa en destino.
//               Solo válido sobre traslados PENDING.
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/receive [post]
func (h *TransferHandler) Receive(c *fiber.Ctx) error {
	var in struct {
		ReceivedDate string `json:"received_date"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "cuerpo inválido")
		}
	}
	transfer, err := h.uc.Receive(c.Context(), c.Params("id"), in.ReceivedDate)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transfer)
}

// GetByID obtiene un traslado con sus renglones.
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	transfer, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transfer)
}

// List lista traslados paginados.
func (h *TransferHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "parámetros inválidos")
	}
	page.DefaultPage()
	transfers, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transfers)
}
