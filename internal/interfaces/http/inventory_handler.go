package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/confeccion-api/internal/application/dto"
	"github.com/jhoicas/confeccion-api/internal/application/ledger"
	"github.com/jhoicas/confeccion-api/internal/application/workflow"
	"github.com/jhoicas/confeccion-api/internal/domain/entity"
	"github.com/jhoicas/confeccion-api/internal/domain/repository"
)

// InventoryHandler consultas de stock y movimientos, ajustes manuales y
// reconciliación contra el historial.
type InventoryHandler struct {
	query      *ledger.QueryUseCase
	adjustment *workflow.AdjustmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(query *ledger.QueryUseCase, adjustment *workflow.AdjustmentUseCase) *InventoryHandler {
	return &InventoryHandler{query: query, adjustment: adjustment}
}

// ListStocks godoc
// @Summary      Listar posiciones de stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        shop_id    query  string  false  "Filtrar por tienda"
// @Param        item_type  query  string  false  "product | raw_material"
// @Param        low_stock  query  bool    false  "Solo posiciones bajo el mínimo"
// @Success      200  {array}   dto.StockItemResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventory/stocks [get]
func (h *InventoryHandler) ListStocks(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "parámetros inválidos")
	}
	page.DefaultPage()
	filter := repository.StockFilter{
		ShopID:        c.Query("shop_id"),
		ItemType:      entity.ItemType(c.Query("item_type")),
		ProductID:     c.Query("product_id"),
		RawMaterialID: c.Query("raw_material_id"),
		LowStockOnly:  c.QueryBool("low_stock"),
		Limit:         page.Limit,
		Offset:        page.Offset,
	}
	items, err := h.query.ListStocks(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StockItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.NewStockItemResponse(item))
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        shop_id  query  string  false  "Filtrar por tienda"
// @Param        reason   query  string  false  "purchase, sale, transfer_in, ..."
// @Param        from     query  string  false  "Fecha desde (RFC3339)"
// @Param        to       query  string  false  "Fecha hasta (RFC3339)"
// @Success      200  {array}   dto.StockMovementResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "parámetros inválidos")
	}
	page.DefaultPage()
	filter := repository.MovementFilter{
		ShopID:        c.Query("shop_id"),
		ItemType:      entity.ItemType(c.Query("item_type")),
		ProductID:     c.Query("product_id"),
		RawMaterialID: c.Query("raw_material_id"),
		Reason:        entity.MovementReason(c.Query("reason")),
		Limit:         page.Limit,
		Offset:        page.Offset,
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return badRequest(c, "from inválido (RFC3339)")
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return badRequest(c, "to inválido (RFC3339)")
		}
		filter.To = &t
	}
	movements, err := h.query.ListMovements(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.NewStockMovementResponse(m))
	}
	return c.JSON(out)
}

// Adjust godoc
// @Summary      Ajuste manual de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockAdjustmentRequest  true  "shop_id, item_type, product_id|raw_material_id, quantity (delta con signo)"
// @Success      200   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/stocks/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.StockAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	item, err := h.adjustment.Adjust(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// Reconcile godoc
// @Summary      Reconciliar stock contra movimientos
// @Description  Compara la cantidad en mano de cada posición con la suma con
//               signo de sus movimientos y reporta las discrepancias.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        shop_id  query  string  false  "Limitar a una tienda"
// @Success      200  {array}   dto.ReconciliationMismatch
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventory/reconcile [get]
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	mismatches, err := h.query.Reconcile(c.Context(), c.Query("shop_id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ReconciliationMismatch, 0, len(mismatches))
	for _, m := range mismatches {
		out = append(out, dto.ReconciliationMismatch{
			ShopID:        m.Item.ShopID,
			ItemType:      string(m.Item.ItemType),
			ProductID:     m.Item.ProductID,
			RawMaterialID: m.Item.RawMaterialID,
			Quantity:      m.Item.Quantity,
			MovementSum:   m.MovementSum.Sum,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "mismatches": out})
}
