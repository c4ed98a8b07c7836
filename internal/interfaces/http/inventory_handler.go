package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/pukassein/teysa/internal/application/dto"
	"github.com/pukassein/teysa/internal/application/ledger"
)

// InventoryHandler maneja artículos y movimientos del libro central.
type InventoryHandler struct {
	ledger *ledger.StockLedger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(l *ledger.StockLedger) *InventoryHandler {
	return &InventoryHandler{ledger: l}
}

func itemInputFromRequest(in dto.CreateItemRequest) ledger.ItemInput {
	return ledger.ItemInput{
		Name:              in.Name,
		Category:          in.Category,
		Quantity:          in.Quantity,
		LowStockThreshold: in.MinStock,
		Unit:              in.Unit,
		Brand:             in.Brand,
	}
}

// CreateItem godoc
// @Summary      Crear artículo de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "name, brand, category, quantity, unit, min_stock"
// @Success      201   {object}  dto.ItemWithWarningResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/items [post]
func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, warning, err := h.ledger.CreateItem(c.Context(), itemInputFromRequest(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ItemWithWarningResponse{
		Item:    dto.ItemFromEntity(item),
		Warning: warning,
	})
}

// ListItems godoc
// @Summary      Listar artículos
// @Description  search filtra por nombre sin distinguir mayúsculas ni acentos.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "texto de búsqueda"
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/inventory/items [get]
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	items, err := h.ledger.ListItems(c.Context(), c.Query("search"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ItemFromEntity(it))
	}
	return c.JSON(out)
}

// ListLowStock godoc
// @Summary      Artículos con stock bajo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/inventory/items/low-stock [get]
func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	items, err := h.ledger.ListLowStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ItemFromEntity(it))
	}
	return c.JSON(out)
}

// GetItem godoc
// @Summary      Obtener artículo por ID
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del artículo"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [get]
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	item, err := h.ledger.GetItem(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ItemFromEntity(item))
}

// UpdateItem godoc
// @Summary      Editar artículo
// @Description  Un cambio de cantidad genera un movimiento sintético de
// @Description  ajuste. Si el movimiento falla, la cantidad queda y la
// @Description  respuesta trae warning.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del artículo"
// @Param        body  body  dto.CreateItemRequest  true  "campos completos del artículo"
// @Success      200   {object}  dto.ItemWithWarningResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [put]
func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, warning, err := h.ledger.UpdateItem(c.Context(), c.Params("id"), itemInputFromRequest(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ItemWithWarningResponse{Item: dto.ItemFromEntity(item), Warning: warning})
}

// DeleteItem godoc
// @Summary      Eliminar artículo
// @Tags         inventory
// @Security     Bearer
// @Param        id  path  string  true  "ID del artículo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [delete]
func (h *InventoryHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.ledger.DeleteItem(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterMovement godoc
// @Summary      Registrar movimiento manual
// @Description  quantity es el delta firmado: positivo Entrada, negativo Salida.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "inventory_id, quantity, reason"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.InventoryID == "" || in.Reason == "" || in.Quantity.Equal(decimal.Zero) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	mov, err := h.ledger.RegisterMovement(c.Context(), ledger.DeltaInput{
		InventoryID:    in.InventoryID,
		Delta:          in.Quantity,
		Reason:         in.Reason,
		RejectNegative: true,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementFromEntity(mov))
}

// ListMovements godoc
// @Summary      Movimientos recientes
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	movs, err := h.ledger.ListMovements(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovementFromEntity(m))
	}
	return c.JSON(out)
}

// ListItemMovements godoc
// @Summary      Movimientos de un artículo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del artículo"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/inventory/items/{id}/movements [get]
func (h *InventoryHandler) ListItemMovements(c *fiber.Ctx) error {
	movs, err := h.ledger.ListMovementsByItem(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovementFromEntity(m))
	}
	return c.JSON(out)
}

// CancelMovement godoc
// @Summary      Cancelar movimiento
// @Description  Aplica el delta inverso sobre el artículo y marca el
// @Description  movimiento como cancelado; la fila nunca se borra.
// @Tags         inventory
// @Security     Bearer
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id}/cancel [post]
func (h *InventoryHandler) CancelMovement(c *fiber.Ctx) error {
	if err := h.ledger.CancelMovement(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "movimiento cancelado"})
}
