package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pukassein/teysa/internal/application/dto"
	"github.com/pukassein/teysa/internal/application/seller"
)

// SellerHandler maneja vendedores y su sub-libro de stock.
type SellerHandler struct {
	uc *seller.UseCase
}

// NewSellerHandler construye el handler.
func NewSellerHandler(uc *seller.UseCase) *SellerHandler {
	return &SellerHandler{uc: uc}
}

// Create godoc
// @Summary      Crear vendedor
// @Tags         sellers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSellerRequest  true  "name"
// @Success      201   {object}  dto.SellerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sellers [post]
func (h *SellerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSellerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	s, err := h.uc.CreateSeller(c.Context(), in.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SellerFromEntity(s))
}

// List godoc
// @Summary      Listar vendedores
// @Tags         sellers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SellerResponse
// @Router       /api/sellers [get]
func (h *SellerHandler) List(c *fiber.Ctx) error {
	sellers, err := h.uc.ListSellers(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SellerResponse, 0, len(sellers))
	for _, s := range sellers {
		out = append(out, dto.SellerFromEntity(s))
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar vendedor
// @Description  Rechaza si el vendedor aún tiene stock asignado.
// @Tags         sellers
// @Security     Bearer
// @Param        id  path  string  true  "ID del vendedor"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sellers/{id} [delete]
func (h *SellerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteSeller(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListInventory godoc
// @Summary      Stock en poder del vendedor
// @Tags         sellers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del vendedor"
// @Success      200  {array}  dto.SellerInventoryResponse
// @Router       /api/sellers/{id}/inventory [get]
func (h *SellerHandler) ListInventory(c *fiber.Ctx) error {
	rows, err := h.uc.ListInventory(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SellerInventoryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.SellerInventoryFromEntity(r))
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Movimientos del vendedor
// @Tags         sellers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del vendedor"
// @Success      200  {array}  dto.SellerMovementResponse
// @Router       /api/sellers/{id}/movements [get]
func (h *SellerHandler) ListMovements(c *fiber.Ctx) error {
	rows, err := h.uc.ListMovements(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SellerMovementResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.SellerMovementFromEntity(r))
	}
	return c.JSON(out)
}

// Carga godoc
// @Summary      Cargar stock al vendedor
// @Description  Traslado central → vendedor; rechaza stock central insuficiente.
// @Tags         sellers
// @Security     Bearer
// @Accept       json
// @Param        id    path  string                     true  "ID del vendedor"
// @Param        body  body  dto.SellerOperationRequest  true  "inventory_id, quantity"
// @Success      200   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sellers/{id}/carga [post]
func (h *SellerHandler) Carga(c *fiber.Ctx) error {
	var in dto.SellerOperationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Carga(c.Context(), c.Params("id"), in.InventoryID, in.Quantity); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "carga registrada"})
}

// Venta godoc
// @Summary      Registrar venta del vendedor
// @Description  El stock sale del sistema; solo toca el sub-libro.
// @Tags         sellers
// @Security     Bearer
// @Accept       json
// @Param        id    path  string                     true  "ID del vendedor"
// @Param        body  body  dto.SellerOperationRequest  true  "inventory_id, quantity, notes"
// @Success      200   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sellers/{id}/venta [post]
func (h *SellerHandler) Venta(c *fiber.Ctx) error {
	var in dto.SellerOperationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Venta(c.Context(), c.Params("id"), in.InventoryID, in.Quantity, in.Notes); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "venta registrada"})
}

// Devolucion godoc
// @Summary      Devolver stock del vendedor al central
// @Tags         sellers
// @Security     Bearer
// @Accept       json
// @Param        id    path  string                     true  "ID del vendedor"
// @Param        body  body  dto.SellerOperationRequest  true  "inventory_id, quantity"
// @Success      200   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sellers/{id}/devolucion [post]
func (h *SellerHandler) Devolucion(c *fiber.Ctx) error {
	var in dto.SellerOperationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Devolucion(c.Context(), c.Params("id"), in.InventoryID, in.Quantity); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "devolución registrada"})
}
