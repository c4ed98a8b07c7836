package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pukassein/teysa/internal/application/dto"
	"github.com/pukassein/teysa/internal/application/production"
)

// ProductionHandler maneja productos, recetas, órdenes y registros de producción.
type ProductionHandler struct {
	uc *production.UseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *production.UseCase) *ProductionHandler {
	return &ProductionHandler{uc: uc}
}

// CreateProduct godoc
// @Summary      Crear producto con receta
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "name, finished_inventory_id, recipe"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductionHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]production.RecipeLineInput, 0, len(in.Recipe))
	for _, ln := range in.Recipe {
		lines = append(lines, production.RecipeLineInput{
			RawMaterialInventoryID: ln.RawMaterialInventoryID,
			QuantityRequired:       ln.QuantityRequired,
		})
	}
	p, err := h.uc.CreateProduct(c.Context(), in.Name, in.FinishedInventoryID, lines)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ProductFromEntity(p))
}

// ListProducts godoc
// @Summary      Listar productos
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductionHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.uc.ListProducts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ProductFromEntity(p))
	}
	return c.JSON(out)
}

// ListRecipe godoc
// @Summary      Receta de un producto
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {array}  dto.RecipeLineResponse
// @Router       /api/products/{id}/recipe [get]
func (h *ProductionHandler) ListRecipe(c *fiber.Ctx) error {
	lines, err := h.uc.ListRecipe(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.RecipeLineResponse, 0, len(lines))
	for _, ln := range lines {
		out = append(out, dto.RecipeLineFromEntity(ln))
	}
	return c.JSON(out)
}

// AddRecipeLine godoc
// @Summary      Agregar línea de receta
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del producto"
// @Param        body  body  dto.RecipeLineRequest  true  "raw_material_inventory_id, quantity_required"
// @Success      201   {object}  dto.RecipeLineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/recipe [post]
func (h *ProductionHandler) AddRecipeLine(c *fiber.Ctx) error {
	var in dto.RecipeLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	line, err := h.uc.AddRecipeLine(c.Context(), c.Params("id"), production.RecipeLineInput{
		RawMaterialInventoryID: in.RawMaterialInventoryID,
		QuantityRequired:       in.QuantityRequired,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RecipeLineFromEntity(line))
}

// DeleteRecipeLine godoc
// @Summary      Eliminar línea de receta
// @Tags         production
// @Security     Bearer
// @Param        lineId  path  string  true  "ID de la línea"
// @Success      204
// @Router       /api/products/recipe/{lineId} [delete]
func (h *ProductionHandler) DeleteRecipeLine(c *fiber.Ctx) error {
	if err := h.uc.DeleteRecipeLine(c.Context(), c.Params("lineId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteProduct godoc
// @Summary      Eliminar producto
// @Tags         production
// @Security     Bearer
// @Param        id  path  string  true  "ID del producto"
// @Success      204
// @Router       /api/products/{id} [delete]
func (h *ProductionHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.uc.DeleteProduct(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CheckFeasibility godoc
// @Summary      Verificar factibilidad de producción
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "product_id, quantity"
// @Success      200   {object}  dto.FeasibilityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/production/feasibility [post]
func (h *ProductionHandler) CheckFeasibility(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.CheckFeasibility(c.Context(), in.ProductID, in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FeasibilityFromResult(result))
}

// CreateOrder godoc
// @Summary      Crear orden de producción
// @Description  Solo pasa si el producto tiene receta y el stock alcanza para
// @Description  toda la cantidad. Con stock insuficiente responde 409 con el
// @Description  detalle por material.
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "product_id, quantity"
// @Success      201   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.FeasibilityResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/production/orders [post]
func (h *ProductionHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, result, err := h.uc.CreateOrder(c.Context(), in.ProductID, in.Quantity)
	if err != nil {
		if result != nil && !result.Feasible && result.HasRecipe {
			return c.Status(fiber.StatusConflict).JSON(dto.FeasibilityFromResult(result))
		}
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OrderFromEntity(order))
}

// ListOrders godoc
// @Summary      Listar órdenes de producción
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/production/orders [get]
func (h *ProductionHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.uc.ListOrders(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, dto.OrderFromEntity(o))
	}
	return c.JSON(out)
}

// DeleteOrder godoc
// @Summary      Eliminar orden de producción
// @Tags         production
// @Security     Bearer
// @Param        id  path  string  true  "ID de la orden"
// @Success      204
// @Router       /api/production/orders/{id} [delete]
func (h *ProductionHandler) DeleteOrder(c *fiber.Ctx) error {
	if err := h.uc.DeleteOrder(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateLog godoc
// @Summary      Registrar producción ejecutada
// @Description  Sube el producto terminado y baja cada materia prima de la
// @Description  receta. Fallos parciales de consumo conservan el registro y
// @Description  responden con warning para reconciliación manual.
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLogRequest  true  "worker_id, inventory_id, order_id, quantity, production_date"
// @Success      201   {object}  dto.LogWithWarningResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/production/logs [post]
func (h *ProductionHandler) CreateLog(c *fiber.Ctx) error {
	var in dto.CreateLogRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	date, err := time.Parse("2006-01-02", in.ProductionDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "production_date debe ser YYYY-MM-DD"})
	}
	result, err := h.uc.CreateLog(c.Context(), production.LogInput{
		WorkerID:       in.WorkerID,
		InventoryID:    in.InventoryID,
		OrderID:        in.OrderID,
		Quantity:       in.Quantity,
		ProductionDate: date,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.LogWithWarningResponse{
		Log:     dto.LogFromEntity(result.Log),
		Warning: result.Warning,
	})
}

// ListLogs godoc
// @Summary      Registros de producción recientes
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LogResponse
// @Router       /api/production/logs [get]
func (h *ProductionHandler) ListLogs(c *fiber.Ctx) error {
	logs, err := h.uc.ListLogs(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.LogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.LogFromEntity(l))
	}
	return c.JSON(out)
}

// DeleteLog godoc
// @Summary      Eliminar registro de producción
// @Description  Revierte primero todo el consumo; si la reversión queda
// @Description  incompleta el registro se conserva como trazabilidad.
// @Tags         production
// @Security     Bearer
// @Param        id  path  string  true  "ID del registro"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/production/logs/{id} [delete]
func (h *ProductionHandler) DeleteLog(c *fiber.Ctx) error {
	if err := h.uc.DeleteLog(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
