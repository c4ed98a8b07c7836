package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pukassein/teysa/internal/application/dto"
	"github.com/pukassein/teysa/internal/application/usecase"
)

// WorkerHandler maneja el CRUD de funcionarios.
type WorkerHandler struct {
	uc *usecase.WorkerUseCase
}

// NewWorkerHandler construye el handler.
func NewWorkerHandler(uc *usecase.WorkerUseCase) *WorkerHandler {
	return &WorkerHandler{uc: uc}
}

// Create godoc
// @Summary      Crear funcionario
// @Tags         workers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WorkerRequest  true  "name, shift"
// @Success      201   {object}  dto.WorkerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/workers [post]
func (h *WorkerHandler) Create(c *fiber.Ctx) error {
	var in dto.WorkerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	w, err := h.uc.Create(c.Context(), in.Name, in.Shift)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.WorkerFromEntity(w))
}

// List godoc
// @Summary      Listar funcionarios
// @Tags         workers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.WorkerResponse
// @Router       /api/workers [get]
func (h *WorkerHandler) List(c *fiber.Ctx) error {
	workers, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.WorkerResponse, 0, len(workers))
	for _, w := range workers {
		out = append(out, dto.WorkerFromEntity(w))
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar funcionario
// @Tags         workers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID del funcionario"
// @Param        body  body  dto.WorkerRequest  true  "name, shift"
// @Success      200   {object}  dto.WorkerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/workers/{id} [put]
func (h *WorkerHandler) Update(c *fiber.Ctx) error {
	var in dto.WorkerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	w, err := h.uc.Update(c.Context(), c.Params("id"), in.Name, in.Shift)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.WorkerFromEntity(w))
}

// Delete godoc
// @Summary      Eliminar funcionario
// @Tags         workers
// @Security     Bearer
// @Param        id  path  string  true  "ID del funcionario"
// @Success      204
// @Router       /api/workers/{id} [delete]
func (h *WorkerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
