package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pukassein/teysa/internal/application/dto"
	"github.com/pukassein/teysa/internal/application/usecase"
)

// MachineHandler maneja el CRUD de máquinas.
type MachineHandler struct {
	uc *usecase.MachineUseCase
}

// NewMachineHandler construye el handler.
func NewMachineHandler(uc *usecase.MachineUseCase) *MachineHandler {
	return &MachineHandler{uc: uc}
}

func parseMaintenanceDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, true
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Create godoc
// @Summary      Crear máquina
// @Tags         machines
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MachineRequest  true  "name, status, last_maintenance"
// @Success      201   {object}  dto.MachineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/machines [post]
func (h *MachineHandler) Create(c *fiber.Ctx) error {
	var in dto.MachineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	last, ok := parseMaintenanceDate(in.LastMaintenance)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "last_maintenance debe ser YYYY-MM-DD"})
	}
	m, err := h.uc.Create(c.Context(), in.Name, in.Status, last)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MachineFromEntity(m))
}

// List godoc
// @Summary      Listar máquinas
// @Tags         machines
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MachineResponse
// @Router       /api/machines [get]
func (h *MachineHandler) List(c *fiber.Ctx) error {
	machines, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MachineResponse, 0, len(machines))
	for _, m := range machines {
		out = append(out, dto.MachineFromEntity(m))
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar máquina
// @Tags         machines
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la máquina"
// @Param        body  body  dto.MachineRequest  true  "name, status, last_maintenance"
// @Success      200   {object}  dto.MachineResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/machines/{id} [put]
func (h *MachineHandler) Update(c *fiber.Ctx) error {
	var in dto.MachineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	last, ok := parseMaintenanceDate(in.LastMaintenance)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "last_maintenance debe ser YYYY-MM-DD"})
	}
	m, err := h.uc.Update(c.Context(), c.Params("id"), in.Name, in.Status, last)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MachineFromEntity(m))
}

// Delete godoc
// @Summary      Eliminar máquina
// @Tags         machines
// @Security     Bearer
// @Param        id  path  string  true  "ID de la máquina"
// @Success      204
// @Router       /api/machines/{id} [delete]
func (h *MachineHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
