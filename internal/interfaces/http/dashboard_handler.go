package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pukassein/teysa/internal/application/dto"
	"github.com/pukassein/teysa/internal/application/usecase"
)

// DashboardHandler maneja el resumen de la pantalla inicial.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen del taller
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.uc.Summary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.DashboardFromSummary(summary))
}
