package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pukassein/teysa/internal/application/dto"
	"github.com/pukassein/teysa/internal/application/usecase"
)

// ReportHandler maneja reportes de eficiencia y producción.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// WorkerEfficiency godoc
// @Summary      Eficiencia por funcionario
// @Description  Estimado vs horas laborales reales (lun-vie 07:00-12:00 y
// @Description  13:00-17:30) de las tareas terminadas.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.EfficiencyRowResponse
// @Router       /api/reports/efficiency [get]
func (h *ReportHandler) WorkerEfficiency(c *fiber.Ctx) error {
	rows, err := h.uc.WorkerEfficiency(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.EfficiencyFromRows(rows))
}

// WorkerEfficiencyPDF godoc
// @Summary      Eficiencia por funcionario en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/efficiency/pdf [get]
func (h *ReportHandler) WorkerEfficiencyPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.WorkerEfficiencyPDF(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="eficiencia.pdf"`)
	return c.Send(pdfBytes)
}

// ProductionPDF godoc
// @Summary      Reporte de producción en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        limit  query  int  false  "máximo de registros (default 100)"
// @Success      200  {file}  binary
// @Router       /api/reports/production/pdf [get]
func (h *ReportHandler) ProductionPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.ProductionPDF(c.Context(), c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="produccion.pdf"`)
	return c.Send(pdfBytes)
}
