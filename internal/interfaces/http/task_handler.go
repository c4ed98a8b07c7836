package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pukassein/teysa/internal/application/dto"
	"github.com/pukassein/teysa/internal/application/usecase"
)

// TaskHandler maneja tareas de planta y sus comentarios.
type TaskHandler struct {
	uc *usecase.TaskUseCase
}

// NewTaskHandler construye el handler.
func NewTaskHandler(uc *usecase.TaskUseCase) *TaskHandler {
	return &TaskHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tarea
// @Tags         tasks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TaskRequest  true  "title, worker_ids, estimated_time"
// @Success      201   {object}  dto.TaskResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	var in dto.TaskRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	t, err := h.uc.Create(c.Context(), usecase.TaskInput{
		Title:         in.Title,
		WorkerIDs:     in.WorkerIDs,
		EstimatedTime: in.EstimatedTime,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TaskFromEntity(t))
}

// List godoc
// @Summary      Listar tareas
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Param        include_archived  query  bool  false  "incluir archivadas"
// @Success      200  {array}  dto.TaskResponse
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c *fiber.Ctx) error {
	tasks, err := h.uc.List(c.Context(), c.QueryBool("include_archived"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, dto.TaskFromEntity(t))
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar tarea
// @Tags         tasks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID de la tarea"
// @Param        body  body  dto.TaskRequest  true  "title, worker_ids, estimated_time"
// @Success      200   {object}  dto.TaskResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	var in dto.TaskRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	t, err := h.uc.Update(c.Context(), c.Params("id"), usecase.TaskInput{
		Title:         in.Title,
		WorkerIDs:     in.WorkerIDs,
		EstimatedTime: in.EstimatedTime,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.TaskFromEntity(t))
}

// SetStatus godoc
// @Summary      Cambiar estado de tarea
// @Description  A En Proceso marca inicio real; a Terminado marca fin real.
// @Tags         tasks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la tarea"
// @Param        body  body  dto.TaskStatusRequest  true  "status"
// @Success      200   {object}  dto.TaskResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tasks/{id}/status [put]
func (h *TaskHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.TaskStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	t, err := h.uc.SetStatus(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.TaskFromEntity(t))
}

// Archive godoc
// @Summary      Archivar o desarchivar tarea
// @Tags         tasks
// @Security     Bearer
// @Accept       json
// @Param        id    path  string                  true  "ID de la tarea"
// @Param        body  body  dto.TaskArchiveRequest  true  "archived"
// @Success      200   {object}  map[string]string
// @Router       /api/tasks/{id}/archive [put]
func (h *TaskHandler) Archive(c *fiber.Ctx) error {
	var in dto.TaskArchiveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Archive(c.Context(), c.Params("id"), in.Archived); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "tarea actualizada"})
}

// Delete godoc
// @Summary      Eliminar tarea
// @Tags         tasks
// @Security     Bearer
// @Param        id  path  string  true  "ID de la tarea"
// @Success      204
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddComment godoc
// @Summary      Comentar tarea
// @Tags         tasks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la tarea"
// @Param        body  body  dto.TaskCommentRequest  true  "comment"
// @Success      201   {object}  dto.TaskCommentResponse
// @Router       /api/tasks/{id}/comments [post]
func (h *TaskHandler) AddComment(c *fiber.Ctx) error {
	var in dto.TaskCommentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	comment, err := h.uc.AddComment(c.Context(), c.Params("id"), GetUserID(c), in.Comment)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TaskCommentFromEntity(comment))
}

// ListComments godoc
// @Summary      Comentarios de una tarea
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la tarea"
// @Success      200  {array}  dto.TaskCommentResponse
// @Router       /api/tasks/{id}/comments [get]
func (h *TaskHandler) ListComments(c *fiber.Ctx) error {
	comments, err := h.uc.ListComments(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.TaskCommentResponse, 0, len(comments))
	for _, cm := range comments {
		out = append(out, dto.TaskCommentFromEntity(cm))
	}
	return c.JSON(out)
}

// DeleteComment godoc
// @Summary      Eliminar comentario
// @Tags         tasks
// @Security     Bearer
// @Param        commentId  path  string  true  "ID del comentario"
// @Success      204
// @Router       /api/tasks/comments/{commentId} [delete]
func (h *TaskHandler) DeleteComment(c *fiber.Ctx) error {
	if err := h.uc.DeleteComment(c.Context(), c.Params("commentId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
