package handlers

import (
	"net/http"

	dom "github.com/Diarra45/projet-Nan/internal/domain"
	"github.com/Diarra45/projet-Nan/internal/dto"
	"github.com/Diarra45/projet-Nan/internal/service"

	"github.com/gin-gonic/gin"
)

// TaskHandler handles personal and group task CRUD.
type TaskHandler struct {
	svc *service.TaskService
}

// NewTaskHandler returns a new TaskHandler.
func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// Create godoc
// @Summary      Create a task, optionally scoped to a group
// @Tags         tasks
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateTaskRequest  true  "Task body"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Router       /task [post]
func (h *TaskHandler) Create(c *gin.Context) {
	req0, ok := requester(c)
	if !ok {
		return
	}
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failErr(c, http.StatusBadRequest, "validation error", err)
		return
	}
	t, err := h.svc.Create(c.Request.Context(), req0.ID, req.Title, req.Description, req.Deadline.Ptr(), req.GroupID)
	if err != nil {
		serviceError(c, err)
		return
	}
	respond(c, http.StatusCreated, "task created", dto.TaskToResponse(t))
}

// ListMine godoc
// @Summary      List all of the caller's tasks
// @Tags         tasks
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Router       /tasks [get]
func (h *TaskHandler) ListMine(c *gin.Context) {
	req, ok := requester(c)
	if !ok {
		return
	}
	list, err := h.svc.ListForUser(c.Request.Context(), req.ID)
	if err != nil {
		serviceError(c, err)
		return
	}
	respond(c, http.StatusOK, "tasks", dto.TasksToResponses(list))
}

// ListPersonal godoc
// @Summary      List the caller's ungrouped tasks
// @Tags         tasks
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Router       /tasks/personal [get]
func (h *TaskHandler) ListPersonal(c *gin.Context) {
	req, ok := requester(c)
	if !ok {
		return
	}
	list, err := h.svc.ListPersonal(c.Request.Context(), req.ID)
	if err != nil {
		serviceError(c, err)
		return
	}
	respond(c, http.StatusOK, "personal tasks", dto.TasksToResponses(list))
}

// ListForGroup godoc
// @Summary      List every task in a group
// @Tags         tasks
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Group ID"
// @Success      200  {object}  dto.Envelope
// @Failure      403  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /group/{id}/tasks [get]
func (h *TaskHandler) ListForGroup(c *gin.Context) {
	req, ok := requester(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	list, err := h.svc.ListForGroup(c.Request.Context(), id, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	respond(c, http.StatusOK, "group tasks", dto.TasksToResponses(list))
}

// Get godoc
// @Summary      Fetch one task
// @Tags         tasks
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  dto.Envelope
// @Failure      403  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /task/{id} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	req, ok := requester(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.Get(c.Request.Context(), id, req.ID)
	if err != nil {
		serviceError(c, err)
		return
	}
	respond(c, http.StatusOK, "task", dto.TaskToResponse(t))
}

// Update godoc
// @Summary      Partially update a task (owner only)
// @Tags         tasks
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path      int  true  "Task ID"
// @Param        body  body      dto.UpdateTaskRequest  true  "Partial update"
// @Success      200   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /task/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	req0, ok := requester(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failErr(c, http.StatusBadRequest, "validation error", err)
		return
	}
	patch := service.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := dom.Status(*req.Status)
		patch.Status = &status
	}
	if req.Deadline != nil {
		patch.Deadline = req.Deadline.Ptr()
		patch.DeadlineSet = true
	}
	t, err := h.svc.Update(c.Request.Context(), id, req0.ID, patch)
	if err != nil {
		serviceError(c, err)
		return
	}
	respond(c, http.StatusOK, "task updated", dto.TaskToResponse(t))
}

// Delete godoc
// @Summary      Delete a task (owner only)
// @Tags         tasks
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  dto.Envelope
// @Failure      403  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /task/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	req, ok := requester(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id, req.ID); err != nil {
		serviceError(c, err)
		return
	}
	respond(c, http.StatusOK, "task deleted", nil)
}
