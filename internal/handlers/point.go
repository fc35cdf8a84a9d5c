package handlers

import (
	"net/http"

	"github.com/Diarra45/projet-Nan/internal/dto"
	"github.com/Diarra45/projet-Nan/internal/service"

	"github.com/gin-gonic/gin"
)

// PointHandler handles group discussion entries.
type PointHandler struct {
	svc *service.PointService
}

// NewPointHandler returns a new PointHandler.
func NewPointHandler(svc *service.PointService) *PointHandler {
	return &PointHandler{svc: svc}
}

// Add godoc
// @Summary      Post a discussion entry into a group
// @Tags         points
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path      int  true  "Group ID"
// @Param        body  body      dto.CreatePointRequest  true  "Point body"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /group/{id}/point [post]
func (h *PointHandler) Add(c *gin.Context) {
	req0, ok := requester(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CreatePointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failErr(c, http.StatusBadRequest, "validation error", err)
		return
	}
	p, err := h.svc.Add(c.Request.Context(), id, req0, req.Content)
	if err != nil {
		serviceError(c, err)
		return
	}
	respond(c, http.StatusCreated, "point added", dto.PointToResponse(p))
}

// List godoc
// @Summary      List a group's discussion entries, newest first
// @Tags         points
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Group ID"
// @Success      200  {object}  dto.Envelope
// @Failure      403  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /group/{id}/points [get]
func (h *PointHandler) List(c *gin.Context) {
	req, ok := requester(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	points, err := h.svc.List(c.Request.Context(), id, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	respond(c, http.StatusOK, "points", dto.PointsToResponses(points))
}
