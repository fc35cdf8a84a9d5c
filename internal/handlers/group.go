package handlers

import (
	"net/http"

	"github.com/Diarra45/projet-Nan/internal/dto"
	"github.com/Diarra45/projet-Nan/internal/service"

	"github.com/gin-gonic/gin"
)

// GroupHandler handles group CRUD, joining and membership management.
type GroupHandler struct {
	svc *service.GroupService
}

// NewGroupHandler returns a new GroupHandler.
func NewGroupHandler(svc *service.GroupService) *GroupHandler {
	return &GroupHandler{svc: svc}
}

// Create godoc
// @Summary      Create a group
// @Tags         groups
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateGroupRequest  true  "Group body"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Router       /group [post]
func (h *GroupHandler) Create(c *gin.Context) {
	req0, ok := requester(c)
	if !ok {
		return
	}
	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failErr(c, http.StatusBadRequest, "validation error", err)
		return
	}
	g, err := h.svc.Create(c.Request.Context(), req0.ID, req.Name, req.Description)
	if err != nil {
		serviceError(c, err)
		return
	}
	respond(c, http.StatusCreated, "group created", dto.GroupToResponse(g))
}

// List godoc
// @Summary      List the caller's groups
// @Tags         groups
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Router       /groups [get]
func (h *GroupHandler) List(c *gin.Context) {
	req, ok := requester(c)
	if !ok {
		return
	}
	groups, err := h.svc.ListForUser(c.Request.Context(), req.ID)
	if err != nil {
		serviceError(c, err)
		return
	}
	respond(c, http.StatusOK, "groups", dto.GroupsToResponses(groups))
}

// Get godoc
// @Summary      Fetch a group with populated members
// @Tags         groups
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Group ID"
// @Success      200  {object}  dto.Envelope
// @Failure      403  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /group/{id} [get]
func (h *GroupHandler) Get(c *gin.Context) {
	req, ok := requester(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	g, members, err := h.svc.Get(c.Request.Context(), id, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	respond(c, http.StatusOK, "group", dto.GroupWithMembers(g, members))
}

// Update godoc
// @Summary      Update group name/description
// @Tags         groups
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path      int  true  "Group ID"
// @Param        body  body      dto.UpdateGroupRequest  true  "Partial update"
// @Success      200   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /group/{id} [put]
func (h *GroupHandler) Update(c *gin.Context) {
	req0, ok := requester(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failErr(c, http.StatusBadRequest, "validation error", err)
		return
	}
	g, err := h.svc.Update(c.Request.Context(), id, req0, req.Name, req.Description)
	if err != nil {
		serviceError(c, err)
		return
	}
	respond(c, http.StatusOK, "group updated", dto.GroupToResponse(g))
}

// Delete godoc
// @Summary      Delete a group and its tasks and points
// @Tags         groups
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Group ID"
// @Success      200  {object}  dto.Envelope
// @Failure      403  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /group/{id} [delete]
func (h *GroupHandler) Delete(c *gin.Context) {
	req, ok := requester(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id, req); err != nil {
		serviceError(c, err)
		return
	}
	respond(c, http.StatusOK, "group deleted", nil)
}

// Join godoc
// @Summary      Join a group via invitation code
// @Tags         groups
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.JoinGroupRequest  true  "Invitation code"
// @Success      200   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /group/join [post]
func (h *GroupHandler) Join(c *gin.Context) {
	req0, ok := requester(c)
	if !ok {
		return
	}
	var req dto.JoinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failErr(c, http.StatusBadRequest, "validation error", err)
		return
	}
	g, err := h.svc.Join(c.Request.Context(), req0.ID, req.InvitationCode)
	if err != nil {
		serviceError(c, err)
		return
	}
	respond(c, http.StatusOK, "group joined", gin.H{"groupId": g.ID})
}

// Members godoc
// @Summary      List group members
// @Tags         groups
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Group ID"
// @Success      200  {object}  dto.Envelope
// @Failure      403  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /group/{id}/members [get]
func (h *GroupHandler) Members(c *gin.Context) {
	req, ok := requester(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	members, err := h.svc.ListMembers(c.Request.Context(), id, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	respond(c, http.StatusOK, "members", dto.MembersToResponses(members))
}

// RemoveMember godoc
// @Summary      Remove a member and their group-scoped tasks
// @Tags         groups
// @Security     BearerAuth
// @Produce      json
// @Param        id        path      int  true  "Group ID"
// @Param        memberId  path      int  true  "Member ID"
// @Success      200  {object}  dto.Envelope
// @Failure      400  {object}  dto.Envelope
// @Failure      403  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /group/{id}/member/{memberId} [delete]
func (h *GroupHandler) RemoveMember(c *gin.Context) {
	req, ok := requester(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	memberID, ok := parseID(c, "memberId")
	if !ok {
		return
	}
	g, members, err := h.svc.RemoveMember(c.Request.Context(), id, req, memberID)
	if err != nil {
		serviceError(c, err)
		return
	}
	respond(c, http.StatusOK, "member removed", dto.GroupWithMembers(g, members))
}
