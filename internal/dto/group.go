package dto

import (
	"time"

	dom "github.com/Diarra45/projet-Nan/internal/domain"
)

// CreateGroupRequest is the JSON body for POST /group.
type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=120"`
	Description string `json:"description" binding:"max=1000"`
}

// UpdateGroupRequest is the JSON body for PUT /group/:id. Nil = keep.
type UpdateGroupRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=120"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

// JoinGroupRequest is the JSON body for POST /group/join.
type JoinGroupRequest struct {
	InvitationCode string `json:"invitationCode" binding:"required"`
}

// CreatePointRequest is the JSON body for POST /group/:id/point.
type CreatePointRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// MemberResponse is one entry of a group's member set.
type MemberResponse struct {
	ID       int64     `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	JoinedAt time.Time `json:"joinedAt"`
}

// GroupResponse is the public shape of a group. Members are present
// only where the endpoint populates them.
type GroupResponse struct {
	ID             int64            `json:"id"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Owner          int64            `json:"owner"`
	InvitationCode string           `json:"invitationCode"`
	CreatedAt      time.Time        `json:"createdAt"`
	Members        []MemberResponse `json:"members,omitempty"`
}

// PointResponse is the public shape of a discussion entry.
type PointResponse struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	UserID    int64     `json:"userId"`
	Author    string    `json:"author"`
	GroupID   int64     `json:"groupId"`
	CreatedAt time.Time `json:"createdAt"`
}

// GroupToResponse maps a domain group without members.
func GroupToResponse(g dom.Group) GroupResponse {
	return GroupResponse{
		ID:             g.ID,
		Name:           g.Name,
		Description:    g.Description,
		Owner:          g.OwnerID,
		InvitationCode: g.InvitationCode,
		CreatedAt:      g.CreatedAt,
	}
}

// GroupWithMembers maps a domain group with its populated member set.
func GroupWithMembers(g dom.Group, members []dom.Member) GroupResponse {
	out := GroupToResponse(g)
	out.Members = MembersToResponses(members)
	return out
}

// GroupsToResponses maps a list of groups.
func GroupsToResponses(list []dom.Group) []GroupResponse {
	out := make([]GroupResponse, 0, len(list))
	for _, g := range list {
		out = append(out, GroupToResponse(g))
	}
	return out
}

// MembersToResponses maps a member set.
func MembersToResponses(list []dom.Member) []MemberResponse {
	out := make([]MemberResponse, 0, len(list))
	for _, m := range list {
		out = append(out, MemberResponse{ID: m.UserID, Username: m.Username, Email: m.Email, JoinedAt: m.JoinedAt})
	}
	return out
}

// PointToResponse maps a domain point.
func PointToResponse(p dom.Point) PointResponse {
	return PointResponse{
		ID:        p.ID,
		Content:   p.Content,
		UserID:    p.UserID,
		Author:    p.AuthorUsername,
		GroupID:   p.GroupID,
		CreatedAt: p.CreatedAt,
	}
}

// PointsToResponses maps a list of points.
func PointsToResponses(list []dom.Point) []PointResponse {
	out := make([]PointResponse, 0, len(list))
	for _, p := range list {
		out = append(out, PointToResponse(p))
	}
	return out
}
