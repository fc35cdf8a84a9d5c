package service

import (
	"context"
	"strings"

	dom "github.com/Diarra45/projet-Nan/internal/domain"
	"github.com/Diarra45/projet-Nan/internal/repo"
)

// PointService owns group discussion entries.
type PointService struct {
	points repo.PointRepo
	groups repo.GroupRepo
}

// NewPointService returns a new PointService.
func NewPointService(points repo.PointRepo, groups repo.GroupRepo) *PointService {
	return &PointService{points: points, groups: groups}
}

// Add posts a free-text entry into the group. Requester must have
// group access.
func (s *PointService) Add(ctx context.Context, groupID int64, req Requester, content string) (dom.Point, error) {
	if err := s.checkAccess(ctx, groupID, req); err != nil {
		return dom.Point{}, err
	}
	return s.points.Create(ctx, strings.TrimSpace(content), req.ID, groupID)
}

// List returns the group's entries, newest first. Requester must have
// group access.
func (s *PointService) List(ctx context.Context, groupID int64, req Requester) ([]dom.Point, error) {
	if err := s.checkAccess(ctx, groupID, req); err != nil {
		return nil, err
	}
	return s.points.ListForGroup(ctx, groupID)
}

func (s *PointService) checkAccess(ctx context.Context, groupID int64, req Requester) error {
	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return translateNoRows(err)
	}
	ok, err := hasGroupAccess(ctx, s.groups, g, req.ID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}
