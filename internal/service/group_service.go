package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Diarra45/projet-Nan/internal/cache"
	dom "github.com/Diarra45/projet-Nan/internal/domain"
	"github.com/Diarra45/projet-Nan/internal/repo"
	"github.com/Diarra45/projet-Nan/internal/utils"

	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("access denied")
	ErrAlreadyMember  = errors.New("already a member")
	ErrOwnerRemoval   = errors.New("owner cannot be removed; delete the group instead")
	ErrMemberNotFound = errors.New("member not found in this group")
)

// Attempts at generating an invitation code before giving up. A
// collision in a 36^8 space is already unlikely; hitting it five times
// in a row means something else is wrong.
const inviteCodeAttempts = 5

// GroupService owns group records, memberships and the delete cascades.
type GroupService struct {
	groups repo.GroupRepo
	tasks  repo.TaskRepo
	points repo.PointRepo
	cache  *cache.TaskCache
}

// NewGroupService creates a GroupService. If c is nil, task-list cache
// invalidation on cascades is skipped.
func NewGroupService(groups repo.GroupRepo, tasks repo.TaskRepo, points repo.PointRepo, c *cache.TaskCache) *GroupService {
	return &GroupService{groups: groups, tasks: tasks, points: points, cache: c}
}

// Create persists a group owned by ownerID with a fresh invitation
// code. The owner is the sole initial member. Code generation retries
// on a unique-violation collision.
func (s *GroupService) Create(ctx context.Context, ownerID int64, name, description string) (dom.Group, error) {
	var lastErr error
	for i := 0; i < inviteCodeAttempts; i++ {
		code, err := utils.NewInvitationCode()
		if err != nil {
			return dom.Group{}, err
		}
		g, err := s.groups.Create(ctx, name, description, ownerID, code)
		if err == nil {
			return g, nil
		}
		if !utils.IsPGUniqueViolation(err) {
			return dom.Group{}, err
		}
		lastErr = err
	}
	return dom.Group{}, fmt.Errorf("invitation code collision after %d attempts: %w", inviteCodeAttempts, lastErr)
}

// Get returns the group with its populated member set. Requester must
// be a member or the owner.
func (s *GroupService) Get(ctx context.Context, groupID int64, req Requester) (dom.Group, []dom.Member, error) {
	g, err := s.getGroup(ctx, groupID)
	if err != nil {
		return dom.Group{}, nil, err
	}
	ok, err := hasGroupAccess(ctx, s.groups, g, req.ID)
	if err != nil {
		return dom.Group{}, nil, err
	}
	if !ok {
		return dom.Group{}, nil, ErrForbidden
	}
	members, err := s.groups.ListMembers(ctx, groupID)
	if err != nil {
		return dom.Group{}, nil, err
	}
	return g, members, nil
}

// Update applies a partial update of name/description. Owner or admin only.
func (s *GroupService) Update(ctx context.Context, groupID int64, req Requester, name, description *string) (dom.Group, error) {
	g, err := s.getGroup(ctx, groupID)
	if err != nil {
		return dom.Group{}, err
	}
	if !isOwnerOrAdmin(g, req) {
		return dom.Group{}, ErrForbidden
	}
	patchName, patchDesc := g.Name, g.Description
	if name != nil {
		patchName = *name
	}
	if description != nil {
		patchDesc = *description
	}
	return s.groups.Update(ctx, groupID, patchName, patchDesc)
}

// Delete removes the group. Owner or admin only. Dependents go first
// (tasks, then points), so a crash mid-cascade leaves at most orphaned
// rows behind a group that still exists and still gates access.
func (s *GroupService) Delete(ctx context.Context, groupID int64, req Requester) error {
	g, err := s.getGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if !isOwnerOrAdmin(g, req) {
		return ErrForbidden
	}
	members, err := s.groups.ListMembers(ctx, groupID)
	if err != nil {
		return err
	}
	if err := s.tasks.DeleteForGroup(ctx, groupID); err != nil {
		return err
	}
	if err := s.points.DeleteForGroup(ctx, groupID); err != nil {
		return err
	}
	if err := s.groups.Delete(ctx, groupID); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateGroup(ctx, groupID)
		for _, m := range members {
			_ = s.cache.InvalidateUser(ctx, m.UserID)
		}
	}
	return nil
}

// Join adds the requester to the group matching the invitation code.
// Unknown code -> ErrNotFound; joining twice -> ErrAlreadyMember.
func (s *GroupService) Join(ctx context.Context, userID int64, invitationCode string) (dom.Group, error) {
	g, err := s.groups.GetByInvitationCode(ctx, invitationCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Group{}, ErrNotFound
		}
		return dom.Group{}, err
	}
	member, err := s.groups.IsMember(ctx, g.ID, userID)
	if err != nil {
		return dom.Group{}, err
	}
	if member {
		return dom.Group{}, ErrAlreadyMember
	}
	if err := s.groups.AddMember(ctx, g.ID, userID); err != nil {
		// Concurrent join with the same code.
		if utils.IsPGUniqueViolation(err) {
			return dom.Group{}, ErrAlreadyMember
		}
		return dom.Group{}, err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateGroup(ctx, g.ID)
	}
	return g, nil
}

// ListForUser returns all groups the user belongs to.
func (s *GroupService) ListForUser(ctx context.Context, userID int64) ([]dom.Group, error) {
	return s.groups.ListForUser(ctx, userID)
}

// ListMembers returns the member identities. Requester must have group access.
func (s *GroupService) ListMembers(ctx context.Context, groupID int64, req Requester) ([]dom.Member, error) {
	g, err := s.getGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	ok, err := hasGroupAccess(ctx, s.groups, g, req.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return s.groups.ListMembers(ctx, groupID)
}

// RemoveMember removes target from the group and cascades deletion of
// the target's tasks scoped to this group. Owner or admin only; the
// owner themselves can never be the target. Returns the updated group
// with its remaining members.
func (s *GroupService) RemoveMember(ctx context.Context, groupID int64, req Requester, targetID int64) (dom.Group, []dom.Member, error) {
	g, err := s.getGroup(ctx, groupID)
	if err != nil {
		return dom.Group{}, nil, err
	}
	if !isOwnerOrAdmin(g, req) {
		return dom.Group{}, nil, ErrForbidden
	}
	if targetID == g.OwnerID {
		return dom.Group{}, nil, ErrOwnerRemoval
	}
	removed, err := s.groups.RemoveMember(ctx, groupID, targetID)
	if err != nil {
		return dom.Group{}, nil, err
	}
	if !removed {
		return dom.Group{}, nil, ErrMemberNotFound
	}
	if err := s.tasks.DeleteForUserInGroup(ctx, targetID, groupID); err != nil {
		return dom.Group{}, nil, err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateGroup(ctx, groupID)
		_ = s.cache.InvalidateUser(ctx, targetID)
	}
	members, err := s.groups.ListMembers(ctx, groupID)
	if err != nil {
		return dom.Group{}, nil, err
	}
	return g, members, nil
}

func (s *GroupService) getGroup(ctx context.Context, groupID int64) (dom.Group, error) {
	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Group{}, ErrNotFound
		}
		return dom.Group{}, err
	}
	return g, nil
}
