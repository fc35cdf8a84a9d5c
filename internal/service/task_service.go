package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Diarra45/projet-Nan/internal/cache"
	dom "github.com/Diarra45/projet-Nan/internal/domain"
	"github.com/Diarra45/projet-Nan/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

var ErrInvalidStatus = errors.New("status must be pending, in_progress or completed")

// TaskPatch is a partial task update. Nil fields are left untouched.
// DeadlineSet distinguishes "leave the deadline alone" from "clear it".
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *dom.Status
	Deadline    *time.Time
	DeadlineSet bool
}

// TaskService owns task records and the task-side access rules: group
// tasks are readable by all current members, writable only by their
// owner; personal tasks are private to their owner.
type TaskService struct {
	tasks  repo.TaskRepo
	groups repo.GroupRepo
	cache  *cache.TaskCache
	sf     singleflight.Group
}

// NewTaskService creates a TaskService. If c is nil, caching is disabled.
func NewTaskService(tasks repo.TaskRepo, groups repo.GroupRepo, c *cache.TaskCache) *TaskService {
	return &TaskService{tasks: tasks, groups: groups, cache: c}
}

// Create persists a task owned by userID with status pending. If a
// group is named the poster must currently be one of its members.
func (s *TaskService) Create(ctx context.Context, userID int64, title, description string, deadline *time.Time, groupID *int64) (dom.Task, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if groupID != nil {
		member, err := s.memberOf(ctx, *groupID, userID)
		if err != nil {
			return dom.Task{}, err
		}
		if !member {
			return dom.Task{}, ErrForbidden
		}
	}

	t, err := s.tasks.Create(ctx, dom.Task{
		Title:       title,
		Description: description,
		Status:      dom.StatusPending,
		Deadline:    deadline,
		UserID:      userID,
		GroupID:     groupID,
	})
	if err != nil {
		return dom.Task{}, err
	}
	s.invalidate(ctx, userID, groupID)
	return t, nil
}

// Get returns one task. Group task: requester must be a current member
// of that group. Personal task: requester must be the owner.
func (s *TaskService) Get(ctx context.Context, taskID int64, requesterID int64) (dom.Task, error) {
	t, err := s.getTask(ctx, taskID)
	if err != nil {
		return dom.Task{}, err
	}
	if t.Personal() {
		if t.UserID != requesterID {
			return dom.Task{}, ErrForbidden
		}
		return t, nil
	}
	member, err := s.memberOf(ctx, *t.GroupID, requesterID)
	if err != nil {
		return dom.Task{}, err
	}
	if !member {
		return dom.Task{}, ErrForbidden
	}
	return t, nil
}

// ListForUser returns all tasks owned by the user, personal and grouped.
func (s *TaskService) ListForUser(ctx context.Context, userID int64) ([]dom.Task, error) {
	if s.cache == nil {
		return s.tasks.ListForUser(ctx, userID)
	}
	key := "user:" + strconv.FormatInt(userID, 10)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if list, err := s.cache.GetUserTasks(ctx, userID); err == nil && list != nil {
			return list, nil
		}
		list, err := s.tasks.ListForUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetUserTasks(ctx, userID, list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Task), nil
}

// ListPersonal returns the user's ungrouped tasks.
func (s *TaskService) ListPersonal(ctx context.Context, userID int64) ([]dom.Task, error) {
	if s.cache == nil {
		return s.tasks.ListPersonal(ctx, userID)
	}
	key := "personal:" + strconv.FormatInt(userID, 10)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if list, err := s.cache.GetPersonalTasks(ctx, userID); err == nil && list != nil {
			return list, nil
		}
		list, err := s.tasks.ListPersonal(ctx, userID)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetPersonalTasks(ctx, userID, list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Task), nil
}

// ListForGroup returns every task scoped to the group, regardless of
// owner. Requester must have group access.
func (s *TaskService) ListForGroup(ctx context.Context, groupID int64, req Requester) ([]dom.Task, error) {
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
	if s.cache == nil {
		return s.tasks.ListForGroup(ctx, groupID)
	}
	key := "group:" + strconv.FormatInt(groupID, 10)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if list, err := s.cache.GetGroupTasks(ctx, groupID); err == nil && list != nil {
			return list, nil
		}
		list, err := s.tasks.ListForGroup(ctx, groupID)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetGroupTasks(ctx, groupID, list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Task), nil
}

// Update applies a partial update. Owner only: group membership does
// not grant write access to another member's task.
func (s *TaskService) Update(ctx context.Context, taskID int64, requesterID int64, patch TaskPatch) (dom.Task, error) {
	existing, err := s.getTask(ctx, taskID)
	if err != nil {
		return dom.Task{}, err
	}
	if existing.UserID != requesterID {
		return dom.Task{}, ErrForbidden
	}
	next := existing
	if patch.Title != nil {
		next.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		next.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Status != nil {
		if !dom.ValidStatus(*patch.Status) {
			return dom.Task{}, ErrInvalidStatus
		}
		next.Status = *patch.Status
	}
	if patch.DeadlineSet {
		next.Deadline = patch.Deadline
	}
	t, err := s.tasks.Update(ctx, taskID, next)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}
	s.invalidate(ctx, existing.UserID, existing.GroupID)
	return t, nil
}

// Delete removes the task. Same ownership rule as Update.
func (s *TaskService) Delete(ctx context.Context, taskID int64, requesterID int64) error {
	existing, err := s.getTask(ctx, taskID)
	if err != nil {
		return err
	}
	if existing.UserID != requesterID {
		return ErrForbidden
	}
	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return err
	}
	s.invalidate(ctx, existing.UserID, existing.GroupID)
	return nil
}

func (s *TaskService) getTask(ctx context.Context, taskID int64) (dom.Task, error) {
	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}
	return t, nil
}

func (s *TaskService) getGroup(ctx context.Context, groupID int64) (dom.Group, error) {
	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Group{}, ErrNotFound
		}
		return dom.Group{}, err
	}
	return g, nil
}

// memberOf resolves membership for task-side checks. A missing group
// reads as non-membership, matching the access rules (the task's group
// is gone, so nobody can reach it).
func (s *TaskService) memberOf(ctx context.Context, groupID, userID int64) (bool, error) {
	member, err := s.groups.IsMember(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return member, nil
}

func (s *TaskService) invalidate(ctx context.Context, userID int64, groupID *int64) {
	if s.cache == nil {
		return
	}
	_ = s.cache.InvalidateUser(ctx, userID)
	if groupID != nil {
		_ = s.cache.InvalidateGroup(ctx, *groupID)
	}
}
