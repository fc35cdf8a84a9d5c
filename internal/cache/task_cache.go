package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	dom "github.com/Diarra45/projet-Nan/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	keyUserTasks     = "tasks:user:"
	keyPersonalTasks = "tasks:personal:"
	keyGroupTasks    = "tasks:group:"
)

// TaskCache caches per-user and per-group task lists in Redis.
// Invalidated on every task write and on membership changes.
type TaskCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTaskCache returns a new TaskCache.
func NewTaskCache(rdb *redis.Client, ttl time.Duration) *TaskCache {
	return &TaskCache{rdb: rdb, ttl: ttl}
}

// GetUserTasks returns the cached full list for a user, or nil on miss.
func (c *TaskCache) GetUserTasks(ctx context.Context, userID int64) ([]dom.Task, error) {
	return c.get(ctx, keyUserTasks+strconv.FormatInt(userID, 10))
}

// SetUserTasks stores a user's full task list.
func (c *TaskCache) SetUserTasks(ctx context.Context, userID int64, list []dom.Task) error {
	return c.set(ctx, keyUserTasks+strconv.FormatInt(userID, 10), list)
}

// GetPersonalTasks returns the cached personal list for a user, or nil on miss.
func (c *TaskCache) GetPersonalTasks(ctx context.Context, userID int64) ([]dom.Task, error) {
	return c.get(ctx, keyPersonalTasks+strconv.FormatInt(userID, 10))
}

// SetPersonalTasks stores a user's personal task list.
func (c *TaskCache) SetPersonalTasks(ctx context.Context, userID int64, list []dom.Task) error {
	return c.set(ctx, keyPersonalTasks+strconv.FormatInt(userID, 10), list)
}

// GetGroupTasks returns the cached list for a group, or nil on miss.
func (c *TaskCache) GetGroupTasks(ctx context.Context, groupID int64) ([]dom.Task, error) {
	return c.get(ctx, keyGroupTasks+strconv.FormatInt(groupID, 10))
}

// SetGroupTasks stores a group's task list.
func (c *TaskCache) SetGroupTasks(ctx context.Context, groupID int64, list []dom.Task) error {
	return c.set(ctx, keyGroupTasks+strconv.FormatInt(groupID, 10), list)
}

// InvalidateUser removes the user's cached lists.
func (c *TaskCache) InvalidateUser(ctx context.Context, userID int64) error {
	id := strconv.FormatInt(userID, 10)
	return c.rdb.Del(ctx, keyUserTasks+id, keyPersonalTasks+id).Err()
}

// InvalidateGroup removes the group's cached list.
func (c *TaskCache) InvalidateGroup(ctx context.Context, groupID int64) error {
	return c.rdb.Del(ctx, keyGroupTasks+strconv.FormatInt(groupID, 10)).Err()
}

func (c *TaskCache) get(ctx context.Context, key string) ([]dom.Task, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Task
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *TaskCache) set(ctx context.Context, key string, list []dom.Task) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}
