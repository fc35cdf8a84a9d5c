package domain

import "time"

// Status is the task lifecycle field. No transition graph is enforced:
// the owner may set any value at any time.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// ValidStatus reports whether s is one of the three known values.
func ValidStatus(s Status) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

// Task belongs to a user and optionally to a group. GroupID == nil
// means a personal task, visible only to its owner. A group task is
// readable by all current members but writable only by its owner.
type Task struct {
	ID          int64
	Title       string
	Description string
	Status      Status
	Deadline    *time.Time
	UserID      int64
	GroupID     *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Personal reports whether the task is scoped to no group.
func (t Task) Personal() bool { return t.GroupID == nil }
