package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	dom "github.com/Diarra45/projet-Nan/internal/domain"
)

// Deadline parses deadline from JSON as either date-only ("2006-01-02")
// or RFC3339. Date-only is stored as start of that day in UTC.
type Deadline struct{ t *time.Time }

func (d *Deadline) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		d.t = nil
		return nil
	}
	s := strings.TrimSpace(*raw)
	layouts := []string{
		"2006-01-02", // date only
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			if layout == "2006-01-02" {
				parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			}
			d.t = &parsed
			return nil
		}
	}
	return fmt.Errorf("deadline: use date (YYYY-MM-DD) or RFC3339 datetime")
}

// Ptr returns *time.Time for use in service/domain.
func (d Deadline) Ptr() *time.Time { return d.t }

// CreateTaskRequest is the JSON body for POST /task.
type CreateTaskRequest struct {
	Title       string   `json:"title" binding:"required,min=1,max=120"`
	Description string   `json:"description" binding:"max=2000"`
	Deadline    Deadline `json:"deadline"` // optional: "2026-02-19" or RFC3339
	GroupID     *int64   `json:"groupId"`  // nil = personal task
}

// UpdateTaskRequest is the JSON body for PUT /task/:id. Nil = keep.
// A present deadline with an empty value clears it.
type UpdateTaskRequest struct {
	Title       *string   `json:"title" binding:"omitempty,min=1,max=120"`
	Description *string   `json:"description" binding:"omitempty,max=2000"`
	Status      *string   `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
	Deadline    *Deadline `json:"deadline"`
}

// TaskResponse is the public shape of a task.
type TaskResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Deadline    *time.Time `json:"deadline"`
	UserID      int64      `json:"userId"`
	GroupID     *int64     `json:"groupId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TaskToResponse maps a domain task.
func TaskToResponse(t dom.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Deadline:    t.Deadline,
		UserID:      t.UserID,
		GroupID:     t.GroupID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// TasksToResponses maps a list of tasks.
func TasksToResponses(list []dom.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(list))
	for _, t := range list {
		out = append(out, TaskToResponse(t))
	}
	return out
}
