package repo

import (
	"context"

	dom "github.com/Diarra45/projet-Nan/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepo interface {
	Create(ctx context.Context, t dom.Task) (dom.Task, error)
	GetByID(ctx context.Context, id int64) (dom.Task, error)
	ListForUser(ctx context.Context, userID int64) ([]dom.Task, error)
	ListPersonal(ctx context.Context, userID int64) ([]dom.Task, error)
	ListForGroup(ctx context.Context, groupID int64) ([]dom.Task, error)
	Update(ctx context.Context, id int64, patch dom.Task) (dom.Task, error)
	Delete(ctx context.Context, id int64) error
	DeleteForGroup(ctx context.Context, groupID int64) error
	DeleteForUserInGroup(ctx context.Context, userID, groupID int64) error
}

type PGTaskRepo struct {
	db *pgxpool.Pool
}

func NewPGTaskRepo(db *pgxpool.Pool) *PGTaskRepo {
	return &PGTaskRepo{db: db}
}

func (r *PGTaskRepo) Create(ctx context.Context, t dom.Task) (dom.Task, error) {
	query := `
		INSERT INTO tasks (title, description, status, deadline, user_id, group_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, title, description, status, deadline, user_id, group_id, created_at, updated_at`
	var out dom.Task
	err := r.db.QueryRow(ctx, query, t.Title, t.Description, t.Status, t.Deadline, t.UserID, t.GroupID).Scan(
		&out.ID, &out.Title, &out.Description, &out.Status, &out.Deadline,
		&out.UserID, &out.GroupID, &out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGTaskRepo) GetByID(ctx context.Context, id int64) (dom.Task, error) {
	query := `
		SELECT id, title, description, status, deadline, user_id, group_id, created_at, updated_at
		FROM tasks WHERE id = $1`
	var t dom.Task
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Deadline,
		&t.UserID, &t.GroupID, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *PGTaskRepo) ListForUser(ctx context.Context, userID int64) ([]dom.Task, error) {
	query := `
		SELECT id, title, description, status, deadline, user_id, group_id, created_at, updated_at
		FROM tasks WHERE user_id = $1 ORDER BY created_at DESC`
	return r.queryList(ctx, query, userID)
}

func (r *PGTaskRepo) ListPersonal(ctx context.Context, userID int64) ([]dom.Task, error) {
	query := `
		SELECT id, title, description, status, deadline, user_id, group_id, created_at, updated_at
		FROM tasks WHERE user_id = $1 AND group_id IS NULL ORDER BY created_at DESC`
	return r.queryList(ctx, query, userID)
}

func (r *PGTaskRepo) ListForGroup(ctx context.Context, groupID int64) ([]dom.Task, error) {
	query := `
		SELECT id, title, description, status, deadline, user_id, group_id, created_at, updated_at
		FROM tasks WHERE group_id = $1 ORDER BY created_at DESC`
	return r.queryList(ctx, query, groupID)
}

func (r *PGTaskRepo) Update(ctx context.Context, id int64, patch dom.Task) (dom.Task, error) {
	query := `
		UPDATE tasks SET title = $2, description = $3, status = $4, deadline = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING id, title, description, status, deadline, user_id, group_id, created_at, updated_at`
	var t dom.Task
	err := r.db.QueryRow(ctx, query, id, patch.Title, patch.Description, patch.Status, patch.Deadline).Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Deadline,
		&t.UserID, &t.GroupID, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *PGTaskRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}

// DeleteForGroup removes every task scoped to the group (group delete cascade).
func (r *PGTaskRepo) DeleteForGroup(ctx context.Context, groupID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE group_id = $1`, groupID)
	return err
}

// DeleteForUserInGroup removes one member's tasks scoped to the group
// (member removal cascade).
func (r *PGTaskRepo) DeleteForUserInGroup(ctx context.Context, userID, groupID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE user_id = $1 AND group_id = $2`, userID, groupID)
	return err
}

func (r *PGTaskRepo) queryList(ctx context.Context, query string, arg int64) ([]dom.Task, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Task
	for rows.Next() {
		var t dom.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Deadline,
			&t.UserID, &t.GroupID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
