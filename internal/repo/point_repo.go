package repo

import (
	"context"

	dom "github.com/Diarra45/projet-Nan/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PointRepo provides group discussion entry persistence.
type PointRepo interface {
	Create(ctx context.Context, content string, userID, groupID int64) (dom.Point, error)
	ListForGroup(ctx context.Context, groupID int64) ([]dom.Point, error)
	DeleteForGroup(ctx context.Context, groupID int64) error
}

// PGPointRepo implements PointRepo with Postgres.
type PGPointRepo struct {
	db *pgxpool.Pool
}

// NewPGPointRepo returns a new PGPointRepo.
func NewPGPointRepo(db *pgxpool.Pool) *PGPointRepo {
	return &PGPointRepo{db: db}
}

// Create inserts a point and returns it with the author's username.
func (r *PGPointRepo) Create(ctx context.Context, content string, userID, groupID int64) (dom.Point, error) {
	query := `
		WITH inserted AS (
			INSERT INTO points (content, user_id, group_id)
			VALUES ($1, $2, $3)
			RETURNING id, content, user_id, group_id, created_at
		)
		SELECT i.id, i.content, i.user_id, u.username, i.group_id, i.created_at
		FROM inserted i JOIN users u ON u.id = i.user_id`
	var p dom.Point
	err := r.db.QueryRow(ctx, query, content, userID, groupID).Scan(
		&p.ID, &p.Content, &p.UserID, &p.AuthorUsername, &p.GroupID, &p.CreatedAt,
	)
	return p, err
}

// ListForGroup returns the group's points, newest first.
func (r *PGPointRepo) ListForGroup(ctx context.Context, groupID int64) ([]dom.Point, error) {
	query := `
		SELECT p.id, p.content, p.user_id, u.username, p.group_id, p.created_at
		FROM points p
		JOIN users u ON u.id = p.user_id
		WHERE p.group_id = $1
		ORDER BY p.created_at DESC`
	rows, err := r.db.Query(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Point
	for rows.Next() {
		var p dom.Point
		if err := rows.Scan(&p.ID, &p.Content, &p.UserID, &p.AuthorUsername, &p.GroupID, &p.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// DeleteForGroup removes every point scoped to the group (group delete cascade).
func (r *PGPointRepo) DeleteForGroup(ctx context.Context, groupID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM points WHERE group_id = $1`, groupID)
	return err
}
