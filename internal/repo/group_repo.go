package repo

import (
	"context"

	dom "github.com/Diarra45/projet-Nan/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// GroupRepo provides group and membership persistence. Membership is a
// join table; the owner's row is inserted at creation so the member set
// always contains the owner.
type GroupRepo interface {
	Create(ctx context.Context, name, description string, ownerID int64, invitationCode string) (dom.Group, error)
	GetByID(ctx context.Context, id int64) (dom.Group, error)
	GetByInvitationCode(ctx context.Context, code string) (dom.Group, error)
	Update(ctx context.Context, id int64, name, description string) (dom.Group, error)
	Delete(ctx context.Context, id int64) error
	ListForUser(ctx context.Context, userID int64) ([]dom.Group, error)

	IsMember(ctx context.Context, groupID, userID int64) (bool, error)
	AddMember(ctx context.Context, groupID, userID int64) error
	RemoveMember(ctx context.Context, groupID, userID int64) (bool, error)
	ListMembers(ctx context.Context, groupID int64) ([]dom.Member, error)
}

// PGGroupRepo implements GroupRepo with Postgres.
type PGGroupRepo struct {
	db *pgxpool.Pool
}

// NewPGGroupRepo returns a new PGGroupRepo.
func NewPGGroupRepo(db *pgxpool.Pool) *PGGroupRepo {
	return &PGGroupRepo{db: db}
}

// Create inserts the group and its owner membership in one transaction.
func (r *PGGroupRepo) Create(ctx context.Context, name, description string, ownerID int64, invitationCode string) (dom.Group, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return dom.Group{}, err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO groups (name, description, owner_id, invitation_code)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, description, owner_id, invitation_code, created_at`
	var g dom.Group
	err = tx.QueryRow(ctx, query, name, description, ownerID, invitationCode).Scan(
		&g.ID, &g.Name, &g.Description, &g.OwnerID, &g.InvitationCode, &g.CreatedAt,
	)
	if err != nil {
		return dom.Group{}, err
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO group_members (group_id, user_id) VALUES ($1, $2)`,
		g.ID, ownerID,
	)
	if err != nil {
		return dom.Group{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return dom.Group{}, err
	}
	return g, nil
}

// GetByID returns the group by id.
func (r *PGGroupRepo) GetByID(ctx context.Context, id int64) (dom.Group, error) {
	var g dom.Group
	err := r.db.QueryRow(ctx,
		`SELECT id, name, description, owner_id, invitation_code, created_at FROM groups WHERE id = $1`,
		id,
	).Scan(&g.ID, &g.Name, &g.Description, &g.OwnerID, &g.InvitationCode, &g.CreatedAt)
	return g, err
}

// GetByInvitationCode returns the group owning the code.
func (r *PGGroupRepo) GetByInvitationCode(ctx context.Context, code string) (dom.Group, error) {
	var g dom.Group
	err := r.db.QueryRow(ctx,
		`SELECT id, name, description, owner_id, invitation_code, created_at FROM groups WHERE invitation_code = $1`,
		code,
	).Scan(&g.ID, &g.Name, &g.Description, &g.OwnerID, &g.InvitationCode, &g.CreatedAt)
	return g, err
}

// Update sets name and description and returns the updated group.
func (r *PGGroupRepo) Update(ctx context.Context, id int64, name, description string) (dom.Group, error) {
	query := `
		UPDATE groups SET name = $2, description = $3
		WHERE id = $1
		RETURNING id, name, description, owner_id, invitation_code, created_at`
	var g dom.Group
	err := r.db.QueryRow(ctx, query, id, name, description).Scan(
		&g.ID, &g.Name, &g.Description, &g.OwnerID, &g.InvitationCode, &g.CreatedAt,
	)
	return g, err
}

// Delete removes the group row and its memberships. Dependent tasks and
// points are deleted by the service beforehand.
func (r *PGGroupRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM group_members WHERE group_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM groups WHERE id = $1`, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ListForUser returns all groups the user is a member of.
func (r *PGGroupRepo) ListForUser(ctx context.Context, userID int64) ([]dom.Group, error) {
	query := `
		SELECT g.id, g.name, g.description, g.owner_id, g.invitation_code, g.created_at
		FROM groups g
		JOIN group_members m ON m.group_id = g.id
		WHERE m.user_id = $1
		ORDER BY g.created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Group
	for rows.Next() {
		var g dom.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.OwnerID, &g.InvitationCode, &g.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, g)
	}
	return list, rows.Err()
}

// IsMember reports whether the user belongs to the group.
func (r *PGGroupRepo) IsMember(ctx context.Context, groupID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM group_members WHERE group_id = $1 AND user_id = $2)`,
		groupID, userID,
	).Scan(&exists)
	return exists, err
}

// AddMember appends the user to the group's member set.
func (r *PGGroupRepo) AddMember(ctx context.Context, groupID, userID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO group_members (group_id, user_id) VALUES ($1, $2)`,
		groupID, userID,
	)
	return err
}

// RemoveMember removes the user from the group's member set. Returns
// false if there was no such membership.
func (r *PGGroupRepo) RemoveMember(ctx context.Context, groupID, userID int64) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM group_members WHERE group_id = $1 AND user_id = $2`,
		groupID, userID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListMembers returns the member identities of a group, owner included.
func (r *PGGroupRepo) ListMembers(ctx context.Context, groupID int64) ([]dom.Member, error) {
	query := `
		SELECT u.id, u.username, u.email, m.joined_at
		FROM group_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.group_id = $1
		ORDER BY m.joined_at ASC`
	rows, err := r.db.Query(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Member
	for rows.Next() {
		var m dom.Member
		if err := rows.Scan(&m.UserID, &m.Username, &m.Email, &m.JoinedAt); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
