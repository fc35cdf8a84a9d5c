package repo

import (
	"context"

	dom "github.com/Diarra45/projet-Nan/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepo provides user persistence.
type UserRepo interface {
	Create(ctx context.Context, username, email, passwordHash string) (dom.User, error)
	GetByID(ctx context.Context, id int64) (dom.User, error)
	GetByEmail(ctx context.Context, email string) (dom.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
}

// AdminRepo provides admin persistence. Admins are provisioned rows,
// there is no registration path for them.
type AdminRepo interface {
	GetByID(ctx context.Context, id int64) (dom.Admin, error)
}

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db *pgxpool.Pool
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db *pgxpool.Pool) *PGUserRepo {
	return &PGUserRepo{db: db}
}

// Create inserts a new user and returns it.
func (r *PGUserRepo) Create(ctx context.Context, username, email, passwordHash string) (dom.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, username, email, password_hash, created_at`
	var u dom.User
	err := r.db.QueryRow(ctx, query, username, email, passwordHash).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt,
	)
	return u, err
}

// GetByID returns the user by id.
func (r *PGUserRepo) GetByID(ctx context.Context, id int64) (dom.User, error) {
	var u dom.User
	err := r.db.QueryRow(ctx,
		`SELECT id, username, email, password_hash, created_at FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

// GetByEmail returns the user by email.
func (r *PGUserRepo) GetByEmail(ctx context.Context, email string) (dom.User, error) {
	var u dom.User
	err := r.db.QueryRow(ctx,
		`SELECT id, username, email, password_hash, created_at FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

// ExistsByEmailOrUsername reports whether either unique field is taken.
func (r *PGUserRepo) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 OR username = $2)`,
		email, username,
	).Scan(&exists)
	return exists, err
}

// PGAdminRepo implements AdminRepo with Postgres.
type PGAdminRepo struct {
	db *pgxpool.Pool
}

// NewPGAdminRepo returns a new PGAdminRepo.
func NewPGAdminRepo(db *pgxpool.Pool) *PGAdminRepo {
	return &PGAdminRepo{db: db}
}

// GetByID returns the admin by id.
func (r *PGAdminRepo) GetByID(ctx context.Context, id int64) (dom.Admin, error) {
	var a dom.Admin
	err := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at FROM admins WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	return a, err
}
