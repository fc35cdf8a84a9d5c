package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Diarra45/projet-Nan/internal/auth"
	dom "github.com/Diarra45/projet-Nan/internal/domain"
	"github.com/Diarra45/projet-Nan/internal/repo"
	"github.com/Diarra45/projet-Nan/internal/utils"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("user already exists")
	ErrIdentityGone       = errors.New("identity no longer exists")
)

const bcryptCost = 12

// UserService handles registration, login, token refresh, logout and
// profile resolution.
type UserService struct {
	users   repo.UserRepo
	admins  repo.AdminRepo
	tokens  *auth.TokenManager
	revoked *auth.RevokedSet
}

// NewUserService returns a new UserService.
func NewUserService(users repo.UserRepo, admins repo.AdminRepo, tokens *auth.TokenManager, revoked *auth.RevokedSet) *UserService {
	return &UserService{users: users, admins: admins, tokens: tokens, revoked: revoked}
}

// Register creates a user with a hashed password and signs a token
// pair. Duplicate email or username -> ErrUserExists.
func (s *UserService) Register(ctx context.Context, username, email, password string) (dom.User, auth.TokenPair, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	taken, err := s.users.ExistsByEmailOrUsername(ctx, email, username)
	if err != nil {
		return dom.User{}, auth.TokenPair{}, err
	}
	if taken {
		return dom.User{}, auth.TokenPair{}, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return dom.User{}, auth.TokenPair{}, err
	}
	u, err := s.users.Create(ctx, username, email, string(hash))
	if err != nil {
		// Lost the race between the existence check and the insert.
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, auth.TokenPair{}, ErrUserExists
		}
		return dom.User{}, auth.TokenPair{}, err
	}

	pair, err := s.tokens.IssuePair(u.ID, u.Email, u.Username, dom.RoleUser)
	if err != nil {
		return dom.User{}, auth.TokenPair{}, err
	}
	return u, pair, nil
}

// Login checks credentials and signs a token pair. Unknown email or a
// failing hash comparison both map to ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (dom.User, auth.TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, auth.TokenPair{}, ErrInvalidCredentials
		}
		return dom.User{}, auth.TokenPair{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return dom.User{}, auth.TokenPair{}, ErrInvalidCredentials
	}
	pair, err := s.tokens.IssuePair(u.ID, u.Email, u.Username, dom.RoleUser)
	if err != nil {
		return dom.User{}, auth.TokenPair{}, err
	}
	return u, pair, nil
}

// Refresh verifies a refresh token, re-resolves the identity it names
// and signs a fresh pair preserving the role. Invalid token or a
// vanished identity -> auth.ErrInvalidToken / ErrIdentityGone.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return auth.TokenPair{}, err
	}
	ident, err := s.resolve(ctx, claims.UserID, claims.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenPair{}, ErrIdentityGone
		}
		return auth.TokenPair{}, err
	}
	return s.tokens.IssuePair(ident.ID(), ident.Email(), ident.Username(), ident.Role)
}

// Revoke adds the raw token to the revoked set (logout). Idempotent.
func (s *UserService) Revoke(token string) {
	s.revoked.Add(token)
}

// Profile resolves the caller's identity by id and role.
func (s *UserService) Profile(ctx context.Context, id int64, role dom.Role) (dom.Identity, error) {
	ident, err := s.resolve(ctx, id, role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Identity{}, ErrIdentityGone
		}
		return dom.Identity{}, err
	}
	return ident, nil
}

// resolve looks up the identity variant named by the role discriminant.
func (s *UserService) resolve(ctx context.Context, id int64, role dom.Role) (dom.Identity, error) {
	if role == dom.RoleAdmin {
		a, err := s.admins.GetByID(ctx, id)
		if err != nil {
			return dom.Identity{}, err
		}
		return dom.Identity{Role: dom.RoleAdmin, Admin: &a}, nil
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return dom.Identity{}, err
	}
	return dom.Identity{Role: dom.RoleUser, User: &u}, nil
}
