package service

import (
	"context"
	"errors"

	dom "github.com/Diarra45/projet-Nan/internal/domain"
	"github.com/Diarra45/projet-Nan/internal/repo"

	"github.com/jackc/pgx/v5"
)

// Requester is the authenticated caller of a service operation.
type Requester struct {
	ID   int64
	Role dom.Role
}

// hasGroupAccess reports whether the requester may read the group:
// owner or current member. This is the only read-side predicate in the
// system.
func hasGroupAccess(ctx context.Context, groups repo.GroupRepo, g dom.Group, userID int64) (bool, error) {
	if g.OwnerID == userID {
		return true, nil
	}
	return groups.IsMember(ctx, g.ID, userID)
}

// isOwnerOrAdmin reports whether the requester may administer the
// group: its owner, or any admin. This is the only write-side
// predicate in the system.
func isOwnerOrAdmin(g dom.Group, req Requester) bool {
	return g.OwnerID == req.ID || req.Role == dom.RoleAdmin
}

// translateNoRows maps a missing row onto the service error taxonomy.
func translateNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
