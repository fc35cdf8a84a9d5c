package service

import (
	"context"
	"errors"
	"testing"

	dom "github.com/Diarra45/projet-Nan/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

type groupFixture struct {
	svc    *GroupService
	groups *fakeGroupRepo
	tasks  *fakeTaskRepo
	points *fakePointRepo
	users  *fakeUserRepo
}

func newGroupFixture() *groupFixture {
	users := newFakeUserRepo()
	groups := newFakeGroupRepo(users)
	tasks := newFakeTaskRepo()
	points := newFakePointRepo()
	return &groupFixture{
		svc:    NewGroupService(groups, tasks, points, nil),
		groups: groups,
		tasks:  tasks,
		points: points,
		users:  users,
	}
}

func (f *groupFixture) user(t *testing.T, name string) int64 {
	t.Helper()
	u, err := f.users.Create(context.Background(), name, name+"@example.com", "x")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u.ID
}

func TestGroupCreateOwnerIsSoleMember(t *testing.T) {
	f := newGroupFixture()
	ctx := context.Background()
	owner := f.user(t, "alice")

	g, err := f.svc.Create(ctx, owner, "team", "desc")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if g.OwnerID != owner {
		t.Fatalf("owner = %d, want %d", g.OwnerID, owner)
	}
	if len(g.InvitationCode) != 8 {
		t.Fatalf("invitation code %q should be 8 chars", g.InvitationCode)
	}
	members, err := f.svc.ListMembers(ctx, g.ID, Requester{ID: owner})
	if err != nil {
		t.Fatalf("members: %v", err)
	}
	if len(members) != 1 || members[0].UserID != owner {
		t.Fatalf("expected owner as sole member, got %+v", members)
	}
}

func TestGroupJoinTwice(t *testing.T) {
	f := newGroupFixture()
	ctx := context.Background()
	owner := f.user(t, "alice")
	bob := f.user(t, "bob")

	g, err := f.svc.Create(ctx, owner, "team", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.svc.Join(ctx, bob, g.InvitationCode); err != nil {
		t.Fatalf("first join: %v", err)
	}
	if _, err := f.svc.Join(ctx, bob, g.InvitationCode); !errors.Is(err, ErrAlreadyMember) {
		t.Fatalf("second join: expected ErrAlreadyMember, got %v", err)
	}
	if _, err := f.svc.Join(ctx, bob, "NOPE1234"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown code: expected ErrNotFound, got %v", err)
	}
}

// collidingGroupRepo fails Create with a unique violation a set number
// of times before delegating, standing in for invitation-code clashes.
type collidingGroupRepo struct {
	*fakeGroupRepo
	collisions int
}

func (r *collidingGroupRepo) Create(ctx context.Context, name, description string, ownerID int64, code string) (dom.Group, error) {
	if r.collisions > 0 {
		r.collisions--
		return dom.Group{}, &pgconn.PgError{Code: "23505"}
	}
	return r.fakeGroupRepo.Create(ctx, name, description, ownerID, code)
}

// racedJoinGroupRepo fails AddMember with a unique violation, standing
// in for two joins with the same code landing at once.
type racedJoinGroupRepo struct{ *fakeGroupRepo }

func (r *racedJoinGroupRepo) AddMember(context.Context, int64, int64) error {
	return &pgconn.PgError{Code: "23505"}
}

func TestGroupCreateRetriesCodeCollision(t *testing.T) {
	f := newGroupFixture()
	ctx := context.Background()
	owner := f.user(t, "alice")

	repo := &collidingGroupRepo{fakeGroupRepo: f.groups, collisions: 2}
	svc := NewGroupService(repo, f.tasks, f.points, nil)
	g, err := svc.Create(ctx, owner, "team", "")
	if err != nil {
		t.Fatalf("create should survive two collisions: %v", err)
	}
	if len(g.InvitationCode) != 8 {
		t.Fatalf("invitation code %q should be 8 chars", g.InvitationCode)
	}

	// Every attempt colliding means giving up, not looping forever.
	repo.collisions = inviteCodeAttempts + 1
	if _, err := svc.Create(ctx, owner, "team2", ""); err == nil {
		t.Fatalf("expected an error once all attempts collide")
	}
	// Exactly inviteCodeAttempts inserts were tried.
	if repo.collisions != 1 {
		t.Fatalf("collisions left = %d, want 1", repo.collisions)
	}
}

func TestGroupJoinRace(t *testing.T) {
	f := newGroupFixture()
	ctx := context.Background()
	owner := f.user(t, "alice")
	bob := f.user(t, "bob")

	g, err := f.svc.Create(ctx, owner, "team", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// Membership insert collides with a concurrent join of the same code.
	svc := NewGroupService(&racedJoinGroupRepo{f.groups}, f.tasks, f.points, nil)
	if _, err := svc.Join(ctx, bob, g.InvitationCode); !errors.Is(err, ErrAlreadyMember) {
		t.Fatalf("raced join: expected ErrAlreadyMember, got %v", err)
	}
}

func TestGroupGetRequiresAccess(t *testing.T) {
	f := newGroupFixture()
	ctx := context.Background()
	owner := f.user(t, "alice")
	stranger := f.user(t, "mallory")

	g, err := f.svc.Create(ctx, owner, "team", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, _, err := f.svc.Get(ctx, g.ID, Requester{ID: owner}); err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if _, _, err := f.svc.Get(ctx, g.ID, Requester{ID: stranger}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("stranger get: expected ErrForbidden, got %v", err)
	}
	if _, _, err := f.svc.Get(ctx, 999, Requester{ID: owner}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing group: expected ErrNotFound, got %v", err)
	}
}

func TestGroupUpdateOwnerOrAdminOnly(t *testing.T) {
	f := newGroupFixture()
	ctx := context.Background()
	owner := f.user(t, "alice")
	bob := f.user(t, "bob")

	g, err := f.svc.Create(ctx, owner, "team", "old")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.svc.Join(ctx, bob, g.InvitationCode); err != nil {
		t.Fatalf("join: %v", err)
	}

	name := "renamed"
	if _, err := f.svc.Update(ctx, g.ID, Requester{ID: bob}, &name, nil); !errors.Is(err, ErrForbidden) {
		t.Fatalf("member update: expected ErrForbidden, got %v", err)
	}
	updated, err := f.svc.Update(ctx, g.ID, Requester{ID: owner}, &name, nil)
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Name != "renamed" || updated.Description != "old" {
		t.Fatalf("partial update broke fields: %+v", updated)
	}
	// Admins may administer groups they do not own.
	desc := "set by admin"
	if _, err := f.svc.Update(ctx, g.ID, Requester{ID: 999, Role: "admin"}, nil, &desc); err != nil {
		t.Fatalf("admin update: %v", err)
	}
}

func TestGroupDeleteCascades(t *testing.T) {
	f := newGroupFixture()
	ctx := context.Background()
	owner := f.user(t, "alice")

	g, err := f.svc.Create(ctx, owner, "team", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	gid := g.ID
	if _, err := f.tasks.Create(ctx, taskIn(owner, &gid)); err != nil {
		t.Fatalf("seed task: %v", err)
	}
	if _, err := f.points.Create(ctx, "note", owner, gid); err != nil {
		t.Fatalf("seed point: %v", err)
	}

	if err := f.svc.Delete(ctx, gid, Requester{ID: owner}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := f.tasks.ListForGroup(ctx, gid); len(got) != 0 {
		t.Fatalf("tasks survived the cascade: %+v", got)
	}
	if got, _ := f.points.ListForGroup(ctx, gid); len(got) != 0 {
		t.Fatalf("points survived the cascade: %+v", got)
	}
	if _, _, err := f.svc.Get(ctx, gid, Requester{ID: owner}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("group should be gone, got %v", err)
	}
}

func TestRemoveMemberRules(t *testing.T) {
	f := newGroupFixture()
	ctx := context.Background()
	owner := f.user(t, "alice")
	bob := f.user(t, "bob")
	carol := f.user(t, "carol")

	g, err := f.svc.Create(ctx, owner, "team", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.svc.Join(ctx, bob, g.InvitationCode); err != nil {
		t.Fatalf("join: %v", err)
	}

	// The owner can never be the target, even for an admin.
	if _, _, err := f.svc.RemoveMember(ctx, g.ID, Requester{ID: owner}, owner); !errors.Is(err, ErrOwnerRemoval) {
		t.Fatalf("owner target: expected ErrOwnerRemoval, got %v", err)
	}
	if _, _, err := f.svc.RemoveMember(ctx, g.ID, Requester{ID: 999, Role: "admin"}, owner); !errors.Is(err, ErrOwnerRemoval) {
		t.Fatalf("admin removing owner: expected ErrOwnerRemoval, got %v", err)
	}
	// Only owner/admin may remove.
	if _, _, err := f.svc.RemoveMember(ctx, g.ID, Requester{ID: bob}, bob); !errors.Is(err, ErrForbidden) {
		t.Fatalf("member removing: expected ErrForbidden, got %v", err)
	}
	// Target must currently be a member.
	if _, _, err := f.svc.RemoveMember(ctx, g.ID, Requester{ID: owner}, carol); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("non-member target: expected ErrMemberNotFound, got %v", err)
	}

	// Removal cascades the member's group-scoped tasks only.
	gid := g.ID
	if _, err := f.tasks.Create(ctx, taskIn(bob, &gid)); err != nil {
		t.Fatalf("seed group task: %v", err)
	}
	if _, err := f.tasks.Create(ctx, taskIn(bob, nil)); err != nil {
		t.Fatalf("seed personal task: %v", err)
	}
	_, members, err := f.svc.RemoveMember(ctx, g.ID, Requester{ID: owner}, bob)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(members) != 1 || members[0].UserID != owner {
		t.Fatalf("members after removal = %+v", members)
	}
	if got, _ := f.tasks.ListForGroup(ctx, gid); len(got) != 0 {
		t.Fatalf("bob's group tasks should be gone: %+v", got)
	}
	if got, _ := f.tasks.ListPersonal(ctx, bob); len(got) != 1 {
		t.Fatalf("bob's personal task must survive: %+v", got)
	}
}

func TestPointsAccessAndOrder(t *testing.T) {
	f := newGroupFixture()
	ctx := context.Background()
	owner := f.user(t, "alice")
	stranger := f.user(t, "mallory")
	svc := NewPointService(f.points, f.groups)

	g, err := f.svc.Create(ctx, owner, "team", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Add(ctx, g.ID, Requester{ID: stranger}, "hi"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("stranger add: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Add(ctx, g.ID, Requester{ID: owner}, "first"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add(ctx, g.ID, Requester{ID: owner}, "second"); err != nil {
		t.Fatalf("add: %v", err)
	}
	points, err := svc.List(ctx, g.ID, Requester{ID: owner})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(points) != 2 || points[0].Content != "second" {
		t.Fatalf("expected newest first, got %+v", points)
	}
	if _, err := svc.List(ctx, 999, Requester{ID: owner}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing group: expected ErrNotFound, got %v", err)
	}
}
