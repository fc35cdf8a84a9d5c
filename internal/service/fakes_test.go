package service

import (
	"context"
	"sort"
	"time"

	dom "github.com/Diarra45/projet-Nan/internal/domain"

	"github.com/jackc/pgx/v5"
)

// In-memory repo fakes. Not safe for concurrent use; tests are serial.

type fakeUserRepo struct {
	nextID int64
	users  map[int64]dom.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[int64]dom.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, username, email, hash string) (dom.User, error) {
	u := dom.User{ID: r.nextID, Username: username, Email: email, PasswordHash: hash, CreatedAt: time.Now()}
	r.users[u.ID] = u
	r.nextID++
	return u, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (dom.User, error) {
	u, ok := r.users[id]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (dom.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return dom.User{}, pgx.ErrNoRows
}

func (r *fakeUserRepo) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

type fakeAdminRepo struct {
	admins map[int64]dom.Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: map[int64]dom.Admin{}}
}

func (r *fakeAdminRepo) GetByID(_ context.Context, id int64) (dom.Admin, error) {
	a, ok := r.admins[id]
	if !ok {
		return dom.Admin{}, pgx.ErrNoRows
	}
	return a, nil
}

type membership struct {
	groupID, userID int64
	joinedAt        time.Time
}

type fakeGroupRepo struct {
	nextID  int64
	groups  map[int64]dom.Group
	members []membership
	users   *fakeUserRepo
}

func newFakeGroupRepo(users *fakeUserRepo) *fakeGroupRepo {
	return &fakeGroupRepo{nextID: 1, groups: map[int64]dom.Group{}, users: users}
}

func (r *fakeGroupRepo) Create(_ context.Context, name, description string, ownerID int64, code string) (dom.Group, error) {
	g := dom.Group{ID: r.nextID, Name: name, Description: description, OwnerID: ownerID, InvitationCode: code, CreatedAt: time.Now()}
	r.groups[g.ID] = g
	r.members = append(r.members, membership{groupID: g.ID, userID: ownerID, joinedAt: time.Now()})
	r.nextID++
	return g, nil
}

func (r *fakeGroupRepo) GetByID(_ context.Context, id int64) (dom.Group, error) {
	g, ok := r.groups[id]
	if !ok {
		return dom.Group{}, pgx.ErrNoRows
	}
	return g, nil
}

func (r *fakeGroupRepo) GetByInvitationCode(_ context.Context, code string) (dom.Group, error) {
	for _, g := range r.groups {
		if g.InvitationCode == code {
			return g, nil
		}
	}
	return dom.Group{}, pgx.ErrNoRows
}

func (r *fakeGroupRepo) Update(_ context.Context, id int64, name, description string) (dom.Group, error) {
	g, ok := r.groups[id]
	if !ok {
		return dom.Group{}, pgx.ErrNoRows
	}
	g.Name, g.Description = name, description
	r.groups[id] = g
	return g, nil
}

func (r *fakeGroupRepo) Delete(_ context.Context, id int64) error {
	delete(r.groups, id)
	kept := r.members[:0]
	for _, m := range r.members {
		if m.groupID != id {
			kept = append(kept, m)
		}
	}
	r.members = kept
	return nil
}

func (r *fakeGroupRepo) ListForUser(_ context.Context, userID int64) ([]dom.Group, error) {
	var out []dom.Group
	for _, m := range r.members {
		if m.userID == userID {
			if g, ok := r.groups[m.groupID]; ok {
				out = append(out, g)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeGroupRepo) IsMember(_ context.Context, groupID, userID int64) (bool, error) {
	for _, m := range r.members {
		if m.groupID == groupID && m.userID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeGroupRepo) AddMember(_ context.Context, groupID, userID int64) error {
	r.members = append(r.members, membership{groupID: groupID, userID: userID, joinedAt: time.Now()})
	return nil
}

func (r *fakeGroupRepo) RemoveMember(_ context.Context, groupID, userID int64) (bool, error) {
	for i, m := range r.members {
		if m.groupID == groupID && m.userID == userID {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeGroupRepo) ListMembers(_ context.Context, groupID int64) ([]dom.Member, error) {
	var out []dom.Member
	for _, m := range r.members {
		if m.groupID != groupID {
			continue
		}
		entry := dom.Member{UserID: m.userID, JoinedAt: m.joinedAt}
		if r.users != nil {
			if u, ok := r.users.users[m.userID]; ok {
				entry.Username, entry.Email = u.Username, u.Email
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

type fakeTaskRepo struct {
	nextID int64
	tasks  map[int64]dom.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{nextID: 1, tasks: map[int64]dom.Task{}}
}

func (r *fakeTaskRepo) Create(_ context.Context, t dom.Task) (dom.Task, error) {
	t.ID = r.nextID
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	r.tasks[t.ID] = t
	r.nextID++
	return t, nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id int64) (dom.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return dom.Task{}, pgx.ErrNoRows
	}
	return t, nil
}

func (r *fakeTaskRepo) ListForUser(_ context.Context, userID int64) ([]dom.Task, error) {
	return r.filter(func(t dom.Task) bool { return t.UserID == userID }), nil
}

func (r *fakeTaskRepo) ListPersonal(_ context.Context, userID int64) ([]dom.Task, error) {
	return r.filter(func(t dom.Task) bool { return t.UserID == userID && t.GroupID == nil }), nil
}

func (r *fakeTaskRepo) ListForGroup(_ context.Context, groupID int64) ([]dom.Task, error) {
	return r.filter(func(t dom.Task) bool { return t.GroupID != nil && *t.GroupID == groupID }), nil
}

func (r *fakeTaskRepo) Update(_ context.Context, id int64, patch dom.Task) (dom.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return dom.Task{}, pgx.ErrNoRows
	}
	t.Title, t.Description, t.Status, t.Deadline = patch.Title, patch.Description, patch.Status, patch.Deadline
	t.UpdatedAt = time.Now()
	r.tasks[id] = t
	return t, nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id int64) error {
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) DeleteForGroup(_ context.Context, groupID int64) error {
	for id, t := range r.tasks {
		if t.GroupID != nil && *t.GroupID == groupID {
			delete(r.tasks, id)
		}
	}
	return nil
}

func (r *fakeTaskRepo) DeleteForUserInGroup(_ context.Context, userID, groupID int64) error {
	for id, t := range r.tasks {
		if t.UserID == userID && t.GroupID != nil && *t.GroupID == groupID {
			delete(r.tasks, id)
		}
	}
	return nil
}

func (r *fakeTaskRepo) filter(keep func(dom.Task) bool) []dom.Task {
	var out []dom.Task
	for _, t := range r.tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakePointRepo struct {
	nextID int64
	points map[int64]dom.Point
}

func newFakePointRepo() *fakePointRepo {
	return &fakePointRepo{nextID: 1, points: map[int64]dom.Point{}}
}

func (r *fakePointRepo) Create(_ context.Context, content string, userID, groupID int64) (dom.Point, error) {
	p := dom.Point{ID: r.nextID, Content: content, UserID: userID, GroupID: groupID, CreatedAt: time.Now()}
	r.points[p.ID] = p
	r.nextID++
	return p, nil
}

func (r *fakePointRepo) ListForGroup(_ context.Context, groupID int64) ([]dom.Point, error) {
	var out []dom.Point
	for _, p := range r.points {
		if p.GroupID == groupID {
			out = append(out, p)
		}
	}
	// Newest first, like the PG implementation.
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakePointRepo) DeleteForGroup(_ context.Context, groupID int64) error {
	for id, p := range r.points {
		if p.GroupID == groupID {
			delete(r.points, id)
		}
	}
	return nil
}
