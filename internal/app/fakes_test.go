package app

import (
	"context"
	"fmt"

	"taskmanager-api/internal/domain"
	"taskmanager-api/internal/domain/project"
	"taskmanager-api/internal/domain/role"
	"taskmanager-api/internal/domain/task"
	"taskmanager-api/internal/domain/user"
	"taskmanager-api/internal/ports"
)

// In-memory port fakes for service tests. Each fake records calls so tests
// can assert ordering properties (e.g. that a declined sign-up never reaches
// Save).

type fakeUserRepo struct {
	users  map[string]*user.User
	nextID int64

	saveCalls    int
	findErr      error
	saveErr      error
	findByIDErr  error
	findAllUsers []user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*user.User), nextID: 1}
}

func (f *fakeUserRepo) add(u user.User) {
	if u.ID == 0 {
		u.ID = f.nextID
	}
	if u.ID >= f.nextID {
		f.nextID = u.ID + 1
	}
	f.users[u.Username] = &u
}

func (f *fakeUserRepo) FindByID(_ context.Context, id int64) (*user.User, error) {
	if f.findByIDErr != nil {
		return nil, f.findByIDErr
	}
	for _, u := range f.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*user.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.users[username]
	if !ok {
		return nil, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindAll(_ context.Context) ([]user.User, error) {
	if f.findAllUsers != nil {
		return f.findAllUsers, nil
	}
	all := make([]user.User, 0, len(f.users))
	for _, u := range f.users {
		all = append(all, *u)
	}
	return all, nil
}

func (f *fakeUserRepo) Save(_ context.Context, u *user.User) (*user.User, error) {
	f.saveCalls++
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	if _, ok := f.users[u.Username]; ok {
		return nil, fmt.Errorf("username %q: %w", u.Username, domain.ErrConflict)
	}
	cp := *u
	cp.ID = f.nextID
	f.nextID++
	f.users[u.Username] = &cp
	out := cp
	return &out, nil
}

type fakeRoleRepo struct {
	roles   map[string]role.Role
	findErr error
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: map[string]role.Role{
		role.User:  {ID: 1, Name: role.User},
		role.Admin: {ID: 2, Name: role.Admin},
	}}
}

func (f *fakeRoleRepo) FindByName(_ context.Context, name string) (*role.Role, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	r, ok := f.roles[name]
	if !ok {
		return nil, fmt.Errorf("role %q: %w", name, domain.ErrNotFound)
	}
	return &r, nil
}

// fakeHasher marks hashes with a prefix so tests can tell hash from
// plaintext without paying bcrypt cost.
type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) {
	return "hashed:" + plain, nil
}

func (fakeHasher) Compare(hashed, plain string) error {
	if hashed != "hashed:"+plain {
		return fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	return nil
}

type fakeTokens struct {
	issued   []string
	issueErr error
}

func (f *fakeTokens) Issue(username string, roles []string) (string, error) {
	if f.issueErr != nil {
		return "", f.issueErr
	}
	token := fmt.Sprintf("token:%s:%v", username, roles)
	f.issued = append(f.issued, token)
	return token, nil
}

func (f *fakeTokens) Verify(string) (*ports.Identity, error) {
	return nil, fmt.Errorf("not implemented: %w", domain.ErrUnauthorized)
}

type fakeProjectRepo struct {
	projects map[int64]*project.Project
	nextID   int64

	deleteCalls int
	findAllErr  error
	saveErr     error
	deleteErr   error
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[int64]*project.Project), nextID: 1}
}

func (f *fakeProjectRepo) add(p project.Project) {
	if p.ID == 0 {
		p.ID = f.nextID
	}
	if p.ID >= f.nextID {
		f.nextID = p.ID + 1
	}
	f.projects[p.ID] = &p
}

func (f *fakeProjectRepo) FindByID(_ context.Context, id int64) (*project.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProjectRepo) FindAll(_ context.Context) ([]project.Project, error) {
	if f.findAllErr != nil {
		return nil, f.findAllErr
	}
	all := make([]project.Project, 0, len(f.projects))
	for id := int64(1); id < f.nextID; id++ {
		if p, ok := f.projects[id]; ok {
			all = append(all, *p)
		}
	}
	return all, nil
}

func (f *fakeProjectRepo) FindByUserID(_ context.Context, userID int64) ([]project.Project, error) {
	var out []project.Project
	for id := int64(1); id < f.nextID; id++ {
		if p, ok := f.projects[id]; ok && p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProjectRepo) Save(_ context.Context, p *project.Project) (*project.Project, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	cp := *p
	cp.ID = f.nextID
	f.nextID++
	f.projects[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeProjectRepo) Delete(_ context.Context, id int64) error {
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.projects[id]; !ok {
		return fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
	}
	delete(f.projects, id)
	return nil
}

type fakeTaskRepo struct {
	byProject map[int64][]task.Task
	findErr   error
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{byProject: make(map[int64][]task.Task)}
}

func (f *fakeTaskRepo) FindByProjectID(_ context.Context, projectID int64) ([]task.Task, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.byProject[projectID], nil
}
