package company

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leadforge/leadforge/internal/auth"
	"github.com/leadforge/leadforge/internal/shared"
)

type memoryCompanyRepo struct {
	companies map[int64]Company
	nextID    int64
}

func newMemoryCompanyRepo() *memoryCompanyRepo {
	return &memoryCompanyRepo{companies: make(map[int64]Company)}
}

func (r *memoryCompanyRepo) GetByID(ctx context.Context, id int64) (*Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &c, nil
}

func (r *memoryCompanyRepo) List(ctx context.Context) ([]Company, error) {
	var out []Company
	for _, c := range r.companies {
		out = append(out, c)
	}
	return out, nil
}

func (r *memoryCompanyRepo) Create(ctx context.Context, c Company) (int64, error) {
	r.nextID++
	c.ID = r.nextID
	r.companies[c.ID] = c
	return c.ID, nil
}

func (r *memoryCompanyRepo) Update(ctx context.Context, c Company) error {
	if _, ok := r.companies[c.ID]; !ok {
		return shared.ErrNotFound
	}
	r.companies[c.ID] = c
	return nil
}

type staticUserDirectory struct {
	users []auth.User
}

func (d *staticUserDirectory) ListByCompany(ctx context.Context, companyID int64) ([]auth.User, error) {
	var out []auth.User
	for _, user := range d.users {
		if user.CompanyID == companyID {
			out = append(out, user)
		}
	}
	return out, nil
}

func newCompanyService(t *testing.T) (*Service, *memoryCompanyRepo) {
	t.Helper()
	repo := newMemoryCompanyRepo()
	users := &staticUserDirectory{users: []auth.User{
		{ID: 1, CompanyID: 1, Email: "a@acme.test"},
		{ID: 2, CompanyID: 1, Email: "b@acme.test"},
		{ID: 3, CompanyID: 2, Email: "c@other.test"},
	}}
	return NewService(repo, users, nil, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

var member = shared.Actor{UserID: 1, CompanyID: 1}

func TestCreateAndGetCompany(t *testing.T) {
	svc, _ := newCompanyService(t)

	created, err := svc.Create(context.Background(), member, CreateCompanyRequest{Name: "Acme"})
	require.NoError(t, err)
	require.Equal(t, "Acme", created.Name)
	require.Equal(t, int64(1), created.CreatedBy)

	got, err := svc.Get(context.Background(), member, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
}

func TestUpdateCompanyMembersOnly(t *testing.T) {
	svc, repo := newCompanyService(t)
	repo.companies[2] = Company{ID: 2, Name: "Other"}
	repo.nextID = 2

	_, err := svc.Update(context.Background(), member, 2, UpdateCompanyRequest{Name: "Hijack"})
	require.ErrorIs(t, err, shared.ErrForbidden)

	repo.companies[1] = Company{ID: 1, Name: "Acme"}
	updated, err := svc.Update(context.Background(), member, 1, UpdateCompanyRequest{Name: "Acme Inc"})
	require.NoError(t, err)
	require.Equal(t, "Acme Inc", updated.Name)
}

func TestListUsersScopedToOwnCompany(t *testing.T) {
	svc, _ := newCompanyService(t)

	users, err := svc.ListUsers(context.Background(), member, 1)
	require.NoError(t, err)
	require.Len(t, users, 2)

	_, err = svc.ListUsers(context.Background(), member, 2)
	require.ErrorIs(t, err, shared.ErrForbidden)
}

func TestGetRef(t *testing.T) {
	svc, repo := newCompanyService(t)
	repo.companies[1] = Company{ID: 1, Name: "Acme"}

	ref, err := svc.GetRef(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, &auth.CompanyRef{ID: 1, Name: "Acme"}, ref)

	_, err = svc.GetRef(context.Background(), 9)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCompanyRequiresAuth(t *testing.T) {
	svc, _ := newCompanyService(t)
	_, err := svc.List(context.Background(), shared.Actor{})
	require.ErrorIs(t, err, shared.ErrUnauthenticated)
}
