package forms

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leadforge/leadforge/internal/shared"
)

type memoryFormRepo struct {
	forms  map[int64]Form
	nextID int64
}

func newMemoryFormRepo() *memoryFormRepo {
	return &memoryFormRepo{forms: make(map[int64]Form)}
}

func (r *memoryFormRepo) GetByID(ctx context.Context, id int64) (*Form, error) {
	form, ok := r.forms[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &form, nil
}

func (r *memoryFormRepo) ListByCompany(ctx context.Context, companyID int64) ([]Form, error) {
	var out []Form
	for _, form := range r.forms {
		if form.CompanyID == companyID {
			out = append(out, form)
		}
	}
	return out, nil
}

func (r *memoryFormRepo) Create(ctx context.Context, form Form) (int64, error) {
	r.nextID++
	form.ID = r.nextID
	r.forms[form.ID] = form
	return form.ID, nil
}

func (r *memoryFormRepo) Update(ctx context.Context, form Form) error {
	if _, ok := r.forms[form.ID]; !ok {
		return shared.ErrNotFound
	}
	r.forms[form.ID] = form
	return nil
}

func newFormService(t *testing.T) (*Service, *memoryFormRepo) {
	t.Helper()
	repo := newMemoryFormRepo()
	return NewService(repo, nil, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

var agent = shared.Actor{UserID: 42, CompanyID: 1, Email: "agent@acme.test"}

const validLayout = `{"fields": [
	{"field_name": "name", "label": "Name", "type": "text", "required": true},
	{"field_name": "age", "label": "Age", "type": "number", "required": false}
]}`

func TestCreateFormParsesLayout(t *testing.T) {
	svc, repo := newFormService(t)

	form, err := svc.Create(context.Background(), agent, CreateFormRequest{
		Name:   "Lead intake",
		Layout: json.RawMessage(validLayout),
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), form.CompanyID)
	require.Equal(t, int64(42), form.CreatedBy)
	require.Len(t, repo.forms, 1)
}

func TestCreateFormRejectsMalformedLayout(t *testing.T) {
	svc, repo := newFormService(t)

	_, err := svc.Create(context.Background(), agent, CreateFormRequest{
		Name:   "Broken",
		Layout: json.RawMessage(`{"fields": [{"type": "text"}]}`),
	})
	require.ErrorIs(t, err, shared.ErrStructural)
	require.Empty(t, repo.forms)
}

func TestCreateFormRequiresAuth(t *testing.T) {
	svc, _ := newFormService(t)
	_, err := svc.Create(context.Background(), shared.Actor{}, CreateFormRequest{
		Name:   "X",
		Layout: json.RawMessage(validLayout),
	})
	require.ErrorIs(t, err, shared.ErrUnauthenticated)
}

func TestUpdateFormScopedToCompany(t *testing.T) {
	svc, repo := newFormService(t)
	repo.forms[5] = Form{ID: 5, CompanyID: 2, Name: "Other", Layout: json.RawMessage(validLayout)}
	repo.nextID = 5

	_, err := svc.Update(context.Background(), agent, 5, UpdateFormRequest{
		Name:   "Hijack",
		Layout: json.RawMessage(validLayout),
	})
	require.ErrorIs(t, err, shared.ErrForbidden)
}

func TestUpdateFormReplacesNameAndLayout(t *testing.T) {
	svc, _ := newFormService(t)
	created, err := svc.Create(context.Background(), agent, CreateFormRequest{
		Name:   "Lead intake",
		Layout: json.RawMessage(validLayout),
	})
	require.NoError(t, err)

	next := `{"fields": [{"field_name": "email", "label": "Email", "type": "email", "required": true}]}`
	updated, err := svc.Update(context.Background(), agent, created.ID, UpdateFormRequest{
		Name:   "Lead intake v2",
		Layout: json.RawMessage(next),
	})
	require.NoError(t, err)
	require.Equal(t, "Lead intake v2", updated.Name)
	require.JSONEq(t, next, string(updated.Layout))
}

func TestGetAndListScopedToCompany(t *testing.T) {
	svc, repo := newFormService(t)
	repo.forms[1] = Form{ID: 1, CompanyID: 1, Name: "Mine"}
	repo.forms[2] = Form{ID: 2, CompanyID: 2, Name: "Theirs"}

	_, err := svc.Get(context.Background(), agent, 2)
	require.ErrorIs(t, err, shared.ErrForbidden)

	forms, err := svc.List(context.Background(), agent)
	require.NoError(t, err)
	require.Len(t, forms, 1)
	require.Equal(t, "Mine", forms[0].Name)
}
