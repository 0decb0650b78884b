package forms

import (
	"encoding/json"

	"github.com/leadforge/leadforge/internal/shared"
)

type CreateFormRequest struct {
	Name   string          `json:"name" validate:"required,max=50"`
	Layout json.RawMessage `json:"layout" validate:"required"`
}

type UpdateFormRequest struct {
	Name   string          `json:"name" validate:"required,max=50"`
	Layout json.RawMessage `json:"layout" validate:"required"`
}

// FormView is the client-facing representation of a form.
type FormView struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Layout     json.RawMessage `json:"layout"`
	CreateBy   int64           `json:"create_by"`
	CreateDate string          `json:"create_date"`
	UpdateBy   int64           `json:"update_by"`
	UpdateDate string          `json:"update_date"`
}

// NewFormView formats a form for clients using the fixed display zone.
func NewFormView(form Form, clock *shared.DisplayClock) FormView {
	return FormView{
		ID:         form.ID,
		Name:       form.Name,
		Layout:     form.Layout,
		CreateBy:   form.CreatedBy,
		CreateDate: clock.Format(form.CreatedAt),
		UpdateBy:   form.UpdatedBy,
		UpdateDate: clock.Format(form.UpdatedAt),
	}
}
