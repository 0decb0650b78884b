package company

import (
	"time"

	"github.com/leadforge/leadforge/internal/shared"
)

// Company is a tenant. Every form, submission, and event hangs off one.
type Company struct {
	ID        int64
	Name      string
	CreatedBy int64
	CreatedAt time.Time
	UpdatedBy int64
	UpdatedAt time.Time
}

// View is the client-facing representation of a company.
type View struct {
	ID         int64  `json:"id"`
	Name       string `json:"company_name"`
	CreateBy   int64  `json:"create_by"`
	CreateDate string `json:"create_date"`
	UpdateBy   int64  `json:"update_by"`
	UpdateDate string `json:"update_date"`
}

// NewView formats a company for clients.
func NewView(c Company, clock *shared.DisplayClock) View {
	return View{
		ID:         c.ID,
		Name:       c.Name,
		CreateBy:   c.CreatedBy,
		CreateDate: clock.Format(c.CreatedAt),
		UpdateBy:   c.UpdatedBy,
		UpdateDate: clock.Format(c.UpdatedAt),
	}
}
