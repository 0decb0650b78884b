package auth

import (
	"time"

	"github.com/leadforge/leadforge/internal/shared"
)

// User is an account scoped to a company. CompanyID is zero for accounts not
// yet attached to a company.
type User struct {
	ID           int64
	CompanyID    int64
	FirstName    string
	LastName     string
	Email        string
	MobileNumber string
	Photo        string
	PasswordHash string
	IsActive     bool
	IsStaff      bool
	LastLogin    time.Time
}

// UserView is the client-facing representation of an account. The password
// hash never leaves the service.
type UserView struct {
	ID           int64       `json:"id"`
	Company      *CompanyRef `json:"company"`
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name"`
	Email        string      `json:"email"`
	MobileNumber string      `json:"mobile_number"`
	Photo        string      `json:"photo"`
	IsActive     bool        `json:"is_active"`
	IsStaff      bool        `json:"is_staff"`
	LastLogin    string      `json:"last_login"`
}

// CompanyRef is the nested company payload inside a user view.
type CompanyRef struct {
	ID   int64  `json:"id"`
	Name string `json:"company_name"`
}

// NewUserView formats a user for clients.
func NewUserView(user User, company *CompanyRef, clock *shared.DisplayClock) UserView {
	view := UserView{
		ID:           user.ID,
		Company:      company,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		MobileNumber: user.MobileNumber,
		Photo:        user.Photo,
		IsActive:     user.IsActive,
		IsStaff:      user.IsStaff,
	}
	if !user.LastLogin.IsZero() {
		view.LastLogin = clock.Format(user.LastLogin)
	}
	return view
}
