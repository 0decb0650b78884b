package calendar

import (
	"time"

	"github.com/leadforge/leadforge/internal/shared"
)

// Event is a company calendar entry. AttendeeIDs holds the users invited to
// it; recurrence marks the repeat interval without materializing occurrences.
type Event struct {
	ID          int64
	CompanyID   int64
	Name        string
	Description string
	EventType   string
	StartTime   time.Time
	EndTime     time.Time
	IsAllDay    bool
	Location    string
	MeetingURL  string
	Recurrence  string
	AttendeeIDs []int64
	CreatedBy   int64
	CreatedAt   time.Time
	UpdatedBy   int64
	UpdatedAt   time.Time
}

// EventView is the client-facing representation of an event. All times are
// rendered in the fixed display zone as DD-MM-YYYY hh:mm AM/PM.
type EventView struct {
	ID          int64   `json:"id"`
	Company     int64   `json:"company"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	EventType   string  `json:"event_type"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	IsAllDay    bool    `json:"is_all_day"`
	Location    string  `json:"location"`
	MeetingURL  string  `json:"meeting_url"`
	Recurrence  string  `json:"recurrence"`
	Users       []int64 `json:"users"`
	CreateBy    int64   `json:"create_by"`
	CreateDate  string  `json:"create_date"`
	UpdateBy    int64   `json:"update_by"`
	UpdateDate  string  `json:"update_date"`
}

// NewEventView formats an event for clients.
func NewEventView(e Event, clock *shared.DisplayClock) EventView {
	users := e.AttendeeIDs
	if users == nil {
		users = []int64{}
	}
	return EventView{
		ID:          e.ID,
		Company:     e.CompanyID,
		Name:        e.Name,
		Description: e.Description,
		EventType:   e.EventType,
		StartTime:   clock.Format(e.StartTime),
		EndTime:     clock.Format(e.EndTime),
		IsAllDay:    e.IsAllDay,
		Location:    e.Location,
		MeetingURL:  e.MeetingURL,
		Recurrence:  e.Recurrence,
		Users:       users,
		CreateBy:    e.CreatedBy,
		CreateDate:  clock.Format(e.CreatedAt),
		UpdateBy:    e.UpdatedBy,
		UpdateDate:  clock.Format(e.UpdatedAt),
	}
}
