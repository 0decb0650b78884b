package calendar

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leadforge/leadforge/internal/auth"
	"github.com/leadforge/leadforge/internal/shared"
)

type memoryEventRepo struct {
	events map[int64]Event
	nextID int64
}

func newMemoryEventRepo() *memoryEventRepo {
	return &memoryEventRepo{events: make(map[int64]Event)}
}

func (r *memoryEventRepo) GetByID(ctx context.Context, id int64) (*Event, error) {
	event, ok := r.events[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &event, nil
}

func (r *memoryEventRepo) ListForUser(ctx context.Context, userID, companyID int64) ([]Event, error) {
	var out []Event
	for _, event := range r.events {
		if companyID != 0 && event.CompanyID != companyID {
			continue
		}
		for _, attendee := range event.AttendeeIDs {
			if attendee == userID {
				out = append(out, event)
				break
			}
		}
	}
	return out, nil
}

func (r *memoryEventRepo) Create(ctx context.Context, event Event) (*Event, error) {
	r.nextID++
	event.ID = r.nextID
	r.events[event.ID] = event
	return &event, nil
}

func (r *memoryEventRepo) Update(ctx context.Context, event Event, replaceAttendees bool) error {
	existing, ok := r.events[event.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if !replaceAttendees {
		event.AttendeeIDs = existing.AttendeeIDs
	}
	r.events[event.ID] = event
	return nil
}

func (r *memoryEventRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.events[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.events, id)
	return nil
}

type staticUsers struct{}

func (staticUsers) ListByCompany(ctx context.Context, companyID int64) ([]auth.User, error) {
	return []auth.User{
		{ID: 1, CompanyID: companyID, Email: "a@acme.test"},
		{ID: 2, CompanyID: companyID, Email: "b@acme.test"},
	}, nil
}

func newCalendarService(t *testing.T) (*Service, *memoryEventRepo) {
	t.Helper()
	repo := newMemoryEventRepo()
	clock := shared.NewDisplayClock("Asia/Kolkata")
	svc := NewService(repo, staticUsers{}, nil, clock, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return svc, repo
}

var organizer = shared.Actor{UserID: 1, CompanyID: 1}

func validCreateRequest() CreateEventRequest {
	return CreateEventRequest{
		Name:      "Quarterly review",
		EventType: "TMTG",
		StartTime: "15-09-2026 10:00 AM",
		EndTime:   "15-09-2026 11:30 AM",
		Users:     []int64{1, 2},
	}
}

func TestCreateEvent(t *testing.T) {
	svc, _ := newCalendarService(t)

	event, err := svc.Create(context.Background(), organizer, validCreateRequest())
	require.NoError(t, err)
	require.Equal(t, int64(1), event.CompanyID)
	require.Equal(t, "TMTG", event.EventType)
	require.Equal(t, "NONE", event.Recurrence)
	require.Equal(t, []int64{1, 2}, event.AttendeeIDs)
	require.True(t, event.EndTime.After(event.StartTime))
}

func TestCreateEventMissingFields(t *testing.T) {
	svc, _ := newCalendarService(t)

	req := validCreateRequest()
	req.Name = ""
	_, err := svc.Create(context.Background(), organizer, req)
	require.ErrorIs(t, err, shared.ErrStructural)
	require.EqualError(t, err, "Name, start_time, and end_time are required.")
}

func TestCreateEventBadTimeFormat(t *testing.T) {
	svc, _ := newCalendarService(t)

	req := validCreateRequest()
	req.StartTime = "2026-09-15T10:00:00Z"
	_, err := svc.Create(context.Background(), organizer, req)
	require.ErrorIs(t, err, shared.ErrStructural)
	require.EqualError(t, err, "Invalid date format. Use 'DD-MM-YYYY HH:MM AM/PM'.")
}

func TestCreateEventUnknownChoices(t *testing.T) {
	svc, _ := newCalendarService(t)

	req := validCreateRequest()
	req.EventType = "XXXX"
	_, err := svc.Create(context.Background(), organizer, req)
	require.ErrorIs(t, err, shared.ErrStructural)

	req = validCreateRequest()
	req.Recurrence = "HOUR"
	_, err = svc.Create(context.Background(), organizer, req)
	require.ErrorIs(t, err, shared.ErrStructural)
}

func TestListEvents(t *testing.T) {
	svc, _ := newCalendarService(t)

	_, err := svc.ListEvents(context.Background(), organizer, 0)
	require.ErrorIs(t, err, shared.ErrNotFound)

	_, err = svc.Create(context.Background(), organizer, validCreateRequest())
	require.NoError(t, err)

	events, err := svc.ListEvents(context.Background(), organizer, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)

	// Attendee who is not the creator still sees the event.
	attendee := shared.Actor{UserID: 2, CompanyID: 1}
	events, err = svc.ListEvents(context.Background(), attendee, 1)
	require.NoError(t, err)
	require.Len(t, events, 1)

	_, err = svc.ListEvents(context.Background(), attendee, 99)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestUpdateEventCreatorOnly(t *testing.T) {
	svc, _ := newCalendarService(t)
	created, err := svc.Create(context.Background(), organizer, validCreateRequest())
	require.NoError(t, err)

	name := "Renamed"
	attendee := shared.Actor{UserID: 2, CompanyID: 1}
	_, err = svc.Update(context.Background(), attendee, UpdateEventRequest{ID: created.ID, Name: &name})
	require.ErrorIs(t, err, shared.ErrForbidden)

	outsider := shared.Actor{UserID: 9, CompanyID: 2}
	_, err = svc.Update(context.Background(), outsider, UpdateEventRequest{ID: created.ID, Name: &name})
	require.ErrorIs(t, err, shared.ErrForbidden)

	updated, err := svc.Update(context.Background(), organizer, UpdateEventRequest{ID: created.ID, Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Name)
	require.Equal(t, created.StartTime, updated.StartTime)
	require.Equal(t, []int64{1, 2}, updated.AttendeeIDs, "attendees untouched without a users list")
}

func TestUpdateEventReplacesAttendees(t *testing.T) {
	svc, _ := newCalendarService(t)
	created, err := svc.Create(context.Background(), organizer, validCreateRequest())
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), organizer, UpdateEventRequest{
		ID:    created.ID,
		Users: []int64{1},
	})
	require.NoError(t, err)
	require.Equal(t, []int64{1}, updated.AttendeeIDs)
}

func TestUpdateEventMissingID(t *testing.T) {
	svc, _ := newCalendarService(t)
	_, err := svc.Update(context.Background(), organizer, UpdateEventRequest{})
	require.ErrorIs(t, err, shared.ErrStructural)
	require.EqualError(t, err, "Event ID is required.")
}

func TestDeleteEvent(t *testing.T) {
	svc, repo := newCalendarService(t)
	created, err := svc.Create(context.Background(), organizer, validCreateRequest())
	require.NoError(t, err)

	attendee := shared.Actor{UserID: 2, CompanyID: 1}
	require.ErrorIs(t, svc.Delete(context.Background(), attendee, created.ID), shared.ErrForbidden)

	require.NoError(t, svc.Delete(context.Background(), organizer, created.ID))
	require.Empty(t, repo.events)

	require.ErrorIs(t, svc.Delete(context.Background(), organizer, created.ID), shared.ErrNotFound)
}

func TestFormData(t *testing.T) {
	svc, _ := newCalendarService(t)

	data, err := svc.FormData(context.Background(), organizer)
	require.NoError(t, err)
	require.Len(t, data.EventTypeChoices, 22)
	require.Len(t, data.RecurringChoices, 5)
	require.Len(t, data.Users, 2)

	_, err = svc.FormData(context.Background(), shared.Actor{})
	require.ErrorIs(t, err, shared.ErrUnauthenticated)
}
