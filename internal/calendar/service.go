package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/leadforge/leadforge/internal/auth"
	"github.com/leadforge/leadforge/internal/shared"
)

// Auditor records mutations for the audit trail.
type Auditor interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// UserDirectory lists the accounts attached to a company.
type UserDirectory interface {
	ListByCompany(ctx context.Context, companyID int64) ([]auth.User, error)
}

// FormInputData backs the event creation form: both choice sets plus the
// users available as attendees.
type FormInputData struct {
	RecurringChoices []Choice
	EventTypeChoices []Choice
	Users            []auth.User
}

// Service handles calendar business logic.
type Service struct {
	repo   Repository
	users  UserDirectory
	audit  Auditor
	clock  *shared.DisplayClock
	logger *slog.Logger
}

// NewService builds a Service instance.
func NewService(repo Repository, users UserDirectory, audit Auditor, clock *shared.DisplayClock, logger *slog.Logger) *Service {
	return &Service{repo: repo, users: users, audit: audit, clock: clock, logger: logger}
}

// FormData returns the choice sets and the actor's company members.
func (s *Service) FormData(ctx context.Context, actor shared.Actor) (*FormInputData, error) {
	if !actor.Authenticated() {
		return nil, shared.ErrUnauthenticated
	}
	users, err := s.users.ListByCompany(ctx, actor.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("list company users: %w", err)
	}
	return &FormInputData{
		RecurringChoices: RecurrenceChoices,
		EventTypeChoices: EventTypeChoices,
		Users:            users,
	}, nil
}

// ListEvents returns events the actor attends, optionally narrowed to one
// company. An empty result is reported as not found.
func (s *Service) ListEvents(ctx context.Context, actor shared.Actor, companyID int64) ([]Event, error) {
	if !actor.Authenticated() {
		return nil, shared.ErrUnauthenticated
	}
	events, err := s.repo.ListForUser(ctx, actor.UserID, companyID)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, shared.ErrNotFound
	}
	return events, nil
}

// Create stores a new event in the actor's company.
func (s *Service) Create(ctx context.Context, actor shared.Actor, req CreateEventRequest) (*Event, error) {
	if !actor.Authenticated() {
		return nil, shared.ErrUnauthenticated
	}
	if req.Name == "" || req.StartTime == "" || req.EndTime == "" {
		return nil, shared.Structural("Name, start_time, and end_time are required.")
	}
	start, end, err := s.parseWindow(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	eventType, recurrence, err := normalizeChoices(req.EventType, req.Recurrence)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	event, err := s.repo.Create(ctx, Event{
		CompanyID:   actor.CompanyID,
		Name:        req.Name,
		Description: req.Description,
		EventType:   eventType,
		StartTime:   start,
		EndTime:     end,
		IsAllDay:    req.IsAllDay,
		Location:    req.Location,
		MeetingURL:  req.MeetingURL,
		Recurrence:  recurrence,
		AttendeeIDs: req.Users,
		CreatedBy:   actor.UserID,
		CreatedAt:   now,
		UpdatedBy:   actor.UserID,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.recordAudit(ctx, actor, "event.create", event.ID)
	return event, nil
}

// Update applies a partial update. Only the creator may change an event, and
// only within their own company. A non-empty user list replaces the attendee
// set wholesale.
func (s *Service) Update(ctx context.Context, actor shared.Actor, req UpdateEventRequest) (*Event, error) {
	if !actor.Authenticated() {
		return nil, shared.ErrUnauthenticated
	}
	if req.ID == 0 {
		return nil, shared.Structural("Event ID is required.")
	}
	event, err := s.guardedEvent(ctx, actor, req.ID)
	if err != nil {
		return nil, err
	}

	applyString(&event.Name, req.Name)
	applyString(&event.Description, req.Description)
	applyString(&event.EventType, req.EventType)
	applyString(&event.Location, req.Location)
	applyString(&event.MeetingURL, req.MeetingURL)
	applyString(&event.Recurrence, req.Recurrence)
	if req.IsAllDay != nil {
		event.IsAllDay = *req.IsAllDay
	}
	if event.Name == "" {
		return nil, shared.Structural("Name, start_time, and end_time are required.")
	}
	if req.StartTime != nil || req.EndTime != nil {
		startRaw := s.clock.Format(event.StartTime)
		endRaw := s.clock.Format(event.EndTime)
		if req.StartTime != nil {
			startRaw = *req.StartTime
		}
		if req.EndTime != nil {
			endRaw = *req.EndTime
		}
		start, end, err := s.parseWindow(startRaw, endRaw)
		if err != nil {
			return nil, err
		}
		event.StartTime, event.EndTime = start, end
	}
	if _, _, err := normalizeChoices(event.EventType, event.Recurrence); err != nil {
		return nil, err
	}

	replaceAttendees := len(req.Users) > 0
	if replaceAttendees {
		event.AttendeeIDs = req.Users
	}
	event.UpdatedBy = actor.UserID
	event.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, *event, replaceAttendees); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	s.recordAudit(ctx, actor, "event.update", event.ID)
	return s.repo.GetByID(ctx, event.ID)
}

// Delete removes an event. Creator only, own company only.
func (s *Service) Delete(ctx context.Context, actor shared.Actor, id int64) error {
	if !actor.Authenticated() {
		return shared.ErrUnauthenticated
	}
	if id == 0 {
		return shared.Structural("Event ID is required.")
	}
	if _, err := s.guardedEvent(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	s.recordAudit(ctx, actor, "event.delete", id)
	return nil
}

func (s *Service) guardedEvent(ctx context.Context, actor shared.Actor, id int64) (*Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.CompanyID != actor.CompanyID {
		return nil, shared.ErrForbidden
	}
	if event.CreatedBy != actor.UserID {
		return nil, shared.ErrForbidden
	}
	return event, nil
}

func (s *Service) parseWindow(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := s.clock.Parse(startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, shared.Structural("Invalid date format. Use 'DD-MM-YYYY HH:MM AM/PM'.")
	}
	end, err := s.clock.Parse(endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, shared.Structural("Invalid date format. Use 'DD-MM-YYYY HH:MM AM/PM'.")
	}
	return start, end, nil
}

func normalizeChoices(eventType, recurrence string) (string, string, error) {
	if eventType == "" {
		eventType = "NONE"
	}
	if recurrence == "" {
		recurrence = "NONE"
	}
	if !ValidEventType(eventType) {
		return "", "", shared.Structural("Invalid event type.")
	}
	if !ValidRecurrence(recurrence) {
		return "", "", shared.Structural("Invalid recurrence.")
	}
	return eventType, recurrence, nil
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func (s *Service) recordAudit(ctx context.Context, actor shared.Actor, action string, id int64) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actor.UserID,
		Action:   action,
		Entity:   "event",
		EntityID: strconv.FormatInt(id, 10),
	}); err != nil {
		s.logger.Warn("audit record failed", slog.Any("error", err))
	}
}
