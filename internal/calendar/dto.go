package calendar

// CreateEventRequest is the payload for a new event. Times arrive as
// DD-MM-YYYY hh:mm AM/PM strings in the display zone.
type CreateEventRequest struct {
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
}

// UpdateEventRequest carries a partial update; nil fields keep the stored
// value. A non-empty Users list replaces the attendee set wholesale.
type UpdateEventRequest struct {
	ID          int64   `json:"id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	EventType   *string `json:"event_type"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	IsAllDay    *bool   `json:"is_all_day"`
	Location    *string `json:"location"`
	MeetingURL  *string `json:"meeting_url"`
	Recurrence  *string `json:"recurrence"`
	Users       []int64 `json:"users"`
}

// DeleteEventRequest identifies the event to remove.
type DeleteEventRequest struct {
	ID int64 `json:"id"`
}
