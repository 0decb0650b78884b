package calendar

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/leadforge/leadforge/internal/auth"
	"github.com/leadforge/leadforge/internal/platform/httpx"
	"github.com/leadforge/leadforge/internal/shared"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
	clock   *shared.DisplayClock
}

func NewHandler(logger *slog.Logger, service *Service, clock *shared.DisplayClock) *Handler {
	return &Handler{logger: logger, service: service, clock: clock}
}

// FormData returns the choice sets and attendee candidates for the event
// creation form.
func (h *Handler) FormData(w http.ResponseWriter, r *http.Request) {
	actor := shared.ActorFromContext(r.Context())
	data, err := h.service.FormData(r.Context(), actor)
	if err != nil {
		h.logger.Error("calendar form data failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	users := make([]auth.UserView, 0, len(data.Users))
	for _, user := range data.Users {
		users = append(users, auth.NewUserView(user, nil, h.clock))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"formsInputData": map[string]any{
			"recurringChoices": data.RecurringChoices,
			"eventTypeChoices": data.EventTypeChoices,
			"users":            users,
		},
	})
}

// List returns the actor's events, optionally filtered by company.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var companyID int64
	if raw := r.URL.Query().Get("company"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "Invalid company filter")
			return
		}
		companyID = id
	}
	actor := shared.ActorFromContext(r.Context())
	events, err := h.service.ListEvents(r.Context(), actor, companyID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	views := make([]EventView, 0, len(events))
	for _, event := range events {
		views = append(views, NewEventView(event, h.clock))
	}
	httpx.JSON(w, http.StatusOK, views)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}
	actor := shared.ActorFromContext(r.Context())
	event, err := h.service.Create(r.Context(), actor, req)
	if err != nil {
		h.logger.Error("create event failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, NewEventView(*event, h.clock))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateEventRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}
	actor := shared.ActorFromContext(r.Context())
	event, err := h.service.Update(r.Context(), actor, req)
	if err != nil {
		h.logger.Error("update event failed", "error", err, "id", req.ID)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, NewEventView(*event, h.clock))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	var req DeleteEventRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}
	actor := shared.ActorFromContext(r.Context())
	if err := h.service.Delete(r.Context(), actor, req.ID); err != nil {
		h.logger.Error("delete event failed", "error", err, "id", req.ID)
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
