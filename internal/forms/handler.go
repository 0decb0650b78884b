package forms

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/leadforge/leadforge/internal/platform/httpx"
	"github.com/leadforge/leadforge/internal/shared"
)

type Handler struct {
	logger   *slog.Logger
	service  *Service
	clock    *shared.DisplayClock
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service, clock *shared.DisplayClock) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		clock:    clock,
		validate: validator.New(),
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor := shared.ActorFromContext(r.Context())
	result, err := h.service.List(r.Context(), actor)
	if err != nil {
		h.logger.Error("list forms failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	views := make([]FormView, 0, len(result))
	for _, form := range result {
		views = append(views, NewFormView(form, h.clock))
	}
	httpx.JSON(w, http.StatusOK, views)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "Invalid form ID")
		return
	}
	actor := shared.ActorFromContext(r.Context())
	form, err := h.service.Get(r.Context(), actor, id)
	if err != nil {
		h.logger.Error("get form failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, NewFormView(*form, h.clock))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateFormRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	actor := shared.ActorFromContext(r.Context())
	form, err := h.service.Create(r.Context(), actor, req)
	if err != nil {
		h.logger.Error("create form failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, NewFormView(*form, h.clock))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "Invalid form ID")
		return
	}
	var req UpdateFormRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	actor := shared.ActorFromContext(r.Context())
	form, err := h.service.Update(r.Context(), actor, id, req)
	if err != nil {
		h.logger.Error("update form failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, NewFormView(*form, h.clock))
}
