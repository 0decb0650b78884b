package company

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/leadforge/leadforge/internal/auth"
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
		h.logger.Error("list companies failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	views := make([]View, 0, len(result))
	for _, c := range result {
		views = append(views, NewView(c, h.clock))
	}
	httpx.JSON(w, http.StatusOK, views)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "Invalid company ID")
		return
	}
	actor := shared.ActorFromContext(r.Context())
	c, err := h.service.Get(r.Context(), actor, id)
	if err != nil {
		h.logger.Error("get company failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, NewView(*c, h.clock))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCompanyRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	actor := shared.ActorFromContext(r.Context())
	c, err := h.service.Create(r.Context(), actor, req)
	if err != nil {
		h.logger.Error("create company failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, NewView(*c, h.clock))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "Invalid company ID")
		return
	}
	var req UpdateCompanyRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	actor := shared.ActorFromContext(r.Context())
	c, err := h.service.Update(r.Context(), actor, id, req)
	if err != nil {
		h.logger.Error("update company failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, NewView(*c, h.clock))
}

// Users lists the accounts attached to a company.
func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "Invalid company ID")
		return
	}
	actor := shared.ActorFromContext(r.Context())
	users, err := h.service.ListUsers(r.Context(), actor, id)
	if err != nil {
		h.logger.Error("list company users failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}
	views := make([]auth.UserView, 0, len(users))
	for _, user := range users {
		views = append(views, auth.NewUserView(user, nil, h.clock))
	}
	httpx.JSON(w, http.StatusOK, views)
}
