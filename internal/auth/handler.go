package auth

import (
	"log/slog"
	"net/http"

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

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks credentials and returns an access token with the user payload.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body.")
		return
	}
	if req.Email == "" || req.Password == "" {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "Email and password are required.")
		return
	}
	token, user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"token":    token,
		"userData": NewUserView(*user, h.service.CompanyRefFor(r.Context(), *user), h.clock),
	})
}

type registerRequest struct {
	Company      int64  `json:"company"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	MobileNumber string `json:"mobile_number"`
}

// Register starts OTP verification for a new account.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body.")
		return
	}
	if req.Company == 0 || req.FirstName == "" || req.Email == "" || req.Password == "" || req.MobileNumber == "" {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request",
			"Company, First name, Email, password, and mobile number are required.")
		return
	}
	if err := h.service.Register(r.Context(), RegisterRequest{
		CompanyID:    req.Company,
		Email:        req.Email,
		Password:     req.Password,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		MobileNumber: req.MobileNumber,
	}); err != nil {
		h.logger.Error("register failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{
		"message": "OTP sent to your mobile number. Please verify.",
	})
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// VerifyOTP completes registration and returns an access token.
func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body.")
		return
	}
	if req.OTP == "" {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "OTP is required.")
		return
	}
	token, user, err := h.service.VerifyOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"message": "User verified and registered successfully.",
		"access":  token,
		"userData": NewUserView(*user,
			h.service.CompanyRefFor(r.Context(), *user), h.clock),
	})
}

// Me returns the authenticated user's details.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	actor := shared.ActorFromContext(r.Context())
	user, ref, err := h.service.Me(r.Context(), actor)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"user_data": NewUserView(*user, ref, h.clock),
	})
}

// Token returns a fresh opaque encrypted token.
func (h *Handler) Token(w http.ResponseWriter, r *http.Request) {
	token, err := NewOpaqueToken()
	if err != nil {
		h.logger.Error("issue opaque token failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"token": token})
}
