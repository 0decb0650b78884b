package submissions

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/leadforge/leadforge/internal/platform/httpx"
	"github.com/leadforge/leadforge/internal/shared"
)

type Handler struct {
	logger         *slog.Logger
	service        *Service
	clock          *shared.DisplayClock
	maxUploadBytes int64
}

func NewHandler(logger *slog.Logger, service *Service, clock *shared.DisplayClock, maxUploadBytes int64) *Handler {
	return &Handler{
		logger:         logger,
		service:        service,
		clock:          clock,
		maxUploadBytes: maxUploadBytes,
	}
}

// Submit accepts either a multipart request (fields form and submitted_data,
// plus binary parts named {file_type}_{n}) or a plain JSON body without
// attachments.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	actor := shared.ActorFromContext(r.Context())

	req, err := h.parseRequest(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	sub, err := h.service.Submit(r.Context(), actor, *req)
	if err != nil {
		h.logger.Error("submit form data failed", "error", err, "form", req.FormID)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, NewSubmissionView(*sub, h.clock))
}

// Show returns one stored submission with its files.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "Invalid submission ID")
		return
	}
	actor := shared.ActorFromContext(r.Context())
	sub, err := h.service.Get(r.Context(), actor, id)
	if err != nil {
		h.logger.Error("get form data failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, NewSubmissionView(*sub, h.clock))
}

func (h *Handler) parseRequest(r *http.Request) (*SubmitRequest, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		return h.parseMultipart(r)
	}
	return parseJSONBody(r)
}

func (h *Handler) parseMultipart(r *http.Request) (*SubmitRequest, error) {
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		return nil, shared.Structural("Could not parse multipart body.")
	}

	var req SubmitRequest
	if raw := r.FormValue("form"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, shared.Structural("Form identifier must be numeric.")
		}
		req.FormID = id
	}
	if raw := r.FormValue("submitted_data"); raw != "" {
		data, err := decodeSubmittedData(strings.NewReader(raw))
		if err != nil {
			return nil, shared.Structural("submitted_data must be a JSON object.")
		}
		req.Data = data
	}

	if r.MultipartForm != nil {
		for key, headers := range r.MultipartForm.File {
			for _, header := range headers {
				file, err := header.Open()
				if err != nil {
					return nil, shared.Structural("Could not read uploaded file " + key + ".")
				}
				req.Files = append(req.Files, Upload{
					Key:         key,
					Filename:    header.Filename,
					ContentType: header.Header.Get("Content-Type"),
					Content:     file,
				})
			}
		}
	}
	return &req, nil
}

func parseJSONBody(r *http.Request) (*SubmitRequest, error) {
	var body struct {
		Form          int64           `json:"form"`
		SubmittedData json.RawMessage `json:"submitted_data"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		return nil, shared.Structural("Invalid JSON body.")
	}
	req := SubmitRequest{FormID: body.Form}
	if len(body.SubmittedData) > 0 {
		data, err := decodeSubmittedData(strings.NewReader(string(body.SubmittedData)))
		if err != nil {
			return nil, shared.Structural("submitted_data must be a JSON object.")
		}
		req.Data = data
	}
	return &req, nil
}

// decodeSubmittedData decodes with UseNumber so the validator can tell
// integers from floats.
func decodeSubmittedData(r *strings.Reader) (map[string]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}
	return data, nil
}
