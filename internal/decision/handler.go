package decision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/palisade-authz/palisade/internal/audit"
	"github.com/palisade-authz/palisade/internal/authz"
	"github.com/palisade-authz/palisade/internal/platform/httpx"
)

// AuditReader reads recorded verdicts; satisfied by audit.Store.
type AuditReader interface {
	Recent(ctx context.Context, limit int) ([]audit.Entry, error)
	Find(ctx context.Context, id uuid.UUID) (audit.Entry, error)
}

// Handler exposes the decision HTTP endpoints.
type Handler struct {
	service  *Service
	auditLog AuditReader
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler constructs the decision handler.
func NewHandler(service *Service, auditLog AuditReader, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		auditLog: auditLog,
		validate: validator.New(),
		logger:   logger,
	}
}

// Check handles POST /v1/check.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Malformed Request", "request body is not valid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	verdict, err := h.service.Check(r.Context(), req)
	if err != nil {
		h.respondCheckError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, CheckResponse{
		DecisionID: verdict.DecisionID.String(),
		Allowed:    verdict.Allowed,
	})
}

// respondCheckError maps resolution failures. A missing capability is a
// configuration defect on the resource kind, reported as 501 so it is
// never mistaken for a denial.
func (h *Handler) respondCheckError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, authz.ErrMalformedTarget):
		httpx.Problem(w, http.StatusBadRequest, "Malformed Target", err.Error())
	case errors.Is(err, authz.ErrCapabilityNotImplemented):
		h.logger.Error("capability not implemented", slog.Any("error", err))
		httpx.Problem(w, http.StatusNotImplemented, "Capability Not Implemented", err.Error())
	default:
		h.logger.Error("decision check failed", slog.String("path", r.URL.Path), slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

// Decisions handles GET /v1/decisions.
func (h *Handler) Decisions(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.auditLog.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Error("list decisions", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"decisions": entries})
}

// DecisionByID handles GET /v1/decisions/{id}.
func (h *Handler) DecisionByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: decision id must be a UUID", httpx.ErrValidation))
		return
	}

	entry, err := h.auditLog.Find(r.Context(), id)
	switch {
	case errors.Is(err, audit.ErrNotFound):
		httpx.RespondError(w, httpx.ErrNotFound)
	case err != nil:
		h.logger.Error("find decision", slog.String("decision_id", id.String()), slog.Any("error", err))
		httpx.RespondError(w, err)
	default:
		httpx.JSON(w, http.StatusOK, entry)
	}
}
