package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/mtlprog/complytrack/docs" // registers swagger docs
	"github.com/mtlprog/complytrack/internal/events"
	"github.com/mtlprog/complytrack/internal/handler/dto"
	"github.com/mtlprog/complytrack/internal/middleware"
	"github.com/mtlprog/complytrack/internal/repository"
	"github.com/mtlprog/complytrack/internal/service"
	"github.com/mtlprog/complytrack/internal/static"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators a Handler is built from.
type Deps struct {
	Records   service.TaskRecordStore
	Catalog   service.Catalog
	Assets    service.AssetRegistry
	Users     middleware.UserLookup
	Publisher events.Publisher
	Health    Pinger
	Config    service.Config
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	health         Pinger
	workflow       *service.WorkflowService
	risk           *service.RiskService
	authMiddleware *middleware.AuthMiddleware
}

// New creates a Handler backed by PostgreSQL repositories.
func New(pool *pgxpool.Pool, publisher events.Publisher, cfg service.Config) *Handler {
	return NewWithDeps(Deps{
		Records:   repository.NewTaskRecordRepository(pool),
		Catalog:   repository.NewCatalogRepository(pool),
		Assets:    repository.NewAssetRepository(pool),
		Users:     repository.NewUserRepository(pool),
		Publisher: publisher,
		Health:    pool,
		Config:    cfg,
	})
}

// NewWithDeps creates a Handler from explicit dependencies.
func NewWithDeps(d Deps) *Handler {
	return &Handler{
		health:         d.Health,
		workflow:       service.NewWorkflowService(d.Records, d.Catalog, d.Assets, d.Publisher, d.Config),
		risk:           service.NewRiskService(d.Records, d.Catalog, d.Assets, d.Config),
		authMiddleware: middleware.NewAuthMiddleware(d.Users),
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.handleHealthz)

	// Workflow guide for API clients
	mux.HandleFunc("GET /workflow.md", h.handleWorkflowMd)

	mux.HandleFunc("GET /swagger/", httpSwagger.Handler())

	auth := func(fn http.HandlerFunc) http.Handler {
		return h.authMiddleware.Authenticate(fn)
	}

	mux.Handle("POST /api/v1/task-records", auth(h.handleCreateTaskRecord))
	mux.Handle("GET /api/v1/task-records", auth(h.handleListTaskRecords))
	mux.Handle("GET /api/v1/task-records/{id}", auth(h.handleGetTaskRecord))

	mux.Handle("POST /api/v1/task-records/{id}/delegate-it", auth(h.handleDelegateToIT))
	mux.Handle("POST /api/v1/task-records/{id}/submit-evidence", auth(h.handleSubmitEvidence))
	mux.Handle("POST /api/v1/task-records/{id}/delegate-auditor", auth(h.handleDelegateToAuditor))
	mux.Handle("POST /api/v1/task-records/{id}/delegate-external-auditor", auth(h.handleDelegateToExternalAuditor))
	mux.Handle("POST /api/v1/task-records/{id}/confirm-evidence", auth(h.handleConfirmEvidence))
	mux.Handle("POST /api/v1/task-records/{id}/return-evidence", auth(h.handleReturnEvidence))
	mux.Handle("POST /api/v1/task-records/{id}/set-not-applicable", auth(h.handleSetNotApplicable))
	mux.Handle("POST /api/v1/task-records/{id}/confirm-not-applicable", auth(h.handleConfirmNotApplicable))
	mux.Handle("POST /api/v1/task-records/{id}/accept-risk", auth(h.handleAcceptRisk))

	mux.Handle("GET /api/v1/risk", auth(h.handleOverallRisk))
	mux.Handle("GET /api/v1/risk/assets/{assetId}", auth(h.handleAssetRisk))
	mux.Handle("GET /api/v1/stats", auth(h.handleGetStats))
}

// handleHealthz returns 200 OK if the store is reachable.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health.Ping(r.Context()); err != nil {
			slog.Error("health check failed", "error", err)
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
}

// handleWorkflowMd serves the embedded workflow guide.
func (h *Handler) handleWorkflowMd(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(static.WorkflowMd))
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

// respondDomainError maps an engine error to its HTTP representation.
func respondDomainError(w http.ResponseWriter, err error) {
	status, code, message := dto.MapDomainError(err)
	respondError(w, status, code, message)
}

// extractTaskID extracts and validates the task record ID from the path.
// Returns ("", false) if invalid; the error has already been sent.
func extractTaskID(w http.ResponseWriter, r *http.Request) (string, bool) {
	taskID := r.PathValue("id")
	if taskID == "" {
		respondError(w, http.StatusBadRequest, dto.CodeInvalidRequest, "task record id is required")
		return "", false
	}

	if _, err := uuid.Parse(taskID); err != nil {
		respondError(w, http.StatusBadRequest, dto.CodeInvalidRequest, "task record id must be a valid UUID")
		return "", false
	}

	return taskID, true
}

// decodeOptionalJSON decodes the body into v. An empty body leaves v untouched.
func decodeOptionalJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, dto.CodeInvalidJSON, "Invalid request body")
		return false
	}
	return true
}
