package handler

import (
	"net/http"
	"strings"

	"github.com/mtlprog/complytrack/internal/domain"
	"github.com/mtlprog/complytrack/internal/handler/dto"
	"github.com/mtlprog/complytrack/internal/middleware"
)

// handleGetStats returns task record counts per status.
// @Summary Get statistics
// @Description Count task records per status, optionally for one asset
// @Tags stats
// @Produce json
// @Param asset_id query string false "Filter by asset"
// @Success 200 {object} dto.StatsResponse
// @Security BearerAuth
// @Router /stats [get]
func (h *Handler) handleGetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetActorFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, dto.CodeInvalidToken, "Authentication required")
		return
	}

	var assetID *string
	if v := strings.TrimSpace(r.URL.Query().Get("asset_id")); v != "" {
		assetID = &v
	}

	counts, err := h.workflow.StatusCounts(ctx, actor, assetID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	byStatus := make(map[string]int, len(domain.AllStatuses))
	for _, st := range domain.AllStatuses {
		byStatus[string(st)] = counts[st]
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	completed := counts[domain.StatusCompleted]
	completionRate := 0.0
	if total > 0 {
		completionRate = float64(completed) / float64(total) * 100
	}

	respondJSON(w, http.StatusOK, dto.StatsResponse{
		AssetID:               assetID,
		TotalRecords:          total,
		RecordsByStatus:       byStatus,
		CompletedCount:        completed,
		RiskAcceptedCount:     counts[domain.StatusRiskAccepted],
		CompletionRatePercent: completionRate,
	})
}
