package handler

import (
	"net/http"
	"strings"

	"github.com/mtlprog/complytrack/internal/handler/dto"
	"github.com/mtlprog/complytrack/internal/middleware"
)

// handleOverallRisk returns the organization-wide risk report.
// @Summary Overall risk
// @Description Sums weighted risk of every incomplete task, broken down by asset.
// @Tags risk
// @Produce json
// @Success 200 {object} dto.OverallRiskResponse
// @Failure 503 {object} dto.ErrorResponse
// @Failure 504 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /risk [get]
func (h *Handler) handleOverallRisk(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetActorFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, dto.CodeInvalidToken, "Authentication required")
		return
	}

	report, err := h.risk.OverallRisk(ctx, actor)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToOverallRiskResponse(report))
}

// handleAssetRisk returns the risk report of one asset.
// @Summary Asset risk
// @Tags risk
// @Produce json
// @Param assetId path string true "Asset ID"
// @Success 200 {object} dto.AssetRiskResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /risk/assets/{assetId} [get]
func (h *Handler) handleAssetRisk(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetActorFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, dto.CodeInvalidToken, "Authentication required")
		return
	}

	assetID := strings.TrimSpace(r.PathValue("assetId"))
	if assetID == "" {
		respondError(w, http.StatusBadRequest, dto.CodeInvalidRequest, "asset id is required")
		return
	}

	report, err := h.risk.RiskByAsset(ctx, actor, assetID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToAssetRiskResponse(report))
}
