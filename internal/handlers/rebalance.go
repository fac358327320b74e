package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	apperrors "github.com/etivest/rebalancer/internal/errors"
	"github.com/etivest/rebalancer/internal/logger"
	"github.com/etivest/rebalancer/internal/models"
	"github.com/etivest/rebalancer/internal/services"
)

const DefaultMaxBodyBytes int64 = 1 << 20

type RebalanceHandler struct {
	rebalanceService services.RebalanceService
	maxBodyBytes     int64
}

func NewRebalanceHandler(rebalanceService services.RebalanceService, maxBodyBytes int64) *RebalanceHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &RebalanceHandler{
		rebalanceService: rebalanceService,
		maxBodyBytes:     maxBodyBytes,
	}
}

// HandleRebalance handles POST /api/rebalance
// @Summary Rebalance a portfolio
// @Description Compute the current percentage and target amount of every asset
// @Tags rebalance
// @Accept json
// @Produce json
// @Param assets body []models.AssetInput true "Assets to rebalance"
// @Success 200 {array} models.AssetResult
// @Failure 400 {string} string "Invalid request body"
// @Failure 413 {string} string "Request body too large"
// @Failure 422 {string} string "Validation error"
// @Router /rebalance [post]
func (h *RebalanceHandler) HandleRebalance(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var inputs []models.AssetInput
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&inputs); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	results, err := h.rebalanceService.Rebalance(r.Context(), inputs)
	if err != nil {
		if apperrors.IsValidation(err) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		logger.FromContext(r.Context()).Error("rebalance failed", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(results); err != nil {
		logger.FromContext(r.Context()).Warn("failed to write response", zap.Error(err))
	}
}

// HandleRoot handles GET /
// @Summary Liveness probe
// @Tags health
// @Produce plain
// @Success 200 {string} string "rebalancer"
// @Router / [get]
func HandleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte("rebalancer")); err != nil {
		logger.FromContext(r.Context()).Warn("failed to write response", zap.Error(err))
	}
}

// HandleHealth handles GET /health
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "rebalancer",
	})
	if err != nil {
		logger.FromContext(r.Context()).Warn("failed to write response", zap.Error(err))
	}
}
