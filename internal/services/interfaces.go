package services

import (
	"context"

	"github.com/etivest/rebalancer/internal/models"
)

// RebalanceService defines the interface for rebalance operations
type RebalanceService interface {
	Rebalance(ctx context.Context, inputs []models.AssetInput) ([]models.AssetResult, error)
}
