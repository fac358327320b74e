package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	apperrors "github.com/etivest/rebalancer/internal/errors"
	"github.com/etivest/rebalancer/internal/logger"
	"github.com/etivest/rebalancer/internal/models"
)

type rebalanceService struct {
	engine *RebalanceEngine
}

func NewRebalanceService(engine *RebalanceEngine) RebalanceService {
	if engine == nil {
		engine = NewRebalanceEngine()
	}
	return &rebalanceService{engine: engine}
}

// Rebalance builds a fresh collection for this call, rebalances it and returns
// the results in submission order.
func (s *rebalanceService) Rebalance(ctx context.Context, inputs []models.AssetInput) ([]models.AssetResult, error) {
	log := logger.FromContext(ctx).With(zap.Int("assets", len(inputs)))
	start := time.Now()
	log.Debug("rebalance started", zap.String("distribution", string(s.engine.Distribution)))

	collection, err := BuildCollection(inputs)
	if err != nil {
		log.Warn("rejected asset list", zap.Error(err))
		return nil, err
	}

	if err := s.engine.Rebalance(collection); err != nil {
		if apperrors.IsValidation(err) {
			log.Warn("rebalance rejected", zap.Error(err))
		} else {
			log.Error("rebalance failed", zap.Error(err))
		}
		return nil, err
	}

	log.Info("rebalance completed", zap.Duration("duration", time.Since(start)))
	return collection.Results(), nil
}

// BuildCollection validates every input record and inserts it into a new
// collection. A single rejected record is returned as is; several are
// combined, each prefixed with its 1-based position.
func BuildCollection(inputs []models.AssetInput) (*models.AssetCollection, error) {
	collection := models.NewAssetCollection()
	var failed []int
	var errs []error
	for i, in := range inputs {
		asset, err := in.ToAsset()
		if err == nil {
			err = collection.Insert(asset)
		}
		if err != nil {
			failed = append(failed, i+1)
			errs = append(errs, err)
		}
	}

	switch len(errs) {
	case 0:
		return collection, nil
	case 1:
		return nil, errs[0]
	}
	var combined error
	for i, err := range errs {
		combined = multierr.Append(combined, fmt.Errorf("asset %d: %w", failed[i], err))
	}
	return nil, combined
}
