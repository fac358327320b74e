package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	apperrors "github.com/etivest/rebalancer/internal/errors"
	"github.com/etivest/rebalancer/internal/logger"
	"github.com/etivest/rebalancer/internal/models"
)

func input(name, amount, pct string) models.AssetInput {
	return models.AssetInput{Name: name, CurrentAmount: dec(amount), TargetPercentage: dec(pct)}
}

func observedContext() (context.Context, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logger.WithContext(context.Background(), zap.New(core)), logs
}

func TestRebalanceService_KeepsSubmissionOrder(t *testing.T) {
	svc := NewRebalanceService(nil)
	ctx, logs := observedContext()

	results, err := svc.Rebalance(ctx, []models.AssetInput{
		input("zeta", "100", "60"),
		input("alpha", "100", "40"),
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "zeta", results[0].Name)
	assert.True(t, results[0].CurrentPercentage.Equal(dec("50")))
	assert.True(t, results[0].TargetAmount.Equal(dec("120")))
	assert.Equal(t, "alpha", results[1].Name)
	assert.True(t, results[1].TargetAmount.Equal(dec("80")))

	require.Equal(t, 1, logs.FilterMessage("rebalance completed").Len())
}

func TestRebalanceService_ValidationError(t *testing.T) {
	svc := NewRebalanceService(NewRebalanceEngine())
	ctx, logs := observedContext()

	results, err := svc.Rebalance(ctx, []models.AssetInput{
		input("first", "100", "30"),
		input("second", "20", "30"),
	})
	require.Nil(t, results)
	require.EqualError(t, err, "Sum of target percentage should be equal to 100%. Actual result is: 60.000")

	warn := logs.FilterMessage("rebalance rejected").All()
	require.Len(t, warn, 1)
	assert.Equal(t, zapcore.WarnLevel, warn[0].Level)
}

func TestRebalanceService_SizeError(t *testing.T) {
	svc := NewRebalanceService(nil)

	_, err := svc.Rebalance(context.Background(), nil)
	require.EqualError(t, err, "Rebalancing asset list of a size 0 is pointless")

	_, err = svc.Rebalance(context.Background(), []models.AssetInput{input("only", "1", "100")})
	require.EqualError(t, err, "Rebalancing asset list of a size 1 is pointless")
}

func TestBuildCollection_SingleError(t *testing.T) {
	_, err := BuildCollection([]models.AssetInput{
		input("ok", "10", "50"),
		input("broke", "0", "50"),
	})
	require.EqualError(t, err, "current_amount: cannot be zero")
	require.ErrorIs(t, err, apperrors.ErrZeroAmount)
}

func TestBuildCollection_CollectsAllErrors(t *testing.T) {
	_, err := BuildCollection([]models.AssetInput{
		input("cash", "10", "50"),
		input("cash", "10", "50"),
		input("gold", "-1", "50"),
		input("oil", "1", "101"),
	})
	require.Error(t, err)

	errs := multierr.Errors(err)
	require.Len(t, errs, 3)
	assert.ErrorIs(t, errs[0], apperrors.ErrDuplicateName)
	assert.ErrorIs(t, errs[1], apperrors.ErrNegativeAmount)
	assert.ErrorIs(t, errs[2], apperrors.ErrPercentageExceeds100)
	assert.True(t, strings.HasPrefix(errs[0].Error(), "asset 2: "))
	assert.True(t, strings.HasPrefix(errs[1].Error(), "asset 3: "))
	assert.True(t, strings.HasPrefix(errs[2].Error(), "asset 4: "))
	assert.True(t, apperrors.IsValidation(err))
}

func TestBuildCollection_EmptyNameReachesEngine(t *testing.T) {
	c, err := BuildCollection([]models.AssetInput{input("", "10", "50"), input("x", "10", "50")})
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	require.ErrorIs(t, NewRebalanceEngine().Rebalance(c), apperrors.ErrEmptyName)
}
