package services

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/etivest/rebalancer/internal/config"
	apperrors "github.com/etivest/rebalancer/internal/errors"
	"github.com/etivest/rebalancer/internal/models"
)

// Distribution selects how derived figures are spread over the assets.
type Distribution string

const (
	// DistributionRounded keeps full precision figures and accepts the
	// collection when the column sums match after rounding to 3 places.
	DistributionRounded Distribution = "rounded"
	// DistributionLargestRemainder truncates figures to a fixed scale and hands
	// the leftover units to the largest remainders so the sums are exact.
	DistributionLargestRemainder Distribution = "largest_remainder"
)

const (
	DefaultDivisionPrecision int32 = 32
	DefaultDistributionScale int32 = 8

	minAssets       = 2
	validationScale = 3
)

var hundred = decimal.NewFromInt(100)

// RebalanceEngine derives current percentages and target amounts for a
// collection and certifies the result. It holds no state between calls.
type RebalanceEngine struct {
	Precision    int32
	Distribution Distribution
	Scale        int32
}

// NewRebalanceEngine returns an engine with the default settings.
func NewRebalanceEngine() *RebalanceEngine {
	return &RebalanceEngine{
		Precision:    DefaultDivisionPrecision,
		Distribution: DistributionRounded,
		Scale:        DefaultDistributionScale,
	}
}

// Rebalance computes the derived figures on a copy of the collection,
// validates the copy and only then writes the figures onto the collection.
// On error the collection is left exactly as it was.
func (e *RebalanceEngine) Rebalance(c *models.AssetCollection) error {
	if n := c.Len(); n < minAssets {
		return &apperrors.SizeError{Count: n}
	}

	snapshot := c.Clone()
	total := snapshot.Aggregate(models.ByCurrentAmount)

	if e.Distribution == DistributionLargestRemainder {
		e.distribute(snapshot, total)
	} else {
		e.compute(snapshot, total)
	}

	if err := validate(snapshot); err != nil {
		return err
	}

	for _, a := range snapshot.Assets() {
		live, _ := c.Lookup(a.Name())
		live.SetDerived(a.CurrentPercentage(), a.TargetAmount())
	}
	return nil
}

func (e *RebalanceEngine) precision() int32 {
	if e.Precision <= 0 {
		return DefaultDivisionPrecision
	}
	return e.Precision
}

// currentPercentage rounds half up at the engine precision; an asset below
// 10^-precision percent of the total is stored as 0.
func (e *RebalanceEngine) currentPercentage(a *models.Asset, total decimal.Decimal) decimal.Decimal {
	return a.CurrentAmount().Shift(2).DivRound(total, e.precision())
}

// targetAmount is exact: dividing by 100 only moves the decimal point.
func targetAmount(a *models.Asset, total decimal.Decimal) decimal.Decimal {
	return total.Mul(a.TargetPercentage()).Shift(-2)
}

func (e *RebalanceEngine) compute(snapshot *models.AssetCollection, total decimal.Decimal) {
	for _, a := range snapshot.Assets() {
		a.SetDerived(e.currentPercentage(a, total), targetAmount(a, total))
	}
}

func (e *RebalanceEngine) distribute(snapshot *models.AssetCollection, total decimal.Decimal) {
	assets := snapshot.Assets()
	percentNumerators := make([]decimal.Decimal, len(assets))
	amountNumerators := make([]decimal.Decimal, len(assets))
	for i, a := range assets {
		percentNumerators[i] = a.CurrentAmount().Shift(2)
		amountNumerators[i] = total.Mul(a.TargetPercentage())
	}

	scale := e.Scale
	if scale < 0 {
		scale = 0
	}
	amountScale := scale
	if s := -total.Exponent(); s > amountScale {
		amountScale = s
	}

	percentages := largestRemainder(percentNumerators, total, hundred, scale)
	// Target percentages that do not add up to 100 leave nothing to correct;
	// the amounts stay exact and validation reports the sum.
	var amounts []decimal.Decimal
	if snapshot.Aggregate(models.ByTargetPercentage).Equal(hundred) {
		amounts = largestRemainder(amountNumerators, hundred, total, amountScale)
	} else {
		amounts = make([]decimal.Decimal, len(assets))
		for i, a := range assets {
			amounts[i] = targetAmount(a, total)
		}
	}

	for i, a := range assets {
		a.SetDerived(percentages[i], amounts[i])
	}
}

// largestRemainder splits whole into the shares numerators[i]/divisor, each
// truncated to scale places, then adds one unit of the last place to the
// shares with the largest remainders until they sum to whole. Ties go to the
// earlier share. The numerators must add up to whole*divisor and whole must
// have at most scale places, so fewer than len(numerators) units are left over.
func largestRemainder(numerators []decimal.Decimal, divisor, whole decimal.Decimal, scale int32) []decimal.Decimal {
	out := make([]decimal.Decimal, len(numerators))
	remainders := make([]decimal.Decimal, len(numerators))
	allocated := decimal.Zero
	for i, n := range numerators {
		out[i], remainders[i] = n.QuoRem(divisor, scale)
		allocated = allocated.Add(out[i])
	}

	units := int(whole.Sub(allocated).Shift(scale).IntPart())
	if units <= 0 {
		return out
	}
	if units > len(out) {
		units = len(out)
	}

	order := make([]int, len(numerators))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return remainders[b].Cmp(remainders[a])
	})

	unit := decimal.New(1, -scale)
	for _, i := range order[:units] {
		out[i] = out[i].Add(unit)
	}
	return out
}

func validate(c *models.AssetCollection) error {
	for _, a := range c.Assets() {
		if a.Name() == "" {
			return apperrors.ErrEmptyName
		}
	}

	sumCurrentAmount := c.Aggregate(models.ByCurrentAmount).Round(validationScale)
	sumCurrentPercentage := c.Aggregate(models.ByCurrentPercentage).Round(validationScale)
	sumTargetPercentage := c.Aggregate(models.ByTargetPercentage).Round(validationScale)
	sumTargetAmount := c.Aggregate(models.ByTargetAmount).Round(validationScale)

	if !sumCurrentPercentage.Equal(hundred) {
		return &apperrors.PercentageSumError{Kind: apperrors.ErrCurrentPercentageSum, Actual: sumCurrentPercentage}
	}
	if !sumTargetPercentage.Equal(hundred) {
		return &apperrors.PercentageSumError{Kind: apperrors.ErrTargetPercentageSum, Actual: sumTargetPercentage}
	}
	if !sumTargetAmount.Equal(sumCurrentAmount) {
		return &apperrors.AmountSumError{TargetAmount: sumTargetAmount, CurrentAmount: sumCurrentAmount}
	}
	return nil
}

// EngineFromConfig builds an engine from the rebalance settings.
func EngineFromConfig(cfg config.RebalanceConfig) *RebalanceEngine {
	return &RebalanceEngine{
		Precision:    cfg.DivisionPrecision,
		Distribution: Distribution(cfg.Distribution),
		Scale:        cfg.DistributionScale,
	}
}
