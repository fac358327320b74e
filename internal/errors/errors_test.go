package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestErrValidationError(t *testing.T) {
	err := &ErrValidation{Field: "current_amount", Message: "must be positive", Kind: ErrZeroAmount}
	if got, want := err.Error(), "current_amount: must be positive"; got != want {
		t.Fatalf("unexpected error string: got %q want %q", got, want)
	}
	require.ErrorIs(t, err, ErrZeroAmount)
	require.NotErrorIs(t, err, ErrNegativeAmount)
}

func TestSizeErrorMessage(t *testing.T) {
	assert.Equal(t, "Rebalancing asset list of a size 0 is pointless", (&SizeError{Count: 0}).Error())
	assert.Equal(t, "Rebalancing asset list of a size 1 is pointless", (&SizeError{Count: 1}).Error())
	assert.ErrorIs(t, &SizeError{Count: 1}, ErrSize)
}

func TestPercentageSumErrorMessage(t *testing.T) {
	target := &PercentageSumError{Kind: ErrTargetPercentageSum, Actual: decimal.NewFromInt(60)}
	assert.Equal(t, "Sum of target percentage should be equal to 100%. Actual result is: 60.000", target.Error())
	assert.ErrorIs(t, target, ErrTargetPercentageSum)

	current := &PercentageSumError{Kind: ErrCurrentPercentageSum, Actual: decimal.RequireFromString("99.998")}
	assert.Equal(t, "Sum of current percentage should be equal to 100%. Actual result is: 99.998", current.Error())
	assert.ErrorIs(t, current, ErrCurrentPercentageSum)
}

func TestAmountSumErrorMessage(t *testing.T) {
	err := &AmountSumError{
		TargetAmount:  decimal.RequireFromString("119.5"),
		CurrentAmount: decimal.NewFromInt(120),
	}
	assert.Equal(t, "Sum of target amount: 119.500, should be equal to current amount: 120.000", err.Error())
	assert.ErrorIs(t, err, ErrAmountSum)
}

func TestDuplicateNameError(t *testing.T) {
	err := &DuplicateNameError{Name: "bonds"}
	assert.Equal(t, "Asset name already exists on a list: bonds", err.Error())
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestIsValidation(t *testing.T) {
	assert.False(t, IsValidation(nil))
	assert.False(t, IsValidation(stderrors.New("boom")))
	assert.True(t, IsValidation(ErrEmptyName))
	assert.True(t, IsValidation(fmt.Errorf("asset 2: %w", &SizeError{Count: 1})))

	combined := multierr.Combine(
		&ErrValidation{Field: "target_percentage", Message: "cannot be zero", Kind: ErrZeroPercentage},
		&DuplicateNameError{Name: "cash"},
	)
	assert.True(t, IsValidation(combined))
	assert.ErrorIs(t, combined, ErrDuplicateName)
}
