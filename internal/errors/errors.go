package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Error kinds. Every error produced while building or rebalancing an asset
// collection wraps exactly one of these so callers can branch with errors.Is.
var (
	ErrNegativeAmount       = stderrors.New("negative amount")
	ErrZeroAmount           = stderrors.New("zero amount")
	ErrNegativePercentage   = stderrors.New("negative percentage")
	ErrZeroPercentage       = stderrors.New("zero percentage")
	ErrPercentageExceeds100 = stderrors.New("percentage exceeds 100")
	ErrDuplicateName        = stderrors.New("duplicate name")
	ErrEmptyName            = stderrors.New("Empty asset name")
	ErrSize                 = stderrors.New("size")
	ErrCurrentPercentageSum = stderrors.New("current percentage sum mismatch")
	ErrTargetPercentageSum  = stderrors.New("target percentage sum mismatch")
	ErrAmountSum            = stderrors.New("amount sum mismatch")
)

// ErrValidation is returned when a single asset is rejected at construction.
type ErrValidation struct {
	Field   string
	Message string
	Kind    error
}

func (e *ErrValidation) Error() string {
	return e.Field + ": " + e.Message
}

func (e *ErrValidation) Unwrap() error {
	return e.Kind
}

// DuplicateNameError is returned when a name is inserted twice into one collection.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return "Asset name already exists on a list: " + e.Name
}

func (e *DuplicateNameError) Unwrap() error {
	return ErrDuplicateName
}

// SizeError is returned when a collection is too small to rebalance.
type SizeError struct {
	Count int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("Rebalancing asset list of a size %d is pointless", e.Count)
}

func (e *SizeError) Unwrap() error {
	return ErrSize
}

// PercentageSumError reports a percentage column whose rounded sum is not 100.
// Kind is either ErrCurrentPercentageSum or ErrTargetPercentageSum.
type PercentageSumError struct {
	Kind   error
	Actual decimal.Decimal
}

func (e *PercentageSumError) Error() string {
	column := "current"
	if e.Kind == ErrTargetPercentageSum {
		column = "target"
	}
	return fmt.Sprintf("Sum of %s percentage should be equal to 100%%. Actual result is: %s",
		column, e.Actual.StringFixed(3))
}

func (e *PercentageSumError) Unwrap() error {
	return e.Kind
}

// AmountSumError reports target amounts that do not add back up to the portfolio total.
type AmountSumError struct {
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
}

func (e *AmountSumError) Error() string {
	return fmt.Sprintf("Sum of target amount: %s, should be equal to current amount: %s",
		e.TargetAmount.StringFixed(3), e.CurrentAmount.StringFixed(3))
}

func (e *AmountSumError) Unwrap() error {
	return ErrAmountSum
}

var validationKinds = []error{
	ErrNegativeAmount,
	ErrZeroAmount,
	ErrNegativePercentage,
	ErrZeroPercentage,
	ErrPercentageExceeds100,
	ErrDuplicateName,
	ErrEmptyName,
	ErrSize,
	ErrCurrentPercentageSum,
	ErrTargetPercentageSum,
	ErrAmountSum,
}

// IsValidation reports whether err (or any error joined into it) belongs to
// the business taxonomy, i.e. was caused by the submitted data.
func IsValidation(err error) bool {
	if err == nil {
		return false
	}
	for _, kind := range validationKinds {
		if stderrors.Is(err, kind) {
			return true
		}
	}
	return false
}
