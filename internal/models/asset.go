package models

import (
	"github.com/shopspring/decimal"

	apperrors "github.com/etivest/rebalancer/internal/errors"
)

var hundred = decimal.NewFromInt(100)

// Asset is a single named holding of a portfolio.
//
// CurrentAmount and TargetPercentage are fixed at construction. CurrentPercentage
// and TargetAmount stay zero until a rebalance commits them.
type Asset struct {
	name              string
	currentAmount     decimal.Decimal
	targetPercentage  decimal.Decimal
	currentPercentage decimal.Decimal
	targetAmount      decimal.Decimal
}

// NewAsset validates the amount and target percentage and returns a new asset.
// An empty name is accepted here; it is rejected when the collection is rebalanced.
func NewAsset(name string, currentAmount, targetPercentage decimal.Decimal) (*Asset, error) {
	if currentAmount.IsNegative() {
		return nil, &apperrors.ErrValidation{Field: "current_amount", Message: "cannot be negative", Kind: apperrors.ErrNegativeAmount}
	}
	if currentAmount.IsZero() {
		return nil, &apperrors.ErrValidation{Field: "current_amount", Message: "cannot be zero", Kind: apperrors.ErrZeroAmount}
	}
	if targetPercentage.IsNegative() {
		return nil, &apperrors.ErrValidation{Field: "target_percentage", Message: "cannot be negative", Kind: apperrors.ErrNegativePercentage}
	}
	if targetPercentage.IsZero() {
		return nil, &apperrors.ErrValidation{Field: "target_percentage", Message: "cannot be zero", Kind: apperrors.ErrZeroPercentage}
	}
	if targetPercentage.GreaterThan(hundred) {
		return nil, &apperrors.ErrValidation{Field: "target_percentage", Message: "cannot exceed 100", Kind: apperrors.ErrPercentageExceeds100}
	}

	return &Asset{
		name:              name,
		currentAmount:     currentAmount,
		targetPercentage:  targetPercentage,
		currentPercentage: decimal.Zero,
		targetAmount:      decimal.Zero,
	}, nil
}

func (a *Asset) Name() string { return a.name }
func (a *Asset) CurrentAmount() decimal.Decimal { return a.currentAmount }
func (a *Asset) TargetPercentage() decimal.Decimal { return a.targetPercentage }
func (a *Asset) CurrentPercentage() decimal.Decimal { return a.currentPercentage }
func (a *Asset) TargetAmount() decimal.Decimal { return a.targetAmount }

// SetDerived stores the computed rebalance figures on the asset.
func (a *Asset) SetDerived(currentPercentage, targetAmount decimal.Decimal) {
	a.currentPercentage = currentPercentage
	a.targetAmount = targetAmount
}

// AssetInput is one record of a rebalance request. Derived figures sent by a
// client are not part of the record and are dropped while decoding.
type AssetInput struct {
	Name             string          `json:"name" example:"stocks"`
	CurrentAmount    decimal.Decimal `json:"current_amount" swaggertype:"string" example:"100"`
	TargetPercentage decimal.Decimal `json:"target_percentage" swaggertype:"string" example:"60"`
}

// ToAsset builds a validated Asset from the record.
func (in AssetInput) ToAsset() (*Asset, error) {
	return NewAsset(in.Name, in.CurrentAmount, in.TargetPercentage)
}

// AssetResult is one record of a rebalance response.
type AssetResult struct {
	Name              string          `json:"name" example:"stocks"`
	CurrentAmount     decimal.Decimal `json:"current_amount" swaggertype:"string" example:"100"`
	TargetPercentage  decimal.Decimal `json:"target_percentage" swaggertype:"string" example:"60"`
	CurrentPercentage decimal.Decimal `json:"current_percentage" swaggertype:"string" example:"50"`
	TargetAmount      decimal.Decimal `json:"target_amount" swaggertype:"string" example:"120"`
}

// NewAssetResult copies the current state of an asset into a response record.
func NewAssetResult(a *Asset) AssetResult {
	return AssetResult{
		Name:              a.name,
		CurrentAmount:     a.currentAmount,
		TargetPercentage:  a.targetPercentage,
		CurrentPercentage: a.currentPercentage,
		TargetAmount:      a.targetAmount,
	}
}
