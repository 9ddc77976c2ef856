// Package feepkg computes withdrawal and funding charges under a two-tier
// fee rule: the charge is the percentage fee or the flat fee, whichever is
// larger.
package feepkg

import (
	"github.com/shopspring/decimal"

	"github.com/go-petr/promo-ledger/internal/domain"
)

// Schedule holds one independently configured fee rule.
// Places is the number of decimal places of the currency's minimum unit.
type Schedule struct {
	rate    decimal.Decimal
	flatFee decimal.Decimal
	places  int32
}

// New returns a fee schedule for the given rate and flat fee.
func New(rate, flatFee decimal.Decimal, places int32) Schedule {
	return Schedule{
		rate:    rate,
		flatFee: flatFee,
		places:  places,
	}
}

// Fee returns the charge for the given amount.
// Fee(0) is the flat fee: a zero principal is still charged the floor.
func (s Schedule) Fee(amount decimal.Decimal) decimal.Decimal {
	pct := amount.Mul(s.rate)
	if pct.GreaterThan(s.flatFee) {
		return pct
	}

	return s.flatFee
}

// Total returns the amount plus its fee.
func (s Schedule) Total(amount decimal.Decimal) decimal.Decimal {
	return amount.Add(s.Fee(amount))
}

// Quote returns the full charge breakdown for the given amount.
func (s Schedule) Quote(amount decimal.Decimal) domain.FeeQuote {
	fee := s.Fee(amount)

	return domain.FeeQuote{
		Principal: amount,
		Fee:       fee,
		Total:     amount.Add(fee),
	}
}

// MaxWithdrawable returns the largest amount whose Total fits within the
// available balance.
//
// The fee rule switches from the flat fee to the percentage fee at the
// breakeven amount flatFee/rate, so the inverse picks the branch first:
// if balance/(1+rate) is at or past breakeven the percentage branch applies,
// otherwise the flat fee is simply subtracted. The result is floored to the
// currency's minimum unit and never negative.
func (s Schedule) MaxWithdrawable(balance decimal.Decimal) decimal.Decimal {
	if balance.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	max := balance.Sub(s.flatFee)

	if s.rate.IsPositive() {
		threshold := s.flatFee.Div(s.rate)
		pctMax := balance.Div(decimal.NewFromInt(1).Add(s.rate))

		if pctMax.GreaterThanOrEqual(threshold) {
			max = pctMax
		}
	}

	max = max.RoundFloor(s.places)
	if max.IsNegative() {
		return decimal.Zero
	}

	return max
}
