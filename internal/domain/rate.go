package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rate is a persisted exchange rate. Rate expresses how many units of the
// target currency equal one unit of the base currency.
type Rate struct {
	ID               int64
	BaseCurrencyID   int64
	TargetCurrencyID int64
	Rate             decimal.Decimal
	EffectiveDate    time.Time
}

// RateView is a rate joined with the codes of its currencies.
type RateView struct {
	ID                 int64
	BaseCurrencyCode   string
	TargetCurrencyCode string
	Rate               decimal.Decimal
	EffectiveDate      time.Time
}

// Label renders the pair as BASE→TARGET.
func (v RateView) Label() string {
	return v.BaseCurrencyCode + "→" + v.TargetCurrencyCode
}

// RateSnapshot is a set of rates quoted against one base on one date.
type RateSnapshot struct {
	Base  string
	Date  time.Time
	Rates map[string]decimal.Decimal
}
