package provider

import (
	"context"
	"time"

	"fxadmin-service/internal/application"
	"fxadmin-service/internal/domain"

	"github.com/shopspring/decimal"
)

var _ application.RateProvider = (*Fake)(nil)

// Fake quotes the same rate for every symbol, dated today in UTC.
type Fake struct {
	rate decimal.Decimal
	now  func() time.Time
}

func NewFake(rate decimal.Decimal) *Fake { return &Fake{rate: rate, now: time.Now} }

func (f *Fake) Latest(_ context.Context, base string, symbols []string) (domain.RateSnapshot, error) {
	snap := domain.RateSnapshot{
		Base:  base,
		Date:  domain.DateIn(f.now(), time.UTC),
		Rates: make(map[string]decimal.Decimal, len(symbols)),
	}
	for _, s := range symbols {
		snap.Rates[s] = f.rate
	}
	return snap, nil
}
