package application

import (
	"context"
	"fmt"
	"sort"

	"fxadmin-service/internal/domain"
)

// RateImporter copies one provider snapshot into the rate store.
type RateImporter struct {
	rates    *RateService
	provider RateProvider
}

func NewRateImporter(rates *RateService, provider RateProvider) *RateImporter {
	return &RateImporter{rates: rates, provider: provider}
}

// Import fetches base→symbols from the provider and stores one rate per
// symbol on the snapshot date. Symbols the provider did not quote are
// reported as an error after the others have been written.
func (i *RateImporter) Import(ctx context.Context, base string, symbols []string) ([]domain.RateView, error) {
	snap, err := i.provider.Latest(ctx, base, symbols)
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}
	codes := make([]string, 0, len(snap.Rates))
	for code := range snap.Rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	out := make([]domain.RateView, 0, len(codes))
	for _, code := range codes {
		r, err := i.rates.Create(ctx, RateInput{
			BaseCurrencyCode:   snap.Base,
			TargetCurrencyCode: code,
			Rate:               snap.Rates[code],
			EffectiveDate:      snap.Date,
		})
		if err != nil {
			return out, fmt.Errorf("store %s/%s: %w", snap.Base, code, err)
		}
		out = append(out, domain.RateView{
			ID:                 r.ID,
			BaseCurrencyCode:   snap.Base,
			TargetCurrencyCode: code,
			Rate:               r.Rate,
			EffectiveDate:      r.EffectiveDate,
		})
	}
	var missing []string
	for _, sym := range symbols {
		if _, ok := snap.Rates[sym]; !ok {
			missing = append(missing, sym)
		}
	}
	if len(missing) > 0 {
		return out, fmt.Errorf("provider did not quote %v", missing)
	}
	return out, nil
}
