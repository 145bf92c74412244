package memstore_test

import (
	"context"
	"testing"
	"time"

	"fxadmin-service/internal/application"
	"fxadmin-service/internal/domain"
	"fxadmin-service/internal/infrastructure/memstore"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

type fixture struct {
	store *memstore.Store
	ids   map[string]int64
}

func newFixture(t *testing.T, codes ...string) fixture {
	t.Helper()
	f := fixture{store: memstore.New(), ids: map[string]int64{}}
	for _, code := range codes {
		c, err := f.store.Currencies().Create(context.Background(), code, code+" name")
		require.NoError(t, err)
		f.ids[code] = c.ID
	}
	return f
}

func (f fixture) rate(t *testing.T, base, target, rate, date string) domain.Rate {
	t.Helper()
	r, err := f.store.Rates().Create(context.Background(), domain.Rate{
		BaseCurrencyID:   f.ids[base],
		TargetCurrencyID: f.ids[target],
		Rate:             decimal.RequireFromString(rate),
		EffectiveDate:    day(date),
	})
	require.NoError(t, err)
	return r
}

func labels(rows []domain.RateView) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Label())
	}
	return out
}

func TestQuery_LatestIgnoresFutureAndOrders(t *testing.T) {
	f := newFixture(t, "USD", "EUR", "JPY")
	f.rate(t, "USD", "JPY", "148.5", "2024-01-15")
	f.rate(t, "USD", "EUR", "0.92", "2024-01-15")
	f.rate(t, "EUR", "USD", "1.087", "2024-01-15")
	f.rate(t, "USD", "EUR", "0.91", "2024-01-14")
	f.rate(t, "USD", "EUR", "0.99", "2024-02-01")

	rows, err := f.store.Rates().Query(context.Background(), application.RateQuery{
		RateFilter: application.RateFilter{Mode: application.DateLatest, AsOf: day("2024-01-20")},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"EUR→USD", "USD→EUR", "USD→JPY"}, labels(rows))
	for _, r := range rows {
		require.Equal(t, day("2024-01-15"), r.EffectiveDate)
	}
}

func TestQuery_LatestWithNothingBeforeAsOf(t *testing.T) {
	f := newFixture(t, "USD", "EUR")
	f.rate(t, "USD", "EUR", "0.92", "2099-01-01")

	rows, err := f.store.Rates().Query(context.Background(), application.RateQuery{
		RateFilter: application.RateFilter{Mode: application.DateLatest, AsOf: day("2024-01-20")},
	})
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestQuery_PagesAreDisjointWithDuplicates(t *testing.T) {
	f := newFixture(t, "USD", "EUR")
	var ids []int64
	for i := 0; i < 5; i++ {
		ids = append(ids, f.rate(t, "USD", "EUR", "0.92", "2024-01-15").ID)
	}

	seen := map[int64]bool{}
	for offset := 0; offset < 5; offset += 2 {
		rows, err := f.store.Rates().Query(context.Background(), application.RateQuery{
			RateFilter: application.RateFilter{Mode: application.DateExact, Date: day("2024-01-15")},
			Page:       application.Page{Offset: offset, Limit: 2},
		})
		require.NoError(t, err)
		for _, r := range rows {
			require.False(t, seen[r.ID], "row %d returned twice", r.ID)
			seen[r.ID] = true
		}
	}
	require.Len(t, seen, len(ids))
}

func TestQuery_BaseFilterIsCaseSensitive(t *testing.T) {
	f := newFixture(t, "USD", "EUR")
	f.rate(t, "USD", "EUR", "0.92", "2024-01-15")

	rows, err := f.store.Rates().Query(context.Background(), application.RateQuery{
		RateFilter: application.RateFilter{Mode: application.DateAny, BaseCurrency: "usd"},
	})
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestQuery_OffsetPastEnd(t *testing.T) {
	f := newFixture(t, "USD", "EUR")
	f.rate(t, "USD", "EUR", "0.92", "2024-01-15")

	rows, err := f.store.Rates().Query(context.Background(), application.RateQuery{
		RateFilter: application.RateFilter{Mode: application.DateAny},
		Page:       application.Page{Offset: 10, Limit: 15},
	})
	require.NoError(t, err)
	require.NotNil(t, rows)
	require.Empty(t, rows)
}

func TestCurrencies_Constraints(t *testing.T) {
	f := newFixture(t, "USD", "EUR", "JPY")
	ctx := context.Background()
	repo := f.store.Currencies()

	_, err := repo.Create(ctx, "USD", "again")
	require.ErrorIs(t, err, application.ErrConflict)

	_, err = repo.Update(ctx, domain.Currency{ID: f.ids["EUR"], Code: "USD", Name: "x"})
	require.ErrorIs(t, err, application.ErrConflict)

	same, err := repo.Update(ctx, domain.Currency{ID: f.ids["EUR"], Code: "EUR", Name: "Euro"})
	require.NoError(t, err)
	require.Equal(t, "Euro", same.Name)

	f.rate(t, "USD", "EUR", "0.92", "2024-01-15")
	_, err = repo.Delete(ctx, f.ids["EUR"])
	require.ErrorIs(t, err, application.ErrInUse)

	removed, err := repo.Delete(ctx, f.ids["JPY"])
	require.NoError(t, err)
	require.Equal(t, "JPY", removed.Code)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Greater(t, list[0].ID, list[1].ID)
}

func TestRates_UnknownCurrencyAndMissingRow(t *testing.T) {
	f := newFixture(t, "USD")
	ctx := context.Background()

	_, err := f.store.Rates().Create(ctx, domain.Rate{BaseCurrencyID: f.ids["USD"], TargetCurrencyID: 42, Rate: decimal.NewFromInt(1)})
	require.ErrorIs(t, err, application.ErrUnknownCurrency)

	_, err = f.store.Rates().Update(ctx, domain.Rate{ID: 7})
	require.ErrorIs(t, err, application.ErrNotFound)

	_, err = f.store.Rates().Delete(ctx, 7)
	require.ErrorIs(t, err, application.ErrNotFound)
}
