package application

import (
	"context"
	"testing"
	"time"

	"fxadmin-service/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func Test_Latest_UsesReferenceZoneToday(t *testing.T) {
	t.Parallel()
	rr := &fakeRateRepo{}
	// 17:00 UTC on March 1st is 01:00 on March 2nd in UTC+8.
	svc := NewRateService(rr, usdEur(),
		WithClock(fakeClock{t: time.Date(2024, 3, 1, 17, 0, 0, 0, time.UTC)}),
	)

	_, err := svc.Latest(context.Background())
	require.NoError(t, err)
	require.Len(t, rr.queries, 1)
	q := rr.queries[0]
	require.Equal(t, DateLatest, q.Mode)
	require.Equal(t, date("2024-03-02"), q.AsOf)
	require.Zero(t, q.Limit)
}

func Test_Latest_ConfiguredLocation(t *testing.T) {
	t.Parallel()
	rr := &fakeRateRepo{}
	svc := NewRateService(rr, usdEur(),
		WithClock(fakeClock{t: time.Date(2024, 3, 1, 17, 0, 0, 0, time.UTC)}),
		WithLocation(time.UTC),
	)
	require.Equal(t, date("2024-03-01"), svc.Today())
}

func Test_Historical_EmptyIsNotFound(t *testing.T) {
	t.Parallel()
	rr := &fakeRateRepo{}
	svc := NewRateService(rr, usdEur())

	_, err := svc.Historical(context.Background(), date("2099-01-01"))
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, MsgNoRatesForDate, Message(err))
	require.Equal(t, DateExact, rr.queries[0].Mode)
	require.Equal(t, date("2099-01-01"), rr.queries[0].Date)
}

func Test_Paginated_EmptyIsNotAnError(t *testing.T) {
	t.Parallel()
	rr := &fakeRateRepo{}
	svc := NewRateService(rr, usdEur())
	d := date("2099-01-01")

	rows, err := svc.Paginated(context.Background(), RateSelection{Date: &d, BaseCurrency: "USD"}, Page{Offset: 15, Limit: 15})
	require.NoError(t, err)
	require.Empty(t, rows)
	q := rr.queries[0]
	require.Equal(t, DateExact, q.Mode)
	require.Equal(t, "USD", q.BaseCurrency)
	require.Equal(t, Page{Offset: 15, Limit: 15}, q.Page)
}

func Test_Paginated_RejectsBadWindowBeforeQuerying(t *testing.T) {
	t.Parallel()
	rr := &fakeRateRepo{}
	svc := NewRateService(rr, usdEur())

	for _, p := range []Page{{Offset: -1, Limit: 15}, {Offset: 0, Limit: 0}, {Offset: 0, Limit: 51}} {
		_, err := svc.Paginated(context.Background(), RateSelection{}, p)
		require.ErrorIs(t, err, ErrBadRequest)
		require.Equal(t, MsgInvalidPagination, Message(err))
	}
	require.Empty(t, rr.queries)
}

func Test_All_HasNoDateConstraint(t *testing.T) {
	t.Parallel()
	rr := &fakeRateRepo{}
	svc := NewRateService(rr, usdEur())
	_, err := svc.All(context.Background())
	require.NoError(t, err)
	require.Equal(t, DateAny, rr.queries[0].Mode)
}

func Test_CreateRate_ResolvesCodes(t *testing.T) {
	t.Parallel()
	rr := &fakeRateRepo{}
	uow := &countingUoW{}
	svc := NewRateService(rr, usdEur(), WithUnitOfWork(uow))

	r, err := svc.Create(context.Background(), RateInput{
		BaseCurrencyCode:   "USD",
		TargetCurrencyCode: "EUR",
		Rate:               decimal.RequireFromString("0.85"),
		EffectiveDate:      date("2023-07-01"),
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), r.ID)
	require.Equal(t, int64(1), r.BaseCurrencyID)
	require.Equal(t, int64(2), r.TargetCurrencyID)
	require.Equal(t, "0.85", r.Rate.String())
	require.Equal(t, 1, uow.calls)
}

func Test_CreateRate_UnknownCurrency(t *testing.T) {
	t.Parallel()
	svc := NewRateService(&fakeRateRepo{}, usdEur())

	_, err := svc.Create(context.Background(), RateInput{BaseCurrencyCode: "XXX", TargetCurrencyCode: "EUR"})
	require.ErrorIs(t, err, ErrUnknownCurrency)
	require.Equal(t, "Base currency with code XXX does not exist", Message(err))

	_, err = svc.Create(context.Background(), RateInput{BaseCurrencyCode: "USD", TargetCurrencyCode: "YYY"})
	require.ErrorIs(t, err, ErrUnknownCurrency)
	require.Equal(t, "Target currency with code YYY does not exist", Message(err))
}

func Test_UpdateRate(t *testing.T) {
	t.Parallel()
	rr := &fakeRateRepo{}
	svc := NewRateService(rr, usdEur())
	in := RateInput{BaseCurrencyCode: "USD", TargetCurrencyCode: "EUR", Rate: decimal.NewFromInt(1), EffectiveDate: date("2023-07-01")}
	created, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	in.BaseCurrencyCode, in.TargetCurrencyCode = "EUR", "USD"
	updated, err := svc.Update(context.Background(), created.ID, in)
	require.NoError(t, err)
	require.Equal(t, int64(2), updated.BaseCurrencyID)

	_, err = svc.Update(context.Background(), 42, in)
	require.ErrorIs(t, err, ErrNotFound)
}

func Test_DeleteRate(t *testing.T) {
	t.Parallel()
	rr := &fakeRateRepo{saved: map[int64]domain.Rate{7: {ID: 7}}}
	svc := NewRateService(rr, usdEur())

	id, err := svc.Delete(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, int64(7), id)

	_, err = svc.Delete(context.Background(), 7)
	require.ErrorIs(t, err, ErrNotFound)
}
