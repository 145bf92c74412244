package application

import (
	"context"
	"errors"
	"time"

	"fxadmin-service/internal/domain"

	"github.com/shopspring/decimal"
)

type RateService struct {
	rates      RateRepo
	currencies CurrencyRepo
	uow        UnitOfWork
	clock      Clock
	loc        *time.Location
}

type Option func(*RateService)

func WithClock(c Clock) Option               { return func(s *RateService) { s.clock = c } }
func WithUnitOfWork(u UnitOfWork) Option     { return func(s *RateService) { s.uow = u } }
func WithLocation(loc *time.Location) Option { return func(s *RateService) { s.loc = loc } }

// NewRateService builds the rate service. Without WithLocation "today" is
// computed in UTC+8, never in the process's local zone.
func NewRateService(rates RateRepo, currencies CurrencyRepo, opts ...Option) *RateService {
	s := &RateService{rates: rates, currencies: currencies}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = realClock{}
	}
	if s.uow == nil {
		s.uow = NoopUoW{}
	}
	if s.loc == nil {
		s.loc = time.FixedZone("UTC+8", 8*60*60)
	}
	return s
}

// RateInput is the code-level payload of a rate write.
type RateInput struct {
	BaseCurrencyCode   string
	TargetCurrencyCode string
	Rate               decimal.Decimal
	EffectiveDate      time.Time
}

// RateSelection is the caller's view of a filter: a nil Date means "latest".
type RateSelection struct {
	Date         *time.Time
	BaseCurrency string
}

// Today is the current calendar date in the reference zone.
func (s *RateService) Today() time.Time {
	return domain.DateIn(s.clock.Now(), s.loc)
}

func (s *RateService) filter(sel RateSelection) RateFilter {
	if sel.Date != nil {
		return RateFilter{Mode: DateExact, Date: *sel.Date, BaseCurrency: sel.BaseCurrency}
	}
	return RateFilter{Mode: DateLatest, AsOf: s.Today(), BaseCurrency: sel.BaseCurrency}
}

// Latest returns every rate on the newest effective date not after today.
func (s *RateService) Latest(ctx context.Context) ([]domain.RateView, error) {
	return s.rates.Query(ctx, RateQuery{RateFilter: s.filter(RateSelection{})})
}

// Historical returns the rates effective on date; an empty result is ErrNotFound.
func (s *RateService) Historical(ctx context.Context, date time.Time) ([]domain.RateView, error) {
	rows, err := s.rates.Query(ctx, RateQuery{RateFilter: s.filter(RateSelection{Date: &date})})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, newError(ErrNotFound, MsgNoRatesForDate)
	}
	return rows, nil
}

// Paginated returns one page of the selection. An empty page is not an error.
func (s *RateService) Paginated(ctx context.Context, sel RateSelection, page Page) ([]domain.RateView, error) {
	if _, err := NewPage(page.Offset, page.Limit); err != nil {
		return nil, err
	}
	return s.rates.Query(ctx, RateQuery{RateFilter: s.filter(sel), Page: page})
}

// Snapshot returns the whole selection without paging.
func (s *RateService) Snapshot(ctx context.Context, sel RateSelection) ([]domain.RateView, error) {
	return s.rates.Query(ctx, RateQuery{RateFilter: s.filter(sel)})
}

// All lists every stored rate.
func (s *RateService) All(ctx context.Context) ([]domain.RateView, error) {
	return s.rates.Query(ctx, RateQuery{RateFilter: RateFilter{Mode: DateAny}})
}

func (s *RateService) Create(ctx context.Context, in RateInput) (domain.Rate, error) {
	var out domain.Rate
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		r, err := s.resolve(ctx, in)
		if err != nil {
			return err
		}
		out, err = s.rates.Create(ctx, r)
		return err
	})
	return out, err
}

func (s *RateService) Update(ctx context.Context, id int64, in RateInput) (domain.Rate, error) {
	var out domain.Rate
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		r, err := s.resolve(ctx, in)
		if err != nil {
			return err
		}
		r.ID = id
		out, err = s.rates.Update(ctx, r)
		return err
	})
	return out, err
}

// Delete removes a rate unconditionally and returns its id.
func (s *RateService) Delete(ctx context.Context, id int64) (int64, error) {
	return s.rates.Delete(ctx, id)
}

func (s *RateService) resolve(ctx context.Context, in RateInput) (domain.Rate, error) {
	base, err := s.lookup(ctx, "Base", in.BaseCurrencyCode)
	if err != nil {
		return domain.Rate{}, err
	}
	target, err := s.lookup(ctx, "Target", in.TargetCurrencyCode)
	if err != nil {
		return domain.Rate{}, err
	}
	return domain.Rate{
		BaseCurrencyID:   base.ID,
		TargetCurrencyID: target.ID,
		Rate:             in.Rate,
		EffectiveDate:    in.EffectiveDate,
	}, nil
}

func (s *RateService) lookup(ctx context.Context, side, code string) (domain.Currency, error) {
	c, err := s.currencies.GetByCode(ctx, code)
	if errors.Is(err, ErrNotFound) {
		return domain.Currency{}, UnknownCurrency(side, code)
	}
	return c, err
}
