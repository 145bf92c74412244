package application

import (
	"context"
	"errors"
	"sort"
	"time"

	"fxadmin-service/internal/domain"
)

var (
	ErrRepo = errors.New("repo error")
)

type fakeCurrencyRepo struct {
	rows   map[int64]domain.Currency
	used   map[int64]bool
	nextID int64
	err    error
}

func newFakeCurrencyRepo(cs ...domain.Currency) *fakeCurrencyRepo {
	f := &fakeCurrencyRepo{rows: map[int64]domain.Currency{}, used: map[int64]bool{}}
	for _, c := range cs {
		f.rows[c.ID] = c
		if c.ID > f.nextID {
			f.nextID = c.ID
		}
	}
	return f
}

func (f *fakeCurrencyRepo) List(context.Context) ([]domain.Currency, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Currency, 0, len(f.rows))
	for _, c := range f.rows {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeCurrencyRepo) GetByID(_ context.Context, id int64) (domain.Currency, error) {
	if f.err != nil {
		return domain.Currency{}, f.err
	}
	c, ok := f.rows[id]
	if !ok {
		return domain.Currency{}, CurrencyNotFound()
	}
	return c, nil
}

func (f *fakeCurrencyRepo) GetByCode(_ context.Context, code string) (domain.Currency, error) {
	if f.err != nil {
		return domain.Currency{}, f.err
	}
	for _, c := range f.rows {
		if c.Code == code {
			return c, nil
		}
	}
	return domain.Currency{}, CurrencyNotFound()
}

func (f *fakeCurrencyRepo) Create(_ context.Context, code, name string) (domain.Currency, error) {
	f.nextID++
	c := domain.Currency{ID: f.nextID, Code: code, Name: name}
	f.rows[c.ID] = c
	return c, nil
}

func (f *fakeCurrencyRepo) Update(_ context.Context, c domain.Currency) (domain.Currency, error) {
	if _, ok := f.rows[c.ID]; !ok {
		return domain.Currency{}, CurrencyNotFound()
	}
	f.rows[c.ID] = c
	return c, nil
}

func (f *fakeCurrencyRepo) Delete(_ context.Context, id int64) (domain.Currency, error) {
	c, ok := f.rows[id]
	if !ok {
		return domain.Currency{}, CurrencyNotFound()
	}
	delete(f.rows, id)
	return c, nil
}

func (f *fakeCurrencyRepo) IsReferenced(_ context.Context, id int64) (bool, error) {
	return f.used[id], nil
}

type fakeRateRepo struct {
	queries []RateQuery
	out     []domain.RateView
	saved   map[int64]domain.Rate
	nextID  int64
	err     error
}

func (f *fakeRateRepo) Query(_ context.Context, q RateQuery) ([]domain.RateView, error) {
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

func (f *fakeRateRepo) Create(_ context.Context, r domain.Rate) (domain.Rate, error) {
	if f.err != nil {
		return domain.Rate{}, f.err
	}
	if f.saved == nil {
		f.saved = map[int64]domain.Rate{}
	}
	f.nextID++
	r.ID = f.nextID
	f.saved[r.ID] = r
	return r, nil
}

func (f *fakeRateRepo) Update(_ context.Context, r domain.Rate) (domain.Rate, error) {
	if _, ok := f.saved[r.ID]; !ok {
		return domain.Rate{}, RateNotFound()
	}
	f.saved[r.ID] = r
	return r, nil
}

func (f *fakeRateRepo) Delete(_ context.Context, id int64) (int64, error) {
	if _, ok := f.saved[id]; !ok {
		return 0, RateNotFound()
	}
	delete(f.saved, id)
	return id, nil
}

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

type countingUoW struct{ calls int }

func (u *countingUoW) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	u.calls++
	return fn(ctx)
}

type fakeRateProvider struct {
	out domain.RateSnapshot
	err error
}

func (f *fakeRateProvider) Latest(context.Context, string, []string) (domain.RateSnapshot, error) {
	if f.err != nil {
		return domain.RateSnapshot{}, f.err
	}
	return f.out, nil
}
