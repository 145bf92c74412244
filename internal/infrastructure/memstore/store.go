// Package memstore keeps currencies and rates in process memory. It mirrors
// the constraints of the postgres schema (unique codes, restricted deletes,
// foreign keys) and is used by the memory storage mode and by tests.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"fxadmin-service/internal/application"
	"fxadmin-service/internal/domain"
)

var _ application.CurrencyRepo = (*CurrencyRepo)(nil)
var _ application.RateRepo = (*RateRepo)(nil)

type Store struct {
	mu             sync.RWMutex
	currencies     map[int64]domain.Currency
	rates          map[int64]domain.Rate
	nextCurrencyID int64
	nextRateID     int64
}

func New() *Store {
	return &Store{
		currencies: map[int64]domain.Currency{},
		rates:      map[int64]domain.Rate{},
	}
}

func (s *Store) Currencies() *CurrencyRepo { return &CurrencyRepo{s: s} }
func (s *Store) Rates() *RateRepo          { return &RateRepo{s: s} }

func (s *Store) codeTaken(code string, except int64) bool {
	for id, c := range s.currencies {
		if c.Code == code && id != except {
			return true
		}
	}
	return false
}

func (s *Store) referenced(id int64) bool {
	for _, r := range s.rates {
		if r.BaseCurrencyID == id || r.TargetCurrencyID == id {
			return true
		}
	}
	return false
}

type CurrencyRepo struct{ s *Store }

func (r *CurrencyRepo) List(_ context.Context) ([]domain.Currency, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.Currency, 0, len(r.s.currencies))
	for _, c := range r.s.currencies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *CurrencyRepo) GetByID(_ context.Context, id int64) (domain.Currency, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.currencies[id]
	if !ok {
		return domain.Currency{}, application.CurrencyNotFound()
	}
	return c, nil
}

func (r *CurrencyRepo) GetByCode(_ context.Context, code string) (domain.Currency, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.currencies {
		if c.Code == code {
			return c, nil
		}
	}
	return domain.Currency{}, application.CurrencyNotFound()
}

func (r *CurrencyRepo) Create(_ context.Context, code, name string) (domain.Currency, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.codeTaken(code, 0) {
		return domain.Currency{}, application.CurrencyCodeTaken()
	}
	r.s.nextCurrencyID++
	c := domain.Currency{ID: r.s.nextCurrencyID, Code: code, Name: name}
	r.s.currencies[c.ID] = c
	return c, nil
}

func (r *CurrencyRepo) Update(_ context.Context, c domain.Currency) (domain.Currency, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.currencies[c.ID]; !ok {
		return domain.Currency{}, application.CurrencyNotFound()
	}
	if r.s.codeTaken(c.Code, c.ID) {
		return domain.Currency{}, application.CurrencyCodeTaken()
	}
	r.s.currencies[c.ID] = c
	return c, nil
}

func (r *CurrencyRepo) Delete(_ context.Context, id int64) (domain.Currency, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.currencies[id]
	if !ok {
		return domain.Currency{}, application.CurrencyNotFound()
	}
	if r.s.referenced(id) {
		return domain.Currency{}, application.CurrencyInUse()
	}
	delete(r.s.currencies, id)
	return c, nil
}

func (r *CurrencyRepo) IsReferenced(_ context.Context, id int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.referenced(id), nil
}

type RateRepo struct{ s *Store }

func (r *RateRepo) Query(_ context.Context, q application.RateQuery) ([]domain.RateView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var (
		want    = q.Date
		hasDate = q.Mode == application.DateExact
	)
	if q.Mode == application.DateLatest {
		for _, rt := range r.s.rates {
			if !rt.EffectiveDate.After(q.AsOf) && (!hasDate || rt.EffectiveDate.After(want)) {
				want, hasDate = rt.EffectiveDate, true
			}
		}
		if !hasDate {
			return []domain.RateView{}, nil
		}
	}

	out := make([]domain.RateView, 0)
	for _, rt := range r.s.rates {
		if hasDate && !rt.EffectiveDate.Equal(want) {
			continue
		}
		base := r.s.currencies[rt.BaseCurrencyID]
		if q.BaseCurrency != "" && base.Code != q.BaseCurrency {
			continue
		}
		out = append(out, domain.RateView{
			ID:                 rt.ID,
			BaseCurrencyCode:   base.Code,
			TargetCurrencyCode: r.s.currencies[rt.TargetCurrencyID].Code,
			Rate:               rt.Rate,
			EffectiveDate:      rt.EffectiveDate,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.BaseCurrencyCode != b.BaseCurrencyCode:
			return a.BaseCurrencyCode < b.BaseCurrencyCode
		case a.TargetCurrencyCode != b.TargetCurrencyCode:
			return a.TargetCurrencyCode < b.TargetCurrencyCode
		case !a.EffectiveDate.Equal(b.EffectiveDate):
			return a.EffectiveDate.After(b.EffectiveDate)
		default:
			return a.ID < b.ID
		}
	})

	if q.Offset >= len(out) {
		return []domain.RateView{}, nil
	}
	out = out[q.Offset:]
	if q.Limit > 0 && q.Limit < len(out) {
		out = out[:q.Limit]
	}
	return out, nil
}

func (r *RateRepo) checkRefs(rt domain.Rate) error {
	if _, ok := r.s.currencies[rt.BaseCurrencyID]; !ok {
		return fmt.Errorf("base currency %d: %w", rt.BaseCurrencyID, application.ErrUnknownCurrency)
	}
	if _, ok := r.s.currencies[rt.TargetCurrencyID]; !ok {
		return fmt.Errorf("target currency %d: %w", rt.TargetCurrencyID, application.ErrUnknownCurrency)
	}
	if rt.Rate.IsNegative() {
		return fmt.Errorf("negative rate %s: %w", rt.Rate, application.ErrBadRequest)
	}
	return nil
}

func (r *RateRepo) Create(_ context.Context, rt domain.Rate) (domain.Rate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checkRefs(rt); err != nil {
		return domain.Rate{}, err
	}
	r.s.nextRateID++
	rt.ID = r.s.nextRateID
	r.s.rates[rt.ID] = rt
	return rt, nil
}

func (r *RateRepo) Update(_ context.Context, rt domain.Rate) (domain.Rate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.rates[rt.ID]; !ok {
		return domain.Rate{}, application.RateNotFound()
	}
	if err := r.checkRefs(rt); err != nil {
		return domain.Rate{}, err
	}
	r.s.rates[rt.ID] = rt
	return rt, nil
}

func (r *RateRepo) Delete(_ context.Context, id int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.rates[id]; !ok {
		return 0, application.RateNotFound()
	}
	delete(r.s.rates, id)
	return id, nil
}
