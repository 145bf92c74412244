package application

import (
	"context"
	"errors"

	"fxadmin-service/internal/domain"
)

type CurrencyService struct {
	currencies CurrencyRepo
	uow        UnitOfWork
}

func NewCurrencyService(currencies CurrencyRepo, uow UnitOfWork) *CurrencyService {
	if uow == nil {
		uow = NoopUoW{}
	}
	return &CurrencyService{currencies: currencies, uow: uow}
}

func (s *CurrencyService) List(ctx context.Context) ([]domain.Currency, error) {
	return s.currencies.List(ctx)
}

func (s *CurrencyService) Get(ctx context.Context, id int64) (domain.Currency, error) {
	return s.currencies.GetByID(ctx, id)
}

func (s *CurrencyService) GetByCode(ctx context.Context, code string) (domain.Currency, error) {
	return s.currencies.GetByCode(ctx, code)
}

// Create inserts a new currency. Codes are compared case-sensitively.
func (s *CurrencyService) Create(ctx context.Context, code, name string) (domain.Currency, error) {
	var out domain.Currency
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		if _, err := s.currencies.GetByCode(ctx, code); err == nil {
			return CurrencyCodeTaken()
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}
		c, err := s.currencies.Create(ctx, code, name)
		if err != nil {
			return err
		}
		out = c
		return nil
	})
	return out, err
}

// Update replaces code and name of an existing currency. The new code may
// equal the currency's own code but no other currency's.
func (s *CurrencyService) Update(ctx context.Context, id int64, code, name string) (domain.Currency, error) {
	var out domain.Currency
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		if _, err := s.currencies.GetByID(ctx, id); err != nil {
			return err
		}
		owner, err := s.currencies.GetByCode(ctx, code)
		switch {
		case err == nil && owner.ID != id:
			return CurrencyCodeTaken()
		case err != nil && !errors.Is(err, ErrNotFound):
			return err
		}
		c, err := s.currencies.Update(ctx, domain.Currency{ID: id, Code: code, Name: name})
		if err != nil {
			return err
		}
		out = c
		return nil
	})
	return out, err
}

// Delete removes an unreferenced currency and returns the removed record.
func (s *CurrencyService) Delete(ctx context.Context, id int64) (domain.Currency, error) {
	var out domain.Currency
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		if _, err := s.currencies.GetByID(ctx, id); err != nil {
			return err
		}
		used, err := s.currencies.IsReferenced(ctx, id)
		if err != nil {
			return err
		}
		if used {
			return CurrencyInUse()
		}
		c, err := s.currencies.Delete(ctx, id)
		if err != nil {
			return err
		}
		out = c
		return nil
	})
	return out, err
}
