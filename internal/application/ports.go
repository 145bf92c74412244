package application

import (
	"context"

	"fxadmin-service/internal/domain"
)

type CurrencyRepo interface {
	// List returns every currency, newest id first.
	List(ctx context.Context) ([]domain.Currency, error)
	GetByID(ctx context.Context, id int64) (domain.Currency, error)
	GetByCode(ctx context.Context, code string) (domain.Currency, error)
	Create(ctx context.Context, code, name string) (domain.Currency, error)
	Update(ctx context.Context, c domain.Currency) (domain.Currency, error)
	Delete(ctx context.Context, id int64) (domain.Currency, error)
	// IsReferenced reports whether any rate uses the currency as base or target.
	IsReferenced(ctx context.Context, id int64) (bool, error)
}

type RateRepo interface {
	Query(ctx context.Context, q RateQuery) ([]domain.RateView, error)
	Create(ctx context.Context, r domain.Rate) (domain.Rate, error)
	Update(ctx context.Context, r domain.Rate) (domain.Rate, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type RateProvider interface {
	Latest(ctx context.Context, base string, symbols []string) (domain.RateSnapshot, error)
}
