package httpserver

import (
	"context"

	"fxadmin-service/internal/application"
	infraconfig "fxadmin-service/internal/infrastructure/config"
)

type Server struct {
	currencies *application.CurrencyService
	rates      *application.RateService

	ping        func(ctx context.Context) error
	idem        application.IdempotencyStore
	corsOrigins []string
	chartWidth  int
	chartHeight int
}

type Option func(*Server)

// WithReadyCheck sets the probe behind /readyz.
func WithReadyCheck(fn func(ctx context.Context) error) Option {
	return func(s *Server) { s.ping = fn }
}

// WithIdempotency enables X-Idempotency-Key handling on POST routes.
func WithIdempotency(store application.IdempotencyStore) Option {
	return func(s *Server) { s.idem = store }
}

func WithCORSOrigins(origins []string) Option {
	return func(s *Server) { s.corsOrigins = origins }
}

func WithChartSize(width, height int) Option {
	return func(s *Server) { s.chartWidth, s.chartHeight = width, height }
}

func NewServer(currencies *application.CurrencyService, rates *application.RateService, opts ...Option) *Server {
	s := &Server{
		currencies:  currencies,
		rates:       rates,
		idem:        application.NoopIdempotency{},
		corsOrigins: []string{"*"},
		chartWidth:  infraconfig.DefaultChartWidth,
		chartHeight: infraconfig.DefaultChartHeight,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
