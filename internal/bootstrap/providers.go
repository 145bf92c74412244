package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"fxadmin-service/internal/application"
	"fxadmin-service/internal/config"
	infraconfig "fxadmin-service/internal/infrastructure/config"
	httpserver "fxadmin-service/internal/infrastructure/http"
	"fxadmin-service/internal/infrastructure/httpx"
	"fxadmin-service/internal/infrastructure/logx"
	"fxadmin-service/internal/infrastructure/memstore"
	"fxadmin-service/internal/infrastructure/pg"
	"fxadmin-service/internal/infrastructure/provider"
	redisstore "fxadmin-service/internal/infrastructure/redis"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Storage is the set of repositories selected by STORAGE.
type Storage struct {
	Currencies application.CurrencyRepo
	Rates      application.RateRepo
	UoW        application.UnitOfWork
	Ping       func(ctx context.Context) error
}

// API is everything cmd/api needs to serve.
type API struct {
	Config  config.Config
	Logger  *zap.Logger
	Handler http.Handler
}

func ProvideConfig() (config.Config, error) { return config.Load() }

func ProvideLogger(cfg config.Config) *zap.Logger {
	logx.SetLevel(cfg.LogLevel)
	return logx.L()
}

func ProvideLocation(cfg config.Config) (*time.Location, error) { return cfg.Location() }

func ProvideDB(ctx context.Context, log *zap.Logger, cfg config.Config) (*pg.DB, func(), error) {
	if cfg.DatabaseURL == "" {
		return nil, func() {}, ErrMissingDBURL
	}
	db, err := pg.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, func() {}, err
	}
	if err := db.WaitReady(ctx, infraconfig.DefaultPGReadyTimeout); err != nil {
		db.Close()
		return nil, func() {}, err
	}
	if err := pg.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, func() {}, err
	}
	cleanup := func() {
		log.Info("closing pg")
		db.Close()
	}
	return db, cleanup, nil
}

func ProvideStorage(ctx context.Context, log *zap.Logger, cfg config.Config) (Storage, func(), error) {
	switch cfg.Storage {
	case "memory":
		log.Warn("using in-memory storage; data is lost on exit")
		store := memstore.New()
		return Storage{
			Currencies: store.Currencies(),
			Rates:      store.Rates(),
			UoW:        application.NoopUoW{},
		}, func() {}, nil
	case "pg":
		db, cleanup, err := ProvideDB(ctx, log, cfg)
		if err != nil {
			return Storage{}, func() {}, err
		}
		return Storage{
			Currencies: pg.NewCurrencyRepo(db),
			Rates:      pg.NewRateRepo(db),
			UoW:        pg.NewUnitOfWork(db),
			Ping:       db.Ping,
		}, cleanup, nil
	default:
		return Storage{}, func() {}, fmt.Errorf("unsupported STORAGE=%q", cfg.Storage)
	}
}

func ProvideIdempotency(ctx context.Context, log *zap.Logger, cfg config.Config) (application.IdempotencyStore, func(), error) {
	if cfg.IdempotencyBackend != "redis" {
		return application.NoopIdempotency{}, func() {}, nil
	}
	store, err := redisstore.Dial(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.IdempotencyTTL)
	if err != nil {
		return nil, func() {}, err
	}
	log.Info("idempotency backend ready", zap.String("addr", cfg.RedisAddr))
	return store, func() { _ = store.Close() }, nil
}

func ProvideCurrencyService(st Storage) *application.CurrencyService {
	return application.NewCurrencyService(st.Currencies, st.UoW)
}

func ProvideRateService(st Storage, loc *time.Location) *application.RateService {
	return application.NewRateService(st.Rates, st.Currencies,
		application.WithUnitOfWork(st.UoW),
		application.WithLocation(loc),
	)
}

func ProvideRateProvider(cfg config.Config) application.RateProvider {
	switch cfg.Provider {
	case "exchangeratesapi":
		return &provider.ExchangeRatesAPIProvider{
			BaseURL: cfg.ExchangeAPIBase,
			APIKey:  cfg.ExchangeAPIKey,
			Client:  &httpx.Client{HTTP: &http.Client{Timeout: cfg.RequestTimeout}},
		}
	default:
		return provider.NewFake(decimal.RequireFromString("1.2345"))
	}
}

func ProvideRateImporter(rates *application.RateService, rp application.RateProvider) *application.RateImporter {
	return application.NewRateImporter(rates, rp)
}

func ProvideServer(cfg config.Config, st Storage, idem application.IdempotencyStore, cs *application.CurrencyService, rs *application.RateService) *httpserver.Server {
	opts := []httpserver.Option{
		httpserver.WithIdempotency(idem),
		httpserver.WithCORSOrigins(cfg.CORSAllowedOrigins),
	}
	if st.Ping != nil {
		opts = append(opts, httpserver.WithReadyCheck(st.Ping))
	}
	return httpserver.NewServer(cs, rs, opts...)
}

func ProvideAPI(cfg config.Config, log *zap.Logger, srv *httpserver.Server) *API {
	return &API{Config: cfg, Logger: log, Handler: httpserver.NewRouter(srv)}
}
