//go:build wireinject

package bootstrap

import (
	"context"

	"fxadmin-service/internal/application"
	"fxadmin-service/internal/infrastructure/pg"

	"github.com/google/wire"
)

var infraSet = wire.NewSet(
	ProvideConfig,
	ProvideLogger,
	ProvideStorage,
	ProvideLocation,
	ProvideCurrencyService,
	ProvideRateService,
)

// InitAPI builds the HTTP application and its cleanup.
func InitAPI(ctx context.Context) (*API, func(), error) {
	wire.Build(
		infraSet,
		ProvideIdempotency,
		ProvideServer,
		ProvideAPI,
	)
	return nil, nil, nil
}

// InitImporter builds the rate importer used by ratesctl import.
func InitImporter(ctx context.Context) (*application.RateImporter, func(), error) {
	wire.Build(
		infraSet,
		ProvideRateProvider,
		ProvideRateImporter,
	)
	return nil, nil, nil
}

// InitMigrator connects to postgres; connecting applies pending migrations.
func InitMigrator(ctx context.Context) (*pg.DB, func(), error) {
	wire.Build(
		ProvideConfig,
		ProvideLogger,
		ProvideDB,
	)
	return nil, nil, nil
}
