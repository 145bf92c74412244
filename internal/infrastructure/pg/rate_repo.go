package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fxadmin-service/internal/application"
	"fxadmin-service/internal/domain"
	"fxadmin-service/internal/infrastructure/logx"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var _ application.RateRepo = (*RateRepo)(nil)

type RateRepo struct{ db *DB }

func NewRateRepo(db *DB) *RateRepo { return &RateRepo{db: db} }

func (r *RateRepo) Query(ctx context.Context, rq application.RateQuery) ([]domain.RateView, error) {
	q, args := buildRateQuery(rq)
	log := logx.FromContext(ctx).With(
		zap.String("repo", "rate"),
		zap.String("operation", "Query"),
		zap.Stringer("mode", rq.Mode),
		zap.String("base", rq.BaseCurrency),
		zap.Int("offset", rq.Offset),
		zap.Int("limit", rq.Limit),
	)
	log.Debug("sql.query_start", zap.String("sql", q))
	rows, err := r.db.q(ctx).Query(ctx, q, args...)
	if err != nil {
		log.Error("sql.query_failed", zap.Error(err))
		return nil, fmt.Errorf("query rates: %w", err)
	}
	out, err := pgx.CollectRows(rows, scanRateView)
	if err != nil {
		log.Error("sql.query_failed", zap.Error(err))
		return nil, fmt.Errorf("query rates: %w", err)
	}
	log.Debug("sql.query_success", zap.Int("rows", len(out)))
	return out, nil
}

func scanRateView(row pgx.CollectableRow) (domain.RateView, error) {
	var (
		v    domain.RateView
		rate string
	)
	if err := row.Scan(&v.ID, &v.BaseCurrencyCode, &v.TargetCurrencyCode, &rate, &v.EffectiveDate); err != nil {
		return domain.RateView{}, err
	}
	d, err := decimal.NewFromString(rate)
	if err != nil {
		return domain.RateView{}, fmt.Errorf("parse rate %q: %w", rate, err)
	}
	v.Rate = d
	return v, nil
}

func (r *RateRepo) Create(ctx context.Context, in domain.Rate) (domain.Rate, error) {
	const ins = `
        INSERT INTO rates (base_currency_id, target_currency_id, rate, effective_date)
        VALUES ($1, $2, $3::numeric, $4::date)
        RETURNING id, base_currency_id, target_currency_id, rate::text, effective_date`
	return r.write(ctx, "Create", ins, in.BaseCurrencyID, in.TargetCurrencyID, in.Rate.String(), in.EffectiveDate)
}

func (r *RateRepo) Update(ctx context.Context, in domain.Rate) (domain.Rate, error) {
	const upd = `
        UPDATE rates
           SET base_currency_id = $1, target_currency_id = $2, rate = $3::numeric, effective_date = $4::date
         WHERE id = $5
        RETURNING id, base_currency_id, target_currency_id, rate::text, effective_date`
	return r.write(ctx, "Update", upd, in.BaseCurrencyID, in.TargetCurrencyID, in.Rate.String(), in.EffectiveDate, in.ID)
}

func (r *RateRepo) write(ctx context.Context, op, sql string, args ...any) (domain.Rate, error) {
	log := logx.FromContext(ctx).With(
		zap.String("repo", "rate"),
		zap.String("operation", op),
		zap.String("sql", sql),
	)
	log.Info("sql.exec_start")
	var (
		out  domain.Rate
		rate string
		eff  time.Time
	)
	err := r.db.q(ctx).QueryRow(ctx, sql, args...).Scan(&out.ID, &out.BaseCurrencyID, &out.TargetCurrencyID, &rate, &eff)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		log.Warn("sql.exec_no_rows")
		return domain.Rate{}, application.RateNotFound()
	case pgCode(err) == codeForeignKeyViolation:
		// A currency vanished between resolution and write.
		log.Warn("sql.exec_fk_violation", zap.Error(err))
		return domain.Rate{}, fmt.Errorf("%s rate: %w", op, application.ErrUnknownCurrency)
	case err != nil:
		log.Error("sql.exec_failed", zap.Error(err))
		return domain.Rate{}, fmt.Errorf("%s rate: %w", op, err)
	}
	if out.Rate, err = decimal.NewFromString(rate); err != nil {
		return domain.Rate{}, fmt.Errorf("parse rate %q: %w", rate, err)
	}
	out.EffectiveDate = eff
	log.Info("sql.exec_success", zap.Int64("id", out.ID))
	return out, nil
}

func (r *RateRepo) Delete(ctx context.Context, id int64) (int64, error) {
	const del = `DELETE FROM rates WHERE id = $1`
	log := logx.FromContext(ctx).With(
		zap.String("repo", "rate"),
		zap.String("operation", "Delete"),
		zap.Int64("id", id),
	)
	log.Info("sql.exec_start")
	tag, err := r.db.q(ctx).Exec(ctx, del, id)
	if err != nil {
		log.Error("sql.exec_failed", zap.Error(err))
		return 0, fmt.Errorf("delete rate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		log.Warn("sql.exec_no_rows")
		return 0, application.RateNotFound()
	}
	log.Info("sql.exec_success")
	return id, nil
}
