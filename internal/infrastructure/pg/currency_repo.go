package pg

import (
	"context"
	"errors"
	"fmt"

	"fxadmin-service/internal/application"
	"fxadmin-service/internal/domain"
	"fxadmin-service/internal/infrastructure/logx"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var _ application.CurrencyRepo = (*CurrencyRepo)(nil)

type CurrencyRepo struct{ db *DB }

func NewCurrencyRepo(db *DB) *CurrencyRepo { return &CurrencyRepo{db: db} }

func (r *CurrencyRepo) log(ctx context.Context, op, sql string) *zap.Logger {
	return logx.FromContext(ctx).With(
		zap.String("repo", "currency"),
		zap.String("operation", op),
		zap.String("sql", sql),
	)
}

func (r *CurrencyRepo) List(ctx context.Context) ([]domain.Currency, error) {
	const q = `SELECT id, code, name FROM currencies ORDER BY id DESC`
	log := r.log(ctx, "List", q)
	log.Debug("sql.query_start")
	rows, err := r.db.q(ctx).Query(ctx, q)
	if err != nil {
		log.Error("sql.query_failed", zap.Error(err))
		return nil, fmt.Errorf("list currencies: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Currency, error) {
		var c domain.Currency
		err := row.Scan(&c.ID, &c.Code, &c.Name)
		return c, err
	})
	if err != nil {
		log.Error("sql.query_failed", zap.Error(err))
		return nil, fmt.Errorf("list currencies: %w", err)
	}
	log.Debug("sql.query_success", zap.Int("rows", len(out)))
	return out, nil
}

func (r *CurrencyRepo) GetByID(ctx context.Context, id int64) (domain.Currency, error) {
	const q = `SELECT id, code, name FROM currencies WHERE id = $1`
	return r.getOne(ctx, "GetByID", q, id)
}

func (r *CurrencyRepo) GetByCode(ctx context.Context, code string) (domain.Currency, error) {
	const q = `SELECT id, code, name FROM currencies WHERE code = $1`
	return r.getOne(ctx, "GetByCode", q, code)
}

func (r *CurrencyRepo) getOne(ctx context.Context, op, q string, arg any) (domain.Currency, error) {
	log := r.log(ctx, op, q).With(zap.Any("arg", arg))
	log.Debug("sql.query_start")
	var c domain.Currency
	err := r.db.q(ctx).QueryRow(ctx, q, arg).Scan(&c.ID, &c.Code, &c.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		log.Debug("sql.query_no_rows")
		return domain.Currency{}, application.CurrencyNotFound()
	}
	if err != nil {
		log.Error("sql.query_failed", zap.Error(err))
		return domain.Currency{}, fmt.Errorf("get currency: %w", err)
	}
	return c, nil
}

func (r *CurrencyRepo) Create(ctx context.Context, code, name string) (domain.Currency, error) {
	const ins = `INSERT INTO currencies (code, name) VALUES ($1, $2) RETURNING id, code, name`
	log := r.log(ctx, "Create", ins).With(zap.String("code", code))
	log.Info("sql.exec_start")
	var c domain.Currency
	err := r.db.q(ctx).QueryRow(ctx, ins, code, name).Scan(&c.ID, &c.Code, &c.Name)
	if pgCode(err) == codeUniqueViolation {
		log.Warn("sql.exec_conflict")
		return domain.Currency{}, application.CurrencyCodeTaken()
	}
	if err != nil {
		log.Error("sql.exec_failed", zap.Error(err))
		return domain.Currency{}, fmt.Errorf("insert currency: %w", err)
	}
	log.Info("sql.exec_success", zap.Int64("id", c.ID))
	return c, nil
}

func (r *CurrencyRepo) Update(ctx context.Context, in domain.Currency) (domain.Currency, error) {
	const upd = `UPDATE currencies SET code = $1, name = $2 WHERE id = $3 RETURNING id, code, name`
	log := r.log(ctx, "Update", upd).With(zap.Int64("id", in.ID), zap.String("code", in.Code))
	log.Info("sql.exec_start")
	var c domain.Currency
	err := r.db.q(ctx).QueryRow(ctx, upd, in.Code, in.Name, in.ID).Scan(&c.ID, &c.Code, &c.Name)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		log.Warn("sql.exec_no_rows")
		return domain.Currency{}, application.CurrencyNotFound()
	case pgCode(err) == codeUniqueViolation:
		log.Warn("sql.exec_conflict")
		return domain.Currency{}, application.CurrencyCodeTaken()
	case err != nil:
		log.Error("sql.exec_failed", zap.Error(err))
		return domain.Currency{}, fmt.Errorf("update currency: %w", err)
	}
	log.Info("sql.exec_success")
	return c, nil
}

func (r *CurrencyRepo) Delete(ctx context.Context, id int64) (domain.Currency, error) {
	const del = `DELETE FROM currencies WHERE id = $1 RETURNING id, code, name`
	log := r.log(ctx, "Delete", del).With(zap.Int64("id", id))
	log.Info("sql.exec_start")
	var c domain.Currency
	err := r.db.q(ctx).QueryRow(ctx, del, id).Scan(&c.ID, &c.Code, &c.Name)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		log.Warn("sql.exec_no_rows")
		return domain.Currency{}, application.CurrencyNotFound()
	case pgCode(err) == codeForeignKeyViolation:
		log.Warn("sql.exec_referenced")
		return domain.Currency{}, application.CurrencyInUse()
	case err != nil:
		log.Error("sql.exec_failed", zap.Error(err))
		return domain.Currency{}, fmt.Errorf("delete currency: %w", err)
	}
	log.Info("sql.exec_success")
	return c, nil
}

func (r *CurrencyRepo) IsReferenced(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM rates WHERE base_currency_id = $1 OR target_currency_id = $1)`
	var used bool
	if err := r.db.q(ctx).QueryRow(ctx, q, id).Scan(&used); err != nil {
		r.log(ctx, "IsReferenced", q).Error("sql.query_failed", zap.Error(err))
		return false, fmt.Errorf("check currency references: %w", err)
	}
	return used, nil
}
