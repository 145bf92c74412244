package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fxadmin-service/internal/application"
	"fxadmin-service/internal/domain"
	"fxadmin-service/internal/infrastructure/httpx"
	"fxadmin-service/internal/infrastructure/logx"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	exchangeRatesLatestPath = "/v1/latest"
	// ratePlaces matches the scale of the rates.rate column.
	ratePlaces = 8
)

type ExchangeRatesAPIProvider struct {
	BaseURL string
	APIKey  string
	Client  *httpx.Client
}

var _ application.RateProvider = (*ExchangeRatesAPIProvider)(nil)

type xrLatestResp struct {
	Success   bool                       `json:"success"`
	Timestamp int64                      `json:"timestamp"`
	Base      string                     `json:"base"`
	Date      string                     `json:"date"`
	Rates     map[string]decimal.Decimal `json:"rates"`
	Error     *struct {
		Code int    `json:"code"`
		Info string `json:"info"`
	} `json:"error,omitempty"`
}

// Latest quotes symbols against base. The API answers against its own base
// currency, so every rate is crossed through it.
func (p *ExchangeRatesAPIProvider) Latest(ctx context.Context, base string, symbols []string) (domain.RateSnapshot, error) {
	if p.BaseURL == "" || p.APIKey == "" {
		return domain.RateSnapshot{}, errors.New("exchangeratesapi: missing configuration")
	}
	if base == "" || len(symbols) == 0 {
		return domain.RateSnapshot{}, errors.New("exchangeratesapi: base and symbols are required")
	}

	u, err := url.Parse(p.BaseURL)
	if err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("exchangeratesapi: invalid base url: %w", err)
	}
	u.Path = exchangeRatesLatestPath
	q := u.Query()
	q.Set("access_key", p.APIKey)
	q.Set("symbols", strings.Join(append([]string{base}, symbols...), ","))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("exchangeratesapi: create request: %w", err)
	}
	client := p.Client
	if client == nil {
		client = &httpx.Client{}
	}
	log := logx.FromContext(ctx).With(zap.String("provider", "exchangeratesapi"), zap.String("base", base))

	var body xrLatestResp
	if err := client.DoJSON(ctx, req, &body, log); err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("exchangeratesapi: %w", err)
	}
	if !body.Success {
		if body.Error != nil {
			return domain.RateSnapshot{}, fmt.Errorf("exchangeratesapi: %d %s", body.Error.Code, body.Error.Info)
		}
		return domain.RateSnapshot{}, errors.New("exchangeratesapi: unsuccessful response")
	}

	quote := func(c string) (decimal.Decimal, bool) {
		if c == body.Base {
			return decimal.NewFromInt(1), true
		}
		v, ok := body.Rates[c]
		return v, ok
	}
	perBase, ok := quote(base)
	if !ok || perBase.IsZero() {
		return domain.RateSnapshot{}, fmt.Errorf("exchangeratesapi: no usable rate for base %s", base)
	}

	snap := domain.RateSnapshot{Base: base, Date: snapshotDate(body), Rates: map[string]decimal.Decimal{}}
	for _, sym := range symbols {
		v, ok := quote(sym)
		if !ok {
			log.Warn("provider.symbol_missing", zap.String("symbol", sym))
			continue
		}
		snap.Rates[sym] = v.DivRound(perBase, ratePlaces)
	}
	return snap, nil
}

func snapshotDate(body xrLatestResp) time.Time {
	if d, err := domain.ParseDate(body.Date); err == nil {
		return d
	}
	if body.Timestamp > 0 {
		return domain.DateIn(time.Unix(body.Timestamp, 0), time.UTC)
	}
	return domain.DateIn(time.Now(), time.UTC)
}
