package provider_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"fxadmin-service/internal/domain"
	"fxadmin-service/internal/infrastructure/httpx"
	"fxadmin-service/internal/infrastructure/provider"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) *http.Response

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r), nil }

func httpClient(resBody string, code int, seen *string) *httpx.Client {
	return &httpx.Client{HTTP: &http.Client{
		Timeout: 2 * time.Second,
		Transport: roundTripFunc(func(r *http.Request) *http.Response {
			if seen != nil {
				*seen = r.URL.String()
			}
			return &http.Response{
				StatusCode: code,
				Body:       io.NopCloser(strings.NewReader(resBody)),
				Header:     make(http.Header),
				Request:    r,
			}
		}),
	}}
}

const sampleOK = `{
  "success": true,
  "base": "EUR",
  "date": "2025-11-08",
  "rates": { "USD": 1.20, "MXN": 20.00, "EUR": 1.0 }
}`

func newProvider(body string, code int, seen *string) *provider.ExchangeRatesAPIProvider {
	return &provider.ExchangeRatesAPIProvider{
		BaseURL: "https://api.exchangeratesapi.io",
		APIKey:  "test",
		Client:  httpClient(body, code, seen),
	}
}

func TestLatest_CrossRates(t *testing.T) {
	var seen string
	p := newProvider(sampleOK, 200, &seen)
	snap, err := p.Latest(context.Background(), "USD", []string{"EUR", "MXN"})
	require.NoError(t, err)

	require.Contains(t, seen, "symbols=USD%2CEUR%2CMXN")
	require.Equal(t, "USD", snap.Base)
	require.Equal(t, time.Date(2025, 11, 8, 0, 0, 0, 0, time.UTC), snap.Date)
	require.True(t, decimal.RequireFromString("0.83333333").Equal(snap.Rates["EUR"]), snap.Rates["EUR"].String())
	require.True(t, decimal.RequireFromString("16.66666667").Equal(snap.Rates["MXN"]), snap.Rates["MXN"].String())
}

func TestLatest_ProviderBase(t *testing.T) {
	p := newProvider(sampleOK, 200, nil)
	snap, err := p.Latest(context.Background(), "EUR", []string{"USD"})
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("1.2").Equal(snap.Rates["USD"]))
}

func TestLatest_MissingSymbolIsSkipped(t *testing.T) {
	p := newProvider(sampleOK, 200, nil)
	snap, err := p.Latest(context.Background(), "EUR", []string{"USD", "GBP"})
	require.NoError(t, err)
	require.Len(t, snap.Rates, 1)
	_, ok := snap.Rates["GBP"]
	require.False(t, ok)
}

func TestLatest_UnknownBase(t *testing.T) {
	p := newProvider(sampleOK, 200, nil)
	_, err := p.Latest(context.Background(), "GBP", []string{"USD"})
	require.Error(t, err)
}

func TestLatest_APIError(t *testing.T) {
	body := `{"success": false, "error": {"code": 104, "info": "quota exceeded"}}`
	p := newProvider(body, 200, nil)
	_, err := p.Latest(context.Background(), "EUR", []string{"USD"})
	require.ErrorContains(t, err, "quota exceeded")
}

func TestLatest_TimestampFallback(t *testing.T) {
	body := `{"success": true, "timestamp": 1731240000, "base":"EUR", "rates": {"USD": 1.23}}`
	p := newProvider(body, 200, nil)
	snap, err := p.Latest(context.Background(), "EUR", []string{"USD"})
	require.NoError(t, err)
	require.Equal(t, domain.DateIn(time.Unix(1731240000, 0), time.UTC), snap.Date)
}

func TestLatest_MissingConfiguration(t *testing.T) {
	p := &provider.ExchangeRatesAPIProvider{}
	_, err := p.Latest(context.Background(), "EUR", []string{"USD"})
	require.Error(t, err)
}

func TestFake(t *testing.T) {
	f := provider.NewFake(decimal.RequireFromString("1.2345"))
	snap, err := f.Latest(context.Background(), "USD", []string{"EUR", "JPY"})
	require.NoError(t, err)
	require.Equal(t, "USD", snap.Base)
	require.Len(t, snap.Rates, 2)
	require.True(t, decimal.RequireFromString("1.2345").Equal(snap.Rates["JPY"]))
	require.Equal(t, time.UTC, snap.Date.Location())
}
