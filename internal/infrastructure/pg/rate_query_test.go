package pg

import (
	"strings"
	"testing"
	"time"

	"fxadmin-service/internal/application"

	"github.com/stretchr/testify/require"
)

func TestBuildRateQuery_Latest(t *testing.T) {
	asOf := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	sql, args := buildRateQuery(application.RateQuery{
		RateFilter: application.RateFilter{Mode: application.DateLatest, AsOf: asOf},
	})

	require.Contains(t, sql, "SELECT MAX(effective_date) FROM rates WHERE effective_date <= $1::date")
	require.NotContains(t, sql, "OFFSET")
	require.NotContains(t, sql, "LIMIT")
	require.NotContains(t, sql, "CURRENT_DATE")
	require.Equal(t, []any{asOf}, args)
}

func TestBuildRateQuery_ExactWithBaseAndPage(t *testing.T) {
	d := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	sql, args := buildRateQuery(application.RateQuery{
		RateFilter: application.RateFilter{Mode: application.DateExact, Date: d, BaseCurrency: "USD"},
		Page:       application.Page{Offset: 30, Limit: 15},
	})

	require.Contains(t, sql, "r.effective_date = $1::date AND c1.code = $2")
	require.Contains(t, sql, "OFFSET $3")
	require.Contains(t, sql, "LIMIT $4")
	require.Equal(t, []any{d, "USD", 30, 15}, args)
	require.Less(t, strings.Index(sql, "ORDER BY"), strings.Index(sql, "OFFSET"))
}

func TestBuildRateQuery_AnyHasNoWhere(t *testing.T) {
	sql, args := buildRateQuery(application.RateQuery{
		RateFilter: application.RateFilter{Mode: application.DateAny},
	})

	require.NotContains(t, sql, "WHERE")
	require.Empty(t, args)
	require.Contains(t, sql, "ORDER BY c1.code, c2.code, r.effective_date DESC, r.id")
}

func TestBuildRateQuery_FirstPageOmitsOffset(t *testing.T) {
	sql, args := buildRateQuery(application.RateQuery{
		RateFilter: application.RateFilter{Mode: application.DateAny, BaseCurrency: "EUR"},
		Page:       application.Page{Limit: 5},
	})

	require.NotContains(t, sql, "OFFSET")
	require.Contains(t, sql, "LIMIT $2")
	require.Equal(t, []any{"EUR", 5}, args)
}
