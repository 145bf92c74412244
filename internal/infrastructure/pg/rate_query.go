package pg

import (
	"strconv"
	"strings"

	"fxadmin-service/internal/application"
)

const rateSelect = `
        SELECT r.id, c1.code, c2.code, r.rate::text, r.effective_date
        FROM rates r
        JOIN currencies c1 ON c1.id = r.base_currency_id
        JOIN currencies c2 ON c2.id = r.target_currency_id`

const rateOrder = `
        ORDER BY c1.code, c2.code, r.effective_date DESC, r.id`

// buildRateQuery renders every read of the rates table. Dates are always
// bound as parameters; "today" is never taken from the database clock.
func buildRateQuery(q application.RateQuery) (string, []any) {
	var (
		where []string
		args  []any
	)
	bind := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	switch q.Mode {
	case application.DateLatest:
		where = append(where, "r.effective_date = (SELECT MAX(effective_date) FROM rates WHERE effective_date <= "+bind(q.AsOf)+"::date)")
	case application.DateExact:
		where = append(where, "r.effective_date = "+bind(q.Date)+"::date")
	}
	if q.BaseCurrency != "" {
		where = append(where, "c1.code = "+bind(q.BaseCurrency))
	}

	var sb strings.Builder
	sb.WriteString(rateSelect)
	if len(where) > 0 {
		sb.WriteString("\n        WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	sb.WriteString(rateOrder)
	if q.Offset > 0 {
		sb.WriteString("\n        OFFSET " + bind(q.Offset))
	}
	if q.Limit > 0 {
		sb.WriteString("\n        LIMIT " + bind(q.Limit))
	}
	return sb.String(), args
}
