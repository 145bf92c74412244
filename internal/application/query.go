package application

import "time"

// DateMode selects how a RateFilter constrains effective_date.
type DateMode int

const (
	// DateLatest keeps the rows on the newest effective date not after AsOf.
	DateLatest DateMode = iota
	// DateExact keeps the rows on Date.
	DateExact
	// DateAny applies no date constraint.
	DateAny
)

func (m DateMode) String() string {
	switch m {
	case DateLatest:
		return "latest"
	case DateExact:
		return "exact"
	default:
		return "any"
	}
}

const (
	DefaultPageLimit = 15
	MaxPageLimit     = 50
)

type RateFilter struct {
	Mode DateMode
	// Date is used by DateExact.
	Date time.Time
	// AsOf is the reference-zone "today" used by DateLatest.
	AsOf time.Time
	// BaseCurrency, when set, must equal the base code exactly.
	BaseCurrency string
}

// Page is an offset/limit window. A zero Limit means unbounded and is only
// produced internally; callers go through NewPage.
type Page struct {
	Offset int
	Limit  int
}

// NewPage validates a caller supplied window.
func NewPage(offset, limit int) (Page, error) {
	if offset < 0 || limit < 1 || limit > MaxPageLimit {
		return Page{}, newError(ErrBadRequest, MsgInvalidPagination)
	}
	return Page{Offset: offset, Limit: limit}, nil
}

// HasMore reports whether another page may follow a page of n rows.
func (p Page) HasMore(n int) bool {
	return p.Limit > 0 && n == p.Limit
}

// RateQuery is the single input of the rate query engine.
type RateQuery struct {
	RateFilter
	Page
}
