package history

import (
	"fmt"
	"time"

	"github.com/simaogato/foliodash-backend/internal/domain"
)

// TimePeriod selects a lookback window anchored at today
type TimePeriod string

const (
	PeriodWeek    TimePeriod = "1W"
	PeriodMonth   TimePeriod = "1M"
	Period3Months TimePeriod = "3M"
	Period6Months TimePeriod = "6M"
	PeriodYear    TimePeriod = "1Y"
)

// Range returns the [from, to] date range for the period anchored at
// the given day. Subtraction is by calendar unit, not fixed day counts:
// "1M" subtracts one calendar month.
func (p TimePeriod) Range(today time.Time) (from, to string, err error) {
	var start time.Time

	switch p {
	case PeriodWeek:
		start = today.AddDate(0, 0, -7)
	case PeriodMonth:
		start = today.AddDate(0, -1, 0)
	case Period3Months:
		start = today.AddDate(0, -3, 0)
	case Period6Months:
		start = today.AddDate(0, -6, 0)
	case PeriodYear:
		start = today.AddDate(-1, 0, 0)
	default:
		return "", "", fmt.Errorf("unknown time period %q", p)
	}

	return start.Format(domain.DateFormat), today.Format(domain.DateFormat), nil
}
