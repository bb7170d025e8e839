package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodEnd(t *testing.T) {
	from := time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		period string
		want   time.Time
	}{
		{PeriodDaily, time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)},
		{PeriodWeekly, time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)},
		// Jan 31 + 1 month normalizes to Mar 3 (2026 is not a leap year).
		{PeriodMonthly, time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC)},
		{PeriodYearly, time.Date(2027, 1, 31, 12, 0, 0, 0, time.UTC)},
		// Unknown periods bill monthly.
		{"FORTNIGHTLY", time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		plan := RecurringPlan{BillingPeriod: tc.period}
		assert.Equal(t, tc.want, plan.PeriodEnd(from), "period %s", tc.period)
	}
}
