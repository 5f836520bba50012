package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestProject_UpcomingThisYear(t *testing.T) {
	// Birthday 1990-06-15, five days out.
	occ := Project(date(1990, time.June, 15), date(2025, time.June, 10))

	assert.Equal(t, date(2025, time.June, 15), occ.OccursOn)
	assert.Equal(t, 5, occ.DaysUntil)
}

func TestProject_RollsToNextYear(t *testing.T) {
	occ := Project(date(1990, time.June, 15), date(2025, time.June, 20))

	assert.Equal(t, date(2026, time.June, 15), occ.OccursOn)
	assert.Equal(t, 360, occ.DaysUntil)
}

func TestProject_SameDayIsZero(t *testing.T) {
	// Time of day must not push a same-day event into the future or past.
	now := time.Date(2025, time.June, 15, 23, 30, 0, 0, time.UTC)
	occ := Project(date(1990, time.June, 15), now)

	assert.Equal(t, date(2025, time.June, 15), occ.OccursOn)
	assert.Equal(t, 0, occ.DaysUntil)
}

func TestProject_LeapDayNormalizesToMarchFirst(t *testing.T) {
	occ := Project(date(2024, time.February, 29), date(2025, time.March, 5))

	// Feb 29 2026 does not exist; time.Date normalizes to Mar 1.
	assert.Equal(t, date(2026, time.March, 1), occ.OccursOn)
	assert.Equal(t, 361, occ.DaysUntil)
}

func TestProject_LeapDayBeforeRollover(t *testing.T) {
	occ := Project(date(2024, time.February, 29), date(2025, time.February, 10))

	assert.Equal(t, date(2025, time.March, 1), occ.OccursOn)
	assert.Equal(t, 19, occ.DaysUntil)
}

func TestProject_NeverNegative(t *testing.T) {
	base := date(1988, time.November, 3)
	now := date(2025, time.January, 1)
	for i := 0; i < 730; i++ {
		occ := Project(base, now.AddDate(0, 0, i))
		assert.GreaterOrEqual(t, occ.DaysUntil, 0, "now=%s", now.AddDate(0, 0, i))
		assert.LessOrEqual(t, occ.DaysUntil, 366)
	}
}

func TestProjectAnniversary_Years(t *testing.T) {
	tests := []struct {
		name      string
		start     time.Time
		now       time.Time
		wantYears int
	}{
		{"three years in", date(2022, time.September, 1), date(2025, time.August, 20), 3},
		{"rolls to next year", date(2022, time.September, 1), date(2025, time.September, 2), 4},
		{"first anniversary after partial year", date(2025, time.March, 1), date(2025, time.August, 20), 1},
		{"not started yet", date(2025, time.September, 10), date(2025, time.August, 20), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			occ := ProjectAnniversary(tt.start, tt.now)
			assert.Equal(t, tt.wantYears, occ.Years)
			assert.GreaterOrEqual(t, occ.DaysUntil, 0)
		})
	}
}

func TestDaysBetween_DSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	// Spring forward 2025-03-09: the local day is 23 hours long.
	from := time.Date(2025, time.March, 8, 0, 0, 0, 0, loc)
	to := time.Date(2025, time.March, 10, 0, 0, 0, 0, loc)
	assert.Equal(t, 2, daysBetween(from, to))
}
