package recurrence

import "time"

// Occurrence is the next time an annual date comes around.
type Occurrence struct {
	// OccursOn is the next occurrence, at midnight in now's location.
	OccursOn time.Time `json:"occurs_on"`

	// DaysUntil is the number of whole days from now until OccursOn.
	// A same-day occurrence reports 0; the value is never negative.
	DaysUntil int `json:"days_until"`
}

// AnniversaryOccurrence is an occurrence with a milestone count.
type AnniversaryOccurrence struct {
	Occurrence

	// Years is how many years the anniversary marks (candidate year minus
	// base year). Callers typically suppress anniversaries below one year.
	Years int `json:"years"`
}

// Project returns the next occurrence of base's month and day, on or after
// now. The candidate is built from now's year; if that date has already
// passed (date-only comparison), the year advances by one.
//
// A Feb 29 base in a non-leap candidate year normalizes to Mar 1, which is
// what time.Date does with out-of-range days. The projection never fails.
func Project(base, now time.Time) Occurrence {
	today := midnight(now)
	candidate := time.Date(now.Year(), base.Month(), base.Day(), 0, 0, 0, 0, now.Location())
	if candidate.Before(today) {
		candidate = time.Date(now.Year()+1, base.Month(), base.Day(), 0, 0, 0, 0, now.Location())
	}
	return Occurrence{
		OccursOn:  candidate,
		DaysUntil: daysBetween(today, candidate),
	}
}

// ProjectAnniversary is Project plus the years-at milestone for work
// anniversaries.
func ProjectAnniversary(base, now time.Time) AnniversaryOccurrence {
	occ := Project(base, now)
	return AnniversaryOccurrence{
		Occurrence: occ,
		Years:      occ.OccursOn.Year() - base.Year(),
	}
}

// midnight truncates t to the start of its calendar day.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween counts whole calendar days from from to to, rounding up.
// Both dates are re-anchored in UTC so DST transitions cannot skew the
// count (a 23- or 25-hour local day still counts as one day).
func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	diff := t.Sub(f)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return days
}
