package cadence

import "time"

// Evaluation is the outcome of checking one rule against the clock.
type Evaluation struct {
	// IsDue reports whether the elapsed time meets or exceeds the interval.
	IsDue bool `json:"is_due"`

	// DaysSinceLast is the whole days since the last completion.
	DaysSinceLast int `json:"days_since_last"`

	// DaysOverdue is how far past the interval the rule is, zero when not
	// overdue.
	DaysOverdue int `json:"days_overdue"`
}

// Evaluate decides whether a rule is due.
//
// A ritual that has never been completed is immediately overdue: elapsed
// days are treated as interval+1. A completion timestamp in the future
// (clock skew between the recording host and now) counts as zero elapsed
// days rather than going negative.
func Evaluate(rule Rule, lastCompleted *time.Time, now time.Time) Evaluation {
	interval := rule.Interval()

	var since int
	if lastCompleted == nil {
		since = interval + 1
	} else {
		elapsed := now.Sub(*lastCompleted)
		if elapsed < 0 {
			elapsed = 0
		}
		since = int(elapsed / (24 * time.Hour))
	}

	ev := Evaluation{
		IsDue:         since >= interval,
		DaysSinceLast: since,
	}
	if since > interval {
		ev.DaysOverdue = since - interval
	}
	return ev
}
