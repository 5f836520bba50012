package focus

import (
	"sort"
	"time"

	"github.com/fyrsmithlabs/focusd/internal/recurrence"
)

// PersonEventKind distinguishes upcoming personal dates.
type PersonEventKind string

const (
	PersonEventBirthday    PersonEventKind = "birthday"
	PersonEventAnniversary PersonEventKind = "anniversary"
)

// Defaults for the rolling calendar window.
const (
	DefaultUpcomingWindowDays = 14
	DefaultUpcomingLimit      = 5
)

// UpcomingPersonEvent is a derived, never-stored projection of a person's
// next birthday or work anniversary.
type UpcomingPersonEvent struct {
	Kind       PersonEventKind `json:"kind"`
	PersonID   string          `json:"person_id"`
	PersonName string          `json:"person_name"`
	OccursOn   time.Time       `json:"occurs_on"`
	DaysUntil  int             `json:"days_until"`

	// Years is the anniversary milestone; zero for birthdays.
	Years int `json:"years,omitempty"`
}

// UpcomingEvents projects birthdays and work anniversaries for the given
// people onto a rolling window of windowDays from now, sorted ascending by
// days-until and truncated to limit. Work anniversaries below one year
// (the person has not started yet) are suppressed.
func UpcomingEvents(people []Person, now time.Time, windowDays, limit int) []UpcomingPersonEvent {
	if windowDays <= 0 {
		windowDays = DefaultUpcomingWindowDays
	}
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}

	var events []UpcomingPersonEvent
	for _, p := range people {
		if p.Status == PersonInactive {
			continue
		}
		if p.BirthDate != nil {
			occ := recurrence.Project(*p.BirthDate, now)
			if occ.DaysUntil <= windowDays {
				events = append(events, UpcomingPersonEvent{
					Kind:       PersonEventBirthday,
					PersonID:   p.ID,
					PersonName: p.Name,
					OccursOn:   occ.OccursOn,
					DaysUntil:  occ.DaysUntil,
				})
			}
		}
		if p.StartDate != nil {
			occ := recurrence.ProjectAnniversary(*p.StartDate, now)
			if occ.Years >= 1 && occ.DaysUntil <= windowDays {
				events = append(events, UpcomingPersonEvent{
					Kind:       PersonEventAnniversary,
					PersonID:   p.ID,
					PersonName: p.Name,
					OccursOn:   occ.OccursOn,
					DaysUntil:  occ.DaysUntil,
					Years:      occ.Years,
				})
			}
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].DaysUntil != events[j].DaysUntil {
			return events[i].DaysUntil < events[j].DaysUntil
		}
		if events[i].PersonID != events[j].PersonID {
			return events[i].PersonID < events[j].PersonID
		}
		return events[i].Kind < events[j].Kind
	})

	if len(events) > limit {
		events = events[:limit]
	}
	return events
}
