package focus

import (
	"time"

	"github.com/fyrsmithlabs/focusd/internal/cadence"
)

// Signal kinds, one per collector. The kind doubles as the first half of
// the dismissal key.
const (
	KindOverdueActions         = "overdue-actions"
	KindEventsWithoutPrep      = "events-without-prep"
	KindCadenceDue             = "cadence-due"
	KindOffboardingEmployee    = "offboarding-employee"
	KindStaleOneOnOne          = "stale-1:1"
	KindEventsNeedingReview    = "events-needing-review"
	KindNearCompleteChallenge  = "near-complete-challenge"
	KindAISuggestion           = "ai-suggestion"
	KindFallbackSuggestion     = "fallback-suggestion"
	KindMissingDevelopmentPlan = "missing-development-plan"
	KindBusiestWorkArea        = "busiest-work-area"
	KindUncategorizedActions   = "uncategorized-actions"
	KindAvailableSkillXP       = "available-xp-for-skill"
)

// Verb is an action a user may take on a signal.
type Verb string

const (
	VerbDismiss      Verb = "dismiss"
	VerbSnooze       Verb = "snooze"
	VerbComplete     Verb = "complete"
	VerbNavigate     Verb = "navigate"
	VerbCreateEvent  Verb = "create-event"
	VerbQuickAdd     Verb = "quick-add"
	VerbMarkNoAction Verb = "mark-no-action"
)

// Signal is one ranked recommendation candidate. Signals are rebuilt from
// scratch every cycle and never persisted.
type Signal struct {
	// Kind tags the collector that produced the signal.
	Kind string `json:"kind"`

	// ID identifies the condition the signal summarizes. Composite ids
	// are the sorted, comma-joined ids of the underlying entities, so a
	// changed entity set yields a new identity.
	ID string `json:"id"`

	// Priority orders signals; lower is more urgent.
	Priority float64 `json:"priority"`

	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// Link is an optional navigation target into the surrounding app.
	Link string `json:"link,omitempty"`

	// Actionable indicates the user can act on the signal directly.
	Actionable bool `json:"actionable"`

	// AllowedActions lists the verbs the UI may offer for this signal.
	AllowedActions []Verb `json:"allowed_actions,omitempty"`
}

// PersonStatus is the employment status of a person.
type PersonStatus string

const (
	PersonActive      PersonStatus = "active"
	PersonOffboarding PersonStatus = "offboarding"
	PersonInactive    PersonStatus = "inactive"
)

// Person is a read-only slice of the people directory.
type Person struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Status    PersonStatus `json:"status"`
	BirthDate *time.Time   `json:"birth_date,omitempty"`
	StartDate *time.Time   `json:"start_date,omitempty"`

	// DevelopmentPlans counts the person's development plans.
	DevelopmentPlans int `json:"development_plans"`
}

// CadenceStatus pairs a rule with its most recent completion, resolved by
// the data layer. The engine never writes either side.
type CadenceStatus struct {
	Rule          cadence.Rule `json:"rule"`
	LastCompleted *time.Time   `json:"last_completed,omitempty"`
}

// Action is an open work item.
type Action struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	DueOn    *time.Time `json:"due_on,omitempty"`
	WorkArea string     `json:"work_area,omitempty"`
	Assignee string     `json:"assignee,omitempty"`
	Done     bool       `json:"done"`
}

// Event is one of today's calendar events.
type Event struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Kind        cadence.Kind `json:"kind"`
	StartsAt    time.Time    `json:"starts_at"`
	NeedsReview bool         `json:"needs_review"`
	Notes       string       `json:"notes,omitempty"`
}

// Challenge is an in-progress challenge with numeric progress.
type Challenge struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Progress float64 `json:"progress"`
	Target   float64 `json:"target"`
}

// Suggestion is one externally generated recommendation. The engine treats
// suggestion generation as opaque; it only ranks what it is handed.
type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`
}

// WorkArea resolves a work-area id to its display name.
type WorkArea struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Skill is a skill with experience points available to spend.
type Skill struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AvailableXP int    `json:"available_xp"`
}

// Snapshot is the consistent, read-only view of external data one
// evaluation cycle runs against. Every slice may be nil or empty; a
// missing optional source simply contributes no signals.
type Snapshot struct {
	Cadences            []CadenceStatus `json:"cadences,omitempty"`
	Actions             []Action        `json:"actions,omitempty"`
	Events              []Event         `json:"events,omitempty"`
	People              []Person        `json:"people,omitempty"`
	Challenges          []Challenge     `json:"challenges,omitempty"`
	AISuggestions       []Suggestion    `json:"ai_suggestions,omitempty"`
	FallbackSuggestions []Suggestion    `json:"fallback_suggestions,omitempty"`
	WorkAreas           []WorkArea      `json:"work_areas,omitempty"`
	Skills              []Skill         `json:"skills,omitempty"`
}

// workAreaName resolves a work-area id for display, falling back to the id.
func (s *Snapshot) workAreaName(id string) string {
	for _, wa := range s.WorkAreas {
		if wa.ID == id {
			return wa.Name
		}
	}
	return id
}
