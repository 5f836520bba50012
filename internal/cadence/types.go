package cadence

// Kind identifies the type of recurring ritual.
type Kind string

const (
	// KindOneOnOne is a recurring 1:1 with a direct report.
	KindOneOnOne Kind = "one_on_one"
	// KindRetro is a team retrospective.
	KindRetro Kind = "retro"
	// KindSocial is an informal team or individual catch-up.
	KindSocial Kind = "social"
	// KindCareerChat is a longer-horizon career development conversation.
	KindCareerChat Kind = "career_chat"
	// KindTeamMeeting is a regular team meeting.
	KindTeamMeeting Kind = "team_meeting"
	// KindCustom is a user-defined ritual.
	KindCustom Kind = "custom"
)

// Scope identifies what a rule targets.
type Scope string

const (
	ScopeEmployee Scope = "employee"
	ScopeTeam     Scope = "team"
	ScopeWorkArea Scope = "work_area"
	ScopeGlobal   Scope = "global"
)

// Rule is a configured recurring ritual.
//
// A non-global rule carries exactly one target reference consistent with its
// scope. That invariant is enforced at the rule's write path, which is
// outside this engine; see Normalize for how a violating rule is tolerated.
type Rule struct {
	// ID is the unique identifier for this rule.
	ID string `json:"id"`

	// Kind is the ritual type.
	Kind Kind `json:"kind"`

	// Scope is what the rule targets.
	Scope Scope `json:"scope"`

	// TargetID references the employee, team, or work area. Empty for
	// global rules.
	TargetID string `json:"target_id,omitempty"`

	// TargetName is the resolved display name of the target, supplied by
	// the data layer.
	TargetName string `json:"target_name,omitempty"`

	// IntervalDays is how often the ritual should happen. Zero or negative
	// falls back to the kind's default.
	IntervalDays int `json:"interval_days"`

	// Active indicates whether the rule participates in evaluation.
	Active bool `json:"active"`
}

// DefaultInterval returns the default interval in days for a ritual kind.
func DefaultInterval(k Kind) int {
	switch k {
	case KindOneOnOne:
		return 14
	case KindRetro:
		return 14
	case KindSocial:
		return 30
	case KindCareerChat:
		return 90
	case KindTeamMeeting:
		return 7
	default:
		return 30
	}
}

// Interval returns the effective interval for the rule.
func (r Rule) Interval() int {
	if r.IntervalDays > 0 {
		return r.IntervalDays
	}
	return DefaultInterval(r.Kind)
}

// Normalize returns a copy of the rule with a consistent scope/target pair.
// A rule whose scope requires a target but has none degrades to global scope
// rather than failing the evaluation cycle.
func (r Rule) Normalize() Rule {
	if r.Scope != ScopeGlobal && r.TargetID == "" {
		r.Scope = ScopeGlobal
	}
	if r.Scope == ScopeGlobal {
		r.TargetID = ""
	}
	return r
}
