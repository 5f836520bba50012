package focus

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"time"

	"github.com/fyrsmithlabs/focusd/internal/cadence"
	"github.com/fyrsmithlabs/focusd/internal/dismissal"
)

// Priority bands, lower is more urgent. The exact values are policy: they
// encode which concern wins when everything is on fire at once.
const (
	priorityOverdueActions        = 1.0
	priorityEventsWithoutPrep     = 1.2
	priorityCadenceDueBase        = 1.5
	priorityCadenceDueStep        = 0.1
	priorityOffboarding           = 1.8
	priorityStaleOneOnOne         = 2.0
	priorityEventsNeedingReview   = 2.0
	priorityNearCompleteChallenge = 2.5
	prioritySuggestionBase        = 3.0
	priorityMissingPlan           = 4.0
	priorityBusiestWorkArea       = 6.0
	priorityUncategorized         = 8.0
	priorityAvailableXP           = 10.0
)

// Per-collector output caps, so no single source dominates the list.
const (
	maxCadenceDueSignals  = 3
	maxOffboardingSignals = 3
	maxStaleSignals       = 2
	maxChallengeSignals   = 2
	maxSuggestionSignals  = 3
	maxMissingPlanSignals = 2
)

// Thresholds.
const (
	staleOverdueDays     = 7
	nearCompleteRatio    = 0.8
	busiestOpenActions   = 10
	uncategorizedActions = 5
	availableXPThreshold = 100
)

// cycle is the shared, immutable input to one evaluation pass. The cadence
// evaluations are computed once and reused by every collector that needs
// them.
type cycle struct {
	snap      *Snapshot
	now       time.Time
	dismissed dismissal.Predicate
	cadences  []cadenceResult
}

type cadenceResult struct {
	status CadenceStatus
	eval   cadence.Evaluation
}

type collectorFunc func(*cycle) []Signal

// collectors is the fixed collector sequence. The order is load-bearing:
// it is the tie-break for equal-priority signals in the final list.
var collectors = []collectorFunc{
	collectOverdueActions,
	collectEventsWithoutPrep,
	collectCadenceDue,
	collectOffboarding,
	collectStaleOneOnOnes,
	collectEventsNeedingReview,
	collectNearCompleteChallenges,
	collectSuggestions,
	collectMissingDevelopmentPlans,
	collectBusiestWorkArea,
	collectUncategorizedActions,
	collectAvailableSkillXP,
}

func newCycle(snap *Snapshot, now time.Time, dismissed dismissal.Predicate) *cycle {
	if snap == nil {
		snap = &Snapshot{}
	}
	if dismissed == nil {
		dismissed = dismissal.NeverDismissed
	}

	c := &cycle{snap: snap, now: now, dismissed: dismissed}
	for _, st := range snap.Cadences {
		st.Rule = st.Rule.Normalize()
		if !st.Rule.Active {
			continue
		}
		c.cadences = append(c.cadences, cadenceResult{
			status: st,
			eval:   cadence.Evaluate(st.Rule, st.LastCompleted, now),
		})
	}
	return c
}

// compositeID builds a dismissal-stable identity from the entity ids a
// signal summarizes. Sorted so the same set always yields the same id, and
// a different set yields a different one.
func compositeID(ids []string) string {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

// contentID derives a stable id for items that carry no entity id of their
// own, such as externally generated suggestions.
func contentID(text string) string {
	h := fnv.New32a()
	h.Write([]byte(text))
	return fmt.Sprintf("%08x", h.Sum32())
}

func collectOverdueActions(c *cycle) []Signal {
	today := time.Date(c.now.Year(), c.now.Month(), c.now.Day(), 0, 0, 0, 0, c.now.Location())

	var ids, titles []string
	for _, a := range c.snap.Actions {
		if a.Done || a.DueOn == nil {
			continue
		}
		if a.DueOn.Before(today) {
			ids = append(ids, a.ID)
			titles = append(titles, a.Title)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	id := compositeID(ids)
	if c.dismissed(KindOverdueActions, id) {
		return nil
	}

	desc := strings.Join(titles, ", ")
	if len(titles) > 3 {
		desc = strings.Join(titles[:3], ", ") + ", …"
	}
	return []Signal{{
		Kind:           KindOverdueActions,
		ID:             id,
		Priority:       priorityOverdueActions,
		Title:          fmt.Sprintf("%d overdue %s", len(ids), plural(len(ids), "action", "actions")),
		Description:    desc,
		Link:           "/actions?filter=overdue",
		Actionable:     true,
		AllowedActions: []Verb{VerbNavigate, VerbComplete, VerbSnooze, VerbDismiss},
	}}
}

func collectEventsWithoutPrep(c *cycle) []Signal {
	var ids []string
	for _, e := range c.snap.Events {
		if e.Kind != cadence.KindOneOnOne && e.Kind != cadence.KindTeamMeeting {
			continue
		}
		if strings.TrimSpace(e.Notes) == "" {
			ids = append(ids, e.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	id := compositeID(ids)
	if c.dismissed(KindEventsWithoutPrep, id) {
		return nil
	}

	return []Signal{{
		Kind:           KindEventsWithoutPrep,
		ID:             id,
		Priority:       priorityEventsWithoutPrep,
		Title:          fmt.Sprintf("%d of today's %s missing prep notes", len(ids), plural(len(ids), "meeting is", "meetings are")),
		Description:    "Add talking points before the meeting starts",
		Link:           "/events?filter=today",
		Actionable:     true,
		AllowedActions: []Verb{VerbNavigate, VerbQuickAdd, VerbDismiss},
	}}
}

// dueCadences returns the due, non-dismissed cadence results ranked most
// overdue first, with rule id as the deterministic tie-break.
func dueCadences(c *cycle) []cadenceResult {
	var due []cadenceResult
	for _, cr := range c.cadences {
		if !cr.eval.IsDue {
			continue
		}
		if c.dismissed(KindCadenceDue, cr.status.Rule.ID) {
			continue
		}
		due = append(due, cr)
	}
	sort.SliceStable(due, func(i, j int) bool {
		if due[i].eval.DaysOverdue != due[j].eval.DaysOverdue {
			return due[i].eval.DaysOverdue > due[j].eval.DaysOverdue
		}
		return due[i].status.Rule.ID < due[j].status.Rule.ID
	})
	return due
}

func collectCadenceDue(c *cycle) []Signal {
	due := dueCadences(c)
	if len(due) > maxCadenceDueSignals {
		due = due[:maxCadenceDueSignals]
	}

	signals := make([]Signal, 0, len(due))
	for rank, cr := range due {
		rule := cr.status.Rule

		title := fmt.Sprintf("%s is due", kindLabel(rule.Kind))
		if rule.TargetName != "" {
			title = fmt.Sprintf("%s with %s is due", kindLabel(rule.Kind), rule.TargetName)
		}

		desc := "Never held"
		if cr.status.LastCompleted != nil {
			desc = fmt.Sprintf("Last held %d days ago", cr.eval.DaysSinceLast)
			if cr.eval.DaysOverdue > 0 {
				desc += fmt.Sprintf(", %d %s overdue", cr.eval.DaysOverdue, plural(cr.eval.DaysOverdue, "day", "days"))
			}
		}

		signals = append(signals, Signal{
			Kind:           KindCadenceDue,
			ID:             rule.ID,
			Priority:       priorityCadenceDueBase + priorityCadenceDueStep*float64(rank),
			Title:          title,
			Description:    desc,
			Link:           "/cadences/" + rule.ID,
			Actionable:     true,
			AllowedActions: []Verb{VerbCreateEvent, VerbComplete, VerbSnooze, VerbDismiss},
		})
	}
	return signals
}

func collectOffboarding(c *cycle) []Signal {
	var signals []Signal
	for _, p := range c.snap.People {
		if p.Status != PersonOffboarding {
			continue
		}
		if c.dismissed(KindOffboardingEmployee, p.ID) {
			continue
		}
		signals = append(signals, Signal{
			Kind:           KindOffboardingEmployee,
			ID:             p.ID,
			Priority:       priorityOffboarding,
			Title:          fmt.Sprintf("%s is offboarding", p.Name),
			Description:    "Plan knowledge transfer and handover",
			Link:           "/people/" + p.ID,
			Actionable:     true,
			AllowedActions: []Verb{VerbNavigate, VerbCreateEvent, VerbDismiss, VerbMarkNoAction},
		})
		if len(signals) == maxOffboardingSignals {
			break
		}
	}
	return signals
}

func collectStaleOneOnOnes(c *cycle) []Signal {
	var stale []cadenceResult
	for _, cr := range c.cadences {
		if cr.status.Rule.Kind != cadence.KindOneOnOne {
			continue
		}
		if !cr.eval.IsDue || cr.eval.DaysOverdue <= staleOverdueDays {
			continue
		}
		if c.dismissed(KindStaleOneOnOne, cr.status.Rule.ID) {
			continue
		}
		stale = append(stale, cr)
	}
	sort.SliceStable(stale, func(i, j int) bool {
		if stale[i].eval.DaysOverdue != stale[j].eval.DaysOverdue {
			return stale[i].eval.DaysOverdue > stale[j].eval.DaysOverdue
		}
		return stale[i].status.Rule.ID < stale[j].status.Rule.ID
	})
	if len(stale) > maxStaleSignals {
		stale = stale[:maxStaleSignals]
	}

	signals := make([]Signal, 0, len(stale))
	for _, cr := range stale {
		rule := cr.status.Rule
		who := rule.TargetName
		if who == "" {
			who = rule.ID
		}
		signals = append(signals, Signal{
			Kind:           KindStaleOneOnOne,
			ID:             rule.ID,
			Priority:       priorityStaleOneOnOne,
			Title:          fmt.Sprintf("1:1 with %s is %d days overdue", who, cr.eval.DaysOverdue),
			Description:    "Long gaps erode trust; schedule it this week",
			Link:           "/cadences/" + rule.ID,
			Actionable:     true,
			AllowedActions: []Verb{VerbCreateEvent, VerbSnooze, VerbDismiss},
		})
	}
	return signals
}

func collectEventsNeedingReview(c *cycle) []Signal {
	var ids []string
	for _, e := range c.snap.Events {
		if e.NeedsReview {
			ids = append(ids, e.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	id := compositeID(ids)
	if c.dismissed(KindEventsNeedingReview, id) {
		return nil
	}

	return []Signal{{
		Kind:           KindEventsNeedingReview,
		ID:             id,
		Priority:       priorityEventsNeedingReview,
		Title:          fmt.Sprintf("%d %s review", len(ids), plural(len(ids), "event needs", "events need")),
		Description:    "Capture outcomes while they are fresh",
		Link:           "/events?filter=review",
		Actionable:     true,
		AllowedActions: []Verb{VerbNavigate, VerbComplete, VerbDismiss},
	}}
}

func collectNearCompleteChallenges(c *cycle) []Signal {
	type ranked struct {
		challenge Challenge
		ratio     float64
	}

	var near []ranked
	for _, ch := range c.snap.Challenges {
		if ch.Target <= 0 {
			continue
		}
		ratio := ch.Progress / ch.Target
		if ratio < nearCompleteRatio || ratio >= 1 {
			continue
		}
		if c.dismissed(KindNearCompleteChallenge, ch.ID) {
			continue
		}
		near = append(near, ranked{challenge: ch, ratio: ratio})
	}
	sort.SliceStable(near, func(i, j int) bool {
		if near[i].ratio != near[j].ratio {
			return near[i].ratio > near[j].ratio
		}
		return near[i].challenge.ID < near[j].challenge.ID
	})
	if len(near) > maxChallengeSignals {
		near = near[:maxChallengeSignals]
	}

	signals := make([]Signal, 0, len(near))
	for _, r := range near {
		signals = append(signals, Signal{
			Kind:           KindNearCompleteChallenge,
			ID:             r.challenge.ID,
			Priority:       priorityNearCompleteChallenge,
			Title:          fmt.Sprintf("%q is %d%% complete", r.challenge.Name, int(r.ratio*100)),
			Description:    "One push away from done",
			Link:           "/challenges/" + r.challenge.ID,
			Actionable:     true,
			AllowedActions: []Verb{VerbNavigate, VerbComplete, VerbDismiss},
		})
	}
	return signals
}

// collectSuggestions ranks externally generated suggestions. The primary
// (AI) list wins outright; the fallback list is consulted only when the
// primary is empty, never mixed in.
func collectSuggestions(c *cycle) []Signal {
	kind := KindAISuggestion
	src := c.snap.AISuggestions
	if len(src) == 0 {
		kind = KindFallbackSuggestion
		src = c.snap.FallbackSuggestions
	}

	var signals []Signal
	for _, sug := range src {
		id := contentID(sug.Title)
		if c.dismissed(kind, id) {
			continue
		}
		signals = append(signals, Signal{
			Kind:           kind,
			ID:             id,
			Priority:       prioritySuggestionBase + float64(len(signals)),
			Title:          sug.Title,
			Description:    sug.Description,
			Link:           sug.Link,
			Actionable:     true,
			AllowedActions: []Verb{VerbQuickAdd, VerbDismiss, VerbMarkNoAction},
		})
		if len(signals) == maxSuggestionSignals {
			break
		}
	}
	return signals
}

func collectMissingDevelopmentPlans(c *cycle) []Signal {
	var signals []Signal
	for _, p := range c.snap.People {
		if p.Status != PersonActive || p.DevelopmentPlans > 0 {
			continue
		}
		if c.dismissed(KindMissingDevelopmentPlan, p.ID) {
			continue
		}
		signals = append(signals, Signal{
			Kind:           KindMissingDevelopmentPlan,
			ID:             p.ID,
			Priority:       priorityMissingPlan,
			Title:          fmt.Sprintf("%s has no development plan", p.Name),
			Description:    "Sketch growth goals for the next quarter",
			Link:           "/people/" + p.ID + "/development",
			Actionable:     true,
			AllowedActions: []Verb{VerbNavigate, VerbQuickAdd, VerbDismiss},
		})
		if len(signals) == maxMissingPlanSignals {
			break
		}
	}
	return signals
}

func collectBusiestWorkArea(c *cycle) []Signal {
	counts := make(map[string]int)
	for _, a := range c.snap.Actions {
		if a.Done || a.WorkArea == "" {
			continue
		}
		counts[a.WorkArea]++
	}

	// Deterministic winner: highest count, then lowest id.
	var busiest string
	var most int
	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if counts[id] > most {
			busiest, most = id, counts[id]
		}
	}

	if most <= busiestOpenActions {
		return nil
	}
	if c.dismissed(KindBusiestWorkArea, busiest) {
		return nil
	}

	return []Signal{{
		Kind:           KindBusiestWorkArea,
		ID:             busiest,
		Priority:       priorityBusiestWorkArea,
		Title:          fmt.Sprintf("%q has %d open actions", c.snap.workAreaName(busiest), most),
		Description:    "Consider rebalancing or closing stale items",
		Link:           "/work-areas/" + busiest,
		Actionable:     false,
		AllowedActions: []Verb{VerbNavigate, VerbDismiss},
	}}
}

func collectUncategorizedActions(c *cycle) []Signal {
	var ids []string
	for _, a := range c.snap.Actions {
		if !a.Done && a.WorkArea == "" {
			ids = append(ids, a.ID)
		}
	}
	if len(ids) <= uncategorizedActions {
		return nil
	}

	id := compositeID(ids)
	if c.dismissed(KindUncategorizedActions, id) {
		return nil
	}

	return []Signal{{
		Kind:           KindUncategorizedActions,
		ID:             id,
		Priority:       priorityUncategorized,
		Title:          fmt.Sprintf("%d actions have no work area", len(ids)),
		Description:    "File them so they show up in planning",
		Link:           "/actions?filter=uncategorized",
		Actionable:     true,
		AllowedActions: []Verb{VerbNavigate, VerbQuickAdd, VerbDismiss},
	}}
}

func collectAvailableSkillXP(c *cycle) []Signal {
	var best *Skill
	for i := range c.snap.Skills {
		sk := &c.snap.Skills[i]
		if sk.AvailableXP < availableXPThreshold {
			continue
		}
		if c.dismissed(KindAvailableSkillXP, sk.ID) {
			continue
		}
		if best == nil || sk.AvailableXP > best.AvailableXP ||
			(sk.AvailableXP == best.AvailableXP && sk.ID < best.ID) {
			best = sk
		}
	}
	if best == nil {
		return nil
	}

	return []Signal{{
		Kind:           KindAvailableSkillXP,
		ID:             best.ID,
		Priority:       priorityAvailableXP,
		Title:          fmt.Sprintf("%d XP ready to spend on %s", best.AvailableXP, best.Name),
		Description:    "Level up the skill or bank it toward a milestone",
		Link:           "/skills/" + best.ID,
		Actionable:     false,
		AllowedActions: []Verb{VerbNavigate, VerbDismiss},
	}}
}

// kindLabel renders a ritual kind for display.
func kindLabel(k cadence.Kind) string {
	switch k {
	case cadence.KindOneOnOne:
		return "1:1"
	case cadence.KindRetro:
		return "Retro"
	case cadence.KindSocial:
		return "Social"
	case cadence.KindCareerChat:
		return "Career chat"
	case cadence.KindTeamMeeting:
		return "Team meeting"
	default:
		return "Ritual"
	}
}

func plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
