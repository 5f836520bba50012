package focus

import "sort"

// DefaultLimit bounds the focus list when the caller does not set one.
const DefaultLimit = 5

// BuildFocus orders signals ascending by priority and truncates to limit.
//
// The sort is stable: equal-priority signals keep their collector-emission
// order, which is itself fixed, so two cycles over identical inputs yield
// identical output. The input slice is not modified.
func BuildFocus(signals []Signal, limit int) []Signal {
	if limit <= 0 {
		limit = DefaultLimit
	}

	out := make([]Signal, len(signals))
	copy(out, signals)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
