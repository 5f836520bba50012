// Package focus decides what needs a leader's attention right now.
//
// Each evaluation cycle reads one read-only Snapshot of external data,
// runs a fixed sequence of independent signal collectors over it, filters
// out dismissed signals, and merges the results into a single stably
// ordered, bounded recommendation list. The package also projects upcoming
// personal dates (birthdays, work anniversaries) onto a rolling window.
//
// The engine performs no I/O of its own beyond the dismissal store: every
// data fetch happens before invocation, and the wall clock is an explicit
// parameter on every operation. Two cycles over identical inputs produce
// identical output order.
package focus
