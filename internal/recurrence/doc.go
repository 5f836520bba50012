// Package recurrence projects annually recurring personal dates
// (birthdays, work anniversaries) onto a rolling calendar window.
//
// All functions are pure: the reference "now" is an explicit parameter,
// never the system clock. Comparisons are date-only; time of day is
// ignored.
package recurrence
