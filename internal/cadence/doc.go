// Package cadence models recurring leadership rituals (1:1s, retros, team
// meetings) and decides when they are due.
//
// Rules are configured by the user and read-only here: the engine never
// mutates a rule or records a completion. Evaluation is pure; "now" is an
// explicit parameter.
package cadence
