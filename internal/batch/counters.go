package batch

import "postersync/internal/poster"

// Counters tallies outcomes for one scope.
type Counters struct {
	Found   int
	Missing int
	Skipped int
	Failed  int
}

// Add counts one outcome.
func (c *Counters) Add(outcome poster.Outcome) {
	switch {
	case outcome.Found():
		c.Found++
	case outcome == poster.OutcomeMissing:
		c.Missing++
	case outcome == poster.OutcomeSkipped:
		c.Skipped++
	default:
		c.Failed++
	}
}

// Merge adds other into c.
func (c *Counters) Merge(other Counters) {
	c.Found += other.Found
	c.Missing += other.Missing
	c.Skipped += other.Skipped
	c.Failed += other.Failed
}

// Total returns the number of counted entities.
func (c Counters) Total() int {
	return c.Found + c.Missing + c.Skipped + c.Failed
}

// ScopeReport is the result of one section.
type ScopeReport struct {
	Scope poster.Scope
	// Confirmed is false when the section was declined or filtered out.
	Confirmed bool
	// SkipReason explains why an unconfirmed section was not processed.
	SkipReason string
	Counters   Counters
	// Outcomes counts every outcome kind, including the split of Found.
	Outcomes map[poster.Outcome]int
}

// Report aggregates every section of a run.
type Report struct {
	Scopes []ScopeReport
	Totals Counters
}

func (r *Report) add(scope ScopeReport) {
	r.Scopes = append(r.Scopes, scope)
	r.Totals.Merge(scope.Counters)
}
