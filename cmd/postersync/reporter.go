package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"postersync/internal/batch"
	"postersync/internal/poster"
)

// consoleReporter prints one line per event, in the order the run produces them.
type consoleReporter struct {
	out      io.Writer
	colorize bool
}

func (r *consoleReporter) ScopeSkipped(report batch.ScopeReport) {
	switch report.SkipReason {
	case batch.SkipNotSelected:
		fmt.Fprintf(r.out, "%s - SKIPPED\n", sectionLine(report.Scope))
	default:
		fmt.Fprintln(r.out, renderStatusLine(statusWarn, "Invalid ID, skipping library.", r.colorize))
	}
}

func (r *consoleReporter) ScopeStarted(scope poster.Scope, collections int) {
	fmt.Fprintf(r.out, "Updating %d collections in %s\n", collections, scope.Title)
}

func (r *consoleReporter) EntityStarted(entity poster.Entity, index, total int) {
	fmt.Fprintf(r.out, "\n> %s [%d/%d]\n", entity.Title, index, total)
}

func (r *consoleReporter) EntityFinished(result poster.Result) {
	fmt.Fprintln(r.out, renderStatusLine(outcomeKind(result.Outcome), result.Describe(), r.colorize))
	if len(result.Suggestions) > 0 {
		fmt.Fprintln(r.out, renderStatusLine(statusInfo, "Similar files: "+strings.Join(result.Suggestions, ", "), r.colorize))
	}
	if result.Default != nil {
		fmt.Fprintln(r.out, renderStatusLine(statusOK, result.Default.Describe(), r.colorize))
	}
}

func (r *consoleReporter) ScopeFinished(report batch.ScopeReport) {
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Found: %d\n", report.Counters.Found)
	fmt.Fprintf(r.out, "Missing: %d\n", report.Counters.Missing)
	if report.Counters.Skipped > 0 {
		fmt.Fprintf(r.out, "Skipped: %d\n", report.Counters.Skipped)
	}
	if report.Counters.Failed > 0 {
		fmt.Fprintf(r.out, "Failed: %d\n", report.Counters.Failed)
	}
}

// sectionConfirmer prints the section and asks for its key, like the gate
// the tool always had: typing anything other than the key skips it.
type sectionConfirmer struct {
	prompter *prompter
	out      io.Writer
	force    bool
}

func (c *sectionConfirmer) Confirm(_ context.Context, scope poster.Scope, _ int) (bool, error) {
	fmt.Fprintln(c.out, sectionLine(scope))
	if c.force {
		return true, nil
	}
	answer, err := c.prompter.ask("Please confirm library ID to be updated or type 0 to skip", "")
	if errors.Is(err, errNoInput) {
		return false, fmt.Errorf("no confirmation for section %s (use --force to run without prompts)", scope.Key)
	}
	if err != nil {
		return false, err
	}
	return answer == scope.Key, nil
}

func sectionLine(scope poster.Scope) string {
	return fmt.Sprintf("ID: %-4s Name: %s", scope.Key, scope.Title)
}
