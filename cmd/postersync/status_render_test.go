package main

import (
	"io"
	"strings"
	"testing"

	"postersync/internal/poster"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine(statusWarn, "Collection poster not found", false)
	if got != statusIndent+"Collection poster not found" {
		t.Fatalf("renderStatusLine = %q", got)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine(statusOK, "Using collection poster Alien.jpg", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestOutcomeKind(t *testing.T) {
	tests := []struct {
		outcome poster.Outcome
		want    statusKind
	}{
		{poster.OutcomeUploaded, statusOK},
		{poster.OutcomeReselected, statusOK},
		{poster.OutcomeAlreadyCorrect, statusOK},
		{poster.OutcomeMissing, statusWarn},
		{poster.OutcomeFailed, statusError},
		{poster.OutcomeSkipped, statusInfo},
	}
	for _, tc := range tests {
		if got := outcomeKind(tc.outcome); got != tc.want {
			t.Errorf("outcomeKind(%v) = %v, want %v", tc.outcome, got, tc.want)
		}
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]string{"ID", "Name"}, [][]string{{"1"}}, []columnAlignment{alignRight})
	if !strings.Contains(out, "ID") || !strings.Contains(out, "Name") || !strings.Contains(out, "1") {
		t.Fatalf("unexpected table output:\n%s", out)
	}
	if renderTable(nil, nil, nil) != "" {
		t.Fatal("expected empty output without headers")
	}
}
