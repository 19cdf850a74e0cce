package poster

import (
	"fmt"
	"path/filepath"
)

// Outcome is the terminal classification of one entity's sync attempt.
type Outcome int

const (
	OutcomeFailed Outcome = iota
	OutcomeSkipped
	OutcomeMissing
	OutcomeAlreadyCorrect
	OutcomeReselected
	OutcomeUploaded
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeMissing:
		return "missing"
	case OutcomeAlreadyCorrect:
		return "already_correct"
	case OutcomeReselected:
		return "reselected"
	case OutcomeUploaded:
		return "uploaded"
	default:
		return "failed"
	}
}

// Found reports whether a local poster backs the entity after this outcome.
func (o Outcome) Found() bool {
	return o == OutcomeAlreadyCorrect || o == OutcomeReselected || o == OutcomeUploaded
}

// Mutating reports whether the outcome requires a write against Plex.
func (o Outcome) Mutating() bool {
	return o == OutcomeReselected || o == OutcomeUploaded
}

// Result is the record of one Engine.Sync call.
type Result struct {
	Entity    Entity
	Outcome   Outcome
	Candidate Candidate
	// ImageID is the matched remote image for AlreadyCorrect and Reselected,
	// and the expected id of the new upload for Uploaded.
	ImageID string
	// DryRun is set when mutating calls were reported instead of issued.
	DryRun bool
	// Suggestions holds near-miss local file names for Missing entities.
	Suggestions []string
	// Default is set when ReplaceDefault acted on a Missing entity.
	Default *DefaultAction
	Err     error
}

// Describe returns the one-line status shown to the user. Mutating intents
// in dry-run mode start with "Would".
func (r Result) Describe() string {
	file := filepath.Base(r.Candidate.Path)
	switch r.Outcome {
	case OutcomeSkipped:
		return "Skipping (skip marker found)"
	case OutcomeMissing:
		return "Collection poster not found"
	case OutcomeAlreadyCorrect:
		return fmt.Sprintf("Using collection poster %s", file)
	case OutcomeReselected:
		if r.DryRun {
			return fmt.Sprintf("Would change selected poster to %s (%s)", r.ImageID, file)
		}
		return fmt.Sprintf("Changed selected poster to %s (%s)", r.ImageID, file)
	case OutcomeUploaded:
		if r.DryRun {
			return fmt.Sprintf("Would set collection poster %s", r.Candidate.Path)
		}
		return fmt.Sprintf("Collection poster set from %s", r.Candidate.Path)
	default:
		if r.Err != nil {
			return fmt.Sprintf("Failed: %v", r.Err)
		}
		return "Failed"
	}
}
