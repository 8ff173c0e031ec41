package discovery

import (
	"errors"

	"github.com/sw33tLie/platescope/pkg/plate"
	"github.com/sw33tLie/platescope/pkg/vehicle"
)

// Outcome is what happened to one candidate.
type Outcome int

const (
	// Skipped candidates were already known and never looked up.
	Skipped Outcome = iota
	Found
	NotFound
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Skipped:
		return "skipped"
	case Found:
		return "found"
	case NotFound:
		return "not found"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// classify maps a lookup result onto an Outcome.
func classify(err error) Outcome {
	switch {
	case err == nil:
		return Found
	case errors.Is(err, vehicle.ErrNotFound):
		return NotFound
	default:
		return Failed
	}
}

// State is the pattern discovery state. The zero value means no active pattern.
type State struct {
	// Pattern is the 3-letter prefix being explored, empty when none.
	Pattern         string
	NextSequence    int
	VariationsTried int
}

func (s State) Active() bool { return s.Pattern != "" }

// Advance returns the state after candidate ended with outcome.
//
// A plate found while no pattern is active starts an episode on its prefix.
// Every candidate generated inside an episode, skipped or looked up, consumes
// one variation; the episode ends after maxVariations of them, when the suffix
// space runs out, or on the first failed lookup.
func Advance(s State, candidate string, outcome Outcome, maxVariations int) State {
	if outcome == Failed {
		return State{}
	}

	if !s.Active() {
		if outcome != Found {
			return s
		}
		prefix, suffix, err := plate.Decompose(candidate)
		if err != nil || suffix >= plate.MaxSequence {
			return State{}
		}
		return State{Pattern: prefix, NextSequence: suffix + 1}
	}

	s.NextSequence++
	s.VariationsTried++
	if s.VariationsTried >= maxVariations || s.NextSequence > plate.MaxSequence {
		return State{}
	}
	return s
}
