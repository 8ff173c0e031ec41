package discovery

import (
	"context"
	"errors"
	"fmt"

	"github.com/sw33tLie/platescope/pkg/plate"
)

// RunPlates looks up every plate in raws once. Malformed and already known
// entries are reported and skipped. Summary.Target is the number of entries.
func (l *Loop) RunPlates(ctx context.Context, raws []string) (Summary, error) {
	if len(raws) == 0 {
		return Summary{}, &ConfigError{Field: "plates", Err: errors.New("no plates to look up")}
	}

	summary := Summary{Target: len(raws)}
	for _, raw := range raws {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		p, err := plate.Normalize(raw)
		if err != nil {
			summary.Invalid++
			l.emit(Event{Kind: EventInvalid, Plate: raw, Saved: summary.Saved, Target: summary.Target, Err: err})
			continue
		}
		if l.seen(p) {
			summary.Skipped++
			l.emit(Event{Kind: EventSkip, Plate: p, Saved: summary.Saved, Target: summary.Target})
			continue
		}
		if _, err := l.attempt(ctx, p, &summary); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

// RunPattern sweeps count consecutive suffixes of prefix, starting at a random
// suffix and wrapping past 9999. count is capped at the size of the suffix space.
func (l *Loop) RunPattern(ctx context.Context, prefix string, count int) (Summary, error) {
	p, err := plate.ValidatePattern(prefix)
	if err != nil {
		return Summary{}, &ConfigError{Field: "pattern", Err: err}
	}
	if count <= 0 {
		return Summary{}, &ConfigError{Field: "count", Err: fmt.Errorf("must be greater than 0, got %d", count)}
	}

	summary := Summary{}
	err = l.sweep(ctx, p, count, &summary)
	return summary, err
}

// RunPatterns sweeps perPrefix suffixes of every prefix in prefixes. Invalid
// prefixes are reported and skipped. Summary.Target is the number of
// candidates scheduled across all valid prefixes.
func (l *Loop) RunPatterns(ctx context.Context, prefixes []string, perPrefix int) (Summary, error) {
	if perPrefix <= 0 {
		return Summary{}, &ConfigError{Field: "count", Err: fmt.Errorf("must be greater than 0, got %d", perPrefix)}
	}
	if len(prefixes) == 0 {
		return Summary{}, &ConfigError{Field: "patterns", Err: errors.New("no patterns to process")}
	}

	summary := Summary{}
	for i, raw := range prefixes {
		p, err := plate.ValidatePattern(raw)
		if err != nil {
			summary.Invalid++
			l.emit(Event{Kind: EventInvalid, Pattern: raw, Index: i + 1, Total: len(prefixes), Err: err})
			continue
		}

		l.emit(Event{Kind: EventPrefix, Pattern: p, Index: i + 1, Total: len(prefixes), Saved: summary.Saved})
		if err := l.sweep(ctx, p, perPrefix, &summary); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

func (l *Loop) sweep(ctx context.Context, prefix string, count int, summary *Summary) error {
	if count > plate.SequenceSpace {
		l.cfg.Log.Warnf("Pattern %s has only %d plates, capping sweep", prefix, plate.SequenceSpace)
		count = plate.SequenceSpace
	}
	summary.Target += count

	start := l.cfg.Rand.IntN(plate.SequenceSpace)
	l.cfg.Log.Debugf("Sweeping %d plates of %s**** from %04d", count, prefix, start)

	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		candidate := plate.Sequential(prefix, plate.SweepNumber(start, i))
		if l.seen(candidate) {
			summary.Skipped++
			l.emit(Event{Kind: EventSkip, Plate: candidate, Pattern: prefix, Saved: summary.Saved, Target: summary.Target})
			continue
		}
		if _, err := l.attempt(ctx, candidate, summary); err != nil {
			return err
		}
	}
	return nil
}
