package discovery

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/sw33tLie/platescope/pkg/dedup"
	"github.com/sw33tLie/platescope/pkg/plate"
	"github.com/sw33tLie/platescope/pkg/vehicle"
)

const (
	DefaultDelay         = 2 * time.Second
	DefaultMaxVariations = 10
	DefaultAttemptFactor = 50
)

// Lookuper queries the registry. It returns vehicle.ErrNotFound when the
// registry has no record for the plate; any other error is a failed lookup.
type Lookuper interface {
	Lookup(ctx context.Context, plate string) (vehicle.Record, error)
}

// Appender persists confirmed records.
type Appender interface {
	Append(ctx context.Context, r vehicle.Record) error
}

// Config holds the loop's policy and injectable collaborators. Zero fields take defaults.
type Config struct {
	// Delay is the wait between two lookups.
	Delay time.Duration
	// MaxVariations bounds the candidates tried per pattern episode.
	MaxVariations int
	// AttemptFactor times the target is the number of fruitless attempts tolerated.
	AttemptFactor int

	Rand  plate.Rand
	Sleep func(ctx context.Context, d time.Duration) error
	Log   Logger
	// OnEvent, if set, receives every progress event.
	OnEvent func(Event)
}

func (c *Config) setDefaults() {
	if c.Delay <= 0 {
		c.Delay = DefaultDelay
	}
	if c.MaxVariations <= 0 {
		c.MaxVariations = DefaultMaxVariations
	}
	if c.AttemptFactor <= 0 {
		c.AttemptFactor = DefaultAttemptFactor
	}
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if c.Sleep == nil {
		c.Sleep = sleep
	}
	if c.Log == nil {
		c.Log = nopLogger{}
	}
}

// Loop drives lookups one at a time. It is not safe for concurrent use.
type Loop struct {
	cfg    Config
	lookup Lookuper
	sink   Appender
	known  *dedup.Store
	tried  *dedup.Store
	gen    *Generator
	state  State
	// pending is set after a lookup until the pacing delay has been served.
	pending bool
}

// New returns a loop that skips every plate in known and adds what it persists to it.
func New(lookup Lookuper, sink Appender, known *dedup.Store, cfg Config) *Loop {
	cfg.setDefaults()
	return &Loop{
		cfg:    cfg,
		lookup: lookup,
		sink:   sink,
		known:  known,
		tried:  dedup.New(),
		gen:    NewGenerator(cfg.Rand, cfg.MaxVariations),
	}
}

// State returns the current pattern state.
func (l *Loop) State() State { return l.state }

// Run generates and looks up plates until target records have been persisted.
// Plates found at random seed pattern episodes that try the following suffixes
// of the same prefix. region restricts random plates to one region letter; 0
// means any region.
//
// Run returns ErrBudgetExhausted when more than AttemptFactor*target lookups
// found nothing at all.
func (l *Loop) Run(ctx context.Context, target int, region byte) (Summary, error) {
	if target <= 0 {
		return Summary{}, &ConfigError{Field: "count", Err: fmt.Errorf("must be greater than 0, got %d", target)}
	}
	if region != 0 {
		if _, ok := plate.RegionByCode(region); !ok {
			return Summary{}, &ConfigError{Field: "region", Err: fmt.Errorf("%w: %q", plate.ErrUnknownRegion, region)}
		}
	}

	summary := Summary{Target: target}
	l.state = State{}

	for summary.Saved < target {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		candidate := l.gen.Next(l.state, region)
		if l.seen(candidate) {
			summary.Skipped++
			l.cfg.Log.Debugf("Plate %s already known, skipping", candidate)
			l.emit(Event{Kind: EventSkip, Plate: candidate, Saved: summary.Saved, Target: target})
			l.state = Advance(l.state, candidate, Skipped, l.cfg.MaxVariations)
			continue
		}

		outcome, err := l.attempt(ctx, candidate, &summary)
		if err != nil {
			return summary, err
		}

		prev := l.state
		l.state = Advance(l.state, candidate, outcome, l.cfg.MaxVariations)
		switch {
		case !prev.Active() && l.state.Active():
			l.cfg.Log.Debugf("Pattern %s**** starts at %04d", l.state.Pattern, l.state.NextSequence)
			l.emit(Event{Kind: EventPattern, Plate: candidate, Pattern: l.state.Pattern, Saved: summary.Saved, Target: target})
		case prev.Active() && !l.state.Active():
			l.cfg.Log.Debugf("Pattern %s**** abandoned after %s", prev.Pattern, outcome)
		}

		if summary.Attempts > l.cfg.AttemptFactor*target && summary.Saved == 0 {
			summary.Aborted = true
			return summary, fmt.Errorf("%w (%d attempts)", ErrBudgetExhausted, summary.Attempts)
		}
	}

	return summary, nil
}

// seen reports whether candidate is persisted or was already looked up in this process.
func (l *Loop) seen(candidate string) bool {
	return l.known.Contains(candidate) || l.tried.Contains(candidate)
}

// attempt paces, looks candidate up and persists a hit. Only persistence and
// cancellation errors are returned; lookup failures become a Failed outcome.
func (l *Loop) attempt(ctx context.Context, candidate string, summary *Summary) (Outcome, error) {
	if err := l.pace(ctx); err != nil {
		return Failed, err
	}

	l.tried.Add(candidate)
	summary.Attempts++
	l.cfg.Log.Debugf("Querying plate %s", candidate)

	rec, err := l.lookup.Lookup(ctx, candidate)
	l.pending = true
	outcome := classify(err)

	switch outcome {
	case Found:
		rec.Plate = candidate
		if err := l.sink.Append(ctx, rec); err != nil {
			return outcome, fmt.Errorf("persisting %s: %w", candidate, err)
		}
		l.known.Add(candidate)
		summary.Saved++
		l.emit(Event{Kind: EventFound, Plate: candidate, Saved: summary.Saved, Target: summary.Target})
	case NotFound:
		l.emit(Event{Kind: EventNotFound, Plate: candidate, Saved: summary.Saved, Target: summary.Target})
	case Failed:
		summary.Failures++
		l.cfg.Log.Warnf("Error querying %s: %v", candidate, err)
		l.emit(Event{Kind: EventError, Plate: candidate, Saved: summary.Saved, Target: summary.Target, Err: err})
	}
	return outcome, nil
}

// pace waits out the delay owed by the previous lookup, if any.
func (l *Loop) pace(ctx context.Context) error {
	if !l.pending {
		return nil
	}
	l.pending = false
	return l.cfg.Sleep(ctx, l.cfg.Delay)
}

func (l *Loop) emit(e Event) {
	if l.cfg.OnEvent != nil {
		l.cfg.OnEvent(e)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
