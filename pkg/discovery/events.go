package discovery

// Logger abstracts logging so callers can use logrus, stdlib log, or any
// other logger that satisfies this interface.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// nopLogger silently discards all messages.
type nopLogger struct{}

func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
func (nopLogger) Debugf(string, ...interface{}) {}

// EventKind names a progress event.
type EventKind string

const (
	EventSkip     EventKind = "skip"      // already known, not looked up
	EventFound    EventKind = "found"     // looked up and persisted
	EventNotFound EventKind = "not_found" // registry has no such plate
	EventError    EventKind = "error"     // lookup failed
	EventPattern  EventKind = "pattern"   // new pattern episode started
	EventInvalid  EventKind = "invalid"   // malformed input entry
	EventPrefix   EventKind = "prefix"    // pattern file batch moved to a new prefix
)

// Event reports one step of a run as it happens.
type Event struct {
	Kind    EventKind
	Plate   string
	Pattern string
	Saved   int
	Target  int
	// Index and Total locate the current prefix in a pattern file batch.
	Index int
	Total int
	Err   error
}

// Summary is the final tally of a run.
type Summary struct {
	Target   int
	Saved    int
	Attempts int
	Skipped  int
	Invalid  int
	Failures int
	// Aborted is set when the run stopped on ErrBudgetExhausted.
	Aborted bool
}

// Reached reports whether the run persisted as many records as it was asked for.
func (s Summary) Reached() bool {
	return s.Saved >= s.Target
}
