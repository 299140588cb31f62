// Package scan walks an argument vector against an options.Registry and
// reports one event per classified unit to a Sink.
package scan

// Event kinds.
const (
	OptionFound Kind = iota
	ArgumentFound
	GroupMismatch
	ValueMissing
	OptionUnknown
)

// Event is a single parsing result delivered to a Sink.
type Event struct {
	Kind Kind
	// Name is the canonical option name for OptionFound and ValueMissing,
	// the group name for group markers, the raw token for OptionUnknown and
	// GroupMismatch, and empty for ArgumentFound.
	Name string
	// Value is a bool or string for OptionFound and ArgumentFound, nil otherwise.
	Value any
	// Group is the name of the active group when the event was emitted.
	Group string
}

// IsError reports whether the event marks the parse as unsuccessful.
func (e Event) IsError() bool {
	return e.Kind == GroupMismatch || e.Kind == ValueMissing || e.Kind == OptionUnknown
}

// Kind is the result kind of an Event.
type Kind int

func (k Kind) String() string {
	switch k {
	case OptionFound:
		return "OptionFound"
	case ArgumentFound:
		return "ArgumentFound"
	case GroupMismatch:
		return "GroupMismatch"
	case ValueMissing:
		return "ValueMissing"
	case OptionUnknown:
		return "OptionUnknown"
	default:
		return "Kind(?)"
	}
}

// Recorder is a Sink that stores every event and never halts.
type Recorder struct {
	Events []Event
}

// Handle implements Sink. A nil Recorder discards the event.
func (r *Recorder) Handle(ev Event) bool {
	if r == nil {
		return false
	}

	r.Events = append(r.Events, ev)
	return false
}

// Sink receives events synchronously, in token order.
// Returning true halts the scan immediately; the parse then reports failure.
type Sink interface {
	Handle(ev Event) (halt bool)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ev Event) bool

// Handle implements Sink.
func (f SinkFunc) Handle(ev Event) bool {
	return f(ev)
}

// Sinks fans each event out to every sink in order.
// The scan halts if any sink asks to, after all of them have seen the event.
// Nil interface values are skipped; a typed nil is called like any other sink,
// so its Handle must accept a nil receiver (Recorder does).
func Sinks(sinks ...Sink) Sink {
	return SinkFunc(func(ev Event) bool {
		halt := false

		for _, s := range sinks {
			if s != nil && s.Handle(ev) {
				halt = true
			}
		}

		return halt
	})
}
