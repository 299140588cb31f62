package scan

import "github.com/toejough/qcli/internal/options"

// Result is the outcome of one Scan.
type Result struct {
	// OK is false if any error event occurred or the sink halted the scan.
	OK bool
	// Halted is true if the sink requested a halt.
	Halted bool
	// Options maps canonical option names to their last value, or to a []any
	// of every value for Array options. Group markers are not recorded.
	Options map[string]any
	// Arguments holds bare arguments in order, including those after "--".
	Arguments []string
	// Group is the name of the group active when the scan ended ("" if none).
	Group string
}

// Scanner resolves argument vectors against a registry.
type Scanner struct {
	registry *options.Registry
}

// New returns a Scanner over reg. The registry must not be modified during Scan.
func New(reg *options.Registry) *Scanner {
	return &Scanner{registry: reg}
}

// Scan walks args, skipping args[0] (the program name), and emits one event per
// classified unit to sink. A nil sink discards events.
func (s *Scanner) Scan(args []string, sink Sink) Result {
	if sink == nil {
		sink = SinkFunc(func(Event) bool { return false })
	}

	sess := &session{
		registry: s.registry,
		args:     args,
		sink:     sink,
		result:   Result{OK: true, Options: map[string]any{}},
	}

	return sess.run()
}

// session is the transient state of a single Scan.
type session struct {
	registry *options.Registry
	args     []string
	sink     Sink
	group    *options.Group
	result   Result
}

// emit delivers ev to the sink and reports whether the scan must stop.
func (s *session) emit(ev Event) bool {
	if s.group != nil {
		ev.Group = s.group.Name
	}

	if ev.IsError() {
		s.result.OK = false
	}

	if s.sink.Handle(ev) {
		s.result.OK = false
		s.result.Halted = true

		return true
	}

	return false
}

// finish records the final cursor state.
func (s *session) finish() Result {
	if s.group != nil {
		s.result.Group = s.group.Name
	}

	return s.result
}

// lookahead returns the token after index i if it can serve as a value.
func (s *session) lookahead(i int) (string, bool) {
	if i+1 >= len(s.args) {
		return "", false
	}

	next := s.args[i+1]
	if options.IsOptionLike(next) || s.registry.IsGroupName(next) {
		return "", false
	}

	return next, true
}

// record remembers the value of a resolved option.
func (s *session) record(ev Event, opt *options.Option) {
	if ev.Kind != OptionFound || opt == nil {
		return
	}

	// The negative form is a plain switch; the positive definition carries the modifiers.
	if opt.IsNegative() {
		if positive := s.registry.Lookup(options.LongPrefix + opt.Name); positive != nil {
			opt = positive
		}
	}

	if !opt.Flags.Has(options.Array) {
		s.result.Options[ev.Name] = ev.Value
		return
	}

	list, _ := s.result.Options[ev.Name].([]any)
	s.result.Options[ev.Name] = append(list, ev.Value)
}

// resolveOption turns a found option into an event, returning how many
// lookahead tokens it consumed.
func (s *session) resolveOption(i int, res options.Resolution) (Event, int) {
	opt := res.Option

	if s.group != nil && !s.group.Has(opt) {
		return Event{Kind: GroupMismatch, Name: s.args[i]}, 0
	}

	found := func(v any) Event {
		return Event{Kind: OptionFound, Name: opt.Name, Value: v}
	}

	if opt.IsNegative() {
		if res.HasValue {
			return found(!Booleanize(res.Value)), 0
		}

		return found(false), 0
	}

	switch opt.Flags.Arity() {
	case options.ValueRequired:
		if res.HasValue {
			return found(res.Value), 0
		}

		next, ok := s.lookahead(i)
		if !ok {
			return Event{Kind: ValueMissing, Name: opt.Name}, 0
		}

		return found(next), 1
	case options.ValueOptional:
		if res.HasValue {
			return found(res.Value), 0
		}

		next, ok := s.lookahead(i)
		if !ok {
			return found(true), 0
		}

		return found(next), 1
	case options.Switch:
		if res.HasValue {
			return found(Booleanize(res.Value)), 0
		}

		return found(true), 0
	default:
		return Event{Kind: OptionUnknown, Name: s.args[i]}, 0
	}
}

func (s *session) run() Result {
	i := 1

	for ; i < len(s.args); i++ {
		token := s.args[i]
		res := s.registry.Resolve(token)

		var (
			ev       Event
			consumed int
		)

		switch res.Lookup {
		case options.LookupEndOfOptions:
			return s.trailing(i + 1)
		case options.LookupGroup:
			s.group = res.Group

			if s.emit(Event{Kind: OptionFound, Name: res.Group.Name, Value: true}) {
				return s.finish()
			}

			continue
		case options.LookupArgument:
			s.result.Arguments = append(s.result.Arguments, token)
			ev = Event{Kind: ArgumentFound, Value: token}
		case options.LookupOption:
			ev, consumed = s.resolveOption(i, res)
		default:
			ev = Event{Kind: OptionUnknown, Name: token}
		}

		if s.emit(ev) {
			return s.finish()
		}

		s.record(ev, res.Option)
		i += consumed
	}

	return s.finish()
}

// trailing emits every token from index start as a bare argument.
func (s *session) trailing(start int) Result {
	for _, token := range s.args[start:] {
		s.result.Arguments = append(s.result.Arguments, token)

		if s.emit(Event{Kind: ArgumentFound, Value: token}) {
			return s.finish()
		}
	}

	return s.finish()
}
