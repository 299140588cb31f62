package options

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Lookup kinds returned by Resolve.
const (
	LookupOption Lookup = iota
	LookupEndOfOptions
	LookupGroup
	LookupArgument
	LookupUnknown
)

// Collision kinds.
const (
	CollisionOption CollisionKind = iota
	CollisionGroup
)

// Collision records a key that was registered more than once.
type Collision struct {
	Kind CollisionKind
	Key  string // lookup key ("--name", "-n") or group name
}

// CollisionError aggregates every collision seen during registration.
type CollisionError struct {
	Collisions []Collision
}

func (e *CollisionError) Error() string {
	var sb strings.Builder

	for i, c := range e.Collisions {
		if i > 0 {
			sb.WriteString("\n")
		}

		switch c.Kind {
		case CollisionGroup:
			sb.WriteString(fmt.Sprintf("qcli: group %q registered more than once", c.Key))
		default:
			sb.WriteString(fmt.Sprintf("qcli: option %q registered more than once", c.Key))
		}
	}

	return sb.String()
}

// CollisionKind distinguishes option key collisions from group name collisions.
type CollisionKind int

// Lookup classifies a token.
type Lookup int

func (l Lookup) String() string {
	switch l {
	case LookupOption:
		return "option"
	case LookupEndOfOptions:
		return "end-of-options"
	case LookupGroup:
		return "group"
	case LookupArgument:
		return "argument"
	default:
		return "unknown"
	}
}

// Registry maps lookup keys to options and names to groups.
// Build it in one registration phase; it is read-only while parsing.
type Registry struct {
	options    map[string]*Option
	groups     map[string]*Group
	ordered    []*Option
	groupOrder []*Group
	current    *Group
	collisions []Collision
	errOut     io.Writer
}

// NewRegistry creates an empty registry that reports collisions to os.Stderr.
func NewRegistry() *Registry {
	return &Registry{
		options: map[string]*Option{},
		groups:  map[string]*Group{},
		errOut:  os.Stderr,
	}
}

// AddOption registers name (and alias, if non-zero) with the given flags.
// A NegativeSwitch also registers "--no-<name>" as a plain switch reporting the negation.
// Options registered between BeginGroup and EndGroup become members of that group.
// Key collisions are reported and the new definition wins.
func (r *Registry) AddOption(name string, alias rune, flags Flags) *Option {
	opt := &Option{Name: name, Alias: alias, Flags: flags}
	r.ordered = append(r.ordered, opt)

	r.insert(opt.Key(), opt)

	if alias != 0 {
		r.insert(opt.AliasKey(), opt)
	}

	if r.current != nil {
		r.current.add(opt)
	}

	if flags.Has(NegativeSwitch) {
		neg := &Option{Name: name, Flags: Switch, negative: true}
		r.insert(neg.Key(), neg)

		if r.current != nil {
			r.current.add(neg)
		}
	}

	return opt
}

// BeginGroup makes name the current registration group, creating it if needed.
// Re-entering an existing group reuses it and records a collision.
func (r *Registry) BeginGroup(name string) *Group {
	if existing, ok := r.groups[name]; ok {
		r.collide(CollisionGroup, name, "Group %s is already registered!\n")
		r.current = existing

		return existing
	}

	g := newGroup(name)
	r.groups[name] = g
	r.groupOrder = append(r.groupOrder, g)
	r.current = g

	return g
}

// Collisions returns every collision recorded so far.
func (r *Registry) Collisions() []Collision {
	return r.collisions
}

// CurrentGroup returns the group options are currently registered into, or nil.
func (r *Registry) CurrentGroup() *Group {
	return r.current
}

// EndGroup ends the current registration group.
func (r *Registry) EndGroup() {
	r.current = nil
}

// Err returns a *CollisionError if any key was registered twice, nil otherwise.
func (r *Registry) Err() error {
	if len(r.collisions) == 0 {
		return nil
	}

	return &CollisionError{Collisions: r.collisions}
}

// Group returns the group with the given name, or nil.
func (r *Registry) Group(name string) *Group {
	return r.groups[name]
}

// Groups returns the groups in declaration order.
func (r *Registry) Groups() []*Group {
	return r.groupOrder
}

// IsCurrent reports whether opt is still the definition its long key resolves to,
// i.e. no later registration replaced it.
func (r *Registry) IsCurrent(opt *Option) bool {
	return opt != nil && r.options[opt.Key()] == opt
}

// IsGroupName reports whether token is exactly a registered group name.
func (r *Registry) IsGroupName(token string) bool {
	_, ok := r.groups[token]
	return ok
}

// Lookup returns the option registered under key ("--name", "-n", "--no-name"), or nil.
func (r *Registry) Lookup(key string) *Option {
	return r.options[key]
}

// Options returns the positive options in registration order.
func (r *Registry) Options() []*Option {
	return r.ordered
}

// Resolve classifies token. See Resolution for the fields set per kind.
func (r *Registry) Resolve(token string) Resolution {
	switch {
	case token == LongPrefix, token == ShortPrefix:
		return Resolution{Lookup: LookupEndOfOptions}
	case r.IsGroupName(token):
		return Resolution{Lookup: LookupGroup, Group: r.groups[token]}
	case !IsOptionLike(token):
		return Resolution{Lookup: LookupArgument, Value: token}
	}

	// Split on the first '=' so values may contain '=' themselves.
	key, value, hasValue := strings.Cut(token, "=")

	opt := r.options[key]
	if opt == nil {
		return Resolution{Lookup: LookupUnknown}
	}

	return Resolution{Lookup: LookupOption, Option: opt, Value: value, HasValue: hasValue}
}

// SetErrOutput redirects collision diagnostics. Passing nil resets to os.Stderr.
func (r *Registry) SetErrOutput(w io.Writer) {
	if w == nil {
		r.errOut = os.Stderr
	} else {
		r.errOut = w
	}
}

func (r *Registry) collide(kind CollisionKind, key, format string) {
	r.collisions = append(r.collisions, Collision{Kind: kind, Key: key})
	_, _ = fmt.Fprintf(r.errOut, format, key)
}

func (r *Registry) insert(key string, opt *Option) {
	if _, ok := r.options[key]; ok {
		r.collide(CollisionOption, key, "Replacing existing option %s!\n")
	}

	r.options[key] = opt
}

// Resolution is the outcome of Registry.Resolve.
type Resolution struct {
	Lookup   Lookup
	Option   *Option // set for LookupOption
	Group    *Group  // set for LookupGroup
	Value    string  // inline value for LookupOption, the token for LookupArgument
	HasValue bool    // an '=' was present (Value may still be empty)
}

// IsOptionLike reports whether token starts with either option prefix.
func IsOptionLike(token string) bool {
	return strings.HasPrefix(token, LongPrefix) || strings.HasPrefix(token, ShortPrefix)
}
