// Package options provides the option registry for qcli.
// The scanner resolves every token through this registry.
package options

import "strings"

// Exported constants.
const (
	// LongPrefix introduces an option by name, e.g. "--verbose".
	LongPrefix = "--"
	// ShortPrefix introduces an option by alias, e.g. "-v".
	ShortPrefix = "-"
	// NegativePrefix follows LongPrefix for synthesized negative switches, e.g. "--no-verbose".
	NegativePrefix = "no-"
)

// Flag values. Switch, ValueRequired and ValueOptional are mutually exclusive;
// NegativeSwitch and Array are modifiers.
const (
	Switch         Flags = 0
	NegativeSwitch Flags = 1
	ValueRequired  Flags = 1 << 1
	ValueOptional  Flags = 2 << 1
	Array          Flags = 1 << 3
)

// Flags describes an option's value arity and modifiers.
type Flags int

// Arity returns the primary value flag with modifiers cleared.
func (f Flags) Arity() Flags {
	return f &^ (NegativeSwitch | Array)
}

// Has reports whether every bit in other is set.
func (f Flags) Has(other Flags) bool {
	return f&other == other
}

func (f Flags) String() string {
	var parts []string

	switch f.Arity() {
	case Switch:
		parts = append(parts, "switch")
	case ValueRequired:
		parts = append(parts, "required")
	case ValueOptional:
		parts = append(parts, "optional")
	default:
		parts = append(parts, "invalid")
	}

	if f.Has(NegativeSwitch) {
		parts = append(parts, "negatable")
	}

	if f.Has(Array) {
		parts = append(parts, "array")
	}

	return strings.Join(parts, "|")
}

// Option is a registered option definition.
type Option struct {
	Name  string // canonical name without prefix, e.g. "verbose"
	Alias rune   // single-character alias without prefix (0 if none)
	Flags Flags
	Desc  string // usage text

	negative bool
}

// Key returns the long lookup key, e.g. "--verbose" or "--no-verbose".
func (o *Option) Key() string {
	if o.negative {
		return LongPrefix + NegativePrefix + o.Name
	}

	return LongPrefix + o.Name
}

// AliasKey returns the short lookup key, e.g. "-v", or "" if the option has no alias.
func (o *Option) AliasKey() string {
	if o.Alias == 0 {
		return ""
	}

	return ShortPrefix + string(o.Alias)
}

// IsNegative reports whether this is the synthesized "--no-" counterpart of a switch.
func (o *Option) IsNegative() bool {
	return o.negative
}

// Group is a named set of options. Only members are accepted while the group is active.
type Group struct {
	Name string

	members map[*Option]bool
	order   []*Option
}

// Has reports whether opt is a member of the group.
func (g *Group) Has(opt *Option) bool {
	return g.members[opt]
}

// Members returns the group's members in the order they were added.
func (g *Group) Members() []*Option {
	return g.order
}

func (g *Group) add(opt *Option) {
	if g.members[opt] {
		return
	}

	g.members[opt] = true
	g.order = append(g.order, opt)
}

func newGroup(name string) *Group {
	return &Group{Name: name, members: map[*Option]bool{}}
}
