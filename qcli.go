package qcli

import (
	"io"
	"os"

	"github.com/toejough/qcli/internal/help"
	"github.com/toejough/qcli/internal/options"
	"github.com/toejough/qcli/internal/scan"
	"github.com/toejough/qcli/internal/settings"
)

// --- Re-exported types ---

// Flags describes an option's value arity and modifiers.
type Flags = options.Flags

// Option is a registered option definition.
type Option = options.Option

// Event is a single parsing result delivered to a Sink.
type Event = scan.Event

// EventKind is the result kind of an Event.
type EventKind = scan.Kind

// Sink receives parsing events. Returning true halts the parse.
type Sink = scan.Sink

// SinkFunc adapts a function to the Sink interface.
type SinkFunc = scan.SinkFunc

// Result is the outcome of a parse.
type Result = scan.Result

// Settings is a hierarchical key/value store.
type Settings = settings.Store

// Re-export flag constants.
const (
	Switch         = options.Switch
	NegativeSwitch = options.NegativeSwitch
	ValueRequired  = options.ValueRequired
	ValueOptional  = options.ValueOptional
	Array          = options.Array
)

// Re-export event kinds.
const (
	OptionFound   = scan.OptionFound
	ArgumentFound = scan.ArgumentFound
	GroupMismatch = scan.GroupMismatch
	ValueMissing  = scan.ValueMissing
	OptionUnknown = scan.OptionUnknown
)

// NewSettings creates a settings store. parent may be nil.
func NewSettings(name string, parent *Settings) *Settings {
	return settings.New(name, parent)
}

// --- Parser ---

// Parser registers options and parses argument vectors against them.
// Register everything first; then call Parse any number of times, sequentially.
type Parser struct {
	registry *options.Registry
	scanner  *scan.Scanner
	settings *settings.Store
	styles   help.Styles
	out      io.Writer
	errOut   io.Writer
	group    string
}

// NewParser creates a parser with an empty registry and a fresh settings store.
func NewParser() *Parser {
	reg := options.NewRegistry()

	return &Parser{
		registry: reg,
		scanner:  scan.New(reg),
		settings: settings.New("commandline", nil),
		styles:   help.PlainStyles(),
		out:      os.Stdout,
		errOut:   os.Stderr,
	}
}

// AddLongOption registers an option without an alias.
func (p *Parser) AddLongOption(name string, flags Flags) *Option {
	return p.AddOption(name, 0, flags)
}

// AddOption registers an option. alias is a single character, or 0 for none.
// Options flagged Array are also registered as array keys on the settings store.
func (p *Parser) AddOption(name string, alias rune, flags Flags) *Option {
	opt := p.registry.AddOption(name, alias, flags)

	if flags.Has(options.Array) && p.settings != nil {
		p.settings.RegisterArray(name)
	}

	return opt
}

// BeginGroup starts registering options into the named group.
func (p *Parser) BeginGroup(name string) {
	p.registry.BeginGroup(name)
}

// CurrentGroupName returns the group active at the end of the last parse.
func (p *Parser) CurrentGroupName() string {
	return p.group
}

// Describe sets the usage text of a registered option. Unknown names are ignored.
func (p *Parser) Describe(name, text string) {
	if opt := p.registry.Lookup(options.LongPrefix + name); opt != nil {
		opt.Desc = text
	}
}

// EndGroup stops registering options into the current group.
func (p *Parser) EndGroup() {
	p.registry.EndGroup()
}

// Err returns a non-nil error if any option key or group was registered twice.
func (p *Parser) Err() error {
	return p.registry.Err()
}

// ErrOutput returns the diagnostic writer.
func (p *Parser) ErrOutput() io.Writer {
	return p.errOut
}

// Output returns the usage writer.
func (p *Parser) Output() io.Writer {
	return p.out
}

// Parse scans args (args[0] is the program name) and reports each event to sink.
// A nil sink uses DefaultSink. It returns false if any error event occurred or
// the sink halted the parse.
func (p *Parser) Parse(args []string, sink Sink) bool {
	return p.ParseResult(args, sink).OK
}

// ParseArgs parses os.Args.
func (p *Parser) ParseArgs(sink Sink) bool {
	return p.Parse(os.Args, sink)
}

// ParseResult is Parse, returning the accumulated options and arguments too.
func (p *Parser) ParseResult(args []string, sink Sink) Result {
	if sink == nil {
		sink = p.DefaultSink()
	}

	result := p.scanner.Scan(args, sink)
	p.group = result.Group

	return result
}

// SetErrOutput redirects diagnostics, including registration collisions.
// Passing nil resets to os.Stderr.
func (p *Parser) SetErrOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}

	p.errOut = w
	p.registry.SetErrOutput(w)
}

// SetOutput redirects usage output. Passing nil resets to os.Stdout.
func (p *Parser) SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	p.out = w
}

// SetSettings replaces the settings store the default sink writes to.
func (p *Parser) SetSettings(s *Settings) {
	p.settings = s

	if s == nil {
		return
	}

	for _, opt := range p.registry.Options() {
		if opt.Flags.Has(options.Array) && p.registry.IsCurrent(opt) {
			s.RegisterArray(opt.Name)
		}
	}
}

// SetStyled switches between lipgloss styling and plain text output.
func (p *Parser) SetStyled(styled bool) {
	if styled {
		p.styles = help.DefaultStyles()
	} else {
		p.styles = help.PlainStyles()
	}
}

// Settings returns the settings store the default sink writes to.
func (p *Parser) Settings() *Settings {
	return p.settings
}

// Usage writes the option listing for program to the output writer.
func (p *Parser) Usage(program string) error {
	return help.RenderUsage(p.out, p.styles, program, p.registry)
}
