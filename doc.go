// Package qcli parses command-line arguments against registered options.
//
// Options have a long name, an optional single-character alias, and an arity:
// a switch, a required value, or an optional value. Switches may be negatable,
// which adds a "--no-<name>" form. Options can be grouped; once a group name
// appears on the command line, only that group's options are accepted.
//
//	p := qcli.NewParser()
//	p.AddOption("verbose", 'v', qcli.Switch|qcli.NegativeSwitch)
//	p.AddOption("output", 'o', qcli.ValueRequired)
//	p.BeginGroup("build")
//	p.AddOption("jobs", 'j', qcli.ValueRequired)
//	p.EndGroup()
//
//	if !p.ParseArgs(nil) {
//		os.Exit(2)
//	}
//
//	out := p.Settings().Value("output")
//
// Every token produces at most one Event, delivered synchronously to a Sink.
// The default sink prints diagnostics and stores values in the parser's
// Settings; a custom sink may halt the parse by returning true.
package qcli
