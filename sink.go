package qcli

import (
	"fmt"

	"github.com/toejough/qcli/internal/help"
)

// DefaultSink returns the sink Parse uses when none is given. It reports error
// events to the diagnostic writer, stores bare arguments with AddArgument and
// options with SetValue on the parser's settings store, and never halts.
func (p *Parser) DefaultSink() Sink {
	return SinkFunc(func(ev Event) bool {
		switch ev.Kind {
		case OptionUnknown, ValueMissing, GroupMismatch:
			_, _ = fmt.Fprintln(p.errOut, help.Diagnostic(p.styles, ev))
		case ArgumentFound:
			if p.settings != nil {
				if arg, ok := ev.Value.(string); ok {
					p.settings.AddArgument(arg)
				}
			}
		case OptionFound:
			if p.settings != nil {
				p.settings.SetValue(ev.Name, ev.Value)
			}
		}

		return false
	})
}
