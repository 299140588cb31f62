package help

import (
	"fmt"

	"github.com/toejough/qcli/internal/scan"
)

// HelpHint is appended to every diagnostic.
const HelpHint = ", try --help!"

// Diagnostic returns the message for an error event, or "" for non-error events.
func Diagnostic(styles Styles, ev scan.Event) string {
	name := styles.Flag.Render(ev.Name)

	var msg string

	switch ev.Kind {
	case scan.OptionUnknown:
		msg = fmt.Sprintf("unknown option %s", name)
	case scan.ValueMissing:
		msg = fmt.Sprintf("missing value for %s", name)
	case scan.GroupMismatch:
		msg = fmt.Sprintf("invalid option %s for the active group %s",
			name, styles.Subsection.Render(ev.Group))
	default:
		return ""
	}

	return styles.Error.Render("error:") + " " + msg + HelpHint
}
