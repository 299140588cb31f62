package help

import (
	"fmt"
	"io"
	"strings"

	"github.com/toejough/qcli/internal/options"
)

// RenderUsage writes the registered options to w: ungrouped options first,
// then one section per group in declaration order.
func RenderUsage(w io.Writer, styles Styles, program string, reg *options.Registry) error {
	grouped := map[*options.Option]bool{}

	for _, g := range reg.Groups() {
		for _, opt := range g.Members() {
			grouped[opt] = true
		}
	}

	var sb strings.Builder

	sb.WriteString(styles.Header.Render("Usage:"))
	sb.WriteString(" " + program + " [options]")

	for _, g := range reg.Groups() {
		sb.WriteString(" [" + g.Name + " [options]]")
	}

	sb.WriteString(" [--] [arguments]\n")

	var ungrouped []*options.Option

	for _, opt := range reg.Options() {
		if !grouped[opt] && reg.IsCurrent(opt) {
			ungrouped = append(ungrouped, opt)
		}
	}

	if len(ungrouped) > 0 {
		sb.WriteString("\n" + styles.Header.Render("Options:") + "\n")
		writeOptions(&sb, styles, ungrouped)
	}

	for _, g := range reg.Groups() {
		var members []*options.Option

		for _, opt := range g.Members() {
			if !opt.IsNegative() && reg.IsCurrent(opt) {
				members = append(members, opt)
			}
		}

		sb.WriteString("\n" + styles.Subsection.Render(fmt.Sprintf("Group %s:", g.Name)) + "\n")
		writeOptions(&sb, styles, members)
	}

	_, err := io.WriteString(w, sb.String())

	return err
}

// OptionSignature renders an option's keys and placeholder, e.g. "--jobs, -j <value>".
func OptionSignature(styles Styles, opt *options.Option) string {
	keys := []string{styles.Flag.Render(opt.Key())}

	if opt.Alias != 0 {
		keys = append(keys, styles.Flag.Render(opt.AliasKey()))
	}

	if opt.Flags.Has(options.NegativeSwitch) {
		keys = append(keys, styles.Flag.Render(options.LongPrefix+options.NegativePrefix+opt.Name))
	}

	sig := strings.Join(keys, ", ")

	switch opt.Flags.Arity() {
	case options.ValueRequired:
		sig += " " + styles.Placeholder.Render("<value>")
	case options.ValueOptional:
		sig += styles.Placeholder.Render("[=value]")
	}

	return sig
}

func writeOptions(sb *strings.Builder, styles Styles, opts []*options.Option) {
	for _, opt := range opts {
		sb.WriteString("  " + OptionSignature(styles, opt))

		if opt.Flags.Has(options.Array) {
			sb.WriteString(" (repeatable)")
		}

		if opt.Desc != "" {
			sb.WriteString("\n      " + styles.Desc.Render(opt.Desc))
		}

		sb.WriteString("\n")
	}
}
