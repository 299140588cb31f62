// Package main provides the qcli demo tool: it parses its command line,
// layers any --config files underneath, and prints the resolved settings.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/toejough/qcli"
	"github.com/toejough/qcli/internal/settings"
)

// Exit codes.
const (
	exitOK         = 0
	exitIOError    = 1
	exitParseError = 2
)

func main() {
	os.Exit(runMain())
}

func runMain() int {
	if len(os.Args) == 0 {
		fmt.Fprintln(os.Stderr, "error: os.Args is empty")
		return exitIOError
	}

	r := &runner{
		args:   os.Args,
		out:    os.Stdout,
		errOut: os.Stderr,
		styled: true,
	}

	return r.run()
}

// runner holds state for a single qcli invocation.
type runner struct {
	args   []string
	out    io.Writer
	errOut io.Writer
	styled bool
}

func (r *runner) newParser() *qcli.Parser {
	p := qcli.NewParser()
	p.SetOutput(r.out)
	p.SetErrOutput(r.errOut)
	p.SetStyled(r.styled)

	p.AddOption("config", 'c', qcli.ValueRequired|qcli.Array)
	p.Describe("config", "Load settings from files matching a glob")
	p.AddOption("verbose", 'v', qcli.Switch|qcli.NegativeSwitch)
	p.Describe("verbose", "Report where each setting came from")
	p.AddOption("format", 'f', qcli.ValueRequired)
	p.Describe("format", "Output format: yaml, toml or hcl")
	p.AddLongOption("color", qcli.ValueOptional)
	p.Describe("color", "Colorize diagnostics (optionally: always, never)")
	p.AddOption("define", 'D', qcli.ValueRequired|qcli.Array)
	p.Describe("define", "Set KEY=VALUE")
	p.AddOption("help", 'h', qcli.Switch)
	p.Describe("help", "Show help")

	p.BeginGroup("build")
	p.AddOption("target", 't', qcli.ValueRequired)
	p.Describe("target", "Build target")
	p.AddOption("jobs", 'j', qcli.ValueRequired)
	p.Describe("jobs", "Parallel jobs")
	p.EndGroup()

	return p
}

func (r *runner) run() int {
	p := r.newParser()

	// Parsing is idempotent, so a silent first pass can pick out the config
	// files before the real pass writes into the layered store.
	pre := p.ParseResult(r.args, qcli.SinkFunc(func(qcli.Event) bool { return false }))

	if help, _ := pre.Options["help"].(bool); help {
		if err := p.Usage(r.args[0]); err != nil {
			return exitIOError
		}

		return exitOK
	}

	if color, ok := pre.Options["color"].(string); ok {
		p.SetStyled(color != "never")
	}

	store, err := r.layeredStore(pre)
	if err != nil {
		fmt.Fprintf(r.errOut, "error: %v\n", err)
		return exitIOError
	}

	p.SetSettings(store)

	if !p.Parse(r.args, nil) {
		return exitParseError
	}

	applyDefines(store)

	format := settings.FormatYAML
	if f, ok := store.Value("format").(string); ok {
		format = settings.Format(f)
	}

	data, err := settings.Encode(format, resolved(store))
	if err != nil {
		fmt.Fprintf(r.errOut, "error: %v\n", err)
		return exitIOError
	}

	if _, err := r.out.Write(data); err != nil {
		return exitIOError
	}

	if verbose, _ := store.Value("verbose").(bool); verbose {
		r.reportOwners(store)
	}

	return exitOK
}

func (r *runner) layeredStore(pre qcli.Result) (*settings.Store, error) {
	patterns := stringsOf(pre.Options["config"])
	if len(patterns) == 0 {
		return settings.Layered("commandline", nil, "config", "define")
	}

	paths, err := settings.Discover(patterns...)
	if err != nil {
		return nil, err
	}

	return settings.Layered("commandline", paths, "config", "define")
}

func (r *runner) reportOwners(store *settings.Store) {
	for _, key := range allKeys(store) {
		if owner := store.Owner(key); owner != nil {
			fmt.Fprintf(r.errOut, "%s: %s\n", key, owner.Name())
		}
	}
}

// allKeys returns the keys set anywhere in the chain, nearest level first.
func allKeys(store *settings.Store) []string {
	seen := map[string]bool{}

	var keys []string

	for s := store; s != nil; s = s.Parent() {
		for _, k := range s.Keys() {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}

	return keys
}

// applyDefines turns each KEY=VALUE define into a setting on store.
func applyDefines(store *settings.Store) {
	for _, def := range stringsOf(store.LocalValue("define")) {
		if key, value, ok := strings.Cut(def, "="); ok && key != "" {
			store.SetValue(key, value)
		}
	}
}

func resolved(store *settings.Store) map[string]any {
	out := map[string]any{}

	for _, key := range allKeys(store) {
		out[key] = store.Value(key)
	}

	if args := store.Arguments(); len(args) > 0 {
		list := make([]any, 0, len(args))
		for _, a := range args {
			list = append(list, a)
		}

		out["arguments"] = list
	}

	return out
}

func stringsOf(v any) []string {
	list, _ := v.([]any)
	out := make([]string, 0, len(list))

	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}

	return out
}
