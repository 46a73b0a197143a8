package goargs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/reoring/goargs/internal/engine"
	"github.com/reoring/goargs/internal/ir"
)

// Parse matches args (excluding the program name) against the schema. On
// success it returns the bound Result. Parse never prints and never exits: an
// intercepted --help or --version surfaces as *HelpRequested or
// *VersionRequested, and every parse failure as Issues; all three implement
// error. The schema's own name is used on the usage line of help text.
func Parse(s *Schema, args []string) (*Result, error) {
	return parse(s, s.Name(), args)
}

// ParseOrExit parses os.Args with the conventions of a typical main: help and
// version text print to stdout and the process exits 0; a parse error prints
// "error: <message>" and exits 1. The usage line shows the invoked binary's
// basename rather than the schema name.
func ParseOrExit(s *Schema) *Result {
	res, err := parse(s, binName(), os.Args[1:])
	if err == nil {
		return res
	}
	if h, ok := AsHelp(err); ok {
		fmt.Print(h.Text)
		os.Exit(0)
	}
	if v, ok := AsVersion(err); ok {
		fmt.Println(v.Text)
		os.Exit(0)
	}
	fmt.Printf("error: %s\n", err.Error())
	os.Exit(1)
	return nil
}

func parse(s *Schema, bin string, args []string) (*Result, error) {
	out, eiss := engine.Run(s.cmd, args, 0)
	if eiss != nil {
		return nil, Issues{issueFromEngine(eiss)}
	}
	switch out.Signal {
	case engine.SignalHelp:
		cmd, chain := signalTarget(s.cmd, out, bin)
		return nil, &HelpRequested{Text: renderHelp(cmd, chain)}
	case engine.SignalVersion:
		return nil, &VersionRequested{Text: s.VersionText()}
	}
	return &Result{cmd: s.cmd, out: out}, nil
}

// signalTarget walks the outcome chain to the command level that raised the
// signal, building the display chain ("prog remove") along the way. The
// raiser is the innermost outcome: a signal short-circuits before its own
// subcommand could resolve.
func signalTarget(cmd *ir.Command, out *engine.Outcome, bin string) (*ir.Command, string) {
	for out.Sub != nil {
		cmd = subCommandIR(cmd, out.Command)
		bin += " " + out.Command
		out = out.Sub
	}
	return cmd, bin
}

func binName() string {
	if len(os.Args) == 0 || os.Args[0] == "" {
		return "<program>"
	}
	return filepath.Base(os.Args[0])
}

// Get returns the last value bound to key, converted to T by the schema's
// converter. ok is false when the key is unset or T does not match the
// converter's type.
func Get[T any](r *Result, key string) (T, bool) {
	var zero T
	v, ok := r.Value(key)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

// GetAll returns every value bound to key converted to T, in input order.
// ok is false when any bound value is not a T; an unset key yields an empty
// slice with ok true.
func GetAll[T any](r *Result, key string) ([]T, bool) {
	vs := r.Values(key)
	out := make([]T, 0, len(vs))
	for _, v := range vs {
		t, ok := v.(T)
		if !ok {
			return nil, false
		}
		out = append(out, t)
	}
	return out, true
}
