package engine

import (
	"strings"

	"github.com/reoring/goargs/internal/ir"
)

// Issue codes. The public package maps each to a user-facing message; the
// engine only records what went wrong and where.
const (
	CodeUnknownOption   = "unknown_option"
	CodeUnexpectedValue = "unexpected_value"
	CodeMissingValue    = "missing_value"
	CodeInvalidValue    = "invalid_value"
	CodeMissingArgument = "missing_argument"
	CodeMissingChoice   = "missing_choice"
	CodeTooManyArgs     = "too_many_arguments"
	CodeUnknownCommand  = "unknown_command"
	CodeConflict        = "conflicting_arguments"
)

// Issue is a single match failure. Which fields carry data depends on Code:
// Arg holds the offending token or argument display form, Value an attached
// value, Other the second member of a conflicting pair or the argument a
// rejected value was typed for, Alts the unsatisfied alternatives of a choice.
// Index is the argv position the issue points at, or -1 when no single token
// is to blame.
type Issue struct {
	Code  string
	Arg   string
	Value string
	Other string
	Alts  []string
	Index int
	Cause error
}

func (i *Issue) Error() string {
	if i.Arg != "" {
		return i.Code + ": " + i.Arg
	}
	return i.Code + ": " + strings.Join(i.Alts, ", ")
}

// Signal reports that matching stopped early on an intercepted option.
type Signal int

const (
	SignalNone Signal = iota
	SignalHelp
	SignalVersion
)

// Value is one matched occurrence of an option value or operand.
type Value struct {
	Raw       string
	Converted any
	Index     int
}

// Binding collects everything matched for one schema key. Count tracks
// occurrences, which for flags can exceed len(Values).
type Binding struct {
	Used   string // name the user last typed, for diagnostics
	Count  int
	Values []Value
}

// Outcome is the result of matching one command level. When a subcommand
// matched, Command names it and Sub holds the nested outcome; a help or
// version signal raised anywhere in the chain is mirrored on every ancestor.
type Outcome struct {
	Signal   Signal
	Bindings map[string]*Binding
	Command  string
	Sub      *Outcome
}

// Binding returns the binding for key, or nil when nothing matched it.
func (o *Outcome) Binding(key string) *Binding {
	if o == nil {
		return nil
	}
	return o.Bindings[key]
}

// Leaf follows the subcommand chain to the outcome of the innermost command.
func (o *Outcome) Leaf() *Outcome {
	for o.Sub != nil {
		o = o.Sub
	}
	return o
}

// Run matches args against cmd. base is the argv index of args[0], so issues
// and values from nested runs still point into the original command line.
// Matching is strict left to right over the option position, then distributes
// the positional tail, then checks conflicts and choices, and finally resolves
// a subcommand selector by recursing over the tail it captured.
func Run(cmd *ir.Command, args []string, base int) (*Outcome, *Issue) {
	out := &Outcome{Bindings: map[string]*Binding{}}
	lx := NewLexer(args, base)

	for {
		tok, iss := lx.NextOption()
		if iss != nil {
			return nil, iss
		}
		if tok == nil {
			break
		}
		opt := cmd.LookupOption(tok.Text)
		if opt == nil {
			return nil, &Issue{Code: CodeUnknownOption, Arg: tok.Text, Index: tok.Index}
		}
		switch opt.Kind {
		case ir.OptionHelp:
			out.Signal = SignalHelp
			return out, nil
		case ir.OptionVersion:
			out.Signal = SignalVersion
			return out, nil
		}
		b := out.binding(opt.BindKey())
		b.Used = tok.Text
		b.Count++
		if !opt.TakesValue {
			continue
		}
		vtok, ok := lx.NextValue()
		if !ok {
			return nil, &Issue{Code: CodeMissingValue, Arg: opt.DisplayNames(), Index: tok.Index}
		}
		v, iss2 := convert(opt.Convert, tok.Text, vtok)
		if iss2 != nil {
			return nil, iss2
		}
		b.Values = append(b.Values, v)
	}

	rest, restIdx := lx.Rest()
	if iss := out.distribute(cmd, rest, restIdx); iss != nil {
		return nil, iss
	}
	if iss := out.checkConflictsAndChoices(cmd); iss != nil {
		return nil, iss
	}
	if iss := out.resolveCommand(cmd); iss != nil {
		return nil, iss
	}
	return out, nil
}

// distribute hands the positional tail to the operands: one argument per
// required operand in declared order, then one per optional operand, then
// whatever remains to the variadic operand or selector. Draining converts as
// it goes, so a bad value fails before a later operand can report missing.
func (o *Outcome) distribute(cmd *ir.Command, rest []string, restIdx int) *Issue {
	n := len(rest)
	grants := make([]int, len(cmd.Operands))
	for i, p := range cmd.Operands {
		if n == 0 {
			break
		}
		if !p.Optional {
			grants[i]++
			n--
		}
	}
	for i, p := range cmd.Operands {
		if n == 0 {
			break
		}
		if p.Optional {
			grants[i]++
			n--
		}
	}
	if n > 0 {
		for i, p := range cmd.Operands {
			if p.Variadic || p.IsCommand() {
				grants[i] += n
				n = 0
				break
			}
		}
	}

	pos := 0
	for i, p := range cmd.Operands {
		if grants[i] == 0 {
			continue
		}
		b := o.binding(p.Name)
		for g := 0; g < grants[i]; g++ {
			tok := &Token{Text: rest[pos], Index: restIdx + pos}
			pos++
			var v Value
			if p.IsCommand() {
				// Selector values stay raw; the tail belongs to the nested command.
				v = Value{Raw: tok.Text, Converted: tok.Text, Index: tok.Index}
			} else {
				var iss *Issue
				v, iss = convert(p.Convert, angle(p.Name), tok)
				if iss != nil {
					return iss
				}
			}
			b.Count++
			b.Values = append(b.Values, v)
		}
	}

	for _, p := range cmd.Operands {
		if !p.Optional && o.Binding(p.Name) == nil {
			return &Issue{Code: CodeMissingArgument, Arg: angle(p.Name), Index: -1}
		}
	}
	if pos < len(rest) {
		return &Issue{Code: CodeTooManyArgs, Arg: rest[pos], Index: restIdx + pos}
	}
	return nil
}

// checkConflictsAndChoices walks the set arguments in declared order, options
// before operands, recording which conflict group each belongs to. A group
// claimed twice is a conflict; a choice group claimed never is a missing
// choice.
func (o *Outcome) checkConflictsAndChoices(cmd *ir.Command) *Issue {
	claimed := map[string]string{}
	claim := func(groups []string, display string) *Issue {
		for _, id := range groups {
			if first, ok := claimed[id]; ok {
				return &Issue{Code: CodeConflict, Arg: first, Other: display, Index: -1}
			}
			claimed[id] = display
		}
		return nil
	}

	for _, opt := range cmd.Options {
		b := o.Binding(opt.BindKey())
		if b == nil || b.Count == 0 {
			continue
		}
		if iss := claim(opt.Conflicts, b.Used); iss != nil {
			return iss
		}
	}
	for _, p := range cmd.Operands {
		b := o.Binding(p.Name)
		if b == nil || b.Count == 0 {
			continue
		}
		if iss := claim(p.Conflicts, angle(p.Name)); iss != nil {
			return iss
		}
	}

	var ids []string
	seen := map[string]bool{}
	members := map[string][]string{}
	for _, opt := range cmd.Options {
		for _, id := range opt.Conflicts {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
			members[id] = append(members[id], opt.PrimaryName())
		}
	}
	for _, p := range cmd.Operands {
		for _, id := range p.Conflicts {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
			members[id] = append(members[id], angle(p.Name))
		}
	}
	for _, id := range ids {
		if !strings.HasPrefix(id, "?") {
			continue
		}
		if _, ok := claimed[id]; ok {
			continue
		}
		return &Issue{Code: CodeMissingChoice, Alts: members[id], Index: -1}
	}
	return nil
}

// resolveCommand matches the selector's first captured word against the
// declared subcommands and recurses over the remaining tail with a fresh
// lexer, so "--" handling and the option position start over inside the
// nested command.
func (o *Outcome) resolveCommand(cmd *ir.Command) *Issue {
	sel := cmd.Selector()
	if sel == nil {
		return nil
	}
	b := o.Binding(sel.Name)
	if b == nil || len(b.Values) == 0 {
		return nil
	}
	head := b.Values[0]
	var matched *ir.Subcommand
	for _, sc := range sel.Commands {
		if sc.Match(head.Raw) {
			matched = sc
			break
		}
	}
	if matched == nil {
		return &Issue{Code: CodeUnknownCommand, Arg: head.Raw, Index: head.Index}
	}
	o.Command = matched.Names[0]

	tail := make([]string, 0, len(b.Values)-1)
	for _, v := range b.Values[1:] {
		tail = append(tail, v.Raw)
	}
	sub, iss := Run(matched.Cmd, tail, head.Index+1)
	if iss != nil {
		return iss
	}
	o.Sub = sub
	if sub.Signal != SignalNone {
		o.Signal = sub.Signal
	}
	return nil
}

func (o *Outcome) binding(key string) *Binding {
	b := o.Bindings[key]
	if b == nil {
		b = &Binding{}
		o.Bindings[key] = b
	}
	return b
}

// convert runs fn over a value token. display names the argument the value
// was typed for and travels on the issue so callers can say whose value broke.
func convert(fn func(string) (any, error), display string, tok *Token) (Value, *Issue) {
	if fn == nil {
		return Value{Raw: tok.Text, Converted: tok.Text, Index: tok.Index}, nil
	}
	v, err := fn(tok.Text)
	if err != nil {
		return Value{}, &Issue{Code: CodeInvalidValue, Arg: tok.Text, Other: display, Index: tok.Index, Cause: err}
	}
	return Value{Raw: tok.Text, Converted: v, Index: tok.Index}, nil
}

func angle(name string) string { return "<" + name + ">" }
