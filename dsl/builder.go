package dsl

import (
	goargs "github.com/reoring/goargs"
	"github.com/reoring/goargs/convert"
	"github.com/reoring/goargs/internal/ir"
)

type builder struct {
	name      string
	version   string
	options   []*ir.Option
	operands  []*ir.Operand
	selectors []*ir.Operand
	defects   []ir.Defect
}

// New starts a schema for the named program. version may be "" when the
// schema declares no --version option.
func New(name, version string) *builder {
	return &builder{name: name, version: version}
}

// Flag declares an option that takes no value ("-f", "--force"). An option
// with the long name "--help" or "--version" becomes the intercepted help or
// version action.
func (b *builder) Flag(names ...string) *optionStep {
	o := &ir.Option{Names: names, Kind: ir.KindForNames(names), Key: ir.OptionKey(names)}
	if len(b.operands) > 0 {
		b.defects = append(b.defects, ir.Defect{Arg: firstName(names), Msg: "options must be declared before arguments"})
	}
	b.options = append(b.options, o)
	return &optionStep{b: b, o: o}
}

// Option is Flag under the name that reads best when a Value step follows.
func (b *builder) Option(names ...string) *optionStep { return b.Flag(names...) }

// Operand declares a positional argument. The optional converter types its
// values; without one the raw string is kept.
func (b *builder) Operand(name string, conv ...convert.Converter) *operandStep {
	p := &ir.Operand{Name: name}
	if len(conv) > 0 && conv[0] != nil {
		p.Convert = conv[0].Convert
		p.ConvertName = conv[0].Name()
		if ec, ok := conv[0].(convert.EnumConverter); ok {
			p.ConvertEnum = ec.Values()
		}
	}
	b.operands = append(b.operands, p)
	return &operandStep{b: b, p: p}
}

// Command declares the subcommand selector operand; chain Sub for each
// subcommand. The selector must be the final operand.
func (b *builder) Command(name string) *commandStep {
	p := &ir.Operand{Name: name}
	b.operands = append(b.operands, p)
	b.selectors = append(b.selectors, p)
	return &commandStep{b: b, p: p}
}

// Build compiles and validates the schema. All construction defects are
// reported together as Issues.
func (b *builder) Build() (*goargs.Schema, error) {
	cmd := &ir.Command{Name: b.name, Version: b.version, Options: b.options, Operands: b.operands}
	ds := append([]ir.Defect{}, b.defects...)
	for _, sel := range b.selectors {
		if len(sel.Commands) == 0 {
			ds = append(ds, ir.Defect{Arg: sel.Usage(), Msg: "command must declare at least one subcommand"})
		}
	}
	if len(ds) > 0 {
		return nil, issuesFromDefects(append(ds, cmd.Validate()...))
	}
	return goargs.SchemaFromIR(cmd)
}

// MustBuild is like Build but panics on error. Construction defects are
// programmer errors.
func (b *builder) MustBuild() *goargs.Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

type optionStep struct {
	b *builder
	o *ir.Option
}

// Value makes the option take a value, rendered as <placeholder> in help.
// A nil converter keeps the raw string.
func (s *optionStep) Value(placeholder string, conv convert.Converter) *optionStep {
	s.o.TakesValue = true
	s.o.Placeholder = placeholder
	if conv != nil {
		s.o.Convert = conv.Convert
		s.o.ConvertName = conv.Name()
		if ec, ok := conv.(convert.EnumConverter); ok {
			s.o.ConvertEnum = ec.Values()
		}
	}
	return s
}

// Variadic declares that repeats accumulate values rather than resolving
// last-wins.
func (s *optionStep) Variadic() *optionStep {
	s.o.Variadic = true
	return s
}

// Conflicts adds the option to conflict groups. A "?"-prefixed id is a choice
// group: exactly one member must be supplied.
func (s *optionStep) Conflicts(groups ...string) *optionStep {
	s.o.Conflicts = append(s.o.Conflicts, groups...)
	return s
}

// Help sets the option's help text.
func (s *optionStep) Help(text string) *optionStep {
	s.o.Help = text
	return s
}

func (s *optionStep) Flag(names ...string) *optionStep   { return s.b.Flag(names...) }
func (s *optionStep) Option(names ...string) *optionStep { return s.b.Option(names...) }
func (s *optionStep) Operand(name string, conv ...convert.Converter) *operandStep {
	return s.b.Operand(name, conv...)
}
func (s *optionStep) Command(name string) *commandStep { return s.b.Command(name) }
func (s *optionStep) Build() (*goargs.Schema, error)   { return s.b.Build() }
func (s *optionStep) MustBuild() *goargs.Schema        { return s.b.MustBuild() }

type operandStep struct {
	b *builder
	p *ir.Operand
}

// Optional allows the operand to be omitted.
func (s *operandStep) Optional() *operandStep {
	s.p.Optional = true
	return s
}

// Variadic lets the operand absorb multiple values; at most one operand per
// schema may be variadic.
func (s *operandStep) Variadic() *operandStep {
	s.p.Variadic = true
	return s
}

// Conflicts adds the operand to conflict groups.
func (s *operandStep) Conflicts(groups ...string) *operandStep {
	s.p.Conflicts = append(s.p.Conflicts, groups...)
	return s
}

// Help sets the operand's help text; operands without help are omitted from
// the arguments section (the usage line always shows them).
func (s *operandStep) Help(text string) *operandStep {
	s.p.Help = text
	return s
}

func (s *operandStep) Flag(names ...string) *optionStep   { return s.b.Flag(names...) }
func (s *operandStep) Option(names ...string) *optionStep { return s.b.Option(names...) }
func (s *operandStep) Operand(name string, conv ...convert.Converter) *operandStep {
	return s.b.Operand(name, conv...)
}
func (s *operandStep) Command(name string) *commandStep { return s.b.Command(name) }
func (s *operandStep) Build() (*goargs.Schema, error)   { return s.b.Build() }
func (s *operandStep) MustBuild() *goargs.Schema        { return s.b.MustBuild() }

type commandStep struct {
	b *builder
	p *ir.Operand
}

// Optional lets the whole command position be omitted; the parse then leaves
// the command unset instead of failing.
func (s *commandStep) Optional() *commandStep {
	s.p.Optional = true
	return s
}

// Conflicts adds the command position to conflict groups; supplying any
// subcommand counts as the group member.
func (s *commandStep) Conflicts(groups ...string) *commandStep {
	s.p.Conflicts = append(s.p.Conflicts, groups...)
	return s
}

// Help sets the selector's help text for the arguments section.
func (s *commandStep) Help(text string) *commandStep {
	s.p.Help = text
	return s
}

// Sub attaches a subcommand. Its canonical name is the nested schema's own
// name; aliases match the same subcommand on the command line.
func (s *commandStep) Sub(sub *goargs.Schema, help string, aliases ...string) *commandStep {
	if sub == nil {
		s.b.defects = append(s.b.defects, ir.Defect{Arg: s.p.Usage(), Msg: "subcommand schema is nil"})
		return s
	}
	names := append([]string{sub.Name()}, aliases...)
	s.p.Commands = append(s.p.Commands, &ir.Subcommand{Names: names, Help: help, Cmd: sub.IR()})
	return s
}

func (s *commandStep) Operand(name string, conv ...convert.Converter) *operandStep {
	return s.b.Operand(name, conv...)
}
func (s *commandStep) Build() (*goargs.Schema, error) { return s.b.Build() }
func (s *commandStep) MustBuild() *goargs.Schema      { return s.b.MustBuild() }

func firstName(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

func issuesFromDefects(ds []ir.Defect) goargs.Issues {
	iss := goargs.Issues{}
	for _, d := range ds {
		iss = goargs.AppendIssues(iss, goargs.SchemaIssue(d.Arg, d.Msg))
	}
	return iss
}
