// Package manifest loads and saves schemas as data.
//
// A manifest is the declarative twin of the dsl builder: the same schema,
// written as JSON, YAML or TOML instead of Go. Converters are referenced by
// their registered name (see convert.Register); inline enums carry their
// values in the document. Every construction defect a builder would report
// surfaces as goargs.Issues here too.
package manifest

import (
	goargs "github.com/reoring/goargs"
	"github.com/reoring/goargs/convert"
	"github.com/reoring/goargs/internal/ir"
)

// Document is the data form of one command level. Subcommand schemas nest a
// Document of their own; their name defaults to the subcommand's canonical
// name and their version to the parent's.
type Document struct {
	Name      string        `json:"name" yaml:"name" toml:"name"`
	Version   string        `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
	Options   []OptionDecl  `json:"options,omitempty" yaml:"options,omitempty" toml:"options,omitempty"`
	Arguments []OperandDecl `json:"arguments,omitempty" yaml:"arguments,omitempty" toml:"arguments,omitempty"`
	Command   *CommandDecl  `json:"command,omitempty" yaml:"command,omitempty" toml:"command,omitempty"`
}

// OptionDecl declares one named argument. A non-empty Value makes the option
// take a value, shown as <value> in usage. Type names a registered converter;
// Enum declares an inline one-of converter; the two are mutually exclusive.
type OptionDecl struct {
	Names     []string `json:"names" yaml:"names" toml:"names"`
	Value     string   `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
	Type      string   `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Enum      []string `json:"enum,omitempty" yaml:"enum,omitempty" toml:"enum,omitempty"`
	Variadic  bool     `json:"variadic,omitempty" yaml:"variadic,omitempty" toml:"variadic,omitempty"`
	Conflicts []string `json:"conflicts,omitempty" yaml:"conflicts,omitempty" toml:"conflicts,omitempty"`
	Help      string   `json:"help,omitempty" yaml:"help,omitempty" toml:"help,omitempty"`
}

// OperandDecl declares one positional argument.
type OperandDecl struct {
	Name      string   `json:"name" yaml:"name" toml:"name"`
	Type      string   `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Enum      []string `json:"enum,omitempty" yaml:"enum,omitempty" toml:"enum,omitempty"`
	Optional  bool     `json:"optional,omitempty" yaml:"optional,omitempty" toml:"optional,omitempty"`
	Variadic  bool     `json:"variadic,omitempty" yaml:"variadic,omitempty" toml:"variadic,omitempty"`
	Conflicts []string `json:"conflicts,omitempty" yaml:"conflicts,omitempty" toml:"conflicts,omitempty"`
	Help      string   `json:"help,omitempty" yaml:"help,omitempty" toml:"help,omitempty"`
}

// CommandDecl declares the subcommand selector. It always compiles as the
// final positional argument of its level.
type CommandDecl struct {
	Name      string    `json:"name" yaml:"name" toml:"name"`
	Optional  bool      `json:"optional,omitempty" yaml:"optional,omitempty" toml:"optional,omitempty"`
	Conflicts []string  `json:"conflicts,omitempty" yaml:"conflicts,omitempty" toml:"conflicts,omitempty"`
	Help      string    `json:"help,omitempty" yaml:"help,omitempty" toml:"help,omitempty"`
	Subs      []SubDecl `json:"subcommands" yaml:"subcommands" toml:"subcommands"`
}

// SubDecl binds a canonical name (Names[0]) plus aliases to a nested schema.
type SubDecl struct {
	Names  []string `json:"names" yaml:"names" toml:"names"`
	Help   string   `json:"help,omitempty" yaml:"help,omitempty" toml:"help,omitempty"`
	Schema Document `json:"schema" yaml:"schema" toml:"schema"`
}

// Schema compiles and validates the document. All construction defects are
// reported together as Issues, exactly as dsl.Build does.
func (d Document) Schema() (*goargs.Schema, error) {
	var ds []ir.Defect
	cmd := d.compile("", "", &ds)
	if len(ds) > 0 {
		ds = append(ds, cmd.Validate()...)
		iss := goargs.Issues{}
		for _, f := range ds {
			iss = goargs.AppendIssues(iss, goargs.SchemaIssue(f.Arg, f.Msg))
		}
		return nil, iss
	}
	return goargs.SchemaFromIR(cmd)
}

func (d Document) compile(defName, defVersion string, ds *[]ir.Defect) *ir.Command {
	name := d.Name
	if name == "" {
		name = defName
	}
	version := d.Version
	if version == "" {
		version = defVersion
	}
	cmd := &ir.Command{Name: name, Version: version}

	for _, o := range d.Options {
		opt := &ir.Option{
			Names:       o.Names,
			Kind:        ir.KindForNames(o.Names),
			Variadic:    o.Variadic,
			Conflicts:   o.Conflicts,
			Help:        o.Help,
			Key:         ir.OptionKey(o.Names),
			Placeholder: o.Value,
			TakesValue:  o.Value != "",
		}
		display := opt.Key
		if len(o.Names) > 0 {
			display = o.Names[0]
		}
		if (o.Type != "" || len(o.Enum) > 0) && !opt.TakesValue {
			*ds = append(*ds, ir.Defect{Arg: display, Msg: "converter requires a value placeholder"})
		} else {
			opt.Convert, opt.ConvertName, opt.ConvertEnum = resolve(o.Type, o.Enum, display, ds)
		}
		cmd.Options = append(cmd.Options, opt)
	}

	for _, a := range d.Arguments {
		p := &ir.Operand{
			Name:      a.Name,
			Optional:  a.Optional,
			Variadic:  a.Variadic,
			Conflicts: a.Conflicts,
			Help:      a.Help,
		}
		p.Convert, p.ConvertName, p.ConvertEnum = resolve(a.Type, a.Enum, p.Usage(), ds)
		cmd.Operands = append(cmd.Operands, p)
	}

	if c := d.Command; c != nil {
		sel := &ir.Operand{Name: c.Name, Optional: c.Optional, Conflicts: c.Conflicts, Help: c.Help}
		if len(c.Subs) == 0 {
			*ds = append(*ds, ir.Defect{Arg: sel.Usage(), Msg: "command must declare at least one subcommand"})
		}
		for _, sd := range c.Subs {
			sub := sd.Schema.compile(first(sd.Names), version, ds)
			sel.Commands = append(sel.Commands, &ir.Subcommand{Names: sd.Names, Help: sd.Help, Cmd: sub})
		}
		cmd.Operands = append(cmd.Operands, sel)
	}

	return cmd
}

// resolve turns a Type/Enum pair into the compiled converter fields.
func resolve(typ string, enum []string, arg string, ds *[]ir.Defect) (func(string) (any, error), string, []string) {
	switch {
	case typ != "" && len(enum) > 0:
		*ds = append(*ds, ir.Defect{Arg: arg, Msg: "type and enum are mutually exclusive"})
	case typ != "":
		c, ok := convert.Lookup(typ)
		if !ok {
			*ds = append(*ds, ir.Defect{Arg: arg, Msg: "unknown converter '" + typ + "'"})
			return nil, "", nil
		}
		return c.Convert, c.Name(), nil
	case len(enum) > 0:
		c := convert.Enum(enum...)
		return c.Convert, c.Name(), enum
	}
	return nil, "", nil
}

func first(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return names[0]
}
