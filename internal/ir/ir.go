package ir

// Package ir defines the compiled schema representation shared by the dsl
// builder, the manifest loaders, the parsing engine and the help renderer.
// This package is internal and not part of the public API.

// OptionKind distinguishes ordinary options from the intercepted specials.
type OptionKind int

const (
	OptionPlain OptionKind = iota
	// OptionHelp marks an option whose long name is "help"; matching it
	// short-circuits the parse with a help signal.
	OptionHelp
	// OptionVersion marks an option whose long name is "version".
	OptionVersion
)

// Option describes one named argument. Names are stored as typed on the
// command line ("-f", "--force"), shorts and longs mixed in declaration order.
type Option struct {
	Names       []string
	Kind        OptionKind
	TakesValue  bool
	Variadic    bool
	Placeholder string // value name rendered as <placeholder> in usage
	Conflicts   []string
	Help        string
	Convert     func(string) (any, error) // nil keeps the raw string
	ConvertName string                    // registered converter name, for manifest export
	ConvertEnum []string                  // enum values when the converter is an inline enum
	Key         string                    // canonical binding key
}

// Operand describes one positional argument. A non-nil Commands slice turns
// the operand into the subcommand selector, which is internally greedy.
type Operand struct {
	Name        string
	Optional    bool
	Variadic    bool
	Conflicts   []string
	Help        string
	Convert     func(string) (any, error)
	ConvertName string
	ConvertEnum []string
	Commands    []*Subcommand
}

// Subcommand binds a canonical name (Names[0]) plus aliases to a nested
// command schema.
type Subcommand struct {
	Names []string
	Help  string
	Cmd   *Command
}

// Command is the compiled schema for one command level.
type Command struct {
	Name     string
	Version  string
	Options  []*Option
	Operands []*Operand
}

// OptionKey returns the canonical binding key for an option: the first long
// name without its dashes, else the first name without its dash.
func OptionKey(names []string) string {
	for _, n := range names {
		if len(n) > 2 && n[0] == '-' && n[1] == '-' {
			return n[2:]
		}
	}
	if len(names) > 0 && len(names[0]) > 1 {
		return names[0][1:]
	}
	return ""
}

// KindForNames classifies an option by its names: the long names "--help"
// and "--version" mark the intercepted specials.
func KindForNames(names []string) OptionKind {
	for _, n := range names {
		switch n {
		case "--help":
			return OptionHelp
		case "--version":
			return OptionVersion
		}
	}
	return OptionPlain
}

// BindKey returns the key results are stored under: the explicit Key when the
// builder assigned one, else the derived canonical key.
func (o *Option) BindKey() string {
	if o.Key != "" {
		return o.Key
	}
	return OptionKey(o.Names)
}

// PrimaryName returns the first long name, else the first name. Used when an
// option must be referred to outside the context of a concrete token, e.g. in
// choice-group diagnostics.
func (o *Option) PrimaryName() string {
	for _, n := range o.Names {
		if len(n) > 2 && n[0] == '-' && n[1] == '-' {
			return n
		}
	}
	return o.Names[0]
}

// Usage renders the option for help output: all names joined by ", " with the
// value placeholder appended after the last one.
func (o *Option) Usage() string {
	u := join(o.Names)
	if o.TakesValue {
		u += " <" + o.Placeholder + ">"
	}
	return u
}

// DisplayNames renders all names quoted and joined by "/", e.g. '-l'/'--log'.
func (o *Option) DisplayNames() string {
	u := ""
	for i, n := range o.Names {
		if i > 0 {
			u += "/"
		}
		u += "'" + n + "'"
	}
	return u
}

// IsCommand reports whether the operand is the subcommand selector.
func (p *Operand) IsCommand() bool { return len(p.Commands) > 0 }

// Usage renders the operand for help output.
func (p *Operand) Usage() string {
	u := "<" + p.Name + ">"
	if p.Variadic {
		u += "..."
	}
	if p.Optional {
		u = "[" + u + "]"
	}
	return u
}

// Usage renders the subcommand entry: canonical name plus aliases.
func (s *Subcommand) Usage() string { return join(s.Names) }

// Match resolves a command-line word against the subcommand's names,
// case-sensitively.
func (s *Subcommand) Match(word string) bool {
	for _, n := range s.Names {
		if n == word {
			return true
		}
	}
	return false
}

// LookupOption finds the option matching a name as typed, or nil.
func (c *Command) LookupOption(name string) *Option {
	for _, o := range c.Options {
		for _, n := range o.Names {
			if n == name {
				return o
			}
		}
	}
	return nil
}

// Selector returns the subcommand selector operand, or nil.
func (c *Command) Selector() *Operand {
	for _, p := range c.Operands {
		if p.IsCommand() {
			return p
		}
	}
	return nil
}

// HasHelp reports whether an intercepted --help option is declared.
func (c *Command) HasHelp() bool {
	for _, o := range c.Options {
		if o.Kind == OptionHelp {
			return true
		}
	}
	return false
}

// HasVersion reports whether an intercepted --version option is declared.
func (c *Command) HasVersion() bool {
	for _, o := range c.Options {
		if o.Kind == OptionVersion {
			return true
		}
	}
	return false
}

func join(names []string) string {
	u := ""
	for i, n := range names {
		if i > 0 {
			u += ", "
		}
		u += n
	}
	return u
}
