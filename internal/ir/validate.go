package ir

import "strings"

// Defect describes a schema construction error. Arg identifies the offending
// piece in display form ("--log", "<dest>", a subcommand name) and may be
// empty for command-level defects.
type Defect struct {
	Arg string
	Msg string
}

// Validate checks the compiled command against the construction rules and
// returns every defect found. A nil result means the schema is well formed.
// Validation recurses into subcommand schemas.
func (c *Command) Validate() []Defect {
	var ds []Defect
	add := func(arg, msg string) { ds = append(ds, Defect{Arg: arg, Msg: msg}) }

	if c.Name == "" {
		add("", "command name is required")
	}

	shorts := map[string]bool{}
	longs := map[string]bool{}
	keys := map[string]bool{}

	for _, o := range c.Options {
		if len(o.Names) == 0 {
			add("", "option must have at least one name")
			continue
		}
		display := o.Names[0]
		for _, n := range o.Names {
			switch {
			case strings.HasPrefix(n, "--"):
				rest := n[2:]
				if len(rest) < 2 {
					add(n, "long option must be at least 2 characters")
				} else if !validLong(rest) {
					add(n, "long option may contain only lowercase letters, digits and dashes")
				}
				if longs[rest] {
					add(n, "conflicts with previously defined long option")
				}
				longs[rest] = true
			case strings.HasPrefix(n, "-") && n != "-":
				rest := n[1:]
				if len(rest) != 1 || rest == "-" || rest == "=" || rest == " " {
					add(n, "short option must be a single character")
				}
				if shorts[rest] {
					add(n, "conflicts with previously defined short option")
				}
				shorts[rest] = true
			default:
				add(n, "option name must start with - or --")
			}
		}
		if o.Kind != OptionPlain {
			if o.TakesValue || o.Variadic || len(o.Conflicts) > 0 {
				add(display, "special option cannot take a value, be variadic, or have conflicts")
			}
		}
		if o.Kind == OptionVersion && c.Version == "" {
			add(display, "command version is required for --version")
		}
		if o.TakesValue && o.Placeholder == "" {
			add(display, "value option must name its placeholder")
		}
		if key := OptionKey(o.Names); key != "" {
			if keys[key] {
				add(display, "conflicts with previously defined argument")
			}
			keys[key] = true
		}
	}

	hasVariadic := false
	hasCommand := false
	for _, p := range c.Operands {
		usage := p.Usage()
		if p.Name == "" || strings.ContainsAny(p.Name, "<> ") {
			add(usage, "operand name must be a bare word")
		}
		if p.IsCommand() {
			if p.Variadic {
				add(usage, "command argument cannot be variadic")
			}
			if hasVariadic {
				add(usage, "command argument cannot follow variadic argument")
			}
			hasCommand = true
		} else {
			if hasCommand {
				add(usage, "arguments cannot follow command argument")
			}
			if p.Variadic {
				if hasVariadic {
					add(usage, "cannot have multiple variadic arguments")
				}
				hasVariadic = true
			}
		}
		if keys[p.Name] {
			add(usage, "conflicts with previously defined argument")
		}
		keys[p.Name] = true

		if p.IsCommand() {
			seen := map[string]bool{}
			for _, sub := range p.Commands {
				if len(sub.Names) == 0 || sub.Names[0] == "" {
					add(usage, "subcommand must have a name")
					continue
				}
				for _, n := range sub.Names {
					if seen[n] {
						add(n, "conflicts with previously defined subcommand")
					}
					seen[n] = true
				}
				if sub.Cmd == nil {
					add(sub.Names[0], "subcommand must carry a nested schema")
					continue
				}
				ds = append(ds, sub.Cmd.Validate()...)
			}
		}
	}

	ds = append(ds, c.validateConflicts()...)

	if !c.HasHelp() {
		for _, o := range c.Options {
			if o.Help != "" {
				ds = append(ds, Defect{Arg: o.Names[0], Msg: "help message without --help option has no effect"})
				break
			}
		}
	}

	return ds
}

// validateConflicts checks conflict-group shape: a group needs at least two
// members, and at most one of them may be an operand.
func (c *Command) validateConflicts() []Defect {
	type member struct {
		display string
		operand bool
	}
	groups := map[string][]member{}
	var order []string
	record := func(id, display string, operand bool) {
		if _, ok := groups[id]; !ok {
			order = append(order, id)
		}
		groups[id] = append(groups[id], member{display: display, operand: operand})
	}
	for _, o := range c.Options {
		for _, id := range o.Conflicts {
			record(id, o.PrimaryName(), false)
		}
	}
	for _, p := range c.Operands {
		for _, id := range p.Conflicts {
			record(id, p.Usage(), true)
		}
	}

	var ds []Defect
	for _, id := range order {
		members := groups[id]
		if len(members) == 1 {
			ds = append(ds, Defect{Arg: members[0].display, Msg: "conflict has no effect"})
			continue
		}
		operands := 0
		for _, m := range members {
			if m.operand {
				operands++
			}
			if operands > 1 {
				ds = append(ds, Defect{Arg: m.display, Msg: "non-options cannot conflict with each other"})
				break
			}
		}
	}
	return ds
}

func validLong(s string) bool {
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' {
			continue
		}
		return false
	}
	return s[0] != '-'
}
