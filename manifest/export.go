package manifest

import (
	"bytes"

	"github.com/BurntSushi/toml"
	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	goargs "github.com/reoring/goargs"
	"github.com/reoring/goargs/internal/ir"
)

// Export renders a compiled schema back to its data form. Converters appear
// under their registered name; inline enums carry their values. Reloading the
// output yields an equivalent schema.
func Export(s *goargs.Schema, f Format) ([]byte, error) {
	d := DocumentFromSchema(s)
	switch f {
	case FormatJSON:
		return j.MarshalIndent(d, "", "  ")
	case FormatYAML:
		return yaml.Marshal(d)
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(d); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, goargs.Issues{goargs.SchemaIssue("", "unsupported manifest format '"+string(f)+"'")}
}

// DocumentFromSchema rebuilds the document a compiled schema corresponds to.
func DocumentFromSchema(s *goargs.Schema) Document {
	return documentFromIR(s.IR())
}

func documentFromIR(cmd *ir.Command) Document {
	d := Document{Name: cmd.Name, Version: cmd.Version}
	for _, o := range cmd.Options {
		decl := OptionDecl{
			Names:     o.Names,
			Value:     o.Placeholder,
			Variadic:  o.Variadic,
			Conflicts: o.Conflicts,
			Help:      o.Help,
		}
		if len(o.ConvertEnum) > 0 {
			decl.Enum = o.ConvertEnum
		} else {
			decl.Type = o.ConvertName
		}
		d.Options = append(d.Options, decl)
	}
	for _, p := range cmd.Operands {
		if p.IsCommand() {
			c := &CommandDecl{Name: p.Name, Optional: p.Optional, Conflicts: p.Conflicts, Help: p.Help}
			for _, sub := range p.Commands {
				c.Subs = append(c.Subs, SubDecl{
					Names:  sub.Names,
					Help:   sub.Help,
					Schema: documentFromIR(sub.Cmd),
				})
			}
			d.Command = c
			continue
		}
		decl := OperandDecl{
			Name:      p.Name,
			Optional:  p.Optional,
			Variadic:  p.Variadic,
			Conflicts: p.Conflicts,
			Help:      p.Help,
		}
		if len(p.ConvertEnum) > 0 {
			decl.Enum = p.ConvertEnum
		} else {
			decl.Type = p.ConvertName
		}
		d.Arguments = append(d.Arguments, decl)
	}
	return d
}
