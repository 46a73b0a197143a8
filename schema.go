package goargs

import (
	"github.com/reoring/goargs/i18n"
	"github.com/reoring/goargs/internal/ir"
)

// Schema is a compiled command-line grammar: program name and version, the
// declared options and operands, and any nested subcommand schemas. Build one
// with the dsl package or load one with the manifest package. A Schema is
// immutable after construction and safe to share across concurrent parses.
type Schema struct {
	cmd *ir.Command
}

// SchemaFromIR wraps a compiled command, checking every construction rule
// first. It is the bridge the dsl and manifest builders use (internal wiring,
// exported for subpackages); applications normally never call it.
func SchemaFromIR(cmd *ir.Command) (*Schema, error) {
	if cmd == nil {
		return nil, Issues{SchemaIssue("", "command is nil")}
	}
	ds := cmd.Validate()
	if len(ds) == 0 {
		return &Schema{cmd: cmd}, nil
	}
	var iss Issues
	for _, d := range ds {
		iss = AppendIssues(iss, SchemaIssue(d.Arg, d.Msg))
	}
	return nil, iss
}

// SchemaIssue creates an invalid_schema Issue for the named argument. This is
// a convenience helper for the schema builders; arg may be empty for
// command-level defects.
func SchemaIssue(arg, detail string) Issue {
	params := map[string]string{"arg": arg, "detail": detail}
	if arg == "" {
		delete(params, "arg")
	}
	return Issue{
		Arg:     arg,
		Code:    CodeInvalidSchema,
		Message: i18n.T(CodeInvalidSchema, params),
		Hint:    detail,
		Index:   -1,
		Params:  params,
	}
}

// Name returns the program name the schema was built with.
func (s *Schema) Name() string { return s.cmd.Name }

// Version returns the program version string ("" when none was given).
func (s *Schema) Version() string { return s.cmd.Version }

// IR returns the compiled command (internal wiring, exported for subpackages);
// treat it as read-only.
func (s *Schema) IR() *ir.Command { return s.cmd }
