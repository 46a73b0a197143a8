package goargs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/goargs/i18n"
	"github.com/reoring/goargs/internal/engine"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeUnknownOption        = "unknown_option"
	CodeUnexpectedValue      = "unexpected_value"
	CodeMissingValue         = "missing_value"
	CodeInvalidValue         = "invalid_value"
	CodeMissingArgument      = "missing_argument"
	CodeMissingChoice        = "missing_choice"
	CodeTooManyArguments     = "too_many_arguments"
	CodeUnknownCommand       = "unknown_command"
	CodeConflictingArguments = "conflicting_arguments"
	CodeInvalidSchema        = "invalid_schema"
)

// Issue represents a single parse or schema-construction failure.
type Issue struct {
	Arg     string // Offending token or argument in display form ("-x", "<dest>").
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, defect details, etc.
	Cause   error  // Optional: underlying error (converter failures).
	Index   int    // Argv index of the offending token (-1 when unknown).
	// Params carries the structured message parameters handed to the
	// Translator, e.g. {"option": "-s", "value": "VALUE"}.
	Params map[string]string
}

// Issues is a collection of parse errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(iss[i].Message)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// HelpRequested reports that an intercepted help option was matched. Text is
// the synthesized help for the command level the user asked about; Error
// returns it verbatim so printing the error prints the help.
type HelpRequested struct{ Text string }

func (e *HelpRequested) Error() string { return e.Text }

// VersionRequested reports that an intercepted version option was matched.
type VersionRequested struct{ Text string }

func (e *VersionRequested) Error() string { return e.Text }

// AsHelp extracts a HelpRequested from an error.
func AsHelp(err error) (*HelpRequested, bool) {
	var h *HelpRequested
	if errors.As(err, &h) {
		return h, true
	}
	return nil, false
}

// AsVersion extracts a VersionRequested from an error.
func AsVersion(err error) (*VersionRequested, bool) {
	var v *VersionRequested
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// issueFromEngine converts the engine's neutral issue into the public form,
// synthesizing the message through the Translator.
func issueFromEngine(e *engine.Issue) Issue {
	params := map[string]string{}
	switch e.Code {
	case engine.CodeUnknownOption:
		params["option"] = e.Arg
	case engine.CodeUnexpectedValue:
		params["option"] = e.Arg
		params["value"] = e.Value
	case engine.CodeMissingValue:
		params["option"] = e.Arg
	case engine.CodeInvalidValue:
		params["arg"] = e.Arg
		params["name"] = e.Other
		params["cause"] = causeText(e.Cause)
	case engine.CodeMissingArgument, engine.CodeTooManyArgs, engine.CodeUnknownCommand:
		params["arg"] = e.Arg
	case engine.CodeMissingChoice:
		params["alternatives"] = joinAlternatives(e.Alts)
	case engine.CodeConflict:
		params["first"] = e.Arg
		params["second"] = e.Other
	}
	return Issue{
		Arg:     e.Arg,
		Code:    e.Code,
		Message: i18n.T(e.Code, params),
		Cause:   e.Cause,
		Index:   e.Index,
		Params:  params,
	}
}

// joinAlternatives renders choice-group members for display: each quoted,
// joined with " or ".
func joinAlternatives(alts []string) string {
	b := &strings.Builder{}
	for i, a := range alts {
		if i > 0 {
			b.WriteString(" or ")
		}
		b.WriteString("'")
		b.WriteString(a)
		b.WriteString("'")
	}
	return b.String()
}

func causeText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
