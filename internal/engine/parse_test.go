package engine_test

import (
	"strconv"
	"testing"

	"github.com/reoring/goargs/internal/engine"
	"github.com/reoring/goargs/internal/ir"
)

func intConv(s string) (any, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func run(t *testing.T, cmd *ir.Command, args ...string) *engine.Outcome {
	t.Helper()
	out, iss := engine.Run(cmd, args, 0)
	if iss != nil {
		t.Fatalf("run %q: unexpected issue %v", args, iss)
	}
	return out
}

func runErr(t *testing.T, cmd *ir.Command, args ...string) *engine.Issue {
	t.Helper()
	out, iss := engine.Run(cmd, args, 0)
	if iss == nil {
		t.Fatalf("run %q: expected issue, got outcome %+v", args, out)
	}
	return iss
}

func raws(b *engine.Binding) []string {
	if b == nil {
		return nil
	}
	out := make([]string, len(b.Values))
	for i, v := range b.Values {
		out[i] = v.Raw
	}
	return out
}

func wantRaws(t *testing.T, b *engine.Binding, want ...string) {
	t.Helper()
	got := raws(b)
	if len(got) != len(want) {
		t.Fatalf("values: got %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("values: got %q, want %q", got, want)
		}
	}
}

func TestRunFlagsAndValues(t *testing.T) {
	cmd := &ir.Command{Name: "prog", Options: []*ir.Option{
		{Names: []string{"-f", "--force"}},
		{Names: []string{"-l", "--log"}, TakesValue: true, Placeholder: "level"},
	}}
	out := run(t, cmd, "-f", "--log", "debug", "--force")

	force := out.Binding("force")
	if force == nil || force.Count != 2 {
		t.Fatalf("force: %+v", force)
	}
	if force.Used != "--force" {
		t.Fatalf("used: got %q", force.Used)
	}
	log := out.Binding("log")
	wantRaws(t, log, "debug")
	if log.Values[0].Converted != "debug" {
		t.Fatalf("converted: %v", log.Values[0].Converted)
	}
}

func TestRunValueForms(t *testing.T) {
	cmd := &ir.Command{Name: "prog", Options: []*ir.Option{
		{Names: []string{"-l", "--log"}, TakesValue: true, Placeholder: "level"},
	}}
	for _, args := range [][]string{
		{"--log", "info"},
		{"--log=info"},
		{"-l", "info"},
		{"-l=info"},
		{"-linfo"},
	} {
		out := run(t, cmd, args...)
		wantRaws(t, out.Binding("log"), "info")
	}
}

func TestRunOptionOrderDoesNotMatter(t *testing.T) {
	cmd := &ir.Command{Name: "prog", Options: []*ir.Option{
		{Names: []string{"-f", "--force"}},
		{Names: []string{"-v"}},
		{Names: []string{"-l", "--log"}, TakesValue: true, Placeholder: "level"},
	}}
	for _, args := range [][]string{
		{"-f", "-v", "--log", "x"},
		{"-v", "--log", "x", "-f"},
		{"--log", "x", "-f", "-v"},
	} {
		out := run(t, cmd, args...)
		if out.Binding("force").Count != 1 || out.Binding("v").Count != 1 {
			t.Fatalf("%q: flags lost", args)
		}
		wantRaws(t, out.Binding("log"), "x")
	}
}

func TestRunClusterEquivalence(t *testing.T) {
	cmd := &ir.Command{Name: "prog", Options: []*ir.Option{
		{Names: []string{"-a"}},
		{Names: []string{"-b"}},
		{Names: []string{"-c"}},
	}}
	clustered := run(t, cmd, "-abc")
	spelled := run(t, cmd, "-a", "-b", "-c")
	for _, key := range []string{"a", "b", "c"} {
		if clustered.Binding(key).Count != spelled.Binding(key).Count {
			t.Fatalf("%s: cluster and spelled-out forms disagree", key)
		}
	}
}

func TestRunEmptyValueIsLegal(t *testing.T) {
	cmd := &ir.Command{Name: "prog", Options: []*ir.Option{
		{Names: []string{"-s"}, TakesValue: true, Placeholder: "v"},
	}}
	for _, args := range [][]string{{"-s", ""}, {"-s="}} {
		out := run(t, cmd, args...)
		wantRaws(t, out.Binding("s"), "")
	}
}

func TestRunUnknownOption(t *testing.T) {
	cmd := &ir.Command{Name: "prog"}
	iss := runErr(t, cmd, "-q")
	if iss.Code != engine.CodeUnknownOption || iss.Arg != "-q" || iss.Index != 0 {
		t.Fatalf("issue: %+v", iss)
	}

	// A short option character may be multi-byte; the report carries it whole.
	iss = runErr(t, cmd, "-é")
	if iss.Code != engine.CodeUnknownOption || iss.Arg != "-é" {
		t.Fatalf("issue: %+v", iss)
	}
}

func TestRunMissingValue(t *testing.T) {
	cmd := &ir.Command{Name: "prog", Options: []*ir.Option{
		{Names: []string{"-l", "--log"}, TakesValue: true, Placeholder: "level"},
		{Names: []string{"-f", "--force"}},
	}}

	iss := runErr(t, cmd, "--log")
	if iss.Code != engine.CodeMissingValue || iss.Arg != "'-l'/'--log'" {
		t.Fatalf("issue: %+v", iss)
	}

	// The next token looks like an option, so it cannot serve as the value.
	iss = runErr(t, cmd, "--log", "--force")
	if iss.Code != engine.CodeMissingValue {
		t.Fatalf("issue: %+v", iss)
	}
	iss = runErr(t, cmd, "--log", "--")
	if iss.Code != engine.CodeMissingValue {
		t.Fatalf("issue: %+v", iss)
	}

	// A lone dash is a legal value.
	out := run(t, cmd, "--log", "-")
	wantRaws(t, out.Binding("log"), "-")
}

func TestRunUnexpectedValue(t *testing.T) {
	cmd := &ir.Command{Name: "prog", Options: []*ir.Option{
		{Names: []string{"-f", "--force"}},
	}}
	iss := runErr(t, cmd, "--force=yes")
	if iss.Code != engine.CodeUnexpectedValue || iss.Arg != "--force" || iss.Value != "yes" {
		t.Fatalf("issue: %+v", iss)
	}
}

func TestRunInvalidValue(t *testing.T) {
	cmd := &ir.Command{Name: "prog", Options: []*ir.Option{
		{Names: []string{"--age"}, TakesValue: true, Placeholder: "age", Convert: intConv},
	}}
	iss := runErr(t, cmd, "--age", "ABC")
	if iss.Code != engine.CodeInvalidValue || iss.Arg != "ABC" || iss.Index != 1 || iss.Cause == nil {
		t.Fatalf("issue: %+v", iss)
	}
	if iss.Other != "--age" {
		t.Fatalf("other: got %q, want the option as typed", iss.Other)
	}

	out := run(t, cmd, "--age=47")
	if got := out.Binding("age").Values[0].Converted; got != 47 {
		t.Fatalf("converted: %v", got)
	}
}

func TestRunDistributionSkipsOptionalWhenScarce(t *testing.T) {
	cmd := &ir.Command{Name: "prog", Operands: []*ir.Operand{
		{Name: "a", Optional: true},
		{Name: "b"},
		{Name: "c", Optional: true, Variadic: true},
		{Name: "d"},
	}}
	out := run(t, cmd, "0", "1")
	if out.Binding("a") != nil || out.Binding("c") != nil {
		t.Fatalf("optional operands should stay unset")
	}
	wantRaws(t, out.Binding("b"), "0")
	wantRaws(t, out.Binding("d"), "1")
}

func TestRunDistributionGrantsOptionalsInDeclaredOrder(t *testing.T) {
	cmd := &ir.Command{Name: "prog", Operands: []*ir.Operand{
		{Name: "a", Optional: true},
		{Name: "b"},
		{Name: "c", Optional: true, Variadic: true},
		{Name: "d"},
	}}
	out := run(t, cmd, "0", "1", "2")
	wantRaws(t, out.Binding("a"), "0")
	wantRaws(t, out.Binding("b"), "1")
	if out.Binding("c") != nil {
		t.Fatalf("later optional should stay unset")
	}
	wantRaws(t, out.Binding("d"), "2")

	out = run(t, cmd, "0", "1", "2", "3")
	wantRaws(t, out.Binding("a"), "0")
	wantRaws(t, out.Binding("b"), "1")
	wantRaws(t, out.Binding("c"), "2")
	wantRaws(t, out.Binding("d"), "3")
}

func TestRunDistributionFillsThenOverflowsVariadic(t *testing.T) {
	cmd := &ir.Command{Name: "prog", Operands: []*ir.Operand{
		{Name: "a", Optional: true},
		{Name: "b"},
		{Name: "c", Optional: true, Variadic: true},
		{Name: "d"},
	}}
	out := run(t, cmd, "0", "1", "2", "3", "4")
	wantRaws(t, out.Binding("a"), "0")
	wantRaws(t, out.Binding("b"), "1")
	wantRaws(t, out.Binding("c"), "2", "3")
	wantRaws(t, out.Binding("d"), "4")
}

func TestRunVariadicBeforeRequired(t *testing.T) {
	cmd := &ir.Command{Name: "prog", Operands: []*ir.Operand{
		{Name: "src", Variadic: true},
		{Name: "dest"},
	}}
	out := run(t, cmd, "a", "b", "c")
	wantRaws(t, out.Binding("src"), "a", "b")
	wantRaws(t, out.Binding("dest"), "c")

	iss := runErr(t, cmd, "only")
	if iss.Code != engine.CodeMissingArgument || iss.Arg != "<dest>" {
		t.Fatalf("issue: %+v", iss)
	}
}

func TestRunMissingArgument(t *testing.T) {
	cmd := &ir.Command{Name: "prog", Operands: []*ir.Operand{{Name: "file"}}}
	iss := runErr(t, cmd)
	if iss.Code != engine.CodeMissingArgument || iss.Arg != "<file>" {
		t.Fatalf("issue: %+v", iss)
	}
}

func TestRunTooManyArguments(t *testing.T) {
	cmd := &ir.Command{Name: "prog", Operands: []*ir.Operand{{Name: "file"}}}
	iss := runErr(t, cmd, "a", "b")
	if iss.Code != engine.CodeTooManyArgs || iss.Arg != "b" || iss.Index != 1 {
		t.Fatalf("issue: %+v", iss)
	}

	bare := &ir.Command{Name: "prog"}
	iss = runErr(t, bare, "x")
	if iss.Code != engine.CodeTooManyArgs || iss.Arg != "x" {
		t.Fatalf("issue: %+v", iss)
	}
}

func TestRunOperandConversionFailsDuringDrain(t *testing.T) {
	cmd := &ir.Command{Name: "prog", Operands: []*ir.Operand{
		{Name: "count", Convert: intConv},
		{Name: "rest", Optional: true},
	}}
	iss := runErr(t, cmd, "NaN", "x")
	if iss.Code != engine.CodeInvalidValue || iss.Arg != "NaN" || iss.Index != 0 {
		t.Fatalf("issue: %+v", iss)
	}
	if iss.Other != "<count>" {
		t.Fatalf("other: got %q, want the operand display form", iss.Other)
	}
}

func TestRunConflictBetweenOptions(t *testing.T) {
	cmd := &ir.Command{Name: "prog", Options: []*ir.Option{
		{Names: []string{"-a"}, Conflicts: []string{"!x"}},
		{Names: []string{"-b", "--beta"}, Conflicts: []string{"!x"}},
	}}

	run(t, cmd)
	run(t, cmd, "-a")
	run(t, cmd, "-b")

	iss := runErr(t, cmd, "-a", "--beta")
	if iss.Code != engine.CodeConflict || iss.Arg != "-a" || iss.Other != "--beta" {
		t.Fatalf("issue: %+v", iss)
	}
}

func TestRunConflictBetweenOptionAndOperand(t *testing.T) {
	cmd := &ir.Command{
		Name: "prog",
		Options: []*ir.Option{
			{Names: []string{"-b"}, Conflicts: []string{"!g"}},
		},
		Operands: []*ir.Operand{
			{Name: "d", Optional: true, Conflicts: []string{"!g"}},
		},
	}
	iss := runErr(t, cmd, "-b", "val")
	if iss.Code != engine.CodeConflict || iss.Arg != "-b" || iss.Other != "<d>" {
		t.Fatalf("issue: %+v", iss)
	}
}

func TestRunGroupIdsAreDistinctPerPrefix(t *testing.T) {
	// "x", "!x" and "?x" are three unrelated groups.
	cmd := &ir.Command{Name: "prog", Options: []*ir.Option{
		{Names: []string{"-a"}, Conflicts: []string{"x"}},
		{Names: []string{"-b"}, Conflicts: []string{"!x"}},
		{Names: []string{"-c"}, Conflicts: []string{"?x"}},
		{Names: []string{"-d"}, Conflicts: []string{"x"}},
		{Names: []string{"-e"}, Conflicts: []string{"!x"}},
		{Names: []string{"-f"}, Conflicts: []string{"?x"}},
	}}
	run(t, cmd, "-a", "-b", "-c")

	iss := runErr(t, cmd, "-a", "-d")
	if iss.Code != engine.CodeConflict {
		t.Fatalf("issue: %+v", iss)
	}
}

func TestRunMissingChoice(t *testing.T) {
	cmd := &ir.Command{
		Name: "prog",
		Options: []*ir.Option{
			{Names: []string{"-a"}, Conflicts: []string{"?m"}},
		},
		Operands: []*ir.Operand{
			{Name: "c", Optional: true, Conflicts: []string{"?m"}},
		},
	}

	iss := runErr(t, cmd)
	if iss.Code != engine.CodeMissingChoice {
		t.Fatalf("issue: %+v", iss)
	}
	if len(iss.Alts) != 2 || iss.Alts[0] != "-a" || iss.Alts[1] != "<c>" {
		t.Fatalf("alternatives: %q", iss.Alts)
	}

	run(t, cmd, "-a")
	run(t, cmd, "word")
}

func TestRunHelpSignalShortCircuits(t *testing.T) {
	cmd := &ir.Command{
		Name: "prog",
		Options: []*ir.Option{
			{Names: []string{"-h", "--help"}, Kind: ir.OptionHelp},
			{Names: []string{"-a"}, Conflicts: []string{"?m"}},
			{Names: []string{"-b"}, Conflicts: []string{"?m"}},
		},
		Operands: []*ir.Operand{{Name: "file"}},
	}
	// Required operand and unsatisfied choice notwithstanding, help wins.
	out := run(t, cmd, "--help")
	if out.Signal != engine.SignalHelp {
		t.Fatalf("signal: %v", out.Signal)
	}

	// Even over an unknown option later in the input.
	out = run(t, cmd, "--help", "-q")
	if out.Signal != engine.SignalHelp {
		t.Fatalf("signal: %v", out.Signal)
	}

	// Tokens before the help option still fail first.
	iss := runErr(t, cmd, "-q", "--help")
	if iss.Code != engine.CodeUnknownOption {
		t.Fatalf("issue: %+v", iss)
	}
}

func TestRunVersionSignal(t *testing.T) {
	cmd := &ir.Command{Name: "prog", Version: "1.2.3", Options: []*ir.Option{
		{Names: []string{"--version"}, Kind: ir.OptionVersion},
	}}
	out := run(t, cmd, "--version")
	if out.Signal != engine.SignalVersion {
		t.Fatalf("signal: %v", out.Signal)
	}
}

func TestRunHelpAfterNonOptionIsPositional(t *testing.T) {
	cmd := &ir.Command{
		Name: "prog",
		Options: []*ir.Option{
			{Names: []string{"-h", "--help"}, Kind: ir.OptionHelp},
		},
		Operands: []*ir.Operand{{Name: "file", Optional: true}},
	}
	iss := runErr(t, cmd, "x", "--help")
	if iss.Code != engine.CodeTooManyArgs || iss.Arg != "--help" {
		t.Fatalf("issue: %+v", iss)
	}
}

func subSchema(t *testing.T) *ir.Command {
	t.Helper()
	add := &ir.Command{
		Name: "add",
		Options: []*ir.Option{
			{Names: []string{"-h", "--help"}, Kind: ir.OptionHelp},
			{Names: []string{"--force"}},
		},
		Operands: []*ir.Operand{{Name: "path"}},
	}
	remove := &ir.Command{
		Name:     "remove",
		Operands: []*ir.Operand{{Name: "path", Variadic: true}},
	}
	return &ir.Command{
		Name: "prog",
		Options: []*ir.Option{
			{Names: []string{"-v", "--verbose"}},
		},
		Operands: []*ir.Operand{{
			Name: "command",
			Commands: []*ir.Subcommand{
				{Names: []string{"add"}, Cmd: add},
				{Names: []string{"remove", "rm"}, Cmd: remove},
			},
		}},
	}
}

func TestRunSubcommandDispatch(t *testing.T) {
	out := run(t, subSchema(t), "-v", "add", "--force", "p")
	if out.Command != "add" || out.Sub == nil {
		t.Fatalf("outcome: %+v", out)
	}
	if out.Binding("verbose") == nil {
		t.Fatalf("parent binding lost")
	}
	sub := out.Sub
	if sub.Binding("force") == nil {
		t.Fatalf("child option lost")
	}
	wantRaws(t, sub.Binding("path"), "p")
	if leaf := out.Leaf(); leaf != sub {
		t.Fatalf("leaf: %+v", leaf)
	}
}

func TestRunSubcommandAliasResolvesToCanonicalName(t *testing.T) {
	out := run(t, subSchema(t), "rm", "a", "b")
	if out.Command != "remove" {
		t.Fatalf("command: %q", out.Command)
	}
	wantRaws(t, out.Sub.Binding("path"), "a", "b")
}

func TestRunUnknownCommand(t *testing.T) {
	iss := runErr(t, subSchema(t), "-v", "frobnicate")
	if iss.Code != engine.CodeUnknownCommand || iss.Arg != "frobnicate" || iss.Index != 1 {
		t.Fatalf("issue: %+v", iss)
	}

	iss = runErr(t, subSchema(t), "ADD")
	if iss.Code != engine.CodeUnknownCommand {
		t.Fatalf("issue: %+v", iss)
	}
}

func TestRunRequiredSelectorMissing(t *testing.T) {
	iss := runErr(t, subSchema(t), "-v")
	if iss.Code != engine.CodeMissingArgument || iss.Arg != "<command>" {
		t.Fatalf("issue: %+v", iss)
	}
}

func TestRunOptionalSelectorStaysUnset(t *testing.T) {
	cmd := subSchema(t)
	cmd.Operands[0].Optional = true
	out := run(t, cmd, "-v")
	if out.Command != "" || out.Sub != nil {
		t.Fatalf("outcome: %+v", out)
	}
}

func TestRunNestedIssueKeepsArgvIndex(t *testing.T) {
	iss := runErr(t, subSchema(t), "-v", "add", "--bogus")
	if iss.Code != engine.CodeUnknownOption || iss.Arg != "--bogus" || iss.Index != 2 {
		t.Fatalf("issue: %+v", iss)
	}
}

func TestRunNestedHelpSignalPropagates(t *testing.T) {
	out := run(t, subSchema(t), "add", "--help")
	if out.Signal != engine.SignalHelp || out.Command != "add" {
		t.Fatalf("outcome: %+v", out)
	}
	if out.Sub == nil || out.Sub.Signal != engine.SignalHelp {
		t.Fatalf("sub: %+v", out.Sub)
	}
}

func TestRunTerminatorRestartsPerLevel(t *testing.T) {
	// A "--" captured by the selector belongs to the nested command's own
	// option position; it does not leak outward.
	cmd := &ir.Command{
		Name: "prog",
		Operands: []*ir.Operand{{
			Name: "command",
			Commands: []*ir.Subcommand{{
				Names: []string{"run"},
				Cmd: &ir.Command{
					Name:     "run",
					Operands: []*ir.Operand{{Name: "args", Optional: true, Variadic: true}},
				},
			}},
		}},
	}
	out := run(t, cmd, "run", "--", "-x")
	wantRaws(t, out.Sub.Binding("args"), "-x")
}

func TestRunTerminatorBeforeCommandWord(t *testing.T) {
	out := run(t, subSchema(t), "--", "rm", "x")
	if out.Command != "remove" {
		t.Fatalf("command: %q", out.Command)
	}
	wantRaws(t, out.Sub.Binding("path"), "x")
}

func TestRunRepeatedValueOptionKeepsAllValues(t *testing.T) {
	cmd := &ir.Command{Name: "prog", Options: []*ir.Option{
		{Names: []string{"--log"}, TakesValue: true, Placeholder: "level"},
	}}
	out := run(t, cmd, "--log", "a", "--log", "b")
	b := out.Binding("log")
	if b.Count != 2 {
		t.Fatalf("count: %d", b.Count)
	}
	wantRaws(t, b, "a", "b")
}
