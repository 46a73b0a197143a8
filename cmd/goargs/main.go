// Command goargs parses command-line arguments for programs that cannot link
// Go code, shell scripts first of all. It loads a schema manifest, parses an
// argv slice against it, and prints the bound values as one JSON object:
//
//	eval "$(goargs --schema app.yaml -- "$@")"-style consumption, or jq.
//
// Exit codes: 0 on success and for intercepted --help/--version in the argv,
// 1 for argv parse errors, 2 for schema load or construction defects (and for
// misuse of goargs itself).
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	j "github.com/goccy/go-json"

	goargs "github.com/reoring/goargs"
	"github.com/reoring/goargs/convert"
	"github.com/reoring/goargs/dsl"
	"github.com/reoring/goargs/internal/ir"
	"github.com/reoring/goargs/manifest"
)

const cliVersion = "0.1.0"

var errLine = color.New(color.FgRed)

func cliSchema() *goargs.Schema {
	return dsl.New("goargs", cliVersion).
		Option("-s", "--schema").Value("file", nil).Help("schema manifest to load (.json, .yaml or .toml)").
		Flag("-p", "--print-help").Help("print the loaded schema's help text and exit").
		Flag("-c", "--color").Help("color the help output").
		Option("-w", "--width").Value("columns", convert.Int()).Help("wrap help text at the given width").
		Flag("-h", "--help").Help("print help message").
		Flag("--version").
		Operand("argv").Optional().Variadic().Help("arguments for the loaded schema; put them after --").
		MustBuild()
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cli := cliSchema()
	res, err := goargs.Parse(cli, args)
	if h, ok := goargs.AsHelp(err); ok {
		fmt.Print(h.Text)
		return 0
	}
	if v, ok := goargs.AsVersion(err); ok {
		fmt.Println(v.Text)
		return 0
	}
	if err != nil {
		errorf("error: %s", err)
		return 2
	}

	if !res.Seen("schema") {
		errorf("error: --schema is required (try 'goargs --help')")
		return 2
	}
	s, err := manifest.File(res.String("schema"))
	if err != nil {
		if iss, ok := goargs.AsIssues(err); ok {
			for _, i := range iss {
				errorf("schema: %s", i.Message)
			}
		} else {
			errorf("error: %s", err)
		}
		return 2
	}

	if res.Bool("print-help") {
		var opts []goargs.HelpOption
		if res.Bool("color") {
			opts = append(opts, goargs.WithColor())
		}
		if w, ok := goargs.Get[int](res, "width"); ok {
			opts = append(opts, goargs.WithWidth(w))
		} else if w := goargs.TerminalWidth(); w > 0 {
			opts = append(opts, goargs.WithWidth(w))
		}
		fmt.Print(s.Help(s.Name(), opts...))
		return 0
	}

	target, err := goargs.Parse(s, res.Strings("argv"))
	if h, ok := goargs.AsHelp(err); ok {
		fmt.Print(h.Text)
		return 0
	}
	if v, ok := goargs.AsVersion(err); ok {
		fmt.Println(v.Text)
		return 0
	}
	if err != nil {
		if iss, ok := goargs.AsIssues(err); ok {
			for _, i := range iss {
				errorf("error: %s", i.Message)
			}
		} else {
			errorf("error: %s", err)
		}
		return 1
	}

	out, err := j.MarshalIndent(encode(s.IR(), target), "", "  ")
	if err != nil {
		errorf("error: %s", err)
		return 1
	}
	fmt.Println(string(out))
	return 0
}

// encode projects one parse level into a JSON-ready map: flags bind their
// occurrence count, value options and operands their converted value(s), and
// a matched subcommand nests recursively under "sub".
func encode(cmd *ir.Command, res *goargs.Result) map[string]any {
	out := map[string]any{}
	bindings := map[string]any{}
	for _, o := range cmd.Options {
		key := o.BindKey()
		if !res.Seen(key) {
			continue
		}
		switch {
		case !o.TakesValue:
			bindings[key] = res.Count(key)
		case o.Variadic:
			bindings[key] = res.Values(key)
		default:
			v, _ := res.Value(key)
			bindings[key] = v
		}
	}
	for _, p := range cmd.Operands {
		if p.IsCommand() || !res.Seen(p.Name) {
			continue
		}
		if p.Variadic {
			bindings[p.Name] = res.Values(p.Name)
		} else {
			v, _ := res.Value(p.Name)
			bindings[p.Name] = v
		}
	}
	if len(bindings) > 0 {
		out["bindings"] = bindings
	}
	if name := res.Command(); name != "" {
		out["command"] = name
		if sub := res.Sub(); sub != nil {
			out["sub"] = encode(subIR(cmd, name), sub)
		}
	}
	return out
}

func subIR(cmd *ir.Command, name string) *ir.Command {
	sel := cmd.Selector()
	if sel == nil {
		return nil
	}
	for _, sc := range sel.Commands {
		if sc.Names[0] == name {
			return sc.Cmd
		}
	}
	return nil
}

func errorf(format string, a ...any) {
	errLine.Fprintf(os.Stderr, format+"\n", a...)
}
