package goargs

import (
	"github.com/reoring/goargs/internal/engine"
	"github.com/reoring/goargs/internal/ir"
)

// Result holds everything a successful parse matched, keyed by each
// argument's canonical name: the first long option name without dashes (else
// the short without its dash), or the operand name. Value-taking options and
// operands bind ordered values; flags bind occurrence counts. When a
// subcommand matched, the nested Result hangs off Sub.
type Result struct {
	cmd *ir.Command
	out *engine.Outcome
}

// Seen reports whether the key was supplied at all.
func (r *Result) Seen(key string) bool {
	b := r.out.Binding(key)
	return b != nil && b.Count > 0
}

// Bool reports whether a flag was supplied. It is Seen under a name that
// reads naturally at call sites.
func (r *Result) Bool(key string) bool { return r.Seen(key) }

// Count returns the number of occurrences, e.g. 3 for "-vvv".
func (r *Result) Count(key string) int {
	b := r.out.Binding(key)
	if b == nil {
		return 0
	}
	return b.Count
}

// Used returns the name the user actually typed for an option ("-f" vs
// "--force"), or "" when the key is unset.
func (r *Result) Used(key string) string {
	b := r.out.Binding(key)
	if b == nil {
		return ""
	}
	return b.Used
}

// String returns the raw text of the key's last value; single-cardinality
// repeats resolve last-wins. "" when unset.
func (r *Result) String(key string) string {
	b := r.out.Binding(key)
	if b == nil || len(b.Values) == 0 {
		return ""
	}
	return b.Values[len(b.Values)-1].Raw
}

// Strings returns the raw texts of all values bound to the key, in input
// order. Nil when unset.
func (r *Result) Strings(key string) []string {
	b := r.out.Binding(key)
	if b == nil || len(b.Values) == 0 {
		return nil
	}
	out := make([]string, len(b.Values))
	for i, v := range b.Values {
		out[i] = v.Raw
	}
	return out
}

// Value returns the converted form of the key's last value.
func (r *Result) Value(key string) (any, bool) {
	b := r.out.Binding(key)
	if b == nil || len(b.Values) == 0 {
		return nil, false
	}
	return b.Values[len(b.Values)-1].Converted, true
}

// Values returns the converted forms of all values bound to the key.
func (r *Result) Values(key string) []any {
	b := r.out.Binding(key)
	if b == nil || len(b.Values) == 0 {
		return nil
	}
	out := make([]any, len(b.Values))
	for i, v := range b.Values {
		out[i] = v.Converted
	}
	return out
}

// Command returns the canonical name of the matched subcommand, or "" when
// none matched (no selector, or an optional selector left unset).
func (r *Result) Command() string { return r.out.Command }

// Sub returns the nested Result for the matched subcommand, or nil.
func (r *Result) Sub() *Result {
	if r.out.Sub == nil {
		return nil
	}
	return &Result{cmd: subCommandIR(r.cmd, r.out.Command), out: r.out.Sub}
}

// subCommandIR resolves the nested command schema for a matched name.
func subCommandIR(cmd *ir.Command, name string) *ir.Command {
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
