package goargs

import (
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/reoring/goargs/internal/ir"
)

// HelpOption customizes help rendering. The zero configuration reproduces the
// classic plain format byte for byte; options opt into color and width-aware
// wrapping.
type HelpOption func(*helpConfig)

type helpConfig struct {
	color bool
	width int
}

// WithColor tints the usage and section headings.
func WithColor() HelpOption {
	return func(c *helpConfig) { c.color = true }
}

// WithWidth soft-wraps the help column so lines stay within w columns.
// w <= 0 disables wrapping.
func WithWidth(w int) HelpOption {
	return func(c *helpConfig) { c.width = w }
}

// TerminalWidth returns the width of the terminal on stdout, or 0 when stdout
// is not a terminal.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return w
}

// Help renders the help text for the schema. bin is the program name shown on
// the usage line; for a nested command pass the chain, e.g. "prog remove".
func (s *Schema) Help(bin string, opts ...HelpOption) string {
	return renderHelp(s.cmd, bin, opts...)
}

// VersionText renders the version line, "<name> <version>".
func (s *Schema) VersionText() string {
	return s.cmd.Name + " " + s.cmd.Version
}

type helpEntry struct {
	usage string
	help  string
}

// renderHelp synthesizes the full help text: a usage line, a blank line, then
// options/arguments/commands sections. Options and subcommands are always
// listed; operands appear only when they carry help text. Entries with help
// text are padded to one global column across all sections.
func renderHelp(cmd *ir.Command, bin string, opts ...HelpOption) string {
	cfg := helpConfig{}
	for _, o := range opts {
		o(&cfg)
	}
	heading := func(s string) string {
		if cfg.color {
			return color.New(color.Bold).Sprint(s)
		}
		return s
	}

	var optEntries, argEntries, cmdEntries []helpEntry
	for _, o := range cmd.Options {
		optEntries = append(optEntries, helpEntry{o.Usage(), o.Help})
	}
	for _, p := range cmd.Operands {
		if p.Help != "" {
			argEntries = append(argEntries, helpEntry{p.Usage(), p.Help})
		}
		for _, sc := range p.Commands {
			cmdEntries = append(cmdEntries, helpEntry{sc.Usage(), sc.Help})
		}
	}

	// One pad width across every listed entry, with or without help text.
	// Entries without help render unpadded but still widen the column.
	width := 0
	for _, es := range [][]helpEntry{optEntries, argEntries, cmdEntries} {
		for _, e := range es {
			if len(e.usage) > width {
				width = len(e.usage)
			}
		}
	}

	b := &strings.Builder{}
	b.WriteString(heading("usage:"))
	b.WriteString(" ")
	b.WriteString(bin)
	if len(cmd.Options) > 0 {
		b.WriteString(" [options]")
	}
	for _, p := range cmd.Operands {
		b.WriteString(" ")
		b.WriteString(p.Usage())
		if p.IsCommand() {
			b.WriteString(" [...]")
		}
	}
	b.WriteString("\n\n")

	writeSection(b, heading("options:"), optEntries, width, cfg.width)
	writeSection(b, heading("arguments:"), argEntries, width, cfg.width)
	writeSection(b, heading("commands:"), cmdEntries, width, cfg.width)
	return b.String()
}

func writeSection(b *strings.Builder, title string, entries []helpEntry, width, wrap int) {
	if len(entries) == 0 {
		return
	}
	b.WriteString(title)
	b.WriteString("\n")
	for _, e := range entries {
		b.WriteString("   ")
		if e.help == "" {
			b.WriteString(e.usage)
			b.WriteString("\n")
			continue
		}
		b.WriteString(e.usage)
		b.WriteString(strings.Repeat(" ", width-len(e.usage)+5))
		writeHelpText(b, e.help, 3+width+5, wrap)
	}
	b.WriteString("\n")
}

// writeHelpText emits the help column, soft-wrapping on spaces when a wrap
// width is set and leaves room for at least a narrow column.
func writeHelpText(b *strings.Builder, text string, indent, wrap int) {
	avail := wrap - indent
	if wrap <= 0 || avail < 10 || len(text) <= avail {
		b.WriteString(text)
		b.WriteString("\n")
		return
	}
	pad := strings.Repeat(" ", indent)
	line := ""
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= avail:
			line += " " + word
		default:
			b.WriteString(line)
			b.WriteString("\n")
			b.WriteString(pad)
			line = word
		}
	}
	b.WriteString(line)
	b.WriteString("\n")
}
