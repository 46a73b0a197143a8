package engine

import (
	"strings"
	"unicode/utf8"
)

// Token is a lexed fragment of the command line: an option name exactly as
// the user typed it, or a value, together with the argv index it came from.
type Token struct {
	Text  string
	Index int
}

type lexState int

const (
	// stateAny means the next token comes from the next unread argument.
	stateAny lexState = iota
	// stateShort means a short-option cluster is partially consumed; carry
	// holds the unread remainder with a dash re-attached.
	stateShort
	// stateValue means an attached "=value" is pending and must be claimed
	// by NextValue before any further option can be read.
	stateValue
	// stateDone means "--" was consumed; everything left is positional.
	stateDone
)

// Lexer splits command-line arguments into options and values on demand.
// Interpretation is driven by the caller: whether a fragment after an option
// is its value or the next token depends on the schema, so the lexer exposes
// a pull API and never looks ahead on its own.
type Lexer struct {
	args  []string
	pos   int
	base  int
	state lexState
	carry string // unread cluster remainder, re-dashed, e.g. "-yz"
	value string // pending attached value
	vopt  string // option the pending value was attached to
	vidx  int    // argv index of the token holding carry or value
}

// NewLexer wraps args for lexing. base is the argv index of args[0] in the
// original command line; all indexes the lexer reports are base-relative, so
// nested parses can point diagnostics at the user's actual input.
func NewLexer(args []string, base int) *Lexer {
	return &Lexer{args: args, base: base}
}

// NextOption returns the next option name as typed, or (nil, nil) once the
// option position is exhausted: on the first argument that does not look
// like an option, on a lone "-", or after consuming a "--" terminator. Only
// the terminator is consumed; an ordinary non-option stays unread for Rest.
// Calling NextOption while an attached value is still pending is an error.
func (l *Lexer) NextOption() (*Token, *Issue) {
	switch l.state {
	case stateValue:
		return nil, &Issue{Code: CodeUnexpectedValue, Arg: l.vopt, Value: l.value, Index: l.vidx}
	case stateShort:
		name, rest := splitShort(l.carry)
		l.splitCluster(name, rest)
		return &Token{Text: name, Index: l.vidx}, nil
	case stateDone:
		return nil, nil
	}

	if l.pos >= len(l.args) {
		return nil, nil
	}
	arg := l.args[l.pos]
	if arg == "--" {
		l.pos++
		l.state = stateDone
		return nil, nil
	}
	if arg == "-" || !strings.HasPrefix(arg, "-") {
		return nil, nil
	}

	idx := l.base + l.pos
	l.pos++
	l.vidx = idx
	if strings.HasPrefix(arg, "--") {
		if i := strings.IndexByte(arg, '='); i >= 0 {
			name := arg[:i]
			l.state = stateValue
			l.value = arg[i+1:]
			l.vopt = name
			return &Token{Text: name, Index: idx}, nil
		}
		return &Token{Text: arg, Index: idx}, nil
	}

	name, rest := splitShort(arg)
	l.splitCluster(name, rest)
	return &Token{Text: name, Index: idx}, nil
}

// splitShort cuts the first option character off a dash-prefixed argument,
// keeping multi-byte characters whole.
func splitShort(arg string) (name, rest string) {
	_, n := utf8.DecodeRuneInString(arg[1:])
	return arg[:1+n], arg[1+n:]
}

// splitCluster stores what follows a short option within its argument: "" when
// the cluster is spent, an attached value after "=", or further short options
// which are carried with a fresh dash so they lex like a standalone argument.
func (l *Lexer) splitCluster(name, rest string) {
	switch {
	case rest == "":
		l.state = stateAny
	case rest[0] == '=':
		l.state = stateValue
		l.value = rest[1:]
		l.vopt = name
	default:
		l.state = stateShort
		l.carry = "-" + rest
	}
}

// NextValue claims the value for the option just returned by NextOption. An
// attached "=value" or cluster remainder is always a value; a separate
// argument counts only if it could not be mistaken for an option, i.e. it is
// "-" or does not start with "-". Empty values are legal. ok is false when no
// value is available.
func (l *Lexer) NextValue() (*Token, bool) {
	switch l.state {
	case stateValue:
		v := l.value
		l.state = stateAny
		return &Token{Text: v, Index: l.vidx}, true
	case stateShort:
		v := l.carry[1:]
		l.state = stateAny
		return &Token{Text: v, Index: l.vidx}, true
	case stateDone:
		return nil, false
	}
	if l.pos >= len(l.args) {
		return nil, false
	}
	arg := l.args[l.pos]
	if arg != "-" && strings.HasPrefix(arg, "-") {
		return nil, false
	}
	idx := l.base + l.pos
	l.pos++
	return &Token{Text: arg, Index: idx}, true
}

// Rest returns the unread arguments and the argv index of the first one.
// Valid once NextOption has reported the end of the option position.
func (l *Lexer) Rest() ([]string, int) {
	return l.args[l.pos:], l.base + l.pos
}
