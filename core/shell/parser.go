// Package shell turns a line of input into an expression tree.
//
// A line is split into words following the POSIX quoting rules, see
// https://pubs.opengroup.org/onlinepubs/9699919799/utilities/V3_chap02.html
// Words that are exactly "|" or "&" separate word groups; each group is
// classified as a builtin or an external program. The operators are right
// associative, so "a | b | c" is a | (b | c) and "a & b | c" is a & (b | c).
//
// A pipe needs an expression on both sides. A fork needs an expression on
// its left; its right side is optional.
package shell

import (
	"fmt"
)

// Parse parses a single line. Blank lines yield a nil Expr and no error.
func Parse(line string) (Expr, error) {
	tokens, err := Tokenize(line)
	if err != nil {
		return nil, err
	}
	return Build(tokens)
}

// ParseWords parses words that were already split, such as those produced by
// Expr.Words.
func ParseWords(words []string) (Expr, error) {
	tokens, err := SplitWords(words)
	if err != nil {
		return nil, err
	}
	return Build(tokens)
}

// Build reduces tokens into a single expression.
func Build(tokens []Token) (Expr, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	left, ok := tokens[0].(CommandToken)
	if !ok {
		return nil, fmt.Errorf("%w: missing left side of %v", ErrDanglingPipe, tokens[0])
	}
	leaf := &Leaf{Command: left.Command, Argv: left.Argv}
	if len(tokens) == 1 {
		return leaf, nil
	}

	op, ok := tokens[1].(Redirection)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected command after %q", ErrDanglingPipe, left.Argv[0])
	}

	right, err := Build(tokens[2:])
	if err != nil {
		return nil, err
	}

	switch op {
	case RedirPipe:
		if right == nil {
			return nil, fmt.Errorf("%w: missing right side of %v", ErrDanglingPipe, op)
		}
		return &Pipe{Left: leaf, Right: right}, nil
	case RedirFork:
		return &Fork{Left: leaf, Right: right}, nil
	default:
		return nil, fmt.Errorf("%w: unknown operator %v", ErrDanglingPipe, op)
	}
}
