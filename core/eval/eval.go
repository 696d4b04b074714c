// Package eval runs expression trees built by package shell.
//
// Every stage's standard output is captured to a string which becomes the
// input of the next pipe stage. Background jobs run in separate processes
// watched by a Supervisor.
package eval

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"unicode/utf8"

	"github.com/josephlewis42/toysh/commands"
	"github.com/josephlewis42/toysh/core/shell"
)

// Evaluator evaluates expressions. Out and Jobs must be set; the remaining
// fields have usable zero values.
type Evaluator struct {
	Builtins commands.Runner
	Jobs     *Supervisor
	// Out receives the output printed by exec before the interpreter exits.
	Out *Printer
	// Stderr receives the standard error of programs that succeeded.
	Stderr io.Writer
	// Exit terminates the interpreter, os.Exit if nil.
	Exit func(code int)
}

// Evaluate runs expr with input as the piped-in text and returns the captured
// output. A nil expr does nothing.
func (e *Evaluator) Evaluate(ctx context.Context, expr shell.Expr, input string) (string, error) {
	switch x := expr.(type) {
	case nil:
		return "", nil
	case *shell.Leaf:
		return e.command(ctx, x.Command, input)
	case *shell.Pipe:
		out, err := e.Evaluate(ctx, x.Left, input)
		if err != nil {
			return "", err
		}
		return e.Evaluate(ctx, x.Right, out)
	case *shell.Fork:
		return e.fork(ctx, x, input)
	default:
		return "", fmt.Errorf("unknown expression %T", expr)
	}
}

func (e *Evaluator) command(ctx context.Context, cmd shell.Command, input string) (string, error) {
	switch c := cmd.(type) {
	case shell.External:
		return e.external(ctx, c.Program, c.Args, input)
	case shell.Exec:
		out, err := e.external(ctx, c.Program, c.Args, input)
		if err != nil {
			return "", err
		}
		e.Out.Println(out)
		e.exit(0)
		return "", nil
	case shell.Exit:
		e.exit(0)
		return "", nil
	default:
		return e.Builtins.Run(ctx, cmd, input)
	}
}

func (e *Evaluator) fork(ctx context.Context, f *shell.Fork, input string) (string, error) {
	if e.Jobs == nil {
		return "", fmt.Errorf("%w: background jobs aren't supported here", shell.ErrForkFailure)
	}

	if _, err := e.Jobs.Start(f.Left.Words(), input); err != nil {
		return "", err
	}

	if f.Right == nil {
		return "", nil
	}
	return e.Evaluate(ctx, f.Right, input)
}

// external runs program to completion with input on its standard input.
func (e *Evaluator) external(ctx context.Context, program string, args []string, input string) (string, error) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	cmd := exec.CommandContext(ctx, program, args...)
	cmd.Stdin = strings.NewReader(input)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()

	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		return "", &shell.ExternalError{
			Program: program,
			Stderr:  lossy(stderr.Bytes()),
			Code:    exitErr.ExitCode(),
		}
	case errors.Is(err, exec.ErrNotFound):
		return "", &shell.IOError{Op: program, Err: errors.New("command not found")}
	case err != nil:
		return "", &shell.IOError{Op: program, Err: err}
	}

	if stderr.Len() > 0 && e.Stderr != nil {
		e.Stderr.Write(stderr.Bytes())
	}
	return lossy(stdout.Bytes()), nil
}

func (e *Evaluator) exit(code int) {
	if e.Exit != nil {
		e.Exit(code)
		return
	}
	os.Exit(code)
}

// lossy decodes b as UTF-8. Each maximal invalid subsequence becomes one
// U+FFFD.
func lossy(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			size = invalidPrefix(b)
			sb.WriteRune(utf8.RuneError)
		} else {
			sb.Write(b[:size])
		}
		b = b[size:]
	}
	return sb.String()
}

// invalidPrefix is the length of the longest prefix of b that could still
// start a valid encoding, at least one byte.
func invalidPrefix(b []byte) int {
	n := 1
	for n < len(b) && n < utf8.UTFMax-1 && !utf8.FullRune(b[:n+1]) {
		n++
	}
	return n
}
