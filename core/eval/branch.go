package eval

import (
	"context"
	"fmt"
	"io"

	"github.com/josephlewis42/toysh/core/shell"
)

// RunBranch evaluates a background branch in the current process: words are
// parsed, evaluated with everything read from stdin as input, and the output
// is printed to stdout. Failures print nothing. The returned exit code is
// always 0.
func RunBranch(ctx context.Context, e *Evaluator, words []string, stdin io.Reader, stdout io.Writer) int {
	var input []byte
	if stdin != nil {
		input, _ = io.ReadAll(stdin)
	}

	expr, err := shell.ParseWords(words)
	if err != nil {
		return 0
	}

	out, err := e.Evaluate(ctx, expr, string(input))
	if err != nil {
		return 0
	}

	fmt.Fprintln(stdout, out)
	return 0
}
