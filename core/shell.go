package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/toysh/commands"
	"github.com/josephlewis42/toysh/core/config"
	"github.com/josephlewis42/toysh/core/eval"
	"github.com/josephlewis42/toysh/core/logger"
	"github.com/josephlewis42/toysh/core/shell"
)

// Shell is the front end: it reads lines, evaluates them and prints their
// output or the reason they failed.
type Shell struct {
	Evaluator *eval.Evaluator
	Log       *logger.SessionLogger
	Readline  *readline.Instance

	toClose listCloser
}

// Terminal is where an interactive shell reads and writes.
type Terminal struct {
	Stdin  io.ReadCloser
	Stdout io.Writer
	Stderr io.Writer
}

// NewEvaluator creates an evaluator for the configuration printing through
// out. Background jobs are started with launch.
func NewEvaluator(cfg *config.Configuration, out *eval.Printer, stderr io.Writer, launch eval.Launcher, sessionLog *logger.SessionLogger) *eval.Evaluator {
	return &eval.Evaluator{
		Builtins: commands.Runner{
			PsPath:  cfg.PsPath,
			HomeEnv: cfg.HomeEnv,
		},
		Jobs: &eval.Supervisor{
			Launch: launch,
			Out:    out,
			Stderr: stderr,
			Log:    sessionLog,
		},
		Out:    out,
		Stderr: stderr,
	}
}

// NewShell creates a shell without line editing, used to run single lines.
func NewShell(e *eval.Evaluator, sessionLog *logger.SessionLogger) *Shell {
	return &Shell{
		Evaluator: e,
		Log:       sessionLog,
	}
}

// NewInteractiveShell creates a shell that reads lines from the terminal
// with the configured prompt and history.
func NewInteractiveShell(cfg *config.Configuration, e *eval.Evaluator, sessionLog *logger.SessionLogger, term Terminal) (*Shell, error) {
	rlConfig := &readline.Config{
		Prompt:      cfg.Prompt,
		HistoryFile: cfg.HistoryPath(),
		Stdin:       readline.NewCancelableStdin(term.Stdin),
		Stdout:      term.Stdout,
		Stderr:      term.Stderr,
	}

	if err := rlConfig.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(rlConfig)
	if err != nil {
		return nil, err
	}

	// Asynchronous job output redraws the prompt.
	e.Out.SetOutput(rl.Stdout())

	s := NewShell(e, sessionLog)
	s.Readline = rl
	s.toClose = append(s.toClose, rl)
	return s, nil
}

// Run reads and evaluates lines until the input is closed.
func (s *Shell) Run(ctx context.Context) {
	for {
		line, err := s.Readline.Readline()

		switch {
		case err == io.EOF:
			return // Input closed, quit.

		case err == readline.ErrInterrupt:
			continue

		case err != nil:
			log.Printf("Error readline: %v", err)
			continue

		case strings.TrimSpace(line) == "":
			continue // empty line

		default:
			_ = s.RunLine(ctx, line)
		}
	}
}

// RunLine evaluates a single line. Its output is printed followed by a
// newline, a failure is printed as an error and returned.
func (s *Shell) RunLine(ctx context.Context, line string) error {
	s.Log.Record(&logger.Line{Text: line})

	expr, err := shell.Parse(line)
	if err != nil {
		if !errors.Is(err, shell.ErrMalformedInput) {
			err = fmt.Errorf("%w: %w", shell.ErrMalformedInput, err)
		}
		s.report(line, err)
		return err
	}

	if expr == nil {
		return nil
	}

	out, err := s.Evaluator.Evaluate(ctx, expr, "")
	if err != nil {
		s.report(line, err)
		return err
	}

	s.Evaluator.Out.Println(out)
	return nil
}

// RunOnce evaluates line and waits for the background jobs it started.
func (s *Shell) RunOnce(ctx context.Context, line string) error {
	err := s.RunLine(ctx, line)
	s.Wait()
	return err
}

// Wait blocks until every background job has been reported done.
func (s *Shell) Wait() {
	if s.Evaluator.Jobs != nil {
		s.Evaluator.Jobs.Wait()
	}
}

func (s *Shell) report(line string, err error) {
	s.Evaluator.Out.Error(err)
	s.Log.Record(&logger.Error{Line: line, Message: err.Error()})
}

// OnClose registers c to be closed with the shell.
func (s *Shell) OnClose(c io.Closer) {
	s.toClose = append(s.toClose, c)
}

func (s *Shell) Close() error {
	return s.toClose.Close()
}

type listCloser []io.Closer

func (lc listCloser) Close() error {
	var lastErr error
	for _, v := range lc {
		if err := v.Close(); err != nil {
			lastErr = err
		}
	}

	return lastErr
}
