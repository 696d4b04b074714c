// Package commands implements the shell builtins as plain functions of their
// arguments and piped-in text.
package commands

import (
	"context"
	"fmt"

	"github.com/josephlewis42/toysh/core/shell"
)

const (
	// DefaultPsPath is the process listing utility used when none is configured.
	DefaultPsPath = "ps"
	// DefaultHomeEnv names the variable cd resolves ~ against.
	DefaultHomeEnv = "HOME"
)

// Runner executes builtins. The zero value is ready to use.
type Runner struct {
	// PsPath is the process listing utility, DefaultPsPath if empty.
	PsPath string
	// HomeEnv is the home directory variable, DefaultHomeEnv if empty.
	HomeEnv string
}

// Run executes the builtin cmd with the given piped-in text.
func (r *Runner) Run(ctx context.Context, cmd shell.Command, input string) (string, error) {
	switch c := cmd.(type) {
	case shell.Pwd:
		return Pwd()
	case shell.Echo:
		return Echo(c.Text, input), nil
	case shell.Cd:
		return "", Cd(c.Path, r.homeEnv())
	case shell.Kill:
		return "", Kill(c.Signal, c.Pid)
	case shell.Ps:
		return Ps(ctx, r.psPath())
	default:
		return "", fmt.Errorf("%s is not a builtin", shell.Describe(cmd))
	}
}

func (r *Runner) psPath() string {
	if r.PsPath == "" {
		return DefaultPsPath
	}
	return r.PsPath
}

func (r *Runner) homeEnv() string {
	if r.HomeEnv == "" {
		return DefaultHomeEnv
	}
	return r.HomeEnv
}
