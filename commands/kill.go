package commands

import (
	"syscall"

	"github.com/josephlewis42/toysh/core/shell"
	"golang.org/x/sys/unix"
)

// Kill sends sig to the process pid.
func Kill(sig syscall.Signal, pid int) error {
	if err := unix.Kill(pid, sig); err != nil {
		return &shell.IOError{Op: "kill", Err: err}
	}
	return nil
}
