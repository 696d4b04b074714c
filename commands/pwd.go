package commands

import (
	"os"

	"github.com/josephlewis42/toysh/core/shell"
)

// Pwd returns the name of the current working directory.
func Pwd() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", &shell.IOError{Op: "pwd", Err: err}
	}
	return wd, nil
}
