package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/josephlewis42/toysh/core/shell"
)

// Cd changes the working directory of the whole process. A path of exactly
// "~" is replaced by the value of the homeEnv variable.
func Cd(path, homeEnv string) error {
	target := path
	if path == "~" {
		home, ok := os.LookupEnv(homeEnv)
		if !ok || home == "" {
			return &shell.IOError{Op: "cd", Err: fmt.Errorf("$%s not set", homeEnv)}
		}
		target = home
	}

	if err := os.Chdir(target); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &shell.PathNotFoundError{Path: target}
		}
		return &shell.IOError{Op: "cd", Err: err}
	}
	return nil
}
