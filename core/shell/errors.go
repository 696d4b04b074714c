package shell

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedInput is returned when a line can't be split into words.
	ErrMalformedInput = errors.New("command not found")
	// ErrInvalidArgument is returned when a builtin's arguments don't parse.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDanglingPipe is returned when an operator is missing an operand.
	ErrDanglingPipe = errors.New("dangling operator")
	// ErrForkFailure is returned when a background job couldn't be started.
	ErrForkFailure = errors.New("fork failed")
	// ErrExternalFailure is matched by *ExternalError.
	ErrExternalFailure = errors.New("external command failed")
	// ErrIOFailure is matched by *IOError.
	ErrIOFailure = errors.New("i/o failure")
	// ErrPathNotFound is matched by *PathNotFoundError.
	ErrPathNotFound = errors.New("no such file or directory")
)

// ExternalError is returned when a spawned program exits non-zero.
type ExternalError struct {
	Program string
	// Stderr holds everything the program wrote to standard error.
	Stderr string
	Code   int
}

func (e *ExternalError) Error() string {
	if msg := strings.TrimRight(e.Stderr, "\n"); msg != "" {
		return msg
	}
	return fmt.Sprintf("%s: exit status %d", e.Program, e.Code)
}

func (e *ExternalError) Is(target error) bool {
	return target == ErrExternalFailure
}

// IOError wraps an operating system failure from a builtin or a spawn.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func (e *IOError) Is(target error) bool {
	return target == ErrIOFailure
}

// PathNotFoundError is returned by cd when the target doesn't exist.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("%s: no such file or directory", e.Path)
}

func (e *PathNotFoundError) Is(target error) bool {
	return target == ErrPathNotFound
}
