package shell

import (
	"fmt"
	"strconv"
	"strings"
	"syscall"

	"github.com/pborman/getopt/v2"
	"golang.org/x/sys/unix"
)

// Command is a single classified word group. The set of implementations is
// closed; the evaluator switches over them.
type Command interface {
	command()
}

// External runs a program that isn't a builtin.
type External struct {
	Program string
	Args    []string
}

// Pwd prints the working directory.
type Pwd struct{}

// Echo outputs Text verbatim.
type Echo struct {
	Text string
}

// Cd changes the working directory of the interpreter.
type Cd struct {
	Path string
}

// Exec runs a program and then terminates the interpreter.
type Exec struct {
	Program string
	Args    []string
}

// Kill delivers Signal to Pid.
type Kill struct {
	Signal syscall.Signal
	Pid    int
}

// Ps lists processes with their elapsed time in milliseconds.
type Ps struct{}

// Exit terminates the interpreter.
type Exit struct{}

func (External) command() {}
func (Pwd) command()      {}
func (Echo) command()     {}
func (Cd) command()       {}
func (Exec) command()     {}
func (Kill) command()     {}
func (Ps) command()       {}
func (Exit) command()     {}

// grammar matches the words following a builtin's name. ok is false when the
// words don't have the builtin's shape.
type grammar func(args []string) (cmd Command, ok bool, err error)

// Builtin describes a builtin grammar.
type Builtin struct {
	Name  string
	Use   string
	Short string

	match grammar
}

var builtins = []Builtin{
	{"pwd", "pwd", "Print the current working directory.", matchPwd},
	{"echo", "echo [STRING]", "Output STRING, ignoring piped input.", matchEcho},
	{"cd", "cd PATH", "Change the working directory; ~ is the home directory.", matchCd},
	{"exec", "exec PROGRAM [ARG]...", "Run PROGRAM, print its output and exit the shell.", matchExec},
	{"kill", "kill SIGNAL PID", "Send SIGNAL (name or number) to process PID.", matchKill},
	{"ps", "ps", "List processes with elapsed time in milliseconds.", matchPs},
	{"exit", "exit", "Exit the shell.", matchExit},
}

// Builtins lists the builtin grammars in the order they're tried.
func Builtins() []Builtin {
	out := make([]Builtin, len(builtins))
	copy(out, builtins)
	return out
}

// Classify maps a non-empty word group to a Command. Groups that don't match
// a builtin grammar become External, so only a builtin whose shape matched
// but whose arguments are invalid can fail.
func Classify(words []string) (Command, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: empty command", ErrDanglingPipe)
	}

	for _, b := range builtins {
		if b.Name != words[0] {
			continue
		}
		cmd, ok, err := b.match(words[1:])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.Name, err)
		}
		if ok {
			return cmd, nil
		}
		break
	}

	return External{Program: words[0], Args: append([]string(nil), words[1:]...)}, nil
}

// operands parses args with an empty option set, so any option is a mismatch.
func operands(args []string) ([]string, bool) {
	opts := getopt.New()
	// Getopt expects the program name in the first position.
	if err := opts.Getopt(append([]string{""}, args...), nil); err != nil {
		return nil, false
	}
	return opts.Args(), true
}

func matchPwd(args []string) (Command, bool, error) {
	if rest, ok := operands(args); !ok || len(rest) != 0 {
		return nil, false, nil
	}
	return Pwd{}, true, nil
}

func matchEcho(args []string) (Command, bool, error) {
	rest, ok := operands(args)
	switch {
	case !ok || len(rest) > 1:
		return nil, false, nil
	case len(rest) == 0:
		return Echo{}, true, nil
	default:
		return Echo{Text: rest[0]}, true, nil
	}
}

func matchCd(args []string) (Command, bool, error) {
	rest, ok := operands(args)
	if !ok || len(rest) != 1 {
		return nil, false, nil
	}
	return Cd{Path: rest[0]}, true, nil
}

func matchExec(args []string) (Command, bool, error) {
	if len(args) == 0 {
		return nil, false, nil
	}
	return Exec{Program: args[0], Args: append([]string(nil), args[1:]...)}, true, nil
}

func matchKill(args []string) (Command, bool, error) {
	if len(args) != 2 {
		return nil, false, nil
	}

	sig, err := ParseSignal(args[0])
	if err != nil {
		return nil, false, err
	}
	// Zero and negative pids address process groups.
	pid, err := strconv.ParseInt(args[1], 10, 32)
	if err != nil {
		return nil, false, fmt.Errorf("%w: invalid pid %q", ErrInvalidArgument, args[1])
	}

	return Kill{Signal: sig, Pid: int(pid)}, true, nil
}

func matchPs(args []string) (Command, bool, error) {
	if rest, ok := operands(args); !ok || len(rest) != 0 {
		return nil, false, nil
	}
	return Ps{}, true, nil
}

func matchExit(args []string) (Command, bool, error) {
	if rest, ok := operands(args); !ok || len(rest) != 0 {
		return nil, false, nil
	}
	return Exit{}, true, nil
}

// ParseSignal accepts a signal number or name, with or without a leading
// dash and SIG prefix, e.g. "9", "-KILL", "term" or "SIGTERM".
func ParseSignal(arg string) (syscall.Signal, error) {
	name := strings.TrimPrefix(arg, "-")
	if name == "" {
		return 0, fmt.Errorf("%w: invalid signal %q", ErrInvalidArgument, arg)
	}

	if num, err := strconv.Atoi(name); err == nil {
		if num <= 0 || unix.SignalName(syscall.Signal(num)) == "" {
			return 0, fmt.Errorf("%w: invalid signal %q", ErrInvalidArgument, arg)
		}
		return syscall.Signal(num), nil
	}

	name = strings.ToUpper(name)
	if !strings.HasPrefix(name, "SIG") {
		name = "SIG" + name
	}
	if sig := unix.SignalNum(name); sig != 0 {
		return sig, nil
	}

	return 0, fmt.Errorf("%w: invalid signal %q", ErrInvalidArgument, arg)
}
