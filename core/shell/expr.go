package shell

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Expr is a node of the expression tree built from one line: *Leaf, *Pipe or
// *Fork.
type Expr interface {
	fmt.Stringer

	// Words renders the expression back into words that parse to an equal
	// tree.
	Words() []string

	expr()
}

// Leaf runs a single command.
type Leaf struct {
	Command Command
	Argv    []string
}

// Pipe feeds the output of Left into Right.
type Pipe struct {
	Left  Expr
	Right Expr
}

// Fork runs Left in the background and continues with Right, which may be nil.
type Fork struct {
	Left  Expr
	Right Expr
}

func (*Leaf) expr() {}
func (*Pipe) expr() {}
func (*Fork) expr() {}

func (l *Leaf) Words() []string {
	return append([]string(nil), l.Argv...)
}

func (p *Pipe) Words() []string {
	out := append(p.Left.Words(), OpPipe)
	return append(out, p.Right.Words()...)
}

func (f *Fork) Words() []string {
	out := append(f.Left.Words(), OpFork)
	if f.Right != nil {
		out = append(out, f.Right.Words()...)
	}
	return out
}

func (l *Leaf) String() string {
	return Describe(l.Command)
}

func (p *Pipe) String() string {
	return fmt.Sprintf("Pipe{%s, %s}", p.Left, p.Right)
}

func (f *Fork) String() string {
	right := "None"
	if f.Right != nil {
		right = f.Right.String()
	}
	return fmt.Sprintf("Fork{%s, %s}", f.Left, right)
}

// Describe renders a command for debugging output.
func Describe(cmd Command) string {
	switch c := cmd.(type) {
	case External:
		return fmt.Sprintf("External(%q %q)", c.Program, c.Args)
	case Pwd:
		return "Pwd"
	case Echo:
		return fmt.Sprintf("Echo(%q)", c.Text)
	case Cd:
		return fmt.Sprintf("Cd(%q)", c.Path)
	case Exec:
		return fmt.Sprintf("Exec(%q %q)", c.Program, c.Args)
	case Kill:
		return fmt.Sprintf("Kill(%s %d)", unix.SignalName(c.Signal), c.Pid)
	case Ps:
		return "Ps"
	case Exit:
		return "Exit"
	default:
		return fmt.Sprintf("%#v", cmd)
	}
}
