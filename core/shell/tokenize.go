package shell

import (
	"fmt"

	"github.com/anmitsu/go-shlex"
)

// Operator words recognized between command word groups.
const (
	OpPipe = "|"
	OpFork = "&"
)

// Token is either a CommandToken or a Redirection, in source order.
type Token interface {
	token()
}

// CommandToken is a classified word group.
type CommandToken struct {
	Command Command
	// Argv holds the words the command was classified from.
	Argv []string
}

// Redirection is an operator separating two word groups.
type Redirection int

const (
	RedirPipe Redirection = iota
	RedirFork
)

func (CommandToken) token() {}
func (Redirection) token()  {}

func (r Redirection) String() string {
	switch r {
	case RedirPipe:
		return OpPipe
	case RedirFork:
		return OpFork
	default:
		return fmt.Sprintf("redirection(%d)", int(r))
	}
}

// Tokenize splits line with POSIX shell quoting rules and groups the words
// into commands separated by pipe and fork operators.
func Tokenize(line string) ([]Token, error) {
	words, err := shlex.Split(line, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return SplitWords(words)
}

// SplitWords groups already split words into tokens. A word that is exactly
// "|" or "&" always ends the current group, even if it was quoted.
func SplitWords(words []string) ([]Token, error) {
	var tokens []Token
	var group []string

	flush := func() error {
		if len(group) == 0 {
			return nil
		}
		cmd, err := Classify(group)
		if err != nil {
			return err
		}
		tokens = append(tokens, CommandToken{Command: cmd, Argv: group})
		group = nil
		return nil
	}

	for _, word := range words {
		var redir Redirection
		switch word {
		case OpPipe:
			redir = RedirPipe
		case OpFork:
			redir = RedirFork
		default:
			group = append(group, word)
			continue
		}

		if err := flush(); err != nil {
			return nil, err
		}
		tokens = append(tokens, redir)
	}

	if err := flush(); err != nil {
		return nil, err
	}
	return tokens, nil
}
