package shell

import (
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		words    []string
		expected Command
	}{
		{[]string{"pwd"}, Pwd{}},
		{[]string{"pwd", "-P"}, External{Program: "pwd", Args: []string{"-P"}}},
		{[]string{"pwd", "extra"}, External{Program: "pwd", Args: []string{"extra"}}},
		{[]string{"echo"}, Echo{}},
		{[]string{"echo", "hello world"}, Echo{Text: "hello world"}},
		{[]string{"echo", "a", "b"}, External{Program: "echo", Args: []string{"a", "b"}}},
		{[]string{"echo", "-n", "a"}, External{Program: "echo", Args: []string{"-n", "a"}}},
		{[]string{"echo", "--", "-n"}, Echo{Text: "-n"}},
		{[]string{"cd", "/tmp"}, Cd{Path: "/tmp"}},
		{[]string{"cd", "~"}, Cd{Path: "~"}},
		{[]string{"cd"}, External{Program: "cd"}},
		{[]string{"exec", "ls", "-la"}, Exec{Program: "ls", Args: []string{"-la"}}},
		{[]string{"exec"}, External{Program: "exec"}},
		{[]string{"kill", "TERM", "42"}, Kill{Signal: syscall.SIGTERM, Pid: 42}},
		{[]string{"kill", "SIGKILL", "42"}, Kill{Signal: syscall.SIGKILL, Pid: 42}},
		{[]string{"kill", "-9", "42"}, Kill{Signal: syscall.SIGKILL, Pid: 42}},
		{[]string{"kill", "TERM", "0"}, Kill{Signal: syscall.SIGTERM, Pid: 0}},
		{[]string{"kill", "9", "-1"}, Kill{Signal: syscall.SIGKILL, Pid: -1}},
		{[]string{"kill", "42"}, External{Program: "kill", Args: []string{"42"}}},
		{[]string{"ps"}, Ps{}},
		{[]string{"ps", "aux"}, External{Program: "ps", Args: []string{"aux"}}},
		{[]string{"exit"}, Exit{}},
		{[]string{"exit", "1"}, External{Program: "exit", Args: []string{"1"}}},
		{[]string{"ls", "-l", "/"}, External{Program: "ls", Args: []string{"-l", "/"}}},
		{[]string{"PWD"}, External{Program: "PWD"}},
	}

	for _, tc := range cases {
		t.Run(Describe(tc.expected), func(t *testing.T) {
			actual, err := Classify(tc.words)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestClassifyKillErrors(t *testing.T) {
	cases := [][]string{
		{"kill", "BOGUS", "1"},
		{"kill", "", "1"},
		{"kill", "TERM", "abc"},
		{"kill", "TERM", "2147483648"},
		{"kill", "TERM", "1.5"},
		{"kill", "999", "1"},
	}

	for _, words := range cases {
		_, err := Classify(words)
		assert.ErrorIs(t, err, ErrInvalidArgument, "%q", words)
	}
}

func TestParseSignal(t *testing.T) {
	cases := map[string]syscall.Signal{
		"9":       syscall.SIGKILL,
		"-9":      syscall.SIGKILL,
		"TERM":    syscall.SIGTERM,
		"term":    syscall.SIGTERM,
		"SIGHUP":  syscall.SIGHUP,
		"-SIGINT": syscall.SIGINT,
		"usr1":    syscall.SIGUSR1,
	}

	for arg, expected := range cases {
		t.Run(arg, func(t *testing.T) {
			actual, err := ParseSignal(arg)
			require.NoError(t, err)
			assert.Equal(t, expected, actual)
		})
	}
}

func TestBuiltins(t *testing.T) {
	var names []string
	for _, b := range Builtins() {
		assert.NotEmpty(t, b.Use)
		assert.NotEmpty(t, b.Short)
		names = append(names, b.Name)
	}

	assert.Equal(t, []string{"pwd", "echo", "cd", "exec", "kill", "ps", "exit"}, names)
}
