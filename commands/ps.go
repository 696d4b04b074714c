package commands

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/josephlewis42/toysh/core/shell"
)

// psArgs asks for one process per line: pid, command name, elapsed time.
var psArgs = []string{"-o", "pid=", "-o", "comm=", "-o", "etime="}

// Ps lists processes using the utility at psPath with the elapsed time of
// each process converted to milliseconds.
func Ps(ctx context.Context, psPath string) (string, error) {
	stdout := &bytes.Buffer{}
	cmd := exec.CommandContext(ctx, psPath, psArgs...)
	cmd.Stdout = stdout

	if err := cmd.Run(); err != nil {
		// ps exits non-zero when it lists nothing, the output is still usable.
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", &shell.IOError{Op: "ps", Err: err}
		}
	}

	return ConvertElapsed(stdout.String()), nil
}

// ConvertElapsed replaces the last field of every line, an elapsed time in
// the form [[dd-]hh:]mm:ss, with the same duration in milliseconds. Lines
// without a valid elapsed time are dropped.
func ConvertElapsed(listing string) string {
	out := &strings.Builder{}

	scanner := bufio.NewScanner(strings.NewReader(listing))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t")
		pos := strings.LastIndexAny(line, " \t") + 1
		if pos == 0 {
			continue
		}

		millis, err := ElapsedMillis(line[pos:])
		if err != nil {
			continue
		}

		out.WriteString(line[:pos])
		out.WriteString(strconv.FormatInt(millis, 10))
		out.WriteByte('\n')
	}

	return out.String()
}

// ElapsedMillis parses a ps elapsed time, [[dd-]hh:]mm:ss, into milliseconds.
func ElapsedMillis(etime string) (int64, error) {
	var days int64
	rest := etime
	hasDays := false
	if i := strings.IndexByte(etime, '-'); i >= 0 {
		d, err := parseUnit(etime[:i])
		if err != nil {
			return 0, fmt.Errorf("bad elapsed time %q: %w", etime, err)
		}
		days, hasDays = d, true
		rest = etime[i+1:]
	}

	units := strings.Split(rest, ":")
	if len(units) < 2 || len(units) > 3 || (hasDays && len(units) != 3) {
		return 0, fmt.Errorf("bad elapsed time %q", etime)
	}

	var seconds int64
	for _, unit := range units {
		v, err := parseUnit(unit)
		if err != nil {
			return 0, fmt.Errorf("bad elapsed time %q: %w", etime, err)
		}
		seconds = seconds*60 + v
	}
	seconds += days * 24 * 60 * 60

	return seconds * 1000, nil
}

func parseUnit(s string) (int64, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.ParseInt(s, 10, 64)
}
