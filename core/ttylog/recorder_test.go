package ttylog

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndReplay(t *testing.T) {
	cast := &bytes.Buffer{}
	recorder := NewRecorder(NewAsciicastLogSink(cast))

	start := time.Unix(1600000000, 0)
	tick := start
	recorder.now = func() time.Time {
		tick = tick.Add(250 * time.Millisecond)
		return tick
	}

	terminal := &bytes.Buffer{}
	stdout := recorder.Stdout(terminal)
	stdin := recorder.Stdin(io.NopCloser(strings.NewReader("pwd\n")))

	_, err := io.WriteString(stdout, "toysh> ")
	require.NoError(t, err)
	line, err := io.ReadAll(stdin)
	require.NoError(t, err)
	assert.Equal(t, "pwd\n", string(line))
	_, err = io.WriteString(stdout, "/tmp\n")
	require.NoError(t, err)

	assert.Equal(t, "toysh> /tmp\n", terminal.String())

	header, err := cast.ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, header, `"version":2`)
	// The read that hit EOF consumed a tick without recording anything.
	assert.Equal(t, strings.Join([]string{
		`[0,"o","toysh\u003e "]`,
		`[0.25,"i","pwd\n"]`,
		`[0.75,"o","/tmp\n"]`,
	}, "\n")+"\n", cast.String())

	var events []*Event
	replayed := &bytes.Buffer{}
	output := NewClientOutput(replayed)
	require.NoError(t, Replay(NewAsciicastLogSource(bytes.NewReader(append([]byte(header), cast.Bytes()...))), func(e *Event) error {
		events = append(events, e)
		return output(e)
	}))

	require.Len(t, events, 3)
	assert.Equal(t, FDStdout, events[0].Fd)
	assert.Equal(t, FDStdin, events[1].Fd)
	assert.Equal(t, "toysh> /tmp\n", replayed.String())
}

func TestRealTimePlaybackUnlimited(t *testing.T) {
	var got []int64
	sink := NewRealTimePlayback(0, func(e *Event) error {
		got = append(got, e.TimestampMicros)
		return nil
	})

	for _, ts := range []int64{10, 5e6, 9e6} {
		require.NoError(t, sink(&Event{TimestampMicros: ts}))
	}
	assert.Equal(t, []int64{10, 5e6, 9e6}, got)
}
