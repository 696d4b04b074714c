package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/josephlewis42/toysh/core/logger"
	"github.com/josephlewis42/toysh/core/ttylog"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

var (
	sessionFilter string
	idleTimeLimit time.Duration
)

var logsCmd = &cobra.Command{
	Use:     "logs",
	Aliases: []string{"log"},
	Short:   "Print the event log of lines, background jobs and errors.",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		return readEventLog(func(le *logger.LogEntry) {
			fmt.Fprintln(cmd.OutOrStdout(), logger.Format(le))
		})
	},
}

var reportCommand = &cobra.Command{
	Use:   "report",
	Short: "Show a report of events.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		var report logger.Report
		if err := readEventLog(report.Update); err != nil {
			return err
		}

		out, err := yaml.Marshal(report)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(out))

		return nil
	},
}

// playCommand replays a session transcript
var playCommand = &cobra.Command{
	Use:   "play TRANSCRIPT.cast",
	Short: "Replay a recorded interactive session in the terminal.",
	Long:  `Plays a recorded interactive session back to the current terminal.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		fd, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer fd.Close()

		sink := ttylog.NewClientOutput(cmd.OutOrStdout())
		sink = ttylog.NewRealTimePlayback(idleTimeLimit, sink)
		return ttylog.Replay(ttylog.NewAsciicastLogSource(fd), sink)
	},
}

// catCommand prints a session transcript
var catCommand = &cobra.Command{
	Use:   "cat TRANSCRIPT.cast",
	Short: "Print full output of a recorded session to a terminal.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		fd, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer fd.Close()

		return ttylog.Replay(ttylog.NewAsciicastLogSource(fd), ttylog.NewClientOutput(cmd.OutOrStdout()))
	},
}

// readEventLog calls handler for each entry of the configured event log
// that passes the session filter.
func readEventLog(handler func(le *logger.LogEntry)) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.LogPath == "" {
		return fmt.Errorf("the event log is disabled in %s", cfgPath)
	}

	fd, err := cfg.ReadEventLog()
	if err != nil {
		return err
	}
	defer fd.Close()

	return filterEvents(fd, sessionFilter, handler)
}

func filterEvents(r io.Reader, session string, handler func(le *logger.LogEntry)) error {
	return logger.ReadJSONLinesLog(r, func(le *logger.LogEntry) {
		if session != "" && le.SessionID != session {
			return
		}
		handler(le)
	})
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.AddCommand(reportCommand)
	logsCmd.AddCommand(playCommand)
	logsCmd.AddCommand(catCommand)

	for _, cmd := range []*cobra.Command{logsCmd, reportCommand} {
		cmd.Flags().StringVar(&sessionFilter, "session", "", "Only show events from the given session ID.")
	}

	// cat doesn't allow idle time
	playCommand.Flags().DurationVarP(&idleTimeLimit, "idle-time-limit", "i", 3*time.Second, "Maximum time output can be idle. (e.g. 3s, 2m, 100ms)")
}
