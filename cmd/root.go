package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/josephlewis42/toysh/core"
	"github.com/josephlewis42/toysh/core/config"
	"github.com/josephlewis42/toysh/core/eval"
	"github.com/josephlewis42/toysh/core/logger"
	"github.com/josephlewis42/toysh/core/ttylog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	oneShot string
)

func loadConfig() (*config.Configuration, error) {
	configuration, err := config.Load(afero.NewOsFs(), cfgPath)

	if errors.Is(err, fs.ErrPermission) {
		log.Println("Couldn't load config: check the permissions of", cfgPath)
	}

	return configuration, err
}

// openSessionLog starts a new session in the configured event log. A nil
// session logger records nothing.
func openSessionLog(cfg *config.Configuration) (*logger.SessionLogger, io.Closer, error) {
	if cfg.LogPath == "" {
		return nil, io.NopCloser(nil), nil
	}

	fd, err := cfg.OpenEventLog()
	if err != nil {
		return nil, nil, err
	}
	return logger.NewJsonLinesLogRecorder(fd).NewSession(), fd, nil
}

// recordTranscript tees the terminal into a new transcript if the
// configuration enables them.
func recordTranscript(cfg *config.Configuration, term *core.Terminal) (io.Closer, error) {
	if cfg.TranscriptDir == "" {
		return io.NopCloser(nil), nil
	}

	name := fmt.Sprintf("%s.%s", time.Now().Format("20060102-150405"), ttylog.AsciicastFileExt)
	fd, err := cfg.CreateTranscript(name)
	if err != nil {
		return nil, err
	}

	recorder := ttylog.NewRecorder(ttylog.NewAsciicastLogSink(fd))
	term.Stdin = recorder.Stdin(term.Stdin)
	term.Stdout = recorder.Stdout(term.Stdout)
	return fd, nil
}

// branchLauncher re-invokes this binary with the absolute configuration
// path. Branches start in the interpreter's current directory, which cd may
// have changed since the configuration was loaded.
func branchLauncher() eval.Launcher {
	path := cfgPath
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return eval.SelfLauncher("--config", path)
}

// newEvaluator wires an evaluator whose background jobs re-invoke this
// binary with the same configuration.
func newEvaluator(cmd *cobra.Command, cfg *config.Configuration, sessionLog *logger.SessionLogger) *eval.Evaluator {
	out := eval.NewPrinter(cmd.OutOrStdout(), cfg.ShouldColor(os.Stdout.Fd()))
	return core.NewEvaluator(cfg, out, cmd.ErrOrStderr(), branchLauncher(), sessionLog)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "toysh",
	Short: "A toy interactive shell",
	Long: `An interactive shell with a handful of builtins, external programs,
pipes (a | b) and background jobs (a & b).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		sessionLog, logCloser, err := openSessionLog(cfg)
		if err != nil {
			return err
		}

		e := newEvaluator(cmd, cfg, sessionLog)

		if cmd.Flags().Changed("command") {
			s := core.NewShell(e, sessionLog)
			s.OnClose(logCloser)
			e.Exit = func(code int) {
				s.Wait()
				s.Close()
				os.Exit(code)
			}

			err := s.RunOnce(cmd.Context(), oneShot)
			s.Close()
			if err != nil {
				// The error was already printed.
				os.Exit(1)
			}
			return nil
		}

		term := core.Terminal{
			Stdin:  os.Stdin,
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		}
		transcriptCloser, err := recordTranscript(cfg, &term)
		if err != nil {
			logCloser.Close()
			return err
		}

		s, err := core.NewInteractiveShell(cfg, e, sessionLog, term)
		if err != nil {
			transcriptCloser.Close()
			logCloser.Close()
			return err
		}
		s.OnClose(logCloser)
		s.OnClose(transcriptCloser)
		defer s.Close()

		e.Exit = func(code int) {
			s.Close()
			os.Exit(code)
		}

		s.Run(cmd.Context())
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath(), "config path")
	rootCmd.Flags().StringVarP(&oneShot, "command", "c", "", "evaluate a single line, wait for its background jobs and exit")
}
