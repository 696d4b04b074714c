package cmd

import (
	"log"
	"os"

	"github.com/josephlewis42/toysh/core/config"
	"github.com/josephlewis42/toysh/core/eval"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// branchCmd evaluates the left side of a background job in its own process.
var branchCmd = &cobra.Command{
	Use:    eval.BranchCommand + " -- WORDS...",
	Short:  "Evaluate a background branch and print its output.",
	Hidden: true,
	Args:   cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			log.New(cmd.ErrOrStderr(), "", 0).Printf("%s: %v, using defaults", cfgPath, err)
			cfg, _ = config.Load(afero.NewMemMapFs(), cfgPath)
		}

		e := newEvaluator(cmd, cfg, nil)
		os.Exit(eval.RunBranch(cmd.Context(), e, args, cmd.InOrStdin(), e.Out))
	},
}

func init() {
	rootCmd.AddCommand(branchCmd)
}
