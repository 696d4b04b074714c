package cmd

import (
	"fmt"
	"strings"

	"github.com/josephlewis42/toysh/core/shell"
	"github.com/spf13/cobra"
)

var showWords bool

// parseCmd shows how a line is understood without running it
var parseCmd = &cobra.Command{
	Use:   "parse LINE",
	Short: "Print the expression tree of a line without evaluating it.",
	Long: `Print the expression tree of a line without evaluating it.

Arguments are joined with spaces, so quote the line to keep operators away
from your own shell:

  toysh parse 'echo hi | tr a-z A-Z & sleep 1'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		expr, err := shell.Parse(strings.Join(args, " "))
		if err != nil {
			return err
		}

		if expr == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "<blank>")
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), expr)
		if showWords {
			fmt.Fprintf(cmd.OutOrStdout(), "%q\n", expr.Words())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&showWords, "words", false, "Also print the words a background job for the line is started with.")
}
