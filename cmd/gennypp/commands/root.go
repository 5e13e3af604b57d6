// Package commands provides the CLI commands for the gennypp tool.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gennypp [file]",
	Short: "Template preprocessor for memory-layout source trees",
	Long: `gennypp rewrites a tree of memory-layout source files into a
template-free dialect: every generic struct/class declaration is replaced
by a placeholder plus one monomorphic copy per distinct use, and bracketed
size expressions are folded to constants.

Usage:
  gennypp file.genny               Process the tree rooted at file.genny
  gennypp process -i file.genny    Process explicitly
  gennypp version                  Print version`,
	Args:          cobra.ArbitraryArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if processInput != "" {
			runProcess(cmd, args)
			return nil
		}

		if len(args) > 0 {
			runProcess(cmd, args)
			return nil
		}

		return cmd.Help()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(versionCmd)

	// mirror the process flags on the root for the shorthand form
	rootCmd.Flags().StringVarP(&processInput, "input", "i", "", "Path to the root file")
	rootCmd.Flags().StringVarP(&processOutput, "output", "o", "", "Directory to copy the processed tree into")
	rootCmd.Flags().BoolVar(&processKeep, "keep", false, "Keep the temporary directory")
}
