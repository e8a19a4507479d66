package main

import (
	"github.com/spf13/cobra"
)

// rootArgs holds flags shared across subcommands, following the
// package-level args-struct-per-command convention.
var rootArgs struct {
	jsonOutput   bool
	configPath   string
	targetMajor  int
	targetMinor  int
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phrix",
		Short: "Root command for the phrix static-analysis toolchain",
		Long:  "Tokenize, parse, and lint a PHP-like server scripting language.",
	}

	cmd.PersistentFlags().BoolVar(&rootArgs.jsonOutput, "json", false, "emit JSON instead of text")
	cmd.PersistentFlags().StringVar(&rootArgs.configPath, "config", "", "path to a JSON lint configuration file")
	cmd.PersistentFlags().IntVar(&rootArgs.targetMajor, "target-major", 8, "target language major version for rule gating")
	cmd.PersistentFlags().IntVar(&rootArgs.targetMinor, "target-minor", 3, "target language minor version for rule gating")

	cmd.AddCommand(newTokensCommand())
	cmd.AddCommand(newParseCommand())
	cmd.AddCommand(newLintCommand())
	cmd.AddCommand(newReplCommand())

	return cmd
}
