package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mago-go/phrix/internal/config"
	"github.com/mago-go/phrix/internal/diagnostic"
	"github.com/mago-go/phrix/internal/interner"
	"github.com/mago-go/phrix/internal/lexer"
	"github.com/mago-go/phrix/internal/lint"
	"github.com/mago-go/phrix/internal/lint/rules"
	"github.com/mago-go/phrix/internal/parser"
	"github.com/mago-go/phrix/internal/token"
)

func newLintCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lint <file>",
		Short: "Lint a source file and print any issues",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readFile(args[0])
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			in := interner.New()
			toks, lexErrs := lexer.New(source, in).Tokenize()
			if len(lexErrs) > 0 {
				printLexErrorsText(lexErrs)
				os.Exit(1)
			}

			file, parseErr := parser.New(token.NewStream(toks), in).ParseFile()
			if parseErr != nil {
				fmt.Fprintln(os.Stderr, parseErr)
				os.Exit(1)
			}

			engine := buildEngine(cfg)
			version := lint.Version{Major: rootArgs.targetMajor, Minor: rootArgs.targetMinor}
			levels, err := cfg.Levels()
			if err != nil {
				return err
			}
			issues := engine.Lint(file, in, version,
				lint.WithLevels(levels),
				lint.WithOptions(cfg.RuleOptions()))

			if rootArgs.jsonOutput {
				if err := printJSON(map[string]interface{}{"issues": issuesToSlice(issues)}); err != nil {
					return err
				}
			} else {
				printIssuesText(issues)
			}

			for _, issue := range issues {
				if issue.Level == diagnostic.Error {
					os.Exit(1)
				}
			}
			return nil
		},
	}
}

// loadConfig reads the configuration surface from --config, or
// returns the zero Config (default_plugins=true, no overrides) when
// no path was given.
func loadConfig() (config.Config, error) {
	if rootArgs.configPath == "" {
		return config.Config{}, nil
	}
	f, err := os.Open(rootArgs.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("cannot read config %s: %w", rootArgs.configPath, err)
	}
	defer f.Close()
	return config.Decode(f)
}

// buildEngine resolves the configuration's plugin selection into a
// concrete rule set. Only the built-in rule set (rules.Default) is
// available. When default_plugins is false no rule is enabled and the
// plugins list is not read; otherwise every plugin name other than
// "default" is reported on stderr and ignored, without failing the run.
func buildEngine(cfg config.Config) *lint.Engine {
	if !cfg.UsesDefaultPlugins() {
		return lint.New()
	}
	for _, plugin := range cfg.Plugins {
		if plugin != "default" {
			fmt.Fprintf(os.Stderr, "warning: unknown plugin set %q, ignoring\n", plugin)
		}
	}
	return lint.New(rules.Default()...)
}
