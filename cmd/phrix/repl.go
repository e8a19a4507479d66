package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/mago-go/phrix/internal/interner"
	"github.com/mago-go/phrix/internal/lexer"
	"github.com/mago-go/phrix/internal/lint"
	"github.com/mago-go/phrix/internal/lint/rules"
	"github.com/mago-go/phrix/internal/parser"
	"github.com/mago-go/phrix/internal/token"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
	colorCyan   = "\033[36m"
)

func newReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive parse+lint session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runRepl()
			return nil
		},
	}
}

// runRepl is the interactive loop: it buffers multi-line input across
// unbalanced braces, then parses and lints the buffered snippet and
// prints the resulting issues.
func runRepl() {
	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".phrix_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            colorGreen + "phrix> " + colorReset,
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline init failed: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Fprintf(rl.Stdout(), "%s%sphrix REPL%s %s(type 'exit' or Ctrl+D to quit)%s\n\n",
		colorBold, colorCyan, colorReset, colorGray, colorReset)

	engine := lint.New(rules.Default()...)
	version := lint.Version{Major: rootArgs.targetMajor, Minor: rootArgs.targetMinor}

	var accumulated strings.Builder
	braceDepth := 0

	for {
		if braceDepth > 0 {
			rl.SetPrompt(colorGray + "...    " + colorReset)
		} else {
			rl.SetPrompt(colorGreen + "phrix> " + colorReset)
		}

		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if braceDepth > 0 {
					accumulated.Reset()
					braceDepth = 0
					continue
				}
				fmt.Fprintf(rl.Stdout(), "\n%s(use 'exit' or Ctrl+D to quit)%s\n", colorGray, colorReset)
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(rl.Stdout())
			}
			break
		}

		if braceDepth == 0 && strings.TrimSpace(line) == "exit" {
			break
		}

		braceDepth += strings.Count(line, "{") - strings.Count(line, "}")
		accumulated.WriteString(line)
		accumulated.WriteString("\n")

		if braceDepth > 0 {
			continue
		}
		braceDepth = 0

		source := accumulated.String()
		accumulated.Reset()
		if strings.TrimSpace(source) == "" {
			continue
		}

		replEvalOnce(rl, engine, version, source)
	}
}

func replEvalOnce(rl *readline.Instance, engine *lint.Engine, version lint.Version, source string) {
	in := interner.New()
	toks, lexErrs := lexer.New(source, in).Tokenize()
	if len(lexErrs) > 0 {
		for _, e := range lexErrs {
			fmt.Fprintf(rl.Stderr(), "%s%s: %s%s\n", colorRed, e.Span.Start, e.Message, colorReset)
		}
		return
	}

	file, err := parser.New(token.NewStream(toks), in).ParseFile()
	if err != nil {
		fmt.Fprintf(rl.Stderr(), "%s%s%s\n", colorRed, err, colorReset)
		return
	}

	issues := engine.Lint(file, in, version)
	if len(issues) == 0 {
		fmt.Fprintf(rl.Stdout(), "%sok, no issues%s\n", colorYellow, colorReset)
		return
	}
	for _, issue := range issues {
		fmt.Fprintf(rl.Stdout(), "%s%s%s\n", colorRed, issue.String(), colorReset)
	}
}
