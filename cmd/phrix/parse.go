package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mago-go/phrix/internal/ast"
	"github.com/mago-go/phrix/internal/interner"
	"github.com/mago-go/phrix/internal/lexer"
	"github.com/mago-go/phrix/internal/parser"
	"github.com/mago-go/phrix/internal/token"
)

func newParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a source file and print its AST",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readFile(args[0])
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

			if rootArgs.jsonOutput {
				return printJSON(ast.NodeToMap(file, in))
			}
			fmt.Printf("parsed %d top-level statement(s)\n", len(file.Body))
			return nil
		},
	}
}
