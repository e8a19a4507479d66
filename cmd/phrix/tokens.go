package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mago-go/phrix/internal/interner"
	"github.com/mago-go/phrix/internal/lexer"
)

func newTokensCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Tokenize a source file and print its tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readFile(args[0])
			if err != nil {
				return err
			}

			in := interner.New()
			toks, errs := lexer.New(source, in).Tokenize()

			if rootArgs.jsonOutput {
				tokJSON := make([]map[string]interface{}, len(toks))
				for i, tok := range toks {
					tokJSON[i] = tokenToMap(tok, in)
				}
				if err := printJSON(map[string]interface{}{
					"tokens": tokJSON,
					"errors": lexErrorsToSlice(errs),
				}); err != nil {
					return err
				}
			} else {
				for _, tok := range toks {
					fmt.Printf("%-14s %-20q %s\n", tok.Kind, tok.Lexeme, tok.Span.Start)
				}
				printLexErrorsText(errs)
			}

			if len(errs) > 0 {
				os.Exit(1)
			}
			return nil
		},
	}
}
