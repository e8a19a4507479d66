package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mago-go/phrix/internal/diagnostic"
	"github.com/mago-go/phrix/internal/interner"
	"github.com/mago-go/phrix/internal/lexer"
	"github.com/mago-go/phrix/internal/token"
)

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot read file %s: %w", path, err)
	}
	return string(data), nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printLexErrorsText(errs []lexer.LexError) {
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "%s: %s\n", e.Span.Start, e.Message)
	}
}

func lexErrorsToSlice(errs []lexer.LexError) []map[string]interface{} {
	out := make([]map[string]interface{}, len(errs))
	for i, e := range errs {
		out[i] = map[string]interface{}{
			"message": e.Message,
			"line":    e.Span.Start.Line,
			"column":  e.Span.Start.Column,
			"offset":  e.Span.Start.Offset,
		}
	}
	return out
}

func tokenToMap(tok token.Token, in *interner.Interner) map[string]interface{} {
	return map[string]interface{}{
		"kind":   tok.Kind.String(),
		"lexeme": tok.Lexeme,
		"line":   tok.Span.Start.Line,
		"column": tok.Span.Start.Column,
		"offset": tok.Span.Start.Offset,
	}
}

func printIssuesText(issues []diagnostic.Issue) {
	for _, issue := range issues {
		fmt.Println(issue.String())
		for _, note := range issue.Notes {
			fmt.Printf("  note: %s\n", note)
		}
		if issue.Help != "" {
			fmt.Printf("  help: %s\n", issue.Help)
		}
	}
}

func issuesToSlice(issues []diagnostic.Issue) []map[string]interface{} {
	out := make([]map[string]interface{}, len(issues))
	for i, issue := range issues {
		annotations := make([]map[string]interface{}, len(issue.Annotations))
		for j, a := range issue.Annotations {
			annotations[j] = map[string]interface{}{
				"message": a.Message,
				"primary": a.Primary,
				"line":    a.Span.Start.Line,
				"column":  a.Span.Start.Column,
				"offset":  a.Span.Start.Offset,
			}
		}
		out[i] = map[string]interface{}{
			"run_id":      issue.RunID,
			"rule":        issue.Rule,
			"level":       issue.Level.String(),
			"message":     issue.Message,
			"annotations": annotations,
			"notes":       issue.Notes,
		}
	}
	return out
}
