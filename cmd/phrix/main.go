// Command phrix is the CLI entry point for the toolchain: a
// token/parse/lint pipeline over a PHP-like server scripting language,
// plus an interactive REPL.
//
// Usage:
//
//	phrix tokens <file> [--json]           Print tokens
//	phrix parse  <file> [--json]           Print the AST
//	phrix lint   <file> [--config FILE]    Lint a file and print issues
//	phrix repl                             Start an interactive session
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
