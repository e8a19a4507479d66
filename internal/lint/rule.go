package lint

import (
	"github.com/mago-go/phrix/internal/ast"
	"github.com/mago-go/phrix/internal/diagnostic"
)

// Example illustrates a rule's behavior for documentation purposes:
// tagged input paired with a description of the expected outcome.
type Example struct {
	Description string
	Code        string
	Valid       bool // true if Code should NOT trigger the rule
}

// Definition is a rule's static metadata: its name, default severity,
// the minimum language version it applies to, and illustrative
// examples.
type Definition struct {
	Name         string
	DefaultLevel diagnostic.Level
	MinVersion   Version
	Description  string
	Examples     []Example
}

// Rule is a single lint check. LintNode runs once per AST node visited
// during the pre-order walk, for every node the rule wants to inspect
// — it is the rule's own job to type-switch on node and ignore kinds
// it doesn't care about.
type Rule interface {
	Definition() Definition
	LintNode(ctx *Context, node ast.Node) Directive
}
