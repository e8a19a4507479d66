// Package rules collects the lint rules shipped with the toolchain.
package rules

import (
	"github.com/mago-go/phrix/internal/ast"
	"github.com/mago-go/phrix/internal/diagnostic"
	"github.com/mago-go/phrix/internal/lint"
)

// NoGoto flags every goto statement and its target label. goto is
// legal in the grammar but almost always indicates code that would
// read better as structured control flow.
type NoGoto struct{}

func (NoGoto) Definition() lint.Definition {
	return lint.Definition{
		Name:         "no-goto",
		DefaultLevel: diagnostic.Note,
		Description:  "flags goto statements and their target labels",
		Examples: []lint.Example{
			{Description: "a goto jump", Code: "goto done; done: return;", Valid: false},
			{Description: "structured control flow", Code: "if ($x) { return; }", Valid: true},
		},
	}
}

func (NoGoto) LintNode(ctx *lint.Context, node ast.Node) lint.Directive {
	switch n := node.(type) {
	case *ast.Goto:
		ctx.Emit(diagnostic.Issue{
			Rule:    "no-goto",
			Message: "avoid goto; prefer structured control flow",
			Annotations: []diagnostic.Annotation{
				{Span: n.Keyword, Message: "goto statement", Primary: true},
				{Span: n.Label.Span(), Message: "jumps to this label", Primary: false},
			},
			Notes: []string{
				"goto can jump into or out of nested blocks, which makes the flow hard to follow from either end",
				"most goto usage can be rewritten as a loop, an early return, or a break/continue",
				"the target label still has to be found by searching the function body, unlike a structured jump",
			},
			Help: "replace the goto/label pair with a loop, an early return, or a break/continue",
		})
		return lint.Prune
	case *ast.Label:
		ctx.Emit(diagnostic.Issue{
			Rule:    "no-goto",
			Message: "avoid goto labels; prefer structured control flow",
			Annotations: []diagnostic.Annotation{
				{Span: n.Span(), Message: "goto label", Primary: true},
			},
		})
		return lint.Prune
	}
	return lint.Continue
}
