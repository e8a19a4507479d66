package rules

import (
	"github.com/mago-go/phrix/internal/ast"
	"github.com/mago-go/phrix/internal/diagnostic"
	"github.com/mago-go/phrix/internal/lint"
)

// RequireConstantType flags class-like constants declared without a
// type hint. Gated to versions that actually support typed constants.
type RequireConstantType struct{}

func (RequireConstantType) Definition() lint.Definition {
	return lint.Definition{
		Name:         "require-constant-type",
		DefaultLevel: diagnostic.Warning,
		MinVersion:   lint.Version{Major: 8, Minor: 3},
		Description:  "requires class-like constants to declare a type",
		Examples: []lint.Example{
			{Description: "untyped constant", Code: "class C { const X = 1; }", Valid: false},
			{Description: "typed constant", Code: "class C { const int X = 1; }", Valid: true},
		},
	}
}

func (RequireConstantType) LintNode(ctx *lint.Context, node ast.Node) lint.Directive {
	n, ok := node.(*ast.ClassLikeConstant)
	if !ok {
		return lint.Continue
	}
	if n.Hint != nil {
		return lint.Prune
	}

	name := n.Items.Items[0].Name.Text(ctx.Interner)
	ctx.Emit(diagnostic.Issue{
		Rule:    "require-constant-type",
		Message: "Class constant `" + name + "` is missing a type hint.",
		Annotations: []diagnostic.Annotation{
			{Span: n.Span(), Message: "Class constant `" + name + "` is defined here.", Primary: true},
		},
		Notes: []string{"Adding a type hint to constants improves code readability and helps prevent type errors."},
		Help:  "Consider specifying a type hint for `" + name + "`.",
	})
	return lint.Prune
}
