package rules

import (
	"github.com/mago-go/phrix/internal/ast"
	"github.com/mago-go/phrix/internal/diagnostic"
	"github.com/mago-go/phrix/internal/lint"
)

// PromotedPropertyNeedsVisibility flags constructor parameters that
// are promoted to properties purely by having hooks, with no explicit
// visibility/mutability modifier — a shape the grammar allows but
// that leaves the property's visibility implicit.
type PromotedPropertyNeedsVisibility struct{}

func (PromotedPropertyNeedsVisibility) Definition() lint.Definition {
	return lint.Definition{
		Name:         "promoted-property-needs-visibility",
		DefaultLevel: diagnostic.Note,
		Description:  "requires an explicit modifier on hook-promoted constructor parameters",
		Examples: []lint.Example{
			{Description: "hook-only promotion", Code: "function __construct($x { get { return $this->x; } }) {}", Valid: false},
			{Description: "modifier present", Code: "function __construct(public $x { get { return $this->x; } }) {}", Valid: true},
		},
	}
}

func (PromotedPropertyNeedsVisibility) LintNode(ctx *lint.Context, node ast.Node) lint.Directive {
	fn, ok := node.(*ast.FuncDecl)
	if !ok {
		return lint.Continue
	}
	for _, param := range fn.Parameters.List.Items {
		if len(param.Hooks) > 0 && len(param.Modifiers) == 0 {
			ctx.Emit(diagnostic.Issue{
				Rule:    "promoted-property-needs-visibility",
				Message: "hook-promoted parameter has no explicit visibility modifier",
				Annotations: []diagnostic.Annotation{
					{Span: param.Span(), Message: "add public, private, or protected", Primary: true},
				},
			})
		}
	}
	return lint.Continue
}
