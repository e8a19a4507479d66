package rules

import (
	"strings"

	"github.com/mago-go/phrix/internal/ast"
	"github.com/mago-go/phrix/internal/diagnostic"
	"github.com/mago-go/phrix/internal/lint"
)

// RedundantUseAlias flags `use Name as Name;` — an alias identical to
// the name it renames, which changes nothing but reads as if it does.
// Checked across all four use-import shapes.
type RedundantUseAlias struct{}

func (RedundantUseAlias) Definition() lint.Definition {
	return lint.Definition{
		Name:         "redundant-use-alias",
		DefaultLevel: diagnostic.Help,
		Description:  "flags a use-import alias identical to the imported name",
		Examples: []lint.Example{
			{Description: "redundant alias", Code: "use App\\Config as Config;", Valid: false},
			{Description: "meaningful alias", Code: "use App\\Config as Cfg;", Valid: true},
		},
	}
}

func (RedundantUseAlias) LintNode(ctx *lint.Context, node ast.Node) lint.Directive {
	use, ok := node.(*ast.Use)
	if !ok {
		return lint.Continue
	}

	for _, item := range useItems(use.Items) {
		if item.Alias == nil {
			continue
		}
		if lastSegment(item.Name.Text(ctx.Interner)) != item.Alias.Text(ctx.Interner) {
			continue
		}
		ctx.Emit(diagnostic.Issue{
			Rule:    "redundant-use-alias",
			Message: "alias is identical to the imported name",
			Annotations: []diagnostic.Annotation{
				{Span: item.Span(), Message: "remove the `as` clause", Primary: true},
			},
		})
	}
	return lint.Continue
}

// useItems flattens any of the four UseItemList shapes into its items,
// in source order.
func useItems(list ast.UseItemList) []ast.UseItem {
	switch l := list.(type) {
	case ast.TypedSequenceUseItemList:
		return l.Items.Items
	case ast.TypedListUseItemList:
		return l.Items.Items
	case ast.SequenceUseItemList:
		return l.Items.Items
	case ast.MixedUseItemList:
		return l.Items.Items
	default:
		return nil
	}
}

// lastSegment returns the final component of a possibly-namespaced
// name, e.g. "App\Config" -> "Config".
func lastSegment(name string) string {
	if i := strings.LastIndexByte(name, '\\'); i >= 0 {
		return name[i+1:]
	}
	return name
}
