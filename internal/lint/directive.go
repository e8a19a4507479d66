package lint

// Directive tells the engine how to continue the AST walk after a
// rule has run on a node.
type Directive int

const (
	// Continue descends into the node's children as usual.
	Continue Directive = iota
	// Prune skips the node's children but continues the walk
	// elsewhere.
	Prune
	// Abort stops the entire walk immediately. Issues already emitted
	// before the Abort are kept (see DESIGN.md for the rationale).
	Abort
)

// combine composes two directives from different rules observed at
// the same node: the strongest directive wins, where Abort > Prune >
// Continue.
func combine(a, b Directive) Directive {
	if a > b {
		return a
	}
	return b
}
