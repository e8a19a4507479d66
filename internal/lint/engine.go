// Package lint implements the rule-based lint engine: a pre-order walk
// over the AST that dispatches every visited node to every registered
// rule, collecting diagnostic.Issue values and honoring each rule's
// requested Directive.
package lint

import (
	"github.com/google/uuid"

	"github.com/mago-go/phrix/internal/ast"
	"github.com/mago-go/phrix/internal/diagnostic"
	"github.com/mago-go/phrix/internal/interner"
)

// Engine runs a fixed set of rules over an AST.
type Engine struct {
	Rules []Rule
}

// New constructs an Engine with the given rules.
func New(rules ...Rule) *Engine {
	return &Engine{Rules: rules}
}

// Lint walks file pre-order, running every version-eligible rule on
// every node, and returns all issues emitted. Each call gets its own
// RunID so issues from different Lint invocations are distinguishable
// even if re-run against the same file.
func (e *Engine) Lint(file *ast.File, in *interner.Interner, version Version, opts ...func(*Context)) []diagnostic.Issue {
	ctx := &Context{
		RunID:    uuid.New().String(),
		Interner: in,
		Version:  version,
	}
	for _, opt := range opts {
		opt(ctx)
	}

	active := make([]Rule, 0, len(e.Rules))
	ctx.defs = make(map[string]Definition, len(e.Rules))
	for _, r := range e.Rules {
		def := r.Definition()
		ctx.defs[def.Name] = def
		if version.AtLeast(def.MinVersion) {
			active = append(active, r)
		}
	}

	e.walk(ctx, active, file)
	return ctx.issues
}

// WithLevels overrides default rule severities by name.
func WithLevels(levels map[string]diagnostic.Level) func(*Context) {
	return func(c *Context) { c.Levels = levels }
}

// WithOptions supplies per-rule configuration options.
func WithOptions(options map[string]map[string]any) func(*Context) {
	return func(c *Context) { c.Options = options }
}

// walk visits node and its children pre-order. It returns Abort if a
// rule aborted at node or below, so a parent call can propagate the
// Abort upward, and Continue otherwise (a Prune only stops descent
// below node and is not passed up).
func (e *Engine) walk(ctx *Context, rules []Rule, node ast.Node) Directive {
	if node == nil {
		return Continue
	}

	result := Continue
	for _, r := range rules {
		d := r.LintNode(ctx, node)
		result = combine(result, d)
		if result == Abort {
			return Abort
		}
	}

	if result == Prune {
		return Continue
	}

	for _, child := range children(node) {
		if e.walk(ctx, rules, child) == Abort {
			return Abort
		}
	}

	return Continue
}
