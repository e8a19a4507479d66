package lint_test

import (
	"testing"

	"github.com/mago-go/phrix/internal/ast"
	"github.com/mago-go/phrix/internal/diagnostic"
	"github.com/mago-go/phrix/internal/interner"
	"github.com/mago-go/phrix/internal/lexer"
	"github.com/mago-go/phrix/internal/lint"
	"github.com/mago-go/phrix/internal/parser"
	"github.com/mago-go/phrix/internal/token"
)

func parseFile(t *testing.T, source string) (*ast.File, *interner.Interner) {
	t.Helper()
	in := interner.New()
	toks, errs := lexer.New(source, in).Tokenize()
	if len(errs) != 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	file, err := parser.New(token.NewStream(toks), in).ParseFile()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return file, in
}

// countingRule always fires on every node it sees, recording how many
// times it was invoked, and returns a fixed Directive.
type countingRule struct {
	name      string
	directive lint.Directive
	onKind    func(ast.Node) bool
	calls     *int
}

func (r countingRule) Definition() lint.Definition {
	return lint.Definition{Name: r.name, DefaultLevel: diagnostic.Warning}
}

func (r countingRule) LintNode(ctx *lint.Context, node ast.Node) lint.Directive {
	if r.onKind != nil && !r.onKind(node) {
		return lint.Continue
	}
	*r.calls = *r.calls + 1
	ctx.Emit(diagnostic.Issue{
		Rule:    r.name,
		Message: "test issue",
		Annotations: []diagnostic.Annotation{
			{Span: node.Span(), Primary: true},
		},
	})
	return r.directive
}

func TestLintPruneStopsDescent(t *testing.T) {
	file, in := parseFile(t, "<?php\nif ($x) { $y = 1; }\n")

	calls := 0
	rule := countingRule{
		name:      "prune-on-if",
		directive: lint.Prune,
		onKind: func(n ast.Node) bool {
			_, ok := n.(*ast.If)
			return ok
		},
		calls: &calls,
	}

	childCalls := 0
	childRule := countingRule{
		name: "count-assign",
		onKind: func(n ast.Node) bool {
			_, ok := n.(*ast.BinaryExpr)
			return ok
		},
		calls: &childCalls,
	}

	engine := lint.New(rule, childRule)
	issues := engine.Lint(file, in, lint.Version{Major: 8, Minor: 0})

	if calls != 1 {
		t.Fatalf("expected prune-on-if to fire once, got %d", calls)
	}
	if childCalls != 0 {
		t.Fatalf("expected Prune to stop descent, but the child assignment was visited %d times", childCalls)
	}
	if len(issues) != 1 {
		t.Fatalf("expected exactly 1 issue, got %d: %+v", len(issues), issues)
	}
}

func TestLintAbortStopsWalkButKeepsEmittedIssues(t *testing.T) {
	file, in := parseFile(t, "<?php\ngoto done;\ndone: return 1;\n")

	calls := 0
	abortOnGoto := countingRule{
		name:      "abort-on-goto",
		directive: lint.Abort,
		onKind: func(n ast.Node) bool {
			_, ok := n.(*ast.Goto)
			return ok
		},
		calls: &calls,
	}

	afterCalls := 0
	afterRule := countingRule{
		name: "count-return",
		onKind: func(n ast.Node) bool {
			_, ok := n.(*ast.ReturnStmt)
			return ok
		},
		calls: &afterCalls,
	}

	engine := lint.New(abortOnGoto, afterRule)
	issues := engine.Lint(file, in, lint.Version{Major: 8, Minor: 0})

	if calls != 1 {
		t.Fatalf("expected abort-on-goto to fire once, got %d", calls)
	}
	if afterCalls != 0 {
		t.Fatalf("expected Abort to stop the walk before the later return statement, got %d calls", afterCalls)
	}
	if len(issues) != 1 {
		t.Fatalf("expected the issue emitted before the abort to be kept, got %d", len(issues))
	}
}

func TestLintDirectiveCombineStrongestWins(t *testing.T) {
	file, in := parseFile(t, "<?php\n$x = 1;\n")

	calls := 0
	continueRule := countingRule{name: "r-continue", directive: lint.Continue, calls: &calls}
	pruneRule := countingRule{name: "r-prune", directive: lint.Prune, calls: &calls}

	engine := lint.New(continueRule, pruneRule)
	issues := engine.Lint(file, in, lint.Version{Major: 8, Minor: 0})

	// Both rules fire on the File node itself; Prune beats Continue
	// there, so nothing beneath File (the ExprStmt, the BinaryExpr)
	// should be visited by either rule.
	if calls != 2 {
		t.Fatalf("expected exactly 2 calls (both rules against the File node only), got %d", calls)
	}
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(issues))
	}
}

func TestLintLevelOverrideSuppressesIssue(t *testing.T) {
	file, in := parseFile(t, "<?php\ngoto done;\ndone: return;\n")

	calls := 0
	rule := countingRule{name: "suppressible", calls: &calls}
	engine := lint.New(rule)

	issues := engine.Lint(file, in, lint.Version{Major: 8, Minor: 0},
		lint.WithLevels(map[string]diagnostic.Level{"suppressible": diagnostic.Off}))

	if calls == 0 {
		t.Fatalf("expected the rule to still run even when suppressed")
	}
	if len(issues) != 0 {
		t.Fatalf("expected Off level to suppress every issue, got %d", len(issues))
	}
}

func TestLintVersionGating(t *testing.T) {
	file, in := parseFile(t, "<?php\ngoto done;\ndone: return;\n")

	calls := 0
	gated := countingRule{name: "needs-9-0", calls: &calls}
	def := gated.Definition()
	def.MinVersion = lint.Version{Major: 9, Minor: 0}

	engine := lint.New(gatedRule{countingRule: gated, def: def})
	issues := engine.Lint(file, in, lint.Version{Major: 8, Minor: 3})

	if calls != 0 {
		t.Fatalf("expected version-gated rule not to run below its MinVersion, got %d calls", calls)
	}
	if len(issues) != 0 {
		t.Fatalf("expected no issues from a version-gated rule, got %d", len(issues))
	}
}

// gatedRule overrides Definition to report a custom MinVersion while
// reusing countingRule's LintNode behavior.
type gatedRule struct {
	countingRule
	def lint.Definition
}

func (g gatedRule) Definition() lint.Definition { return g.def }
