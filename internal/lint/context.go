package lint

import (
	"github.com/mago-go/phrix/internal/diagnostic"
	"github.com/mago-go/phrix/internal/interner"
)

// Context carries per-Lint-call state down to every rule invocation:
// the run identity, the shared interner, the target version, and
// per-rule configuration options.
type Context struct {
	RunID    string
	Interner *interner.Interner
	Version  Version

	// Levels overrides a rule's default level by name; a rule absent
	// from this map uses its Definition's DefaultLevel.
	Levels map[string]diagnostic.Level

	// Options holds free-form per-rule configuration, keyed by rule
	// name then option name.
	Options map[string]map[string]any

	defs   map[string]Definition
	issues []diagnostic.Issue
}

// levelFor resolves the effective level for a rule, honoring any
// configured override.
func (c *Context) levelFor(def Definition) diagnostic.Level {
	if lvl, ok := c.Levels[def.Name]; ok {
		return lvl
	}
	return def.DefaultLevel
}

// optionsFor returns the configured options for a rule, or nil.
func (c *Context) optionsFor(name string) map[string]any {
	return c.Options[name]
}

// Emit records an issue, stamping it with the run id and the issue's
// effective level. A rule identifies itself only by Issue.Rule; Emit
// resolves that name back to the rule's Definition to apply level
// overrides, and drops the issue entirely if the effective level is
// Off. Checking that an issue carries a message and a primary
// annotation is the caller's responsibility, not Emit's.
func (c *Context) Emit(issue diagnostic.Issue) {
	if def, ok := c.defs[issue.Rule]; ok {
		issue.Level = c.levelFor(def)
	}
	if issue.Level == diagnostic.Off {
		return
	}
	issue.RunID = c.RunID
	c.issues = append(c.issues, issue)
}
