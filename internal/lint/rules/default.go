package rules

import "github.com/mago-go/phrix/internal/lint"

// Default returns the rule set enabled by a plain configuration: every
// rule shipped with this package, in a fixed order so diagnostic
// output is deterministic across runs.
func Default() []lint.Rule {
	return []lint.Rule{
		NoGoto{},
		RequireConstantType{},
		PromotedPropertyNeedsVisibility{},
		RedundantUseAlias{},
	}
}
