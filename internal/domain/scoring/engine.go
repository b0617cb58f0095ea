// Package scoring implements the rule engine that scores movies against a
// viewer's preferences and ranks the catalog.
package scoring

import (
	"slices"

	"github.com/okian/moviemood/internal/domain/model"
)

// DefaultLimit is the number of recommendations returned by default.
const DefaultLimit = 5

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithRules replaces the built-in rule table. The slice is copied.
func WithRules(rules []Rule) Option {
	return func(e *Engine) {
		if rules != nil {
			e.rules = slices.Clone(rules)
		}
	}
}

// WithLimit sets the maximum number of recommendations returned.
func WithLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.limit = n
		}
	}
}

// Engine evaluates an ordered, immutable rule table. It holds no per-call
// state and is safe for concurrent use.
type Engine struct {
	rules []Rule
	limit int
}

// NewEngine creates an engine with the built-in rules unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		rules: DefaultRules(),
		limit: DefaultLimit,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Evaluate runs every rule in table order against one movie. No rule is
// skipped because another fired.
func (e *Engine) Evaluate(p model.Preferences, m model.Movie) model.Evaluation {
	ev := model.Evaluation{
		Results:    []model.RuleResult{},
		Reasons:    []string{},
		FiredRules: []string{},
	}

	for _, r := range e.rules {
		if r.Condition == nil || !r.Condition(p, m) {
			continue
		}
		res := model.RuleResult{RuleName: r.Name}
		if r.Weight != nil {
			res.Weight = r.Weight(p, m)
		}
		if r.Explanation != nil {
			res.Explanation = r.Explanation(p, m)
		}
		ev.Results = append(ev.Results, res)
		ev.Reasons = append(ev.Reasons, res.Explanation)
		ev.FiredRules = append(ev.FiredRules, res.RuleName)
		ev.Score += res.Weight
	}

	return ev
}

// Recommend evaluates every movie, drops those scoring zero or less, and
// returns the best ones by descending score. Ties keep catalog order.
func (e *Engine) Recommend(p model.Preferences, movies []model.Movie) []model.Recommendation {
	recs := make([]model.Recommendation, 0, len(movies))
	for _, m := range movies {
		ev := e.Evaluate(p, m)
		if ev.Score <= 0 {
			continue
		}
		recs = append(recs, model.Recommendation{
			Movie:      m,
			Score:      ev.Score,
			Reasons:    ev.Reasons,
			FiredRules: ev.FiredRules,
		})
	}

	slices.SortStableFunc(recs, func(a, b model.Recommendation) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	if len(recs) > e.limit {
		recs = recs[:e.limit]
	}
	return recs
}

// RuleNames returns the rule names in evaluation order.
func (e *Engine) RuleNames() []string {
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name
	}
	return names
}

// RuleCount returns the number of rules in the table.
func (e *Engine) RuleCount() int {
	return len(e.rules)
}

// Limit returns the maximum number of recommendations.
func (e *Engine) Limit() int {
	return e.limit
}
