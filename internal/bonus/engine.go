// =============================================================================
// Sales Bonus Analyzer - Bonus Engine
// =============================================================================
//
// This module applies the tiered bonus rule set to the aggregated daily
// statistics. Two families of rules exist and they behave differently:
//
//   - Transaction tiers are evaluated independently for every single
//     transaction total of a day. Several tiers can fire for the same
//     transaction (a 750 sale earns both the over-400 and the over-700
//     bonus).
//   - Average tiers are evaluated once per employee per day against the
//     day's mean transaction value, and only the highest matching tier
//     fires.
//
// The asymmetry between the two families is the store's actual policy
// and is preserved as-is. All comparisons are strict greater-than.
//
// =============================================================================

package bonus

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/eshel-dev/salesbonus/internal/aggregate"
	"github.com/eshel-dev/salesbonus/internal/config"
)

// =============================================================================
// RULES
// =============================================================================

// Tier is one threshold rule: the bonus Amount fires when the evaluated
// value is strictly greater than Threshold.
type Tier struct {
	Threshold decimal.Decimal
	Amount    decimal.Decimal

	// Category is the breakdown bucket the amount accumulates into.
	Category string
}

// Rules is the immutable rule set the engine evaluates. Build one from
// configuration with FromConfig, or take the store defaults.
type Rules struct {
	// Transaction tiers, evaluated per transaction total, stacking.
	Transaction []Tier

	// Average tiers, evaluated per daily average, highest tier wins.
	// Held sorted by descending threshold.
	Average []Tier
}

// FromConfig builds the rule set from configuration values.
func FromConfig(cfg config.BonusRules) Rules {
	rules := Rules{}

	for _, t := range cfg.TransactionTiers {
		rules.Transaction = append(rules.Transaction, Tier{
			Threshold: decimal.NewFromFloat(t.Threshold),
			Amount:    decimal.NewFromFloat(t.Amount),
			Category:  t.Category,
		})
	}

	for _, t := range cfg.AverageTiers {
		rules.Average = append(rules.Average, Tier{
			Threshold: decimal.NewFromFloat(t.Threshold),
			Amount:    decimal.NewFromFloat(t.Amount),
			Category:  cfg.AverageCategory,
		})
	}
	sort.Slice(rules.Average, func(i, j int) bool {
		return rules.Average[i].Threshold.GreaterThan(rules.Average[j].Threshold)
	})

	return rules
}

// DefaultRules returns the store's standard rule set.
func DefaultRules() Rules {
	return FromConfig(config.Default().Rules)
}

// =============================================================================
// RESULTS
// =============================================================================

// Totals maps employee → total bonus across all days and categories.
type Totals map[string]decimal.Decimal

// Breakdown maps employee → category label → accumulated amount.
type Breakdown map[string]map[string]decimal.Decimal

// =============================================================================
// ENGINE
// =============================================================================

// Engine evaluates a rule set against daily statistics. It holds no
// per-run state; one engine may serve any number of Calculate calls.
type Engine struct {
	rules Rules
}

// NewEngine creates an engine for the given rule set.
func NewEngine(rules Rules) *Engine {
	return &Engine{rules: rules}
}

// Calculate applies the rules to every (employee, day) pair and returns
// per-employee totals and the categorized breakdown. Employees with no
// qualifying days simply produce no entries; there are no error
// conditions.
func (e *Engine) Calculate(stats *aggregate.DailyStats) (Totals, Breakdown) {
	totals := make(Totals)
	breakdown := make(Breakdown)

	for emp, daily := range stats.Totals {
		for date, dayTotals := range daily {
			count := stats.Counts[emp][date]

			// Average transaction value; a day with no valid
			// transactions averages to zero and earns nothing.
			avg := decimal.Zero
			if count > 0 {
				sum := decimal.Zero
				for _, t := range dayTotals {
					sum = sum.Add(t)
				}
				avg = sum.Div(decimal.NewFromInt(int64(count)))
			}

			// Transaction tiers stack: every tier is checked against
			// every transaction independently.
			for _, total := range dayTotals {
				for _, tier := range e.rules.Transaction {
					if total.GreaterThan(tier.Threshold) {
						e.award(totals, breakdown, emp, tier)
					}
				}
			}

			// Average tiers are exclusive: the highest matching
			// threshold wins, no stacking between tiers.
			for _, tier := range e.rules.Average {
				if avg.GreaterThan(tier.Threshold) {
					e.award(totals, breakdown, emp, tier)
					break
				}
			}
		}
	}

	return totals, breakdown
}

// award credits a tier's amount to the employee total and the category
// breakdown.
func (e *Engine) award(totals Totals, breakdown Breakdown, emp string, tier Tier) {
	totals[emp] = totals[emp].Add(tier.Amount)
	if breakdown[emp] == nil {
		breakdown[emp] = make(map[string]decimal.Decimal)
	}
	breakdown[emp][tier.Category] = breakdown[emp][tier.Category].Add(tier.Amount)
}
