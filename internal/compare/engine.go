package compare

import (
	"fmt"

	"github.com/rgehrsitz/cashplan/internal/domain"
	"github.com/rgehrsitz/cashplan/internal/projection"
)

// CompareEngine runs a base rule set against alternative payment strategies.
type CompareEngine struct {
	Engine *projection.Engine
}

// NewCompareEngine creates a comparison engine.
func NewCompareEngine(engine *projection.Engine) *CompareEngine {
	return &CompareEngine{Engine: engine}
}

// Compare projects the base strategy and each named alternative over the
// same window and reports the deltas.
func (ce *CompareEngine) Compare(rules *domain.RuleSet, months int, strategies []string) (*ComparisonSet, error) {
	registry := BuiltInStrategies()

	baseLedger := ce.Engine.Project(rules, months)
	base := metricsFor("base", "configured payment amounts", rules, baseLedger)

	set := &ComparisonSet{BaseResult: base, Months: months}

	for _, name := range strategies {
		strategy, ok := registry[name]
		if !ok {
			return nil, fmt.Errorf("strategy %s not found", name)
		}

		alt := *rules
		strategy.Apply(&alt)

		ledger := ce.Engine.Project(&alt, months)
		result := metricsFor(strategy.Name, strategy.Description, &alt, ledger)
		result.CheckingDiffFromBase = result.FinalChecking.Sub(base.FinalChecking)
		result.DebtDiffFromBase = result.FinalCardDebt.Sub(base.FinalCardDebt)
		set.AlternativeResults = append(set.AlternativeResults, result)
	}

	return set, nil
}
