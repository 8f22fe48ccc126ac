package compare

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/cashplan/internal/domain"
	"github.com/rgehrsitz/cashplan/internal/output"
	"github.com/shopspring/decimal"
)

// ComparisonResult holds the metrics for one payment strategy.
type ComparisonResult struct {
	StrategyName string `json:"strategyName"`
	Description  string `json:"description"`

	FinalChecking decimal.Decimal `json:"finalChecking"`
	FinalCardDebt decimal.Decimal `json:"finalCardDebt"`
	TotalPayments decimal.Decimal `json:"totalPayments"`

	// DaysSustained is how many days checking stayed non-negative; equal
	// to the window length when it never went negative.
	DaysSustained    int        `json:"daysSustained"`
	FirstNegativeDay *time.Time `json:"firstNegativeDay,omitempty"`

	// Comparison to base
	CheckingDiffFromBase decimal.Decimal `json:"checkingDiffFromBase"`
	DebtDiffFromBase     decimal.Decimal `json:"debtDiffFromBase"`
}

// ComparisonSet is the base strategy plus its alternatives.
type ComparisonSet struct {
	BaseResult         ComparisonResult   `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Months             int                `json:"months"`
}

// StrategyTransform rewrites the payment fields of a rule set to produce an
// alternative strategy. The input is a copy; transforms mutate freely.
type StrategyTransform struct {
	Name        string
	Description string
	Apply       func(rules *domain.RuleSet)
}

// BuiltInStrategies are the named alternatives `compare --with` accepts.
func BuiltInStrategies() map[string]StrategyTransform {
	strategies := []StrategyTransform{
		{
			Name:        "statement_payoff",
			Description: "pay each card's full statement balance monthly",
			Apply: func(rules *domain.RuleSet) {
				for _, c := range domain.Cards {
					t := rules.Terms(c)
					t.PaymentAmount = t.Statement
				}
			},
		},
		{
			Name:        "aggressive",
			Description: "pay 150% of the configured amounts",
			Apply: func(rules *domain.RuleSet) {
				scalePayments(rules, decimal.NewFromFloat(1.5))
			},
		},
		{
			Name:        "conservative",
			Description: "pay 50% of the configured amounts",
			Apply: func(rules *domain.RuleSet) {
				scalePayments(rules, decimal.NewFromFloat(0.5))
			},
		},
		{
			Name:        "no_payments",
			Description: "suspend all card payments",
			Apply: func(rules *domain.RuleSet) {
				for _, c := range domain.Cards {
					rules.Terms(c).PaymentAmount = decimal.Zero
				}
			},
		},
	}

	registry := make(map[string]StrategyTransform, len(strategies))
	for _, s := range strategies {
		registry[s.Name] = s
	}
	return registry
}

func scalePayments(rules *domain.RuleSet, factor decimal.Decimal) {
	for _, c := range domain.Cards {
		t := rules.Terms(c)
		t.PaymentAmount = t.PaymentAmount.Mul(factor)
	}
}

// metricsFor condenses one projection into a ComparisonResult.
func metricsFor(name, description string, rules *domain.RuleSet, ledger []domain.DailySnapshot) ComparisonResult {
	s := output.Summarize(rules, ledger)
	result := ComparisonResult{
		StrategyName:     name,
		Description:      description,
		FinalChecking:    s.FinalChecking,
		FinalCardDebt:    s.FinalCardDebt,
		TotalPayments:    s.TotalPayments,
		DaysSustained:    s.Days,
		FirstNegativeDay: s.FirstNegativeDay,
	}
	if s.FirstNegativeDay != nil {
		for i := range ledger {
			if ledger[i].IsCheckingNegative() {
				result.DaysSustained = i
				break
			}
		}
	}
	return result
}

// String renders a short one-line identity for logging.
func (r ComparisonResult) String() string {
	return fmt.Sprintf("%s: checking %s, debt %s", r.StrategyName,
		r.FinalChecking.StringFixed(2), r.FinalCardDebt.StringFixed(2))
}
