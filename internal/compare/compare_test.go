package compare

import (
	"testing"
	"time"

	"github.com/rgehrsitz/cashplan/internal/domain"
	"github.com/rgehrsitz/cashplan/internal/projection"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compareRules() *domain.RuleSet {
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	rules := &domain.RuleSet{
		Checking:        decimal.NewFromInt(2000),
		PaycheckAmount:  decimal.NewFromInt(2000),
		PaydayReference: time.Date(2025, 8, 21, 0, 0, 0, 0, time.UTC),
		Rent:            decimal.NewFromInt(1760),
		StartDate:       &start,
	}
	rules.ApplyDefaults()
	rules.CardA.Balance = decimal.NewFromInt(2000)
	rules.CardA.Statement = decimal.NewFromInt(600)
	rules.CardA.PaymentAmount = decimal.NewFromInt(200)
	return rules
}

func TestCompareNoPayments(t *testing.T) {
	rules := compareRules()
	set, err := NewCompareEngine(projection.NewEngine()).Compare(rules, 2, []string{"no_payments"})
	require.NoError(t, err)
	require.Len(t, set.AlternativeResults, 1)

	base := set.BaseResult
	alt := set.AlternativeResults[0]
	assert.Equal(t, "base", base.StrategyName)
	assert.Equal(t, "no_payments", alt.StrategyName)

	// Two monthly payments of 200 suspended: checking up 400, debt up 400.
	assert.True(t, alt.TotalPayments.IsZero())
	assert.True(t, alt.CheckingDiffFromBase.Equal(decimal.NewFromInt(400)))
	assert.True(t, alt.DebtDiffFromBase.Equal(decimal.NewFromInt(400)))
	assert.True(t, alt.FinalChecking.Equal(base.FinalChecking.Add(decimal.NewFromInt(400))))
}

func TestCompareScaledStrategies(t *testing.T) {
	rules := compareRules()
	set, err := NewCompareEngine(projection.NewEngine()).Compare(rules, 2, []string{"aggressive", "conservative", "statement_payoff"})
	require.NoError(t, err)
	require.Len(t, set.AlternativeResults, 3)

	aggressive, conservative, statement := set.AlternativeResults[0], set.AlternativeResults[1], set.AlternativeResults[2]

	// Two months, 200 base payment: 300/mo aggressive, 100/mo conservative,
	// 600/mo for the statement payoff.
	assert.True(t, aggressive.TotalPayments.Equal(decimal.NewFromInt(600)))
	assert.True(t, conservative.TotalPayments.Equal(decimal.NewFromInt(200)))
	assert.True(t, statement.TotalPayments.Equal(decimal.NewFromInt(1200)))

	assert.True(t, aggressive.FinalCardDebt.LessThan(conservative.FinalCardDebt))
}

func TestCompareDoesNotMutateBase(t *testing.T) {
	rules := compareRules()
	before := rules.CardA.PaymentAmount

	_, err := NewCompareEngine(projection.NewEngine()).Compare(rules, 1, []string{"no_payments", "aggressive"})
	require.NoError(t, err)
	assert.True(t, rules.CardA.PaymentAmount.Equal(before))
}

func TestCompareUnknownStrategy(t *testing.T) {
	_, err := NewCompareEngine(projection.NewEngine()).Compare(compareRules(), 1, []string{"yolo"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strategy yolo not found")
}

func TestDaysSustained(t *testing.T) {
	rules := compareRules()
	rules.Checking = decimal.NewFromInt(100)
	rules.PaycheckAmount = decimal.Zero

	set, err := NewCompareEngine(projection.NewEngine()).Compare(rules, 1, nil)
	require.NoError(t, err)

	base := set.BaseResult
	require.NotNil(t, base.FirstNegativeDay)
	// The card payment on September 3 sinks checking: two full solvent days.
	assert.Equal(t, 3, base.FirstNegativeDay.Day())
	assert.Equal(t, 2, base.DaysSustained)
}

func TestTableFormatter(t *testing.T) {
	set, err := NewCompareEngine(projection.NewEngine()).Compare(compareRules(), 2, []string{"no_payments"})
	require.NoError(t, err)

	out := (&TableFormatter{}).Format(set)
	assert.Contains(t, out, "PAYMENT STRATEGY COMPARISON")
	assert.Contains(t, out, "Horizon: 2 month(s)")
	assert.Contains(t, out, "base")
	assert.Contains(t, out, "no_payments")
	assert.Contains(t, out, "COMPARISON TO BASE")
	assert.Contains(t, out, "suspend all card payments")
}
