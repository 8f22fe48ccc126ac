package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rgehrsitz/cashplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validRules = `
checking: 1000.00
paycheck_amount: 2000.00
payday_reference: 2025-08-21T00:00:00Z
rent: 1760.00
weekly_spending: 200.00
spending_card: card_b
card_a:
  name: Visa
  balance: 512.80
  pending: 120.00
  statement: 480.00
  payment_amount: 150.00
card_b:
  balance: 230.00
  statement: 210.00
  payment_amount: 210.00
card_c:
  balance: 0
`

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	parser := NewInputParser()
	rules, err := parser.LoadFromFile(writeRules(t, validRules))
	require.NoError(t, err)

	assert.True(t, rules.Checking.Equal(decimal.NewFromInt(1000)))
	assert.True(t, rules.PaycheckAmount.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, time.Date(2025, 8, 21, 0, 0, 0, 0, time.UTC), rules.PaydayReference)
	assert.Equal(t, domain.CardB, rules.SpendingCard)
	assert.Equal(t, "Visa", rules.CardA.Name)
	assert.True(t, rules.CardA.Pending.Equal(decimal.NewFromInt(120)))

	// Defaults fill in what the file omits.
	assert.Equal(t, domain.DefaultPaymentDayA, rules.CardA.PaymentDay)
	assert.Equal(t, domain.DefaultRentDay, rules.RentDay)
	assert.Equal(t, time.Thursday, rules.SpendingWeekday)
}

func TestLoadFromFileMissingFile(t *testing.T) {
	_, err := NewInputParser().LoadFromFile("/nonexistent/rules.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFileBadYAML(t *testing.T) {
	_, err := NewInputParser().LoadFromFile(writeRules(t, "checking: [not closed"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestValidateRuleSet(t *testing.T) {
	base := func() *domain.RuleSet {
		rules := &domain.RuleSet{
			Checking:        decimal.NewFromInt(1000),
			PaycheckAmount:  decimal.NewFromInt(2000),
			PaydayReference: time.Date(2025, 8, 21, 0, 0, 0, 0, time.UTC),
			Rent:            decimal.NewFromInt(1760),
			WeeklySpending:  decimal.NewFromInt(200),
		}
		rules.ApplyDefaults()
		return rules
	}

	tests := []struct {
		name    string
		mutate  func(*domain.RuleSet)
		wantErr string
	}{
		{"valid", func(r *domain.RuleSet) {}, ""},
		{"missing payday reference", func(r *domain.RuleSet) { r.PaydayReference = time.Time{} }, "payday reference"},
		{"negative paycheck", func(r *domain.RuleSet) { r.PaycheckAmount = decimal.NewFromInt(-1) }, "paycheck"},
		{"negative rent", func(r *domain.RuleSet) { r.Rent = decimal.NewFromInt(-1) }, "rent cannot be negative"},
		{"rent day out of range", func(r *domain.RuleSet) { r.RentDay = 32 }, "rent day"},
		{"negative weekly spending", func(r *domain.RuleSet) { r.WeeklySpending = decimal.NewFromInt(-5) }, "weekly spending"},
		{"bad spending card", func(r *domain.RuleSet) { r.SpendingCard = domain.Card(7) }, "spending card"},
		{"negative card balance", func(r *domain.RuleSet) { r.CardA.Balance = decimal.NewFromInt(-10) }, "balance cannot be negative"},
		{"negative pending", func(r *domain.RuleSet) { r.CardB.Pending = decimal.NewFromInt(-10) }, "pending"},
		{"negative statement", func(r *domain.RuleSet) { r.CardC.Statement = decimal.NewFromInt(-10) }, "statement"},
		{"negative payment amount", func(r *domain.RuleSet) { r.CardA.PaymentAmount = decimal.NewFromInt(-10) }, "payment amount"},
		{"payment day zero", func(r *domain.RuleSet) { r.CardA.PaymentDay = 0 }, "payment day"},
		{"payment day 31 allowed", func(r *domain.RuleSet) { r.CardB.PaymentDay = 31 }, ""},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := base()
			tt.mutate(rules)
			err := parser.ValidateRuleSet(rules)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidationErrorNamesTheCard(t *testing.T) {
	rules := &domain.RuleSet{
		PaydayReference: time.Date(2025, 8, 21, 0, 0, 0, 0, time.UTC),
	}
	rules.ApplyDefaults()
	rules.CardA.Name = "Visa"
	rules.CardA.Balance = decimal.NewFromInt(-1)

	err := NewInputParser().ValidateRuleSet(rules)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Visa")
}
