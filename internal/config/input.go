package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/cashplan/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of rule-set configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a rule set from a YAML file, applies defaults and
// validates it.
func (ip *InputParser) LoadFromFile(filename string) (*domain.RuleSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var rules domain.RuleSet
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	rules.ApplyDefaults()

	if err := ip.ValidateRuleSet(&rules); err != nil {
		return nil, fmt.Errorf("rule set validation failed: %w", err)
	}

	return &rules, nil
}

// ValidateRuleSet validates a complete rule set.
func (ip *InputParser) ValidateRuleSet(rules *domain.RuleSet) error {
	if rules.PaydayReference.IsZero() {
		return fmt.Errorf("payday reference date is required")
	}
	if rules.PaycheckAmount.LessThan(decimal.Zero) {
		return fmt.Errorf("paycheck amount cannot be negative")
	}
	if rules.Rent.LessThan(decimal.Zero) {
		return fmt.Errorf("rent cannot be negative")
	}
	if rules.RentDay < 1 || rules.RentDay > 31 {
		return fmt.Errorf("rent day must be between 1 and 31")
	}
	if rules.WeeklySpending.LessThan(decimal.Zero) {
		return fmt.Errorf("weekly spending cannot be negative")
	}
	if rules.SpendingCard != domain.CardA && rules.SpendingCard != domain.CardB && rules.SpendingCard != domain.CardC {
		return fmt.Errorf("spending card must be one of the three tracked cards")
	}

	for _, c := range domain.Cards {
		if err := ip.validateCardTerms(rules.Terms(c)); err != nil {
			return fmt.Errorf("%s validation failed: %w", rules.CardName(c), err)
		}
	}

	return nil
}

// validateCardTerms validates a single card's terms.
func (ip *InputParser) validateCardTerms(terms *domain.CardTerms) error {
	if terms.Balance.LessThan(decimal.Zero) {
		return fmt.Errorf("balance cannot be negative")
	}
	if terms.Pending.LessThan(decimal.Zero) {
		return fmt.Errorf("pending amount cannot be negative")
	}
	if terms.Statement.LessThan(decimal.Zero) {
		return fmt.Errorf("statement balance cannot be negative")
	}
	if terms.PaymentAmount.LessThan(decimal.Zero) {
		return fmt.Errorf("payment amount cannot be negative")
	}
	// Days 29-31 are accepted; they silently never fire in short months.
	if terms.PaymentDay < 1 || terms.PaymentDay > 31 {
		return fmt.Errorf("payment day must be between 1 and 31")
	}
	return nil
}
