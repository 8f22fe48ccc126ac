package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Card identifies one of the three tracked credit cards.
type Card int

const (
	CardA Card = iota
	CardB
	CardC
)

// Cards lists all tracked cards in evaluation order.
var Cards = []Card{CardA, CardB, CardC}

func (c Card) String() string {
	switch c {
	case CardA:
		return "card_a"
	case CardB:
		return "card_b"
	case CardC:
		return "card_c"
	}
	return "unknown"
}

// MarshalText renders the card identifier, so cards read as names in JSON
// object keys and YAML scalars.
func (c Card) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses a card identifier.
func (c *Card) UnmarshalText(text []byte) error {
	switch string(text) {
	case "card_a", "a":
		*c = CardA
	case "card_b", "b":
		*c = CardB
	case "card_c", "c":
		*c = CardC
	default:
		return fmt.Errorf("unknown card %q", text)
	}
	return nil
}

// Default payment due days. Card B carries the routine spending and pays
// latest in the month; card C sits between the two.
const (
	DefaultPaymentDayA = 3
	DefaultPaymentDayB = 24
	DefaultPaymentDayC = 8

	DefaultRentDay = 23
)

// DefaultSpendingWeekday is the weekday discretionary spending is charged on.
var DefaultSpendingWeekday = time.Thursday

// CardTerms describes one card's starting position and monthly payment rule.
type CardTerms struct {
	Name string `yaml:"name" json:"name"`

	// Balance is the amount currently owed (non-negative).
	Balance decimal.Decimal `yaml:"balance" json:"balance"`

	// Pending is an authorized charge that has not posted yet. It posts
	// exactly once, one to two days into the projection window.
	Pending decimal.Decimal `yaml:"pending,omitempty" json:"pending,omitempty"`

	// Statement is the amount due on the most recent closing statement.
	// It is the ceiling for minimum-payment projections.
	Statement decimal.Decimal `yaml:"statement" json:"statement"`

	// PaymentAmount is the configured monthly payment for the fixed
	// strategy. Zero means no payment is scheduled.
	PaymentAmount decimal.Decimal `yaml:"payment_amount" json:"payment_amount"`

	// PaymentDay is the day of month the payment fires on.
	PaymentDay int `yaml:"payment_day" json:"payment_day"`
}

// RuleSet is the complete configuration for one projection run. It is never
// mutated during a run; the engine copies its balances into run-local state.
type RuleSet struct {
	Checking decimal.Decimal `yaml:"checking" json:"checking"`

	CardA CardTerms `yaml:"card_a" json:"card_a"`
	CardB CardTerms `yaml:"card_b" json:"card_b"`
	CardC CardTerms `yaml:"card_c" json:"card_c"`

	// PaycheckAmount lands in checking every other week, anchored to
	// PaydayReference (a known historical payday).
	PaycheckAmount  decimal.Decimal `yaml:"paycheck_amount" json:"paycheck_amount"`
	PaydayReference time.Time       `yaml:"payday_reference" json:"payday_reference"`

	Rent    decimal.Decimal `yaml:"rent" json:"rent"`
	RentDay int             `yaml:"rent_day" json:"rent_day"`

	// WeeklySpending is charged to SpendingCard once a week on
	// SpendingWeekday. It is modeled as card debt, not a checking debit.
	WeeklySpending  decimal.Decimal `yaml:"weekly_spending" json:"weekly_spending"`
	SpendingCard    Card            `yaml:"spending_card" json:"spending_card"`
	SpendingWeekday time.Weekday    `yaml:"spending_weekday" json:"spending_weekday"`

	// StartDate is the first simulated day. When nil the caller supplies
	// the start through the engine; the engine never reads a clock itself.
	StartDate *time.Time `yaml:"start_date,omitempty" json:"start_date,omitempty"`
}

// Terms returns the terms for the given card.
func (r *RuleSet) Terms(c Card) *CardTerms {
	switch c {
	case CardA:
		return &r.CardA
	case CardB:
		return &r.CardB
	default:
		return &r.CardC
	}
}

// CardName returns the configured display name for a card, falling back to a
// generic label.
func (r *RuleSet) CardName(c Card) string {
	if t := r.Terms(c); t.Name != "" {
		return t.Name
	}
	switch c {
	case CardA:
		return "Card A"
	case CardB:
		return "Card B"
	default:
		return "Card C"
	}
}

// ApplyDefaults fills in the zero-valued strategy fields.
func (r *RuleSet) ApplyDefaults() {
	if r.CardA.PaymentDay == 0 {
		r.CardA.PaymentDay = DefaultPaymentDayA
	}
	if r.CardB.PaymentDay == 0 {
		r.CardB.PaymentDay = DefaultPaymentDayB
	}
	if r.CardC.PaymentDay == 0 {
		r.CardC.PaymentDay = DefaultPaymentDayC
	}
	if r.RentDay == 0 {
		r.RentDay = DefaultRentDay
	}
	// Sunday is the time.Weekday zero value and is treated as unset.
	if r.SpendingWeekday == time.Sunday {
		r.SpendingWeekday = DefaultSpendingWeekday
	}
}

// TotalCardDebt sums the three starting card balances.
func (r *RuleSet) TotalCardDebt() decimal.Decimal {
	return r.CardA.Balance.Add(r.CardB.Balance).Add(r.CardC.Balance)
}

// BalanceSnapshot is a point-in-time view of the four accounts as delivered
// by an external source (spreadsheet export or bank aggregation). The engine
// is agnostic to its provenance.
type BalanceSnapshot struct {
	Checking decimal.Decimal `json:"checking"`

	Balances   map[Card]decimal.Decimal `json:"balances"`
	Pending    map[Card]decimal.Decimal `json:"pending"`
	Statements map[Card]decimal.Decimal `json:"statements"`
}

// NewBalanceSnapshot returns a snapshot with initialized card maps.
func NewBalanceSnapshot() *BalanceSnapshot {
	return &BalanceSnapshot{
		Balances:   make(map[Card]decimal.Decimal),
		Pending:    make(map[Card]decimal.Decimal),
		Statements: make(map[Card]decimal.Decimal),
	}
}

// Seed overwrites the rule set's starting balances with the snapshot's
// values, leaving every strategy field untouched.
func (r *RuleSet) Seed(s *BalanceSnapshot) {
	if s == nil {
		return
	}
	r.Checking = s.Checking
	for _, c := range Cards {
		t := r.Terms(c)
		if v, ok := s.Balances[c]; ok {
			t.Balance = v
		}
		if v, ok := s.Pending[c]; ok {
			t.Pending = v
		}
		if v, ok := s.Statements[c]; ok {
			t.Statement = v
		}
	}
}
