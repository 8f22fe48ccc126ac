package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/rgehrsitz/cashplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Summary aggregates a projection ledger into the headline numbers the
// console report and JSON output lead with.
type Summary struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Days  int       `json:"days"`

	TotalPaychecks decimal.Decimal `json:"totalPaychecks"`
	TotalSpending  decimal.Decimal `json:"totalSpending"`
	TotalRent      decimal.Decimal `json:"totalRent"`
	TotalPayments  decimal.Decimal `json:"totalPayments"`

	StartChecking decimal.Decimal          `json:"startChecking"`
	FinalChecking decimal.Decimal          `json:"finalChecking"`
	FinalCards    map[domain.Card]decimal.Decimal `json:"finalCards"`
	FinalCardDebt decimal.Decimal          `json:"finalCardDebt"`

	FirstNegativeDay *time.Time `json:"firstNegativeDay,omitempty"`
}

// Summarize walks a ledger and totals its events.
func Summarize(rules *domain.RuleSet, ledger []domain.DailySnapshot) Summary {
	s := Summary{
		StartChecking: rules.Checking,
		FinalCards:    make(map[domain.Card]decimal.Decimal),
	}
	if len(ledger) == 0 {
		return s
	}

	s.Start = ledger[0].Date
	s.End = ledger[len(ledger)-1].Date
	s.Days = len(ledger)

	for i := range ledger {
		row := &ledger[i]
		s.TotalPaychecks = s.TotalPaychecks.Add(row.Paycheck)
		s.TotalSpending = s.TotalSpending.Add(row.Spending)
		s.TotalRent = s.TotalRent.Add(row.Rent)
		s.TotalPayments = s.TotalPayments.Add(row.TotalPayments())
		if s.FirstNegativeDay == nil && row.IsCheckingNegative() {
			d := row.Date
			s.FirstNegativeDay = &d
		}
	}

	last := ledger[len(ledger)-1]
	s.FinalChecking = last.Checking
	for _, c := range domain.Cards {
		s.FinalCards[c] = last.Cards[c]
	}
	s.FinalCardDebt = last.TotalCardDebt()
	return s
}

// Formatter renders a projection result in one output format.
type Formatter interface {
	Name() string
	Format(rules *domain.RuleSet, ledger []domain.DailySnapshot) ([]byte, error)
}

// GetFormatterByName returns the formatter registered under name, or nil.
func GetFormatterByName(name string) Formatter {
	switch name {
	case "console":
		return ConsoleFormatter{}
	case "csv":
		return CSVFormatter{}
	case "json":
		return JSONFormatter{}
	}
	return nil
}

// FormatCurrency renders a decimal as $1,234.56 (negatives as -$1,234.56).
func FormatCurrency(d decimal.Decimal) string {
	sign := ""
	if d.LessThan(decimal.Zero) {
		sign = "-"
		d = d.Neg()
	}
	s := d.StringFixed(2)
	dot := strings.Index(s, ".")
	intPart, frac := s[:dot], s[dot:]
	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)
	return fmt.Sprintf("%s$%s%s", sign, strings.Join(groups, ","), frac)
}

// ConsoleFormatter renders the summary plus a table of the days on which
// anything fired.
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(rules *domain.RuleSet, ledger []domain.DailySnapshot) ([]byte, error) {
	s := Summarize(rules, ledger)
	var sb strings.Builder

	sb.WriteString("CASH FLOW PROJECTION\n")
	sb.WriteString(strings.Repeat("=", 78) + "\n")
	if s.Days > 0 {
		fmt.Fprintf(&sb, "Window: %s through %s (%d days)\n",
			s.Start.Format("2006-01-02"), s.End.Format("2006-01-02"), s.Days)
	}
	fmt.Fprintf(&sb, "Paychecks: %s   Spending: %s   Rent: %s   Card payments: %s\n",
		FormatCurrency(s.TotalPaychecks), FormatCurrency(s.TotalSpending),
		FormatCurrency(s.TotalRent), FormatCurrency(s.TotalPayments))
	fmt.Fprintf(&sb, "Checking: %s -> %s   Card debt: %s -> %s\n",
		FormatCurrency(s.StartChecking), FormatCurrency(s.FinalChecking),
		FormatCurrency(rules.TotalCardDebt()), FormatCurrency(s.FinalCardDebt))
	if s.FirstNegativeDay != nil {
		fmt.Fprintf(&sb, "Checking first went negative on %s\n", s.FirstNegativeDay.Format("2006-01-02"))
	}
	sb.WriteString("\n")

	nameWidth := 11
	fmt.Fprintf(&sb, "%-11s %*s %*s %*s %*s %*s  %s\n",
		"Date",
		nameWidth, "Paycheck",
		nameWidth, "Payments",
		nameWidth, "Rent",
		nameWidth, "Checking",
		nameWidth, "Card Debt",
		"Notes")
	sb.WriteString(strings.Repeat("-", 78) + "\n")

	for i := range ledger {
		row := &ledger[i]
		if !row.HasEvents() && i != 0 && i != len(ledger)-1 {
			continue
		}
		fmt.Fprintf(&sb, "%-11s %*s %*s %*s %*s %*s  %s\n",
			row.Date.Format("2006-01-02"),
			nameWidth, FormatCurrency(row.Paycheck),
			nameWidth, FormatCurrency(row.TotalPayments()),
			nameWidth, FormatCurrency(row.Rent),
			nameWidth, FormatCurrency(row.Checking),
			nameWidth, FormatCurrency(row.TotalCardDebt()),
			row.Notes)
	}
	sb.WriteString(strings.Repeat("=", 78) + "\n")

	return []byte(sb.String()), nil
}
