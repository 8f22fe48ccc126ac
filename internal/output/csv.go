package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rgehrsitz/cashplan/internal/domain"
)

// CSVFormatter writes the full ledger, one row per simulated day.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(rules *domain.RuleSet, ledger []domain.DailySnapshot) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{
		"Date", "Paycheck", "Spending", "Rent",
		rules.CardName(domain.CardA) + " Payment",
		rules.CardName(domain.CardB) + " Payment",
		rules.CardName(domain.CardC) + " Payment",
		"Checking",
		rules.CardName(domain.CardA),
		rules.CardName(domain.CardB),
		rules.CardName(domain.CardC),
		"Notes",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for i := range ledger {
		row := &ledger[i]
		record := []string{
			row.Date.Format("2006-01-02"),
			row.Paycheck.StringFixed(2),
			row.Spending.StringFixed(2),
			row.Rent.StringFixed(2),
			row.Payments[domain.CardA].StringFixed(2),
			row.Payments[domain.CardB].StringFixed(2),
			row.Payments[domain.CardC].StringFixed(2),
			row.Checking.StringFixed(2),
			row.Cards[domain.CardA].StringFixed(2),
			row.Cards[domain.CardB].StringFixed(2),
			row.Cards[domain.CardC].StringFixed(2),
			row.Notes,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
