package output

import (
	"time"

	"github.com/rgehrsitz/cashplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Event is one discrete upcoming item flattened out of the ledger, suitable
// for an "upcoming payments" feed.
type Event struct {
	Date   time.Time       `json:"date"`
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// UpcomingEvents filters the ledger to the first withinDays days and
// flattens every nonzero event field into a feed item, ordered by date.
// Spending is included; it is a card charge the user will see on the next
// statement.
func UpcomingEvents(rules *domain.RuleSet, ledger []domain.DailySnapshot, withinDays int) []Event {
	if len(ledger) == 0 || withinDays <= 0 {
		return nil
	}
	cutoff := ledger[0].Date.AddDate(0, 0, withinDays)

	var events []Event
	for i := range ledger {
		row := &ledger[i]
		if !row.Date.Before(cutoff) {
			break
		}
		if !row.Paycheck.IsZero() {
			events = append(events, Event{Date: row.Date, Type: "Paycheck", Amount: row.Paycheck})
		}
		for _, c := range domain.Cards {
			if p := row.Payments[c]; !p.IsZero() {
				events = append(events, Event{Date: row.Date, Type: rules.CardName(c) + " Payment", Amount: p})
			}
		}
		if !row.Spending.IsZero() {
			events = append(events, Event{Date: row.Date, Type: "Spending", Amount: row.Spending})
		}
		if !row.Rent.IsZero() {
			events = append(events, Event{Date: row.Date, Type: "Rent", Amount: row.Rent})
		}
	}
	return events
}
