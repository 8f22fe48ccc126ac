package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailySnapshot records one simulated day: the amounts that fired and the
// post-event running balances. Snapshots are append-only; the engine never
// mutates one after emitting it.
type DailySnapshot struct {
	Date time.Time `json:"date"`

	Paycheck decimal.Decimal `json:"paycheck"`
	Spending decimal.Decimal `json:"spending"`
	Rent     decimal.Decimal `json:"rent"`

	Payments map[Card]decimal.Decimal `json:"payments"`

	Checking decimal.Decimal          `json:"checking"`
	Cards    map[Card]decimal.Decimal `json:"cards"`

	// Notes lists the events that fired this day, comma separated, plus a
	// warning marker when the day's events took checking negative.
	Notes string `json:"notes"`
}

// NewDailySnapshot creates a snapshot with initialized card maps.
func NewDailySnapshot(date time.Time) *DailySnapshot {
	return &DailySnapshot{
		Date:     date,
		Payments: make(map[Card]decimal.Decimal),
		Cards:    make(map[Card]decimal.Decimal),
	}
}

// TotalPayments sums the day's card payments.
func (s *DailySnapshot) TotalPayments() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.Payments {
		total = total.Add(p)
	}
	return total
}

// TotalCardDebt sums the post-event card balances.
func (s *DailySnapshot) TotalCardDebt() decimal.Decimal {
	total := decimal.Zero
	for _, b := range s.Cards {
		total = total.Add(b)
	}
	return total
}

// NetPosition is checking minus total card debt.
func (s *DailySnapshot) NetPosition() decimal.Decimal {
	return s.Checking.Sub(s.TotalCardDebt())
}

// HasEvents reports whether any event fired this day.
func (s *DailySnapshot) HasEvents() bool {
	if !s.Paycheck.IsZero() || !s.Spending.IsZero() || !s.Rent.IsZero() {
		return true
	}
	for _, p := range s.Payments {
		if !p.IsZero() {
			return true
		}
	}
	return false
}

// IsCheckingNegative reports whether checking ended the day below zero.
func (s *DailySnapshot) IsCheckingNegative() bool {
	return s.Checking.LessThan(decimal.Zero)
}
