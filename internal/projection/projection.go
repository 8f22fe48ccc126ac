package projection

import (
	"strings"
	"time"

	"github.com/rgehrsitz/cashplan/internal/domain"
	"github.com/rgehrsitz/cashplan/internal/schedule"
	"github.com/shopspring/decimal"
)

// Annotation markers appended after the fired-event list.
const (
	noteNegative = "[NEGATIVE]"
	noteStopped  = "[STOPPED: negative cash]"
)

// dayState is the mutable state threaded through the day loop: the four
// running balances plus the two cursors the resolver predicates depend on.
// It is seeded from the rule set and never written back to it.
type dayState struct {
	start    time.Time
	checking decimal.Decimal
	cards    map[domain.Card]decimal.Decimal

	pendingPosted bool
	lastSpend     time.Time
}

func newDayState(rules *domain.RuleSet, start time.Time) *dayState {
	st := &dayState{
		start:    start,
		checking: rules.Checking,
		cards: map[domain.Card]decimal.Decimal{
			domain.CardA: rules.CardA.Balance,
			domain.CardB: rules.CardB.Balance,
			domain.CardC: rules.CardC.Balance,
		},
		// One week back so spending is eligible on day one.
		lastSpend: start.AddDate(0, 0, -7),
	}
	return st
}

// Project runs the fixed-payment projection over the requested horizon and
// returns one snapshot per calendar day, both endpoints inclusive.
//
// The window ends at the last day of the start month when an explicit start
// date is combined with a one-month horizon (mid-month starts produce a
// partial first month), thirty days out for a one-month horizon with no
// explicit start, and start plus the horizon in calendar months otherwise.
func (e *Engine) Project(rules *domain.RuleSet, months int) []domain.DailySnapshot {
	if months <= 0 {
		months = 1
	}
	start := e.resolveStart(rules)
	end := projectionEnd(start, months, rules.StartDate != nil)

	e.Logger.Debugf("projecting %s through %s", start.Format("2006-01-02"), end.Format("2006-01-02"))

	st := newDayState(rules, start)
	ledger := make([]domain.DailySnapshot, 0, schedule.DaysBetween(start, end)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		ledger = append(ledger, *e.stepDay(rules, st, d, false))
	}
	return ledger
}

// ProjectMinimumPayments runs the minimum-payment variant: each card pays
// min(statement balance, current balance) on its due day, and the projection
// stops after the first day checking ends negative. It answers how long
// minimum payments can be sustained before cash runs out.
func (e *Engine) ProjectMinimumPayments(rules *domain.RuleSet, maxMonths int) []domain.DailySnapshot {
	if maxMonths <= 0 {
		maxMonths = 12
	}
	start := e.resolveStart(rules)
	end := start.AddDate(0, maxMonths, 0)

	st := newDayState(rules, start)
	var ledger []domain.DailySnapshot
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		snap := e.stepDay(rules, st, d, true)
		if snap.IsCheckingNegative() {
			snap.Notes = appendNote(snap.Notes, noteStopped)
			ledger = append(ledger, *snap)
			e.Logger.Infof("minimum payments exhausted cash on %s", d.Format("2006-01-02"))
			break
		}
		ledger = append(ledger, *snap)
	}
	return ledger
}

// ChainSegment is one leg of a chained projection: a rule set (whose
// strategy fields may differ per segment) and its horizon in months.
type ChainSegment struct {
	Rules  domain.RuleSet
	Months int
}

// ProjectChained runs consecutive projections where each segment starts the
// day after the previous one ends, seeded with its final balances. Pending
// charges post during the first segment only. The result is one continuous
// ledger; with identical strategy parameters across segments it matches a
// single projection over the combined window day for day.
func (e *Engine) ProjectChained(segments []ChainSegment) []domain.DailySnapshot {
	var ledger []domain.DailySnapshot
	for i := range segments {
		rules := segments[i].Rules
		if i > 0 && len(ledger) > 0 {
			last := ledger[len(ledger)-1]
			rules.Checking = last.Checking
			for _, c := range domain.Cards {
				t := rules.Terms(c)
				t.Balance = last.Cards[c]
				t.Pending = decimal.Zero
			}
			next := last.Date.AddDate(0, 0, 1)
			rules.StartDate = &next
		}
		ledger = append(ledger, e.Project(&rules, segments[i].Months)...)
	}
	return ledger
}

// stepDay applies one day's events to the running state in the fixed
// intra-day order: pending post, paycheck, card payments, weekly spending,
// rent. It returns the day's snapshot.
func (e *Engine) stepDay(rules *domain.RuleSet, st *dayState, date time.Time, minimum bool) *domain.DailySnapshot {
	snap := domain.NewDailySnapshot(date)
	var fired []string
	checkingAtOpen := st.checking

	// Pending charges post exactly once, one to two days in. The flag
	// stays down until something actually posts, so a rule set with no
	// pending amounts never reports a posting event.
	if !st.pendingPosted {
		if off := schedule.DaysBetween(st.start, date); off >= 1 && off <= 2 {
			for _, c := range domain.Cards {
				p := rules.Terms(c).Pending
				if p.IsZero() {
					continue
				}
				st.cards[c] = st.cards[c].Add(p)
				fired = append(fired, "Pending "+rules.CardName(c))
				st.pendingPosted = true
			}
		}
	}

	if schedule.IsPayday(date, rules.PaydayReference) {
		snap.Paycheck = rules.PaycheckAmount
		st.checking = st.checking.Add(rules.PaycheckAmount)
		fired = append(fired, "Payday")
	}

	// Each card is gated by its own due day. Payments are capped at the
	// card balance and never drive it negative; checking has no floor.
	for _, c := range domain.Cards {
		terms := rules.Terms(c)
		if !schedule.IsMonthlyDue(date, terms.PaymentDay) {
			continue
		}
		amount := terms.PaymentAmount
		label := rules.CardName(c) + " Payment"
		if minimum {
			amount = terms.Statement
			label = rules.CardName(c) + " Min"
		}
		if amount.LessThanOrEqual(decimal.Zero) || st.cards[c].LessThanOrEqual(decimal.Zero) {
			continue
		}
		payment := decimal.Min(amount, st.cards[c])
		st.checking = st.checking.Sub(payment)
		st.cards[c] = st.cards[c].Sub(payment)
		snap.Payments[c] = payment
		fired = append(fired, label)
	}

	// Weekly spending is charged to the designated card, not debited from
	// checking: buy now, pay the statement later.
	if date.Weekday() == rules.SpendingWeekday && schedule.WeeklyDue(date, st.lastSpend) {
		snap.Spending = rules.WeeklySpending
		st.cards[rules.SpendingCard] = st.cards[rules.SpendingCard].Add(rules.WeeklySpending)
		st.lastSpend = date
		if !rules.WeeklySpending.IsZero() {
			fired = append(fired, "Spending")
		}
	}

	if schedule.IsMonthlyDue(date, rules.RentDay) {
		snap.Rent = rules.Rent
		st.checking = st.checking.Sub(rules.Rent)
		fired = append(fired, "Rent")
	}

	snap.Checking = st.checking
	for _, c := range domain.Cards {
		snap.Cards[c] = st.cards[c]
	}

	notes := strings.Join(fired, ", ")
	if !minimum && checkingAtOpen.GreaterThanOrEqual(decimal.Zero) && st.checking.LessThan(decimal.Zero) {
		notes = appendNote(notes, noteNegative)
	}
	snap.Notes = notes
	return snap
}

func (e *Engine) resolveStart(rules *domain.RuleSet) time.Time {
	if rules.StartDate != nil {
		return schedule.DateOf(*rules.StartDate)
	}
	return schedule.DateOf(e.Today)
}

func projectionEnd(start time.Time, months int, explicitStart bool) time.Time {
	if months == 1 {
		if explicitStart {
			return schedule.EndOfMonth(start)
		}
		return start.AddDate(0, 0, 30)
	}
	return start.AddDate(0, months, 0)
}

func appendNote(notes, marker string) string {
	if notes == "" {
		return marker
	}
	return notes + " " + marker
}
