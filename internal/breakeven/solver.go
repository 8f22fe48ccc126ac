// Package breakeven answers "how much can I put toward the cards every month
// before cash runs out": a binary search over a uniform per-card monthly
// payment, feasibility judged by the projection never taking checking
// negative.
package breakeven

import (
	"github.com/rgehrsitz/cashplan/internal/domain"
	"github.com/rgehrsitz/cashplan/internal/projection"
	"github.com/shopspring/decimal"
)

// SolverOptions bound the search.
type SolverOptions struct {
	MaxIterations int
	// Tolerance is the search interval width, in currency, at which the
	// solver stops.
	Tolerance decimal.Decimal
}

// DefaultSolverOptions returns the standard search bounds.
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MaxIterations: 60,
		Tolerance:     decimal.NewFromInt(1),
	}
}

// Result is the outcome of a solve.
type Result struct {
	// Payment is the largest uniform per-card monthly payment that kept
	// checking non-negative over the horizon.
	Payment decimal.Decimal `json:"payment"`

	// Sustainable is false when even zero payments run checking
	// negative; Payment is zero in that case.
	Sustainable bool `json:"sustainable"`

	FinalChecking decimal.Decimal `json:"finalChecking"`
	FinalCardDebt decimal.Decimal `json:"finalCardDebt"`
	Iterations    int             `json:"iterations"`
}

// Solver searches for the maximum sustainable payment.
type Solver struct {
	Engine  *projection.Engine
	Options SolverOptions
}

// NewSolver creates a solver.
func NewSolver(engine *projection.Engine, options SolverOptions) *Solver {
	return &Solver{Engine: engine, Options: options}
}

// NewDefaultSolver creates a solver with default options.
func NewDefaultSolver(engine *projection.Engine) *Solver {
	return NewSolver(engine, DefaultSolverOptions())
}

// Solve binary-searches the largest uniform per-card payment the rule set
// sustains over the horizon. The rule set's own payment amounts are ignored;
// everything else (income, rent, spending, due days) is kept.
func (s *Solver) Solve(rules *domain.RuleSet, months int) *Result {
	iterations := 0

	feasible := func(payment decimal.Decimal) (bool, []domain.DailySnapshot) {
		iterations++
		trial := *rules
		for _, c := range domain.Cards {
			trial.Terms(c).PaymentAmount = payment
		}
		ledger := s.Engine.Project(&trial, months)
		for i := range ledger {
			if ledger[i].IsCheckingNegative() {
				return false, ledger
			}
		}
		return true, ledger
	}

	ok, ledger := feasible(decimal.Zero)
	if !ok {
		return &Result{Sustainable: false, Iterations: iterations}
	}

	// Grow the upper bound until it breaks or clearly exceeds any
	// plausible payment.
	lo := decimal.Zero
	hi := decimal.NewFromInt(500)
	bound := decimal.NewFromInt(1_000_000)
	bestLedger := ledger
	for {
		ok, l := feasible(hi)
		if !ok {
			break
		}
		lo = hi
		bestLedger = l
		if hi.GreaterThanOrEqual(bound) {
			return resultFrom(lo, bestLedger, iterations)
		}
		hi = hi.Mul(decimal.NewFromInt(2))
	}

	for iterations < s.Options.MaxIterations && hi.Sub(lo).GreaterThan(s.Options.Tolerance) {
		mid := lo.Add(hi).Div(decimal.NewFromInt(2))
		if ok, l := feasible(mid); ok {
			lo = mid
			bestLedger = l
		} else {
			hi = mid
		}
	}

	return resultFrom(lo, bestLedger, iterations)
}

func resultFrom(payment decimal.Decimal, ledger []domain.DailySnapshot, iterations int) *Result {
	r := &Result{
		Payment:     payment,
		Sustainable: true,
		Iterations:  iterations,
	}
	if len(ledger) > 0 {
		last := ledger[len(ledger)-1]
		r.FinalChecking = last.Checking
		r.FinalCardDebt = last.TotalCardDebt()
	}
	return r
}
