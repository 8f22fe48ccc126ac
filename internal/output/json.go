package output

import (
	"encoding/json"

	"github.com/rgehrsitz/cashplan/internal/domain"
)

// JSONFormatter emits the summary plus the full ledger.
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

func (JSONFormatter) Format(rules *domain.RuleSet, ledger []domain.DailySnapshot) ([]byte, error) {
	payload := struct {
		Summary Summary                `json:"summary"`
		Ledger  []domain.DailySnapshot `json:"ledger"`
	}{
		Summary: Summarize(rules, ledger),
		Ledger:  ledger,
	}
	return json.MarshalIndent(payload, "", "  ")
}
