package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/cashplan/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table.
type TableFormatter struct{}

// Format generates a formatted table comparing strategies.
func (tf *TableFormatter) Format(set *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("PAYMENT STRATEGY COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Horizon: %d month(s)\n\n", set.Months))

	nameWidth := 20
	numWidth := 15

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Strategy",
		numWidth, "Final Checking",
		numWidth, "Final Debt",
		numWidth, "Total Paid",
		numWidth, "Days Solvent"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	sb.WriteString(tf.formatRow(set.BaseResult, nameWidth, numWidth))
	for _, alt := range set.AlternativeResults {
		sb.WriteString(tf.formatRow(alt, nameWidth, numWidth))
	}
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(set.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range set.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s (%s):\n", alt.StrategyName, alt.Description))
			sb.WriteString(fmt.Sprintf("  Final checking: %s%s\n",
				tf.deltaSymbol(alt.CheckingDiffFromBase),
				output.FormatCurrency(alt.CheckingDiffFromBase.Abs())))
			sb.WriteString(fmt.Sprintf("  Final card debt: %s%s\n",
				tf.deltaSymbol(alt.DebtDiffFromBase),
				output.FormatCurrency(alt.DebtDiffFromBase.Abs())))
			if alt.FirstNegativeDay != nil {
				sb.WriteString(fmt.Sprintf("  Checking goes negative on %s\n",
					alt.FirstNegativeDay.Format("2006-01-02")))
			}
		}
	}

	return sb.String()
}

func (tf *TableFormatter) formatRow(r ComparisonResult, nameWidth, numWidth int) string {
	return fmt.Sprintf("%-*s %*s %*s %*s %*d\n",
		nameWidth, r.StrategyName,
		numWidth, output.FormatCurrency(r.FinalChecking),
		numWidth, output.FormatCurrency(r.FinalCardDebt),
		numWidth, output.FormatCurrency(r.TotalPayments),
		numWidth, r.DaysSustained)
}

func (tf *TableFormatter) deltaSymbol(d decimal.Decimal) string {
	if d.LessThan(decimal.Zero) {
		return "-"
	}
	return "+"
}
