package output

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/cashplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBalanceChartRender(t *testing.T) {
	ledger := make([]domain.DailySnapshot, 0, 10)
	for i := 0; i < 10; i++ {
		snap := domain.NewDailySnapshot(time.Date(2025, 9, 1+i, 0, 0, 0, 0, time.UTC))
		snap.Checking = decimal.NewFromInt(int64(1000 + 100*i))
		snap.Cards[domain.CardA] = decimal.NewFromInt(int64(500 - 10*i))
		ledger = append(ledger, *snap)
	}

	out := BalanceChart(ledger).Render()

	assert.Contains(t, out, "Projected Balances")
	assert.Contains(t, out, "Legend:")
	assert.Contains(t, out, "Checking")
	assert.Contains(t, out, "Card Debt")
	assert.Contains(t, out, "Sep 1")
	assert.Contains(t, out, "●", "first series plotted")
	assert.Contains(t, out, "■", "second series plotted")
}

func TestASCIIChartEmpty(t *testing.T) {
	assert.Equal(t, "No data to display", NewASCIIChart("x").Render())
}

func TestASCIIChartFlatSeries(t *testing.T) {
	chart := NewASCIIChart("flat").
		AddSeries("only", []float64{5, 5, 5, 5}, lipgloss.Color("10"))

	out := chart.Render()
	assert.Contains(t, out, "●")
	assert.NotContains(t, out, "Legend:", "single series needs no legend")

	// Every grid row still renders when min equals max.
	assert.GreaterOrEqual(t, strings.Count(out, "\n"), chart.Height)
}

func TestFormatChartValue(t *testing.T) {
	assert.Equal(t, "$950", formatChartValue(950))
	assert.Equal(t, "$12K", formatChartValue(12400))
	assert.Equal(t, "$2.5M", formatChartValue(2_500_000))
	assert.Equal(t, "$-3K", formatChartValue(-3000))
}
