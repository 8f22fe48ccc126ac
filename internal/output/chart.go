package output

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/cashplan/internal/domain"
)

var (
	chartTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	chartAxisStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	chartLegendStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// DataSeries is a single line in a chart.
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart renders a simple line chart of balances over time.
type ASCIIChart struct {
	Title  string
	Series []*DataSeries
	Labels []string
	Width  int
	Height int
}

// NewASCIIChart creates a chart with default dimensions.
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:  title,
		Width:  72,
		Height: 16,
	}
}

// AddSeries appends a data series.
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Color: color})
	return c
}

// WithLabels sets the X-axis labels.
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// BalanceChart builds the standard two-series chart (checking and total card
// debt against date) from a projection ledger.
func BalanceChart(ledger []domain.DailySnapshot) *ASCIIChart {
	checking := make([]float64, len(ledger))
	debt := make([]float64, len(ledger))
	labels := make([]string, len(ledger))
	for i := range ledger {
		checking[i], _ = ledger[i].Checking.Float64()
		debt[i], _ = ledger[i].TotalCardDebt().Float64()
		labels[i] = ledger[i].Date.Format("Jan 2")
	}
	return NewASCIIChart("Projected Balances").
		AddSeries("Checking", checking, lipgloss.Color("10")).
		AddSeries("Card Debt", debt, lipgloss.Color("9")).
		WithLabels(labels)
}

// Render returns the styled chart.
func (c *ASCIIChart) Render() string {
	if len(c.Series) == 0 {
		return "No data to display"
	}

	var content strings.Builder
	if c.Title != "" {
		content.WriteString(chartTitleStyle.Render(c.Title))
		content.WriteString("\n\n")
	}

	minVal, maxVal := c.globalMinMax()
	content.WriteString(c.renderGrid(minVal, maxVal))

	if len(c.Series) > 1 {
		content.WriteString("\n")
		content.WriteString(c.renderLegend())
		content.WriteString("\n")
	}
	return content.String()
}

func (c *ASCIIChart) globalMinMax() (float64, float64) {
	minVal := math.Inf(1)
	maxVal := math.Inf(-1)
	for _, series := range c.Series {
		for _, point := range series.Points {
			if point < minVal {
				minVal = point
			}
			if point > maxVal {
				maxVal = point
			}
		}
	}
	if minVal == maxVal {
		maxVal = minVal + 1
	}
	padding := (maxVal - minVal) * 0.1
	return minVal - padding, maxVal + padding
}

func (c *ASCIIChart) renderGrid(minVal, maxVal float64) string {
	yAxisWidth := 12
	chartWidth := c.Width - yAxisWidth

	grid := make([][]rune, c.Height)
	for i := range grid {
		grid[i] = make([]rune, chartWidth)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	for seriesIdx, series := range c.Series {
		if len(series.Points) < 2 {
			continue
		}
		pointChar := seriesChar(seriesIdx)
		for i := range series.Points {
			x := int(float64(i) / float64(len(series.Points)-1) * float64(chartWidth-1))
			y := c.Height - 1 - int((series.Points[i]-minVal)/(maxVal-minVal)*float64(c.Height-1))
			if x >= 0 && x < chartWidth && y >= 0 && y < c.Height {
				grid[y][x] = pointChar
			}
			if i > 0 {
				prevX := int(float64(i-1) / float64(len(series.Points)-1) * float64(chartWidth-1))
				prevY := c.Height - 1 - int((series.Points[i-1]-minVal)/(maxVal-minVal)*float64(c.Height-1))
				drawLine(grid, prevX, prevY, x, y, pointChar)
			}
		}
	}

	var output strings.Builder
	valueRange := maxVal - minVal
	for i, row := range grid {
		yValue := maxVal - (float64(i)/float64(c.Height-1))*valueRange
		yAxis := chartAxisStyle.Width(yAxisWidth).Align(lipgloss.Right).Render(formatChartValue(yValue))
		output.WriteString(yAxis)
		output.WriteString(" │ ")
		output.WriteString(string(row))
		output.WriteString("\n")
	}

	output.WriteString(strings.Repeat(" ", yAxisWidth))
	output.WriteString(" └")
	output.WriteString(strings.Repeat("─", chartWidth))
	output.WriteString("\n")

	if len(c.Labels) > 0 {
		output.WriteString(c.renderXAxisLabels(yAxisWidth, chartWidth))
		output.WriteString("\n")
	}
	return output.String()
}

func seriesChar(index int) rune {
	chars := []rune{'●', '■', '▲', '♦'}
	return chars[index%len(chars)]
}

// drawLine connects two grid points with Bresenham's algorithm, never
// overwriting an existing point.
func drawLine(grid [][]rune, x0, y0, x1, y1 int, char rune) {
	dx := intAbs(x1 - x0)
	dy := intAbs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	x, y := x0, y0
	for {
		if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[0]) {
			if grid[y][x] == ' ' {
				grid[y][x] = char
			}
		}
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

func (c *ASCIIChart) renderXAxisLabels(yAxisWidth, chartWidth int) string {
	maxLabels := 5
	step := len(c.Labels) / maxLabels
	if step == 0 {
		step = 1
	}

	var output strings.Builder
	output.WriteString(strings.Repeat(" ", yAxisWidth+3))
	for i := 0; i < len(c.Labels); i += step {
		if i > 0 {
			spacing := chartWidth/maxLabels - len(c.Labels[i-step])
			if spacing < 1 {
				spacing = 1
			}
			output.WriteString(strings.Repeat(" ", spacing))
		}
		output.WriteString(chartAxisStyle.Render(c.Labels[i]))
	}
	return output.String()
}

func (c *ASCIIChart) renderLegend() string {
	var items []string
	for i, series := range c.Series {
		symbol := lipgloss.NewStyle().Foreground(series.Color).Render(string(seriesChar(i)))
		items = append(items, fmt.Sprintf("%s %s", symbol, series.Name))
	}
	return chartLegendStyle.Render("Legend: " + strings.Join(items, "  "))
}

func formatChartValue(value float64) string {
	if math.Abs(value) >= 1000000 {
		return fmt.Sprintf("$%.1fM", value/1000000)
	} else if math.Abs(value) >= 1000 {
		return fmt.Sprintf("$%.0fK", value/1000)
	}
	return fmt.Sprintf("$%.0f", value)
}

func intAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
