package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/famwallet/famwallet/internal/stats"
)

// ErrNoSpending is returned by Chart when there are no debits to plot.
var ErrNoSpending = errors.New("no debit transactions to chart")

// ChartFileName is the default name of the spending chart.
const ChartFileName = "spending.png"

// Chart renders debit totals per category as a PNG bar chart.
func Chart(w io.Writer, totals []stats.CategoryTotal) error {
	var bars []chart.Value
	highest := 0.0
	for _, ct := range totals {
		if ct.Debit.IsZero() {
			continue
		}
		bars = append(bars, chart.Value{
			Label: string(ct.Category),
			Value: ct.Debit.InexactFloat64(),
		})
		highest = max(highest, ct.Debit.InexactFloat64())
	}
	if len(bars) == 0 {
		return ErrNoSpending
	}

	barChart := chart.BarChart{
		Title: "Spending by category",
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  800,
		Height: 400,
		Bars:   bars,
	}
	// A zero-height range fails to render, so anchor the axis at zero.
	barChart.YAxis.Range = &chart.ContinuousRange{Min: 0, Max: highest * 1.1}
	barChart.YAxis.ValueFormatter = func(v interface{}) string {
		if vf, isFloat := v.(float64); isFloat {
			return fmt.Sprintf("%.0f", vf)
		}
		return ""
	}

	if err := barChart.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}
