package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"Hindsight/internal/model"
)

// FormatRunReport renders one simulation result as a plain-text block.
func FormatRunReport(res *model.SimulationResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Simulation %s | %s -> %s\n",
		res.Symbol, res.Begin.Format("2006-01-02"), res.End.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("  total profit:   %s (%d sells)\n",
		humanize.CommafWithDigits(res.TotalProfit(), 2), len(res.Profits)))
	b.WriteString(fmt.Sprintf("  remaining lots: %d\n", len(res.RemainingLots)))
	b.WriteString(fmt.Sprintf("  max lots open:  %d\n", res.Stats.MaxLotsObserved))

	thresholds := make([]int, 0, len(res.Stats.DepthBreachDays))
	for t := range res.Stats.DepthBreachDays {
		thresholds = append(thresholds, t)
	}
	sort.Ints(thresholds)
	for _, t := range thresholds {
		b.WriteString(fmt.Sprintf("  days with %d+ lots: %d\n", t, res.Stats.DepthBreachDays[t]))
	}

	return b.String()
}

// FormatLabelSummary renders a one-look summary of a label build.
func FormatLabelSummary(symbol string, rows []model.LabeledRow) string {
	if len(rows) == 0 {
		return fmt.Sprintf("Labels %s | no rows", symbol)
	}

	positive := 0
	for _, row := range rows {
		if row.ShouldTrade {
			positive++
		}
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Labels %s | %s -> %s\n",
		symbol, rows[0].Date.Format("2006-01-02"), rows[len(rows)-1].Date.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("  rows:         %s\n", humanize.Comma(int64(len(rows)))))
	b.WriteString(fmt.Sprintf("  should trade: %d (%.1f%%)\n",
		positive, 100*float64(positive)/float64(len(rows))))
	return b.String()
}
