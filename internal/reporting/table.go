package reporting

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spboyer/pairtest/internal/comparison"
)

var tableHeaders = []string{"Benchmark", "N", "Mean err (model)", "Mean err (bench)", "T-test p", "Wilcoxon p", "Verdict"}

// WriteTable prints results as an aligned terminal table. Column widths are
// measured in display cells so wide benchmark names stay aligned.
func WriteTable(w io.Writer, results []comparison.NamedResult, alpha float64) error {
	rows := make([][]string, 0, len(results))
	for _, nr := range results {
		rows = append(rows, []string{
			nr.Benchmark,
			fmt.Sprintf("%d", nr.N),
			fmt.Sprintf("%.4f", nr.MeanErrorModel),
			fmt.Sprintf("%.4f", nr.MeanErrorBenchmark),
			FormatP(nr.TPValue),
			FormatP(nr.WilcoxonPValue),
			verdictMark(nr.Result, alpha),
		})
	}

	widths := make([]int, len(tableHeaders))
	for i, h := range tableHeaders {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	if err := writeRow(w, tableHeaders, widths); err != nil {
		return err
	}
	sep := make([]string, len(widths))
	for i, wd := range widths {
		sep[i] = strings.Repeat("─", wd)
	}
	if err := writeRow(w, sep, widths); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeRow(w, row, widths); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(w io.Writer, cells []string, widths []int) error {
	padded := make([]string, len(cells))
	for i, c := range cells {
		if i == len(cells)-1 {
			padded[i] = c
			continue
		}
		padded[i] = padRight(c, widths[i])
	}
	_, err := fmt.Fprintln(w, strings.Join(padded, "  "))
	return err
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

func verdictMark(r *comparison.Result, alpha float64) string {
	switch {
	case r.NoDifference:
		return "— identical"
	case r.Significant(alpha):
		return "✅ better"
	case r.Mixed(alpha):
		return "⚠️ mixed"
	default:
		return "❌ not significant"
	}
}
