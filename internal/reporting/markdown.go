package reporting

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/spboyer/pairtest/internal/comparison"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// FormatMarkdown renders results as a GitHub-flavored markdown report.
func FormatMarkdown(title string, results []comparison.NamedResult, alpha float64) string {
	var b strings.Builder

	if title == "" {
		title = "Model comparison"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "One-sided p-values for the alternative that the candidate's errors are smaller (alpha = %s).\n\n", FormatP(alpha))

	b.WriteString("| Benchmark | Task | Loss | N | Mean error (model) | Mean error (benchmark) | T-test p | Wilcoxon p | Verdict |\n")
	b.WriteString("|---|---|---|---:|---:|---:|---:|---:|---|\n")
	for _, nr := range results {
		r := nr.Result
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %.4f | %.4f | %s | %s | %s |\n",
			escapeCell(nr.Benchmark), r.Task, r.Loss, r.N,
			r.MeanErrorModel, r.MeanErrorBenchmark,
			FormatP(r.TPValue), FormatP(r.WilcoxonPValue), Verdict(r, alpha))
	}

	var withCI []comparison.NamedResult
	for _, nr := range results {
		if nr.Bootstrap != nil {
			withCI = append(withCI, nr)
		}
	}
	if len(withCI) > 0 {
		b.WriteString("\n## Bootstrap intervals\n\n")
		b.WriteString("| Benchmark | Level | Mean diff | Lower | Upper | Reading |\n")
		b.WriteString("|---|---:|---:|---:|---:|---|\n")
		for _, nr := range withCI {
			ci := nr.Bootstrap
			fmt.Fprintf(&b, "| %s | %.0f%% | %.4f | %.4f | %.4f | %s |\n",
				escapeCell(nr.Benchmark), ci.ConfidenceLevel*100, ci.Mean, ci.Lower, ci.Upper, IntervalReading(*ci))
		}
	}

	return b.String()
}

// RenderHTML converts a markdown report into a standalone HTML page.
func RenderHTML(title, markdown string) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var body bytes.Buffer
	if err := md.Convert([]byte(markdown), &body); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n", html.EscapeString(title))
	out.Write(body.Bytes())
	out.WriteString("</body>\n</html>\n")
	return out.Bytes(), nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
