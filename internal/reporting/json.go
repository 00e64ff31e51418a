package reporting

import (
	"encoding/json"
	"io"

	"github.com/spboyer/pairtest/internal/comparison"
)

// Formats lists the report formats the compare command can render.
var Formats = []string{"text", "table", "json", "markdown", "html", "junit"}

// Report is the JSON document emitted by --format json.
type Report struct {
	Name      string                   `json:"name,omitempty"`
	Alpha     float64                  `json:"alpha"`
	Options   comparison.Options       `json:"options"`
	Results   []comparison.NamedResult `json:"results"`
	AllPassed bool                     `json:"all_significant"`
}

// NewReport assembles a Report and records whether every comparison is
// significant at alpha.
func NewReport(name string, alpha float64, opts comparison.Options, results []comparison.NamedResult) *Report {
	all := len(results) > 0
	for _, nr := range results {
		if !nr.Significant(alpha) {
			all = false
			break
		}
	}
	return &Report{Name: name, Alpha: alpha, Options: opts, Results: results, AllPassed: all}
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
