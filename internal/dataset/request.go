package dataset

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spboyer/pairtest/internal/comparison"
	"github.com/spboyer/pairtest/internal/validation"
	"gopkg.in/yaml.v3"
)

// Request is a self-contained comparison document, written as YAML or JSON.
// Exactly one of PredictionsBenchmark and Benchmarks is set.
type Request struct {
	Name                 string               `yaml:"name,omitempty"`
	Task                 string               `yaml:"task"`
	PredictionsModel     []float64            `yaml:"predictions_model"`
	PredictionsBenchmark []float64            `yaml:"predictions_benchmark,omitempty"`
	Benchmarks           map[string][]float64 `yaml:"benchmarks,omitempty"`
	ActualLabels         []float64            `yaml:"actual_labels"`
	Options              map[string]any       `yaml:"options,omitempty"`
}

// SchemaError lists every schema violation found in a document.
type SchemaError struct {
	Path   string
	Errors []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s does not match the request schema:\n  %s", e.Path, strings.Join(e.Errors, "\n  "))
}

// LoadRequest reads, schema-validates, and decodes a request document.
func LoadRequest(path string) (*Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("request: read %s: %w", path, err)
	}
	return ParseRequest(path, data)
}

// ParseRequest validates and decodes request bytes. path is only used in
// error messages.
func ParseRequest(path string, data []byte) (*Request, error) {
	if errs := validation.ValidateRequestBytes(data); len(errs) > 0 {
		return nil, &SchemaError{Path: path, Errors: errs}
	}

	var req Request
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("request: parse %s: %w", path, err)
	}
	return &req, nil
}

// BenchmarkList returns the request's benchmarks in a stable order. A single
// predictions_benchmark vector is named "benchmark"; named benchmarks are
// sorted by name.
func (r *Request) BenchmarkList() []comparison.Benchmark {
	if r.PredictionsBenchmark != nil {
		return []comparison.Benchmark{{Name: "benchmark", Predictions: r.PredictionsBenchmark}}
	}
	names := make([]string, 0, len(r.Benchmarks))
	for name := range r.Benchmarks {
		names = append(names, name)
	}
	sort.Strings(names)

	list := make([]comparison.Benchmark, len(names))
	for i, name := range names {
		list[i] = comparison.Benchmark{Name: name, Predictions: r.Benchmarks[name]}
	}
	return list
}
