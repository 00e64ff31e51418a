package comparison

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Benchmark is one named benchmark prediction vector.
type Benchmark struct {
	Name        string
	Predictions []float64
}

// NamedResult pairs a Result with the benchmark it was computed against.
type NamedResult struct {
	Benchmark string `json:"benchmark"`
	*Result
}

// CompareMany compares one candidate against every benchmark concurrently,
// bounded by Options.Workers. Results keep the order of benchmarks. The first
// failure cancels the remaining comparisons.
func (c *Comparator) CompareMany(ctx context.Context, task Task, model []float64, benchmarks []Benchmark, labels []float64) ([]NamedResult, error) {
	if len(benchmarks) == 0 {
		return nil, &InvalidInputError{Field: "benchmarks", Reason: "at least one benchmark is required"}
	}
	seen := make(map[string]bool, len(benchmarks))
	for _, b := range benchmarks {
		if seen[b.Name] {
			return nil, &InvalidInputError{Field: "benchmarks", Reason: fmt.Sprintf("duplicate benchmark name %q", b.Name)}
		}
		seen[b.Name] = true
	}

	results := make([]NamedResult, len(benchmarks))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Workers)

	for i, b := range benchmarks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := c.Compare(Input{Task: task, Model: model, Benchmark: b.Predictions, Labels: labels})
			if err != nil {
				return fmt.Errorf("benchmark %q: %w", b.Name, err)
			}
			results[i] = NamedResult{Benchmark: b.Name, Result: res}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
