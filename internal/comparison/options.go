package comparison

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spboyer/pairtest/internal/statistics"
)

// Default values for comparison options.
const (
	DefaultDecimals        = 4
	DefaultConfidenceLevel = 0.95
	DefaultSeed            = 1
	DefaultWorkers         = 4
	maxDecimals            = 15
)

// Options configures a Comparator. The zero value is not valid; start from
// DefaultOptions.
type Options struct {
	// Round rounds the reported one-sided p-values to Decimals places.
	Round    bool `mapstructure:"round" json:"round"`
	Decimals int  `mapstructure:"decimals" json:"decimals"`

	WilcoxonMethod statistics.Method     `mapstructure:"wilcoxon_method" json:"wilcoxon_method"`
	ZeroMethod     statistics.ZeroMethod `mapstructure:"zero_method" json:"zero_method"`
	Correction     bool                  `mapstructure:"continuity_correction" json:"continuity_correction"`

	// RegressionLoss selects the regression error vector. Classification
	// always uses log-loss.
	RegressionLoss Loss `mapstructure:"loss" json:"loss"`

	// BootstrapIterations > 0 adds a bootstrap interval over the paired
	// error differences. A negative Seed draws a random seed.
	BootstrapIterations int     `mapstructure:"bootstrap_iterations" json:"bootstrap_iterations"`
	ConfidenceLevel     float64 `mapstructure:"confidence_level" json:"confidence_level"`
	Seed                int64   `mapstructure:"seed" json:"seed"`

	// Workers bounds the concurrent comparisons run by CompareMany.
	Workers int `mapstructure:"workers" json:"workers"`
}

// DefaultOptions returns options matching the reference behavior: four
// decimal places, automatic signed-rank method, wilcox zero handling and
// absolute regression error.
func DefaultOptions() Options {
	return Options{
		Round:           true,
		Decimals:        DefaultDecimals,
		WilcoxonMethod:  statistics.MethodAuto,
		ZeroMethod:      statistics.ZeroWilcox,
		RegressionLoss:  LossAbsolute,
		ConfidenceLevel: DefaultConfidenceLevel,
		Seed:            DefaultSeed,
		Workers:         DefaultWorkers,
	}
}

// Validate checks option values and normalizes empty names to their defaults.
func (o *Options) Validate() error {
	if o.Decimals < 0 || o.Decimals > maxDecimals {
		return &InvalidInputError{Field: "decimals", Reason: fmt.Sprintf("must be between 0 and %d, got %d", maxDecimals, o.Decimals)}
	}
	m, err := statistics.ParseMethod(string(o.WilcoxonMethod))
	if err != nil {
		return &InvalidInputError{Field: "wilcoxon_method", Reason: err.Error()}
	}
	o.WilcoxonMethod = m

	z, err := statistics.ParseZeroMethod(string(o.ZeroMethod))
	if err != nil {
		return &InvalidInputError{Field: "zero_method", Reason: err.Error()}
	}
	o.ZeroMethod = z

	loss, err := ParseRegressionLoss(string(o.RegressionLoss))
	if err != nil {
		return err
	}
	o.RegressionLoss = loss

	if o.BootstrapIterations < 0 {
		return &InvalidInputError{Field: "bootstrap_iterations", Reason: fmt.Sprintf("must not be negative, got %d", o.BootstrapIterations)}
	}
	if o.BootstrapIterations > 0 && (o.ConfidenceLevel <= 0 || o.ConfidenceLevel >= 1) {
		return &InvalidInputError{Field: "confidence_level", Reason: fmt.Sprintf("must lie in (0, 1), got %v", o.ConfidenceLevel)}
	}
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	return nil
}

// DecodeOptions overlays a free-form options map, as found in request
// documents, onto base. Unknown keys are rejected.
func DecodeOptions(base Options, raw map[string]any) (Options, error) {
	opts := base
	if len(raw) == 0 {
		return opts, opts.Validate()
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &opts,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return base, fmt.Errorf("creating options decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return base, &InvalidInputError{Field: "options", Reason: err.Error()}
	}
	if err := opts.Validate(); err != nil {
		return base, err
	}
	return opts, nil
}
