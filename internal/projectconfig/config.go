// Package projectconfig provides the ProjectConfig struct and loader for
// .pairtest.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spboyer/pairtest/internal/comparison"
	"github.com/spboyer/pairtest/internal/statistics"
	"github.com/spboyer/pairtest/internal/validation"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up by Load.
const FileName = ".pairtest.yaml"

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultFormat = "text"
	DefaultAlpha  = 0.05

	DefaultBootstrapIterations = 0

	maxSearchDepth = 10
)

// OutputConfig controls how comparison results are rendered.
type OutputConfig struct {
	Format   string   `yaml:"format,omitempty"`
	Round    *bool    `yaml:"round,omitempty"`
	Decimals *int     `yaml:"decimals,omitempty"`
	Alpha    *float64 `yaml:"alpha,omitempty"`
}

// StatisticsConfig holds defaults for the significance tests.
type StatisticsConfig struct {
	WilcoxonMethod       string   `yaml:"wilcoxon_method,omitempty"`
	ZeroMethod           string   `yaml:"zero_method,omitempty"`
	ContinuityCorrection *bool    `yaml:"continuity_correction,omitempty"`
	BootstrapIterations  *int     `yaml:"bootstrap_iterations,omitempty"`
	ConfidenceLevel      *float64 `yaml:"confidence_level,omitempty"`
	Seed                 *int64   `yaml:"seed,omitempty"`
	Workers              int      `yaml:"workers,omitempty"`
}

// RegressionConfig holds regression-only settings.
type RegressionConfig struct {
	Loss string `yaml:"loss,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .pairtest.yaml.
type ProjectConfig struct {
	Output     OutputConfig     `yaml:"output,omitempty"`
	Statistics StatisticsConfig `yaml:"statistics,omitempty"`
	Regression RegressionConfig `yaml:"regression,omitempty"`

	// Path is the file the config was read from, empty for defaults.
	Path string `yaml:"-"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Output: OutputConfig{
			Format:   DefaultFormat,
			Round:    ptr(true),
			Decimals: ptr(comparison.DefaultDecimals),
			Alpha:    ptr(DefaultAlpha),
		},
		Statistics: StatisticsConfig{
			WilcoxonMethod:       string(statistics.MethodAuto),
			ZeroMethod:           string(statistics.ZeroWilcox),
			ContinuityCorrection: ptr(false),
			BootstrapIterations:  ptr(DefaultBootstrapIterations),
			ConfidenceLevel:      ptr(comparison.DefaultConfidenceLevel),
			Seed:                 ptr(int64(comparison.DefaultSeed)),
			Workers:              comparison.DefaultWorkers,
		},
		Regression: RegressionConfig{
			Loss: string(comparison.LossAbsolute),
		},
	}
}

// Load finds .pairtest.yaml by walking up from startDir (max 10 levels),
// validates it against the config schema, and fills in missing fields with
// defaults. If no config file is found, returns defaults with a nil error.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	path, data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	if errs := validation.ValidateConfigBytes(data); len(errs) > 0 {
		return nil, fmt.Errorf("invalid %s:\n  %s", path, strings.Join(errs, "\n  "))
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	mergeConfig(cfg, &fileCfg)
	cfg.Path = path
	return cfg, nil
}

// findConfigFile walks up from dir looking for .pairtest.yaml. Returns
// os.ErrNotExist if no config file is found; real I/O errors propagate.
func findConfigFile(dir string) (string, []byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < maxSearchDepth; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return p, data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", nil, os.ErrNotExist
}

// mergeConfig overlays values set in src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	// Output
	if src.Output.Format != "" {
		dst.Output.Format = src.Output.Format
	}
	if src.Output.Round != nil {
		dst.Output.Round = src.Output.Round
	}
	if src.Output.Decimals != nil {
		dst.Output.Decimals = src.Output.Decimals
	}
	if src.Output.Alpha != nil {
		dst.Output.Alpha = src.Output.Alpha
	}

	// Statistics
	if src.Statistics.WilcoxonMethod != "" {
		dst.Statistics.WilcoxonMethod = src.Statistics.WilcoxonMethod
	}
	if src.Statistics.ZeroMethod != "" {
		dst.Statistics.ZeroMethod = src.Statistics.ZeroMethod
	}
	if src.Statistics.ContinuityCorrection != nil {
		dst.Statistics.ContinuityCorrection = src.Statistics.ContinuityCorrection
	}
	if src.Statistics.BootstrapIterations != nil {
		dst.Statistics.BootstrapIterations = src.Statistics.BootstrapIterations
	}
	if src.Statistics.ConfidenceLevel != nil {
		dst.Statistics.ConfidenceLevel = src.Statistics.ConfidenceLevel
	}
	if src.Statistics.Seed != nil {
		dst.Statistics.Seed = src.Statistics.Seed
	}
	if src.Statistics.Workers != 0 {
		dst.Statistics.Workers = src.Statistics.Workers
	}

	// Regression
	if src.Regression.Loss != "" {
		dst.Regression.Loss = src.Regression.Loss
	}
}

// ToOptions converts the config into comparison options. The result is
// validated so callers can hand it straight to comparison.New.
func (c *ProjectConfig) ToOptions() (comparison.Options, error) {
	opts := comparison.DefaultOptions()
	if c.Output.Round != nil {
		opts.Round = *c.Output.Round
	}
	if c.Output.Decimals != nil {
		opts.Decimals = *c.Output.Decimals
	}
	opts.WilcoxonMethod = statistics.Method(c.Statistics.WilcoxonMethod)
	opts.ZeroMethod = statistics.ZeroMethod(c.Statistics.ZeroMethod)
	if c.Statistics.ContinuityCorrection != nil {
		opts.Correction = *c.Statistics.ContinuityCorrection
	}
	if c.Statistics.BootstrapIterations != nil {
		opts.BootstrapIterations = *c.Statistics.BootstrapIterations
	}
	if c.Statistics.ConfidenceLevel != nil {
		opts.ConfidenceLevel = *c.Statistics.ConfidenceLevel
	}
	if c.Statistics.Seed != nil {
		opts.Seed = *c.Statistics.Seed
	}
	opts.Workers = c.Statistics.Workers
	opts.RegressionLoss = comparison.Loss(c.Regression.Loss)

	if err := opts.Validate(); err != nil {
		return comparison.Options{}, err
	}
	return opts, nil
}

// Alpha returns the configured significance level.
func (c *ProjectConfig) Alpha() float64 {
	if c.Output.Alpha == nil {
		return DefaultAlpha
	}
	return *c.Output.Alpha
}

func ptr[T any](v T) *T {
	return &v
}
