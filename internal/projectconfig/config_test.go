package projectconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spboyer/pairtest/internal/comparison"
	"github.com/spboyer/pairtest/internal/statistics"
)

func TestNew_ReturnsAllDefaults(t *testing.T) {
	cfg := New()

	// Output
	assertEqual(t, "Output.Format", "text", cfg.Output.Format)
	assertBoolPtr(t, "Output.Round", true, cfg.Output.Round)
	assertIntPtr(t, "Output.Decimals", 4, cfg.Output.Decimals)
	if cfg.Alpha() != 0.05 {
		t.Errorf("Alpha() = %v, want 0.05", cfg.Alpha())
	}

	// Statistics
	assertEqual(t, "Statistics.WilcoxonMethod", "auto", cfg.Statistics.WilcoxonMethod)
	assertEqual(t, "Statistics.ZeroMethod", "wilcox", cfg.Statistics.ZeroMethod)
	assertBoolPtr(t, "Statistics.ContinuityCorrection", false, cfg.Statistics.ContinuityCorrection)
	assertIntPtr(t, "Statistics.BootstrapIterations", 0, cfg.Statistics.BootstrapIterations)
	assertEqualInt(t, "Statistics.Workers", 4, cfg.Statistics.Workers)
	if cfg.Statistics.Seed == nil || *cfg.Statistics.Seed != 1 {
		t.Errorf("Statistics.Seed = %v, want 1", cfg.Statistics.Seed)
	}

	// Regression
	assertEqual(t, "Regression.Loss", "absolute", cfg.Regression.Loss)
	assertEqual(t, "Path", "", cfg.Path)
}

func TestLoad_FullConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
output:
  format: json
  round: false
  decimals: 6
  alpha: 0.01
statistics:
  wilcoxon_method: approx
  zero_method: pratt
  continuity_correction: true
  bootstrap_iterations: 2000
  confidence_level: 0.9
  seed: 42
  workers: 8
regression:
  loss: squared
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	assertEqual(t, "Output.Format", "json", cfg.Output.Format)
	assertBoolPtr(t, "Output.Round", false, cfg.Output.Round)
	assertIntPtr(t, "Output.Decimals", 6, cfg.Output.Decimals)
	if cfg.Alpha() != 0.01 {
		t.Errorf("Alpha() = %v, want 0.01", cfg.Alpha())
	}
	assertEqual(t, "Statistics.WilcoxonMethod", "approx", cfg.Statistics.WilcoxonMethod)
	assertEqual(t, "Statistics.ZeroMethod", "pratt", cfg.Statistics.ZeroMethod)
	assertBoolPtr(t, "Statistics.ContinuityCorrection", true, cfg.Statistics.ContinuityCorrection)
	assertIntPtr(t, "Statistics.BootstrapIterations", 2000, cfg.Statistics.BootstrapIterations)
	assertEqualInt(t, "Statistics.Workers", 8, cfg.Statistics.Workers)
	assertEqual(t, "Regression.Loss", "squared", cfg.Regression.Loss)
	assertEqual(t, "Path", filepath.Join(dir, FileName), cfg.Path)

	opts, err := cfg.ToOptions()
	if err != nil {
		t.Fatalf("ToOptions() error: %v", err)
	}
	if opts.Round || opts.Decimals != 6 {
		t.Errorf("rounding = %v/%d, want false/6", opts.Round, opts.Decimals)
	}
	if opts.WilcoxonMethod != statistics.MethodApprox || opts.ZeroMethod != statistics.ZeroPratt || !opts.Correction {
		t.Errorf("signed-rank options = %+v", opts)
	}
	if opts.BootstrapIterations != 2000 || opts.ConfidenceLevel != 0.9 || opts.Seed != 42 {
		t.Errorf("bootstrap options = %d/%v/%d", opts.BootstrapIterations, opts.ConfidenceLevel, opts.Seed)
	}
	if opts.RegressionLoss != comparison.LossSquared || opts.Workers != 8 {
		t.Errorf("loss/workers = %s/%d", opts.RegressionLoss, opts.Workers)
	}
}

func TestLoad_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
statistics:
  wilcoxon_method: exact
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Overridden
	assertEqual(t, "Statistics.WilcoxonMethod", "exact", cfg.Statistics.WilcoxonMethod)

	// Defaults preserved
	assertEqual(t, "Output.Format", "text", cfg.Output.Format)
	assertIntPtr(t, "Output.Decimals", 4, cfg.Output.Decimals)
	assertEqual(t, "Regression.Loss", "absolute", cfg.Regression.Loss)
}

func TestLoad_MissingFile_ReturnsDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	defaults := New()
	assertEqual(t, "Output.Format", defaults.Output.Format, cfg.Output.Format)
	assertEqual(t, "Statistics.WilcoxonMethod", defaults.Statistics.WilcoxonMethod, cfg.Statistics.WilcoxonMethod)
	assertEqual(t, "Path", "", cfg.Path)

	opts, err := cfg.ToOptions()
	if err != nil {
		t.Fatalf("ToOptions() error: %v", err)
	}
	if opts != comparison.DefaultOptions() {
		t.Errorf("ToOptions() = %+v, want DefaultOptions()", opts)
	}
}

func TestLoad_InvalidYAML_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
output:
  format: [not valid yaml
    this is broken
`)

	_, err := Load(dir)
	if err == nil {
		t.Fatal("Load() should return error for invalid YAML")
	}
}

func TestLoad_SchemaViolation_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
output:
  format: xml
statistics:
  workers: 0
`)

	_, err := Load(dir)
	if err == nil {
		t.Fatal("Load() should reject values outside the schema")
	}
	if !strings.Contains(err.Error(), "format") {
		t.Errorf("error %q should name the offending field", err)
	}
}

func TestLoad_WalksUpDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, FileName, `
regression:
  loss: squared
`)

	child := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(child, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(child)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	assertEqual(t, "Regression.Loss", "squared", cfg.Regression.Loss)
	assertEqual(t, "Output.Format", "text", cfg.Output.Format)
}

func TestBoolPointerFields(t *testing.T) {
	t.Run("defaults preserved when not set in YAML", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, FileName, `
output:
  format: table
`)
		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		assertBoolPtr(t, "Output.Round", true, cfg.Output.Round)
	})

	t.Run("explicitly false", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, FileName, `
output:
  round: false
statistics:
  continuity_correction: false
`)
		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		assertBoolPtr(t, "Output.Round", false, cfg.Output.Round)
		assertBoolPtr(t, "Statistics.ContinuityCorrection", false, cfg.Statistics.ContinuityCorrection)
	})

	t.Run("explicit zero decimals", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, FileName, `
output:
  decimals: 0
`)
		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		assertIntPtr(t, "Output.Decimals", 0, cfg.Output.Decimals)
	})
}

func TestToOptions_InvalidMethod(t *testing.T) {
	cfg := New()
	cfg.Statistics.WilcoxonMethod = "permutation"

	if _, err := cfg.ToOptions(); err == nil {
		t.Fatal("ToOptions() should reject an unknown method")
	}
}

// --- test helpers ---

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func assertEqual(t *testing.T, field, want, got string) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %q, want %q", field, got, want)
	}
}

func assertEqualInt(t *testing.T, field string, want, got int) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %d, want %d", field, got, want)
	}
}

func assertIntPtr(t *testing.T, field string, want int, got *int) {
	t.Helper()
	if got == nil {
		t.Errorf("%s is nil, want *%d", field, want)
		return
	}
	assertEqualInt(t, field, want, *got)
}

func assertBoolPtr(t *testing.T, field string, want bool, got *bool) {
	t.Helper()
	if got == nil {
		t.Errorf("%s is nil, want *%v", field, want)
		return
	}
	if *got != want {
		t.Errorf("%s = %v, want %v", field, *got, want)
	}
}
