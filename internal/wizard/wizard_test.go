package wizard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spboyer/pairtest/internal/projectconfig"
	"github.com/spboyer/pairtest/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateConfig_Defaults(t *testing.T) {
	result, err := GenerateConfig(projectconfig.New())
	require.NoError(t, err)

	assert.Contains(t, result, "format: text")
	assert.Contains(t, result, "round: true")
	assert.Contains(t, result, "decimals: 4")
	assert.Contains(t, result, "alpha: 0.05")
	assert.Contains(t, result, "wilcoxon_method: auto")
	assert.Contains(t, result, "zero_method: wilcox")
	assert.Contains(t, result, "confidence_level: 0.95")
	assert.Contains(t, result, "seed: 1")
	assert.Contains(t, result, "loss: absolute")
	assert.Empty(t, validation.ValidateConfigBytes([]byte(result)))
}

func TestGenerateConfig_LoadsBack(t *testing.T) {
	cfg := projectconfig.New()
	require.NoError(t, Answers{
		Format:         "markdown",
		Alpha:          "0.01",
		WilcoxonMethod: "approx",
		ZeroMethod:     "pratt",
		Loss:           "squared",
		Bootstrap:      "500",
	}.Apply(cfg))

	content, err := GenerateConfig(cfg)
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, projectconfig.FileName), []byte(content), 0o644))

	loaded, err := projectconfig.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "markdown", loaded.Output.Format)
	assert.Equal(t, 0.01, loaded.Alpha())
	assert.Equal(t, "approx", loaded.Statistics.WilcoxonMethod)
	assert.Equal(t, "pratt", loaded.Statistics.ZeroMethod)
	assert.Equal(t, "squared", loaded.Regression.Loss)
	require.NotNil(t, loaded.Statistics.BootstrapIterations)
	assert.Equal(t, 500, *loaded.Statistics.BootstrapIterations)
}

func TestAnswersFrom(t *testing.T) {
	a := AnswersFrom(projectconfig.New())
	assert.Equal(t, Answers{
		Format:         "text",
		Alpha:          "0.05",
		WilcoxonMethod: "auto",
		ZeroMethod:     "wilcox",
		Loss:           "absolute",
		Bootstrap:      "0",
	}, a)
}

func TestAnswersApply_Invalid(t *testing.T) {
	valid := AnswersFrom(projectconfig.New())

	tests := []struct {
		name    string
		mutate  func(*Answers)
		wantErr string
	}{
		{"format", func(a *Answers) { a.Format = "xml" }, "invalid output format"},
		{"alpha not a number", func(a *Answers) { a.Alpha = "five percent" }, "significance level"},
		{"alpha out of range", func(a *Answers) { a.Alpha = "1" }, "significance level"},
		{"negative bootstrap", func(a *Answers) { a.Bootstrap = "-3" }, "bootstrap iterations"},
		{"method", func(a *Answers) { a.WilcoxonMethod = "permutation" }, "wilcoxon_method"},
		{"loss", func(a *Answers) { a.Loss = "huber" }, "loss"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid
			tt.mutate(&a)
			cfg := projectconfig.New()
			before := *cfg

			err := a.Apply(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, before, *cfg, "config must be untouched on error")
		})
	}
}

func TestAnswersApply_EmptyBootstrapMeansDisabled(t *testing.T) {
	a := AnswersFrom(projectconfig.New())
	a.Bootstrap = " "
	cfg := projectconfig.New()
	require.NoError(t, a.Apply(cfg))
	assert.Equal(t, 0, *cfg.Statistics.BootstrapIterations)
}

func TestDeref(t *testing.T) {
	_, err := deref("not a pointer")
	assert.Error(t, err)
}
