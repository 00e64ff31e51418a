package wizard

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"github.com/charmbracelet/huh"
	"github.com/spboyer/pairtest/internal/comparison"
	"github.com/spboyer/pairtest/internal/projectconfig"
	"github.com/spboyer/pairtest/internal/reporting"
	"github.com/spboyer/pairtest/internal/statistics"
	"golang.org/x/term"
)

// Answers holds the raw values collected by the config form.
type Answers struct {
	Format         string
	Alpha          string
	WilcoxonMethod string
	ZeroMethod     string
	Loss           string
	Bootstrap      string
}

const configTemplate = `# pairtest project configuration.
# Command-line flags override these values.

output:
  # text, table, json, markdown, html or junit
  format: {{ .Output.Format }}
  round: {{ deref .Output.Round }}
  decimals: {{ deref .Output.Decimals }}
  # significance level used for verdicts and --fail-if-not-significant
  alpha: {{ deref .Output.Alpha }}

statistics:
  # auto uses the exact signed-rank distribution for small samples without ties
  wilcoxon_method: {{ .Statistics.WilcoxonMethod }}
  zero_method: {{ .Statistics.ZeroMethod }}
  continuity_correction: {{ deref .Statistics.ContinuityCorrection }}
  # 0 disables the bootstrap interval
  bootstrap_iterations: {{ deref .Statistics.BootstrapIterations }}
  confidence_level: {{ deref .Statistics.ConfidenceLevel }}
  seed: {{ deref .Statistics.Seed }}
  workers: {{ .Statistics.Workers }}

regression:
  # absolute or squared
  loss: {{ .Regression.Loss }}
`

// RunConfigWizard runs an interactive huh form seeded from base and returns
// the updated configuration. base is not modified.
func RunConfigWizard(in io.Reader, out io.Writer, base *projectconfig.ProjectConfig) (*projectconfig.ProjectConfig, error) {
	a := AnswersFrom(base)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default output format").
				Options(huh.NewOptions(reporting.Formats...)...).
				Value(&a.Format),
			huh.NewInput().
				Title("Significance level").
				Description("Both one-sided p-values must fall below this to call the candidate better").
				Placeholder("0.05").
				Value(&a.Alpha).
				Validate(func(s string) error {
					_, err := parseAlpha(s)
					return err
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Signed-rank method").
				Options(
					huh.NewOption("auto (exact for small samples)", string(statistics.MethodAuto)),
					huh.NewOption("exact", string(statistics.MethodExact)),
					huh.NewOption("normal approximation", string(statistics.MethodApprox)),
				).
				Value(&a.WilcoxonMethod),
			huh.NewSelect[string]().
				Title("Zero differences").
				Options(
					huh.NewOption("wilcox (drop)", string(statistics.ZeroWilcox)),
					huh.NewOption("pratt (rank, then drop)", string(statistics.ZeroPratt)),
				).
				Value(&a.ZeroMethod),
			huh.NewSelect[string]().
				Title("Regression loss").
				Options(
					huh.NewOption("absolute error", string(comparison.LossAbsolute)),
					huh.NewOption("squared error", string(comparison.LossSquared)),
				).
				Value(&a.Loss),
			huh.NewInput().
				Title("Bootstrap iterations").
				Description("0 disables the bootstrap confidence interval").
				Placeholder("0").
				Value(&a.Bootstrap).
				Validate(func(s string) error {
					_, err := parseIterations(s)
					return err
				}),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	cfg := clone(base)
	if err := a.Apply(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// AnswersFrom seeds form answers from an existing configuration.
func AnswersFrom(cfg *projectconfig.ProjectConfig) Answers {
	a := Answers{
		Format:         cfg.Output.Format,
		Alpha:          strconv.FormatFloat(cfg.Alpha(), 'g', -1, 64),
		WilcoxonMethod: cfg.Statistics.WilcoxonMethod,
		ZeroMethod:     cfg.Statistics.ZeroMethod,
		Loss:           cfg.Regression.Loss,
		Bootstrap:      "0",
	}
	if cfg.Statistics.BootstrapIterations != nil {
		a.Bootstrap = strconv.Itoa(*cfg.Statistics.BootstrapIterations)
	}
	return a
}

// Apply validates the answers and writes them into cfg.
func (a Answers) Apply(cfg *projectconfig.ProjectConfig) error {
	format := strings.TrimSpace(a.Format)
	if !slices.Contains(reporting.Formats, format) {
		return fmt.Errorf("invalid output format %q: must be one of %s", format, strings.Join(reporting.Formats, ", "))
	}
	alpha, err := parseAlpha(a.Alpha)
	if err != nil {
		return err
	}
	iterations, err := parseIterations(a.Bootstrap)
	if err != nil {
		return err
	}

	next := clone(cfg)
	next.Output.Format = format
	next.Output.Alpha = &alpha
	next.Statistics.WilcoxonMethod = strings.TrimSpace(a.WilcoxonMethod)
	next.Statistics.ZeroMethod = strings.TrimSpace(a.ZeroMethod)
	next.Statistics.BootstrapIterations = &iterations
	next.Regression.Loss = strings.TrimSpace(a.Loss)
	if _, err := next.ToOptions(); err != nil {
		return err
	}

	*cfg = *next
	return nil
}

// GenerateConfig renders a commented .pairtest.yaml for cfg.
func GenerateConfig(cfg *projectconfig.ProjectConfig) (string, error) {
	tmpl, err := template.New("config").Funcs(template.FuncMap{"deref": deref}).Parse(configTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, cfg); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}

func parseAlpha(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 || v >= 1 {
		return 0, fmt.Errorf("significance level must be a number between 0 and 1, got %q", s)
	}
	return v, nil
}

func parseIterations(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("bootstrap iterations must be a non-negative integer, got %q", s)
	}
	return v, nil
}

// deref prints the value behind a config pointer field.
func deref(v any) (string, error) {
	switch p := v.(type) {
	case *bool:
		return strconv.FormatBool(*p), nil
	case *int:
		return strconv.Itoa(*p), nil
	case *int64:
		return strconv.FormatInt(*p, 10), nil
	case *float64:
		return strconv.FormatFloat(*p, 'g', -1, 64), nil
	}
	return "", fmt.Errorf("deref: unsupported type %T", v)
}

func clone(cfg *projectconfig.ProjectConfig) *projectconfig.ProjectConfig {
	c := *cfg
	return &c
}
