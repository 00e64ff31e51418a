package main

import (
	"fmt"

	"github.com/spboyer/pairtest/internal/validation"
	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	var config bool

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a request document or .pairtest.yaml against its schema",
		Long: `Validate a YAML or JSON comparison request against the request schema.

With --config the file is checked against the .pairtest.yaml schema instead.
Every violation is listed; the command fails if there is at least one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateCommandE(cmd, args[0], config)
		},
	}

	cmd.Flags().BoolVar(&config, "config", false, "Validate a .pairtest.yaml file")

	return cmd
}

func validateCommandE(cmd *cobra.Command, path string, config bool) error {
	validate := validation.ValidateRequestFile
	kind := "request"
	if config {
		validate = validation.ValidateConfigFile
		kind = "config"
	}

	errs, err := validate(path)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(errs) == 0 {
		fmt.Fprintf(w, "✅ %s is a valid %s\n", path, kind) //nolint:errcheck
		return nil
	}

	fmt.Fprintf(w, "❌ %s is not a valid %s:\n", path, kind) //nolint:errcheck
	for _, e := range errs {
		fmt.Fprintf(w, "  %s\n", e) //nolint:errcheck
	}
	return fmt.Errorf("%s: %d schema error(s)", path, len(errs))
}
