package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess        = 0 // Comparison ran; candidate significant or no gate requested
	ExitNotSignificant = 1 // --fail-if-not-significant and a comparison was not significant
	ExitError          = 2 // Configuration, input or runtime error
)

// NotSignificantError indicates that every comparison ran successfully but
// at least one was not significant at the requested level.
type NotSignificantError struct {
	Message string
}

func (e *NotSignificantError) Error() string {
	return e.Message
}

func main() {
	os.Exit(run())
}

func run() int {
	err := execute()
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintln(os.Stderr, err)
	return exitCode(err)
}

func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var notSignificant *NotSignificantError
	if errors.As(err, &notSignificant) {
		return ExitNotSignificant
	}
	// All other errors are configuration/runtime errors
	return ExitError
}
