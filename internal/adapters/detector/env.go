// Package detector inspects the process environment.
package detector

import (
	"os"

	"go.trai.ch/kiln/internal/core/domain"
	"golang.org/x/term"
)

// DetectCI returns the CI environment described by getenv.
// A nil getenv means os.Getenv.
func DetectCI(getenv func(string) string) domain.CIEnv {
	if getenv == nil {
		getenv = os.Getenv
	}
	if getenv("GITHUB_ACTIONS") == "true" {
		return domain.CIGitHubActions
	}
	return domain.CINone
}

// IsTerminal reports whether f is connected to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}
