// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/kiln/internal/core/domain"
)

// ProcessRunner launches external programs.
//
//go:generate go run go.uber.org/mock/mockgen -source=process.go -destination=mocks/mock_process.go -package=mocks
type ProcessRunner interface {
	// Run launches cmd and waits for it to exit, handling each output stream
	// according to its mode.
	//
	// A non-successful exit is reported through the returned Outcome, not as an
	// error. The error is non-nil only when the program could not be started.
	Run(ctx context.Context, cmd domain.Command, stdout, stderr domain.OutputMode) (domain.Outcome, error)
}
