package ports

import (
	"context"

	"go.trai.ch/kiln/internal/core/domain"
)

// FreshnessOracle decides whether source paths changed relative to upstream.
//
//go:generate go run go.uber.org/mock/mockgen -source=freshness.go -destination=mocks/mock_freshness.go -package=mocks
type FreshnessOracle interface {
	// CheckPathModifications inspects the repository at srcRoot and returns a
	// verdict for the given path patterns.
	CheckPathModifications(
		ctx context.Context,
		srcRoot string,
		cfg domain.GitConfig,
		patterns []string,
		ci domain.CIEnv,
	) (domain.Freshness, error)
}
