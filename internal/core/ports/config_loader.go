package ports

import "go.trai.ch/kiln/internal/core/domain"

// ConfigLoader loads invocation settings and plans.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds the configuration file starting at cwd and walking up.
	// A missing file yields default settings rooted at cwd. A cwd naming a
	// regular file is loaded directly.
	Load(cwd string) (*domain.Settings, error)
	// LoadPlan reads a plan file.
	LoadPlan(path string) (*domain.Plan, error)
}
