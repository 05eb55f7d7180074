package ports

// Logger defines the interface for diagnostics.
//
//go:generate go run go.uber.org/mock/mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Info prints an unprefixed line.
	Info(msg string)
	// Warn prints a line prefixed with "warning:".
	Warn(msg string)
	// Error prints an error, including its cause chain.
	Error(err error)
	// Fatal prints a line prefixed with "fatal error:". It does not exit.
	Fatal(msg string)
}
