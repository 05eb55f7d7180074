package ports

// FileSystem reads files and checks paths.
//
//go:generate go run go.uber.org/mock/mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystem interface {
	// ReadFile returns the whole file as text. Files that are not valid UTF-8 are an error.
	ReadFile(path string) (string, error)
	// Exists reports whether path exists. Any stat error counts as absent.
	Exists(path string) bool
}
