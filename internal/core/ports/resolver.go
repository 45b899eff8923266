package ports

// PathResolver defines the interface for expanding theme file arguments.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type PathResolver interface {
	// ResolvePaths expands files, globs and directories relative to root into a
	// sorted, de-duplicated list of theme document paths.
	ResolvePaths(patterns []string, root string) ([]string, error)
}
