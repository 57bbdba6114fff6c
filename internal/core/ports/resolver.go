package ports

// InputResolver turns command line arguments into the files to read.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type InputResolver interface {
	// ResolveInputs expands inputs against root, preserving argument order.
	// Relative inputs resolve to paths relative to root.
	ResolveInputs(inputs []string, root string) ([]string, error)
}
