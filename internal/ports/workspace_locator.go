package ports

// WorkspaceLocator finds an nch workspace root (a directory with nch.yaml)
// starting from an arbitrary directory.
type WorkspaceLocator interface {
	FindRoot(startDir string) (string, error)
}
